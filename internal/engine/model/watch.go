package model

import (
	"fmt"
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/dunehall/internal/engine/mesh"
	"github.com/Faultbox/dunehall/internal/engine/shading"
)

// Anchor keys of the watch.
const (
	AnchorMaterial = "material"
	AnchorDial     = "dial"
	AnchorCalibre  = "calibre"
)

// Watch dimensions in model units. The dial faces +Y.
const (
	caseRadius    = 1.6
	caseHeight    = 0.4
	bezelRadius   = 1.5
	bezelHeight   = 0.1
	bezelY        = 0.25
	screwRing     = 1.3
	screwY        = 0.31
	dialRadius    = 1.2
	dialY         = 0.26
	hourHandY     = 0.35
	minuteHandY   = 0.38
	dialSegments  = 64
	octagonSides  = 8
	screwSides    = 6
	screwCount    = 8
	screwRadius   = 0.08
	screwHeight   = 0.02
	handThickness = 0.02
)

// WatchAnchors returns the feature points the overlay annotates: the bezel
// edge, the dial center and the case back.
func WatchAnchors() map[string]mgl64.Vec3 {
	return map[string]mgl64.Vec3{
		AnchorMaterial: {0, bezelY, bezelRadius * gomath.Cos(gomath.Pi/octagonSides)},
		AnchorDial:     {0, dialY, 0},
		AnchorCalibre:  {0, -caseHeight / 2, 0},
	}
}

// Watch builds the octagonal watch: gold case, bezel and hands, steel
// screws, and the guilloche dial.
func Watch() *Model {
	gold := shading.NewMetal(shading.GoldParams())
	steel := shading.NewMetal(shading.SteelParams())
	dial := shading.NewDial(shading.DefaultDialParams())

	body := mesh.Cylinder("case", caseRadius, caseHeight, octagonSides)
	bezel := mesh.Transform(
		mesh.Cylinder("bezel", bezelRadius, bezelHeight, octagonSides),
		translate(0, bezelY, 0).Mul4(rotateY(gomath.Pi/8)),
	)

	screws := make([]*mesh.Mesh, 0, screwCount)
	for i := range screwCount {
		angle := float64(i)/screwCount*2*gomath.Pi + gomath.Pi/8
		xf := translate(gomath.Sin(angle)*screwRing, screwY, gomath.Cos(angle)*screwRing).Mul4(rotateY(angle))
		screws = append(screws, mesh.Transform(
			mesh.Cylinder(fmt.Sprintf("screw-%d", i), screwRadius, screwHeight, screwSides), xf))
	}

	hour := mesh.Transform(mesh.Box("hour", 0.1, handThickness, 0.8),
		translate(0, hourHandY, 0).Mul4(rotateY(gomath.Pi/4)))
	minute := mesh.Transform(mesh.Box("minute", 0.08, handThickness, 1.1),
		translate(0, minuteHandY, 0).Mul4(rotateY(-gomath.Pi/2)))

	face := mesh.Transform(mesh.Disc("dial", dialRadius, dialSegments), translate(0, dialY, 0))

	return &Model{
		Name: "watch",
		Parts: []Part{
			{Mesh: mesh.Merge("case", body, bezel, hour, minute), Shader: gold, Stage: shading.StageMesh},
			{Mesh: mesh.Merge("screws", screws...), Shader: steel, Stage: shading.StageMesh},
			{Mesh: face, Shader: dial, Stage: shading.StageMesh},
		},
		Anchors: WatchAnchors(),
	}
}
