package model

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/dunehall/internal/engine/mesh"
	"github.com/Faultbox/dunehall/internal/engine/shading"
)

// Drum dimensions.
const (
	DrumRadius = 1.8
	DrumHeight = 1.2
	DrumSides  = 8
	// DrumDrop is how far below its placement a drum hangs.
	DrumDrop = 2.5
)

// DrumTilt is the fixed, scattered tilt of drum i. The center drum sits
// almost level.
func DrumTilt(i int, center bool) mgl64.Vec3 {
	if center {
		return mgl64.Vec3{0.2, 0.1, 0.1}
	}
	f := float64(i)
	return mgl64.Vec3{
		gomath.Pi/4 + gomath.Sin(f*123.4)*0.5,
		gomath.Pi/3 + gomath.Cos(f*567.8)*0.5,
		gomath.Pi/6 + gomath.Sin(f*910.1)*0.3,
	}
}

// DrumTransform places drum i under a placement at pos. Tilt angles apply
// in X, Y, Z order.
func DrumTransform(i int, pos mgl64.Vec3, center bool) mgl64.Mat4 {
	tilt := DrumTilt(i, center)
	rot := mgl64.HomogRotate3DX(tilt.X()).
		Mul4(mgl64.HomogRotate3DY(tilt.Y())).
		Mul4(mgl64.HomogRotate3DZ(tilt.Z()))
	return translate(pos.X(), pos.Y()-DrumDrop, pos.Z()).Mul4(rot)
}

// Drum builds a weathered octagonal column drum in its local frame.
func Drum() *Model {
	m := mesh.Transform(mesh.Cylinder("drum", DrumRadius, DrumHeight, DrumSides), rotateY(gomath.Pi/4))
	return &Model{
		Name: "drum",
		Parts: []Part{{
			Mesh:   m,
			Shader: shading.NewStone(shading.ColumnStoneParams()),
			Stage:  shading.StageStone,
		}},
	}
}

// PlinthProfile is the bottom-to-top lathe profile of the central plinth:
// a low disc with softened edges and a shallow carved ring on top.
func PlinthProfile() []mesh.ProfilePoint {
	return []mesh.ProfilePoint{
		{R: 0.001, Y: 0},
		{R: 3.6, Y: 0},
		{R: 3.8, Y: 0.05},
		{R: 3.9, Y: 0.15},
		{R: 3.92, Y: 0.4},
		{R: 3.9, Y: 0.55},
		{R: 3.7, Y: 0.6},
		{R: 3.4, Y: 0.6},
		{R: 3.35, Y: 0.59},
		{R: 3.2, Y: 0.59},
		{R: 3.15, Y: 0.6},
		{R: 0.001, Y: 0.6},
	}
}

// Plinth builds the restored stone plinth.
func Plinth(segments int) *Model {
	return &Model{
		Name: "plinth",
		Parts: []Part{{
			Mesh:   mesh.Lathe("plinth", PlinthProfile(), segments),
			Shader: shading.NewStone(shading.PlinthStoneParams()),
			Stage:  shading.StageStone,
		}},
	}
}
