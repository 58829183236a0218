// Package scene assembles the static showcase scene once at startup: the
// dune terrain, the GPU-displaced distant ring, the background mountains,
// the plinth and the drums. The floating watches are listed separately
// because their transforms change every frame.
package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/dunehall/internal/assets"
	"github.com/Faultbox/dunehall/internal/engine/heightfield"
	"github.com/Faultbox/dunehall/internal/engine/mesh"
	"github.com/Faultbox/dunehall/internal/engine/model"
	"github.com/Faultbox/dunehall/internal/engine/shading"
	"github.com/Faultbox/dunehall/internal/engine/terrain"
	"github.com/Faultbox/dunehall/internal/logger"
)

// Params sizes the static scene.
type Params struct {
	TerrainSize       float64 `yaml:"terrain_size" toml:"terrain_size"`
	TerrainResolution int     `yaml:"terrain_resolution" toml:"terrain_resolution"`
	TerrainY          float64 `yaml:"terrain_y" toml:"terrain_y"`

	RingInner    float64 `yaml:"ring_inner" toml:"ring_inner"`
	RingOuter    float64 `yaml:"ring_outer" toml:"ring_outer"`
	RingSegments int     `yaml:"ring_segments" toml:"ring_segments"`
	RingY        float64 `yaml:"ring_y" toml:"ring_y"`

	MountainWidth      float64    `yaml:"mountain_width" toml:"mountain_width"`
	MountainDepth      float64    `yaml:"mountain_depth" toml:"mountain_depth"`
	MountainResolution int        `yaml:"mountain_resolution" toml:"mountain_resolution"`
	MountainOrigin     [3]float64 `yaml:"mountain_origin" toml:"mountain_origin"`

	PlinthSegments int     `yaml:"plinth_segments" toml:"plinth_segments"`
	PlinthY        float64 `yaml:"plinth_y" toml:"plinth_y"`
}

// DefaultParams returns the showcase layout.
func DefaultParams() Params {
	return Params{
		TerrainSize:        800,
		TerrainResolution:  512,
		TerrainY:           -0.3,
		RingInner:          250,
		RingOuter:          800,
		RingSegments:       128,
		RingY:              -5,
		MountainWidth:      500,
		MountainDepth:      150,
		MountainResolution: 256,
		MountainOrigin:     [3]float64{0, -10, -200},
		PlinthSegments:     128,
		PlinthY:            -0.8,
	}
}

// Node is one static draw: a mesh, its shading variant, and where it sits.
type Node struct {
	Name      string
	Mesh      *mesh.Mesh
	Shader    shading.Model
	Stage     shading.Stage
	Transform mgl64.Mat4
}

// Object is a placement drawn with a shared model and a per-frame
// transform.
type Object struct {
	Placement assets.Placement
	Model     *model.Model
}

// Materials are the shared shading instances whose parameters may be
// retuned while running. Meshes never change after Build.
type Materials struct {
	Sand     *shading.Sand
	Column   *shading.Stone
	Plinth   *shading.Stone
	Mountain *shading.Mountain
}

// Scene is the built scene. Only Materials change after Build.
type Scene struct {
	Params     Params
	Field      *heightfield.Field
	Heightmap  *terrain.Heightmap
	Placements assets.Table
	Static     []Node
	Objects    []Object
	Materials  Materials
}

// ground shifts the dune law to where the terrain mesh actually sits.
type ground struct {
	field *heightfield.Field
	y     float64
}

func (g ground) Elevation(x, z float64) float64 { return g.field.Elevation(x, z) + g.y }

// Build generates every static mesh. Terrain tessellation happens here,
// once, on the calling goroutine.
func Build(table assets.Table, field *heightfield.Field, p Params) *Scene {
	log := logger.Named("scene")
	s := &Scene{Params: p, Field: field, Placements: table}

	ext := terrain.Square(p.TerrainSize)
	dunes := terrain.BuildGrid("terrain", ext, p.TerrainResolution, field)
	s.Heightmap = terrain.BuildHeightmap(ext, p.TerrainResolution, ground{field: field, y: p.TerrainY})

	sand := shading.NewSand(shading.DefaultSandParams())
	mountain := shading.NewMountain(shading.DefaultMountainParams())
	s.Materials.Sand = sand
	s.Materials.Mountain = mountain
	s.Static = append(s.Static,
		Node{
			Name: "terrain", Mesh: dunes, Shader: sand, Stage: shading.StageMesh,
			Transform: mgl64.Translate3D(0, p.TerrainY, 0),
		},
		Node{
			Name:      "distant",
			Mesh:      mesh.Ring("distant", p.RingInner, p.RingOuter, p.RingSegments/4, p.RingSegments),
			Shader:    sand,
			Stage:     shading.StageRing,
			Transform: mgl64.Translate3D(0, p.RingY, 0),
		},
		Node{
			Name:      "mountains",
			Mesh:      terrain.BuildMountains(p.MountainWidth, p.MountainDepth, p.MountainResolution, p.MountainOrigin, terrain.DefaultMountainParams()),
			Shader:    mountain,
			Stage:     shading.StageMesh,
			Transform: mgl64.Ident4(),
		},
	)

	plinth := model.Plinth(p.PlinthSegments)
	s.Materials.Plinth, _ = plinth.Parts[0].Shader.(*shading.Stone)
	s.Static = append(s.Static, modelNodes(plinth, mgl64.Translate3D(0, p.PlinthY, 0))...)

	drum := model.Drum()
	s.Materials.Column, _ = drum.Parts[0].Shader.(*shading.Stone)
	for i, pl := range table {
		s.Static = append(s.Static, modelNodes(drum, model.DrumTransform(i, pl.Pos(), pl.IsCenter()))...)
	}

	watch := model.Watch()
	for _, pl := range table {
		s.Objects = append(s.Objects, Object{Placement: pl, Model: watch})
	}

	lo, hi := field.Range()
	log.Info("scene built",
		zap.Int("nodes", len(s.Static)),
		zap.Float64("terrain_min", lo),
		zap.Float64("terrain_max", hi),
		zap.Int("objects", len(s.Objects)),
		zap.Int("triangles", s.TriangleCount()),
	)
	return s
}

func modelNodes(m *model.Model, xf mgl64.Mat4) []Node {
	nodes := make([]Node, 0, len(m.Parts))
	for i, part := range m.Parts {
		nodes = append(nodes, Node{
			Name:      fmt.Sprintf("%s/%d", m.Name, i),
			Mesh:      part.Mesh,
			Shader:    part.Shader,
			Stage:     part.Stage,
			Transform: xf,
		})
	}
	return nodes
}

// TriangleCount sums the triangles of every static node and object.
func (s *Scene) TriangleCount() int {
	n := 0
	for _, node := range s.Static {
		n += node.Mesh.TriangleCount()
	}
	for _, o := range s.Objects {
		n += o.Model.TriangleCount()
	}
	return n
}

// Node returns the first static node with the given name.
func (s *Scene) Node(name string) (Node, bool) {
	for _, n := range s.Static {
		if n.Name == name {
			return n, true
		}
	}
	return Node{}, false
}

// Clearance reports, per placement, how far the bottom of its drum sits
// above the terrain. Negative values mean the drum is buried.
func (s *Scene) Clearance() map[string]float64 {
	out := make(map[string]float64, len(s.Placements))
	for _, pl := range s.Placements {
		x, y, z := pl.Position[0], pl.Position[1], pl.Position[2]
		bottom := y - model.DrumDrop - model.DrumRadius
		out[pl.ID] = s.Heightmap.Clearance(x, bottom, z)
	}
	return out
}
