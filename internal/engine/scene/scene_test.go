package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/dunehall/internal/assets"
	"github.com/Faultbox/dunehall/internal/engine/heightfield"
	"github.com/Faultbox/dunehall/internal/engine/shading"
)

func smallParams() Params {
	p := DefaultParams()
	p.TerrainResolution = 32
	p.RingSegments = 16
	p.MountainResolution = 16
	p.PlinthSegments = 16
	return p
}

func TestBuild(t *testing.T) {
	table := assets.DefaultPlacements()
	s := Build(table, heightfield.Default(), smallParams())

	// terrain, ring, mountains, plinth, one drum per placement
	require.Len(t, s.Static, 3+1+len(table))
	require.Len(t, s.Objects, len(table))

	terrainNode, ok := s.Node("terrain")
	require.True(t, ok)
	assert.Equal(t, shading.KindSand, terrainNode.Shader.Kind())
	assert.Len(t, terrainNode.Mesh.Vertices, 33*33)

	ring, ok := s.Node("distant")
	require.True(t, ok)
	assert.Equal(t, shading.StageRing, ring.Stage)
	origin := ring.Transform.Mul4x1(mgl64.Vec4{0, 0, 0, 1})
	assert.InDelta(t, -5, origin.Y(), 1e-12)

	mountains, ok := s.Node("mountains")
	require.True(t, ok)
	assert.Equal(t, shading.KindMountain, mountains.Shader.Kind())
	assert.InDelta(t, -200, float64(mountains.Mesh.Bounds.Min[2]+mountains.Mesh.Bounds.Max[2])/2, 1e-3)

	_, ok = s.Node("missing")
	assert.False(t, ok)

	for i, o := range s.Objects {
		assert.Equal(t, table[i].ID, o.Placement.ID)
		assert.Len(t, o.Model.Anchors, 3)
	}
	assert.Greater(t, s.TriangleCount(), 0)
}

func TestTerrainSitsOnGround(t *testing.T) {
	field := heightfield.Default()
	s := Build(assets.DefaultPlacements(), field, smallParams())

	// The flat sanctuary lies under the placements.
	want := field.Elevation(0, 0) + smallParams().TerrainY
	assert.InDelta(t, want, s.Heightmap.Height(0, 0), 1e-9)
	assert.InDelta(t, want, s.Heightmap.Height(3, 3), 1e-9)
}

func TestClearance(t *testing.T) {
	s := Build(assets.DefaultPlacements(), heightfield.Default(), smallParams())
	c := s.Clearance()
	require.Len(t, c, 6)
	for id, v := range c {
		assert.Greater(t, v, 0.0, id)
	}
}

func TestMaterialsAreShared(t *testing.T) {
	s := Build(assets.DefaultPlacements(), heightfield.Default(), smallParams())
	m := s.Materials
	require.NotNil(t, m.Sand)
	require.NotNil(t, m.Column)
	require.NotNil(t, m.Plinth)
	require.NotNil(t, m.Mountain)

	terrain, ok := s.Node("terrain")
	require.True(t, ok)
	assert.Same(t, m.Sand, terrain.Shader)

	m.Column.P.Erosion = 0.5
	drum, ok := s.Node("drum/0")
	require.True(t, ok)
	assert.Equal(t, 0.5, drum.Shader.(*shading.Stone).P.Erosion)
	assert.NotSame(t, m.Column, m.Plinth)
}
