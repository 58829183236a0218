package mesh

import (
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertUnitNormals(t *testing.T, m *Mesh) {
	t.Helper()
	for i, v := range m.Vertices {
		n := v.Normal
		l := gomath.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2]))
		assert.InDelta(t, 1.0, l, 1e-5, "vertex %d", i)
	}
}

func TestRecomputeNormals_FlatQuad(t *testing.T) {
	m := &Mesh{
		Vertices: []Vertex{
			{Position: [3]float32{0, 0, 0}},
			{Position: [3]float32{0, 0, 1}},
			{Position: [3]float32{1, 0, 1}},
			{Position: [3]float32{1, 0, 0}},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
	RecomputeNormals(m)
	for _, v := range m.Vertices {
		assert.InDelta(t, 1.0, float64(v.Normal[1]), 1e-6)
	}
}

func TestRecomputeNormals_IsolatedVertex(t *testing.T) {
	m := &Mesh{Vertices: []Vertex{{Position: [3]float32{3, 4, 5}}}}
	RecomputeNormals(m)
	assert.Equal(t, [3]float32{0, 1, 0}, m.Vertices[0].Normal)
}

func TestCylinder(t *testing.T) {
	m := Cylinder("drum", 1.8, 1.2, 8)
	require.NotEmpty(t, m.Indices)
	assert.Equal(t, 8*2+8*2, m.TriangleCount())
	assertUnitNormals(t, m)
	assert.InDelta(t, 0.6, float64(m.Bounds.Max[1]), 1e-6)
	assert.InDelta(t, -0.6, float64(m.Bounds.Min[1]), 1e-6)

	// Side normals point away from the axis.
	for i := 0; i < 8*4; i++ {
		v := m.Vertices[i]
		dot := v.Position[0]*v.Normal[0] + v.Position[2]*v.Normal[2]
		assert.Greater(t, dot, float32(0))
	}
}

func TestCylinder_ClampsSides(t *testing.T) {
	m := Cylinder("tri", 1, 1, 1)
	assert.Equal(t, 3*2+3*2, m.TriangleCount())
}

func TestLathe(t *testing.T) {
	m := Lathe("plinth", []ProfilePoint{{2, 0}, {2, 1}, {1.5, 1.2}}, 16)
	assert.Equal(t, 2*16*2, m.TriangleCount())
	assertUnitNormals(t, m)

	empty := Lathe("none", []ProfilePoint{{1, 0}}, 16)
	assert.Empty(t, empty.Vertices)
}

func TestRing(t *testing.T) {
	m := Ring("ring", 250, 800, 4, 32)
	assert.Equal(t, 5*33, len(m.Vertices))
	assert.Equal(t, 4*32*2, m.TriangleCount())
	assert.InDelta(t, 800, float64(m.Bounds.Max[0]), 1e-3)
}

func TestBox(t *testing.T) {
	m := Box("hand", 2, 4, 6)
	assert.Equal(t, 12, m.TriangleCount())
	assertUnitNormals(t, m)
	assert.Equal(t, [3]float32{-1, -2, -3}, m.Bounds.Min)
	assert.Equal(t, [3]float32{1, 2, 3}, m.Bounds.Max)
}

func TestTransformAndMerge(t *testing.T) {
	box := Box("b", 1, 1, 1)
	moved := Transform(box, mgl64.Translate3D(10, 0, 0).Mul4(mgl64.HomogRotate3DY(gomath.Pi/2)))
	assertUnitNormals(t, moved)
	assert.InDelta(t, 9.5, float64(moved.Bounds.Min[0]), 1e-5)

	merged := Merge("both", box, moved)
	assert.Equal(t, 24, merged.TriangleCount())
	assert.Equal(t, uint32(len(box.Vertices)), merged.Indices[len(box.Indices)])
	assert.Equal(t, box.Indices, merged.Indices[:len(box.Indices)])
}

func TestSmoothNormals(t *testing.T) {
	verts := []Vertex{
		{Position: [3]float32{0, 0, 0}, Normal: [3]float32{1, 0, 0}},
		{Position: [3]float32{0, 0, 0}, Normal: [3]float32{0, 1, 0}},
	}
	SmoothNormals(verts)
	assert.Equal(t, verts[0].Normal, verts[1].Normal)
	assert.InDelta(t, gomath.Sqrt2/2, float64(verts[0].Normal[0]), 1e-6)
}

func TestDisc(t *testing.T) {
	m := Disc("dial", 1.2, 16)
	require.Len(t, m.Vertices, 18)
	assert.Equal(t, 16, m.TriangleCount())
	assert.InDelta(t, 1.2, float64(m.Bounds.Max[0]), 1e-6)

	for _, v := range m.Vertices {
		assert.GreaterOrEqual(t, v.UV[0], float32(0))
		assert.LessOrEqual(t, v.UV[0], float32(1.0000001))
	}

	// Winding agrees with the stored +Y normals.
	RecomputeNormals(m)
	for _, v := range m.Vertices {
		assert.InDelta(t, 1.0, float64(v.Normal[1]), 1e-5)
	}
}
