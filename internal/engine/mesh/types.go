// Package mesh holds CPU-side triangle meshes ready for GPU upload, plus the
// procedural primitives the showcase scene is built from.
package mesh

// Vertex is the interleaved GPU vertex layout shared by every mesh.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	UV       [2]float32
}

// VertexStride is the size of Vertex in bytes.
const VertexStride = (3 + 3 + 2) * 4

// Mesh is an indexed triangle list.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// EmptyBounds returns inverted bounds that any point will expand.
func EmptyBounds() Bounds {
	return Bounds{
		Min: [3]float32{1e30, 1e30, 1e30},
		Max: [3]float32{-1e30, -1e30, -1e30},
	}
}

// Extend grows b to contain p.
func (b *Bounds) Extend(p [3]float32) {
	for i := range 3 {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// UpdateBounds recomputes Bounds from the vertex positions.
func (m *Mesh) UpdateBounds() {
	b := EmptyBounds()
	for i := range m.Vertices {
		b.Extend(m.Vertices[i].Position)
	}
	m.Bounds = b
}
