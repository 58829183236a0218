package terrain

import (
	"github.com/Faultbox/dunehall/internal/engine/mesh"
)

// BuildGrid samples field at every vertex of a regular resolution x
// resolution cell grid covering extent and returns the triangulated mesh with
// normals recomputed from the displaced positions. A resolution below 1 is
// treated as 1.
func BuildGrid(name string, extent Extent, resolution int, field Sampler) *mesh.Mesh {
	if resolution < 1 {
		resolution = 1
	}
	stride := resolution + 1

	m := &mesh.Mesh{
		Name:     name,
		Vertices: make([]mesh.Vertex, 0, stride*stride),
		Indices:  make([]uint32, 0, resolution*resolution*6),
	}

	minX, minZ := extent.MinX(), extent.MinZ()
	stepX := extent.Width / float64(resolution)
	stepZ := extent.Depth / float64(resolution)

	for iz := range stride {
		z := minZ + float64(iz)*stepZ
		for ix := range stride {
			x := minX + float64(ix)*stepX
			y := field.Elevation(x, z)
			m.Vertices = append(m.Vertices, mesh.Vertex{
				Position: [3]float32{float32(x), float32(y), float32(z)},
				UV:       [2]float32{float32(ix) / float32(resolution), float32(iz) / float32(resolution)},
			})
		}
	}

	// Z grows toward the viewer, so (a, c, b) winds counter-clockwise seen
	// from above and face normals point up.
	for iz := range resolution {
		for ix := range resolution {
			a := uint32(iz*stride + ix)
			b := a + 1
			c := a + uint32(stride)
			d := c + 1
			m.Indices = append(m.Indices, a, c, b, b, c, d)
		}
	}

	mesh.RecomputeNormals(m)
	m.UpdateBounds()
	return m
}
