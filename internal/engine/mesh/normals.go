package mesh

import gomath "math"

// RecomputeNormals rebuilds vertex normals from the final positions by
// accumulating unnormalized face normals (so larger faces weigh more) and
// normalizing. Vertices touched by no face, or whose faces cancel, get +Y.
func RecomputeNormals(m *Mesh) {
	acc := make([][3]float64, len(m.Vertices))

	for i := 0; i+2 < len(m.Indices); i += 3 {
		ia, ib, ic := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		a := widen(m.Vertices[ia].Position)
		b := widen(m.Vertices[ib].Position)
		c := widen(m.Vertices[ic].Position)

		n := cross(sub(b, a), sub(c, a))
		for _, idx := range [3]uint32{ia, ib, ic} {
			acc[idx][0] += n[0]
			acc[idx][1] += n[1]
			acc[idx][2] += n[2]
		}
	}

	for i := range m.Vertices {
		m.Vertices[i].Normal = normalize(acc[i])
	}
}

// SmoothNormals averages normals of vertices that share a position, which
// hides the seam where a primitive duplicates vertices (cylinder wraps,
// lathe seams).
func SmoothNormals(vertices []Vertex) {
	const epsilon = 0.001

	posMap := make(map[[3]int32][]int)
	for i := range vertices {
		key := [3]int32{
			int32(gomath.Round(float64(vertices[i].Position[0]) / epsilon)),
			int32(gomath.Round(float64(vertices[i].Position[1]) / epsilon)),
			int32(gomath.Round(float64(vertices[i].Position[2]) / epsilon)),
		}
		posMap[key] = append(posMap[key], i)
	}

	for _, indices := range posMap {
		if len(indices) < 2 {
			continue
		}
		var sum [3]float64
		for _, idx := range indices {
			n := widen(vertices[idx].Normal)
			sum[0] += n[0]
			sum[1] += n[1]
			sum[2] += n[2]
		}
		avg := normalize(sum)
		for _, idx := range indices {
			vertices[idx].Normal = avg
		}
	}
}

func widen(v [3]float32) [3]float64 {
	return [3]float64{float64(v[0]), float64(v[1]), float64(v[2])}
}

func sub(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// normalize returns a unit float32 vector, or +Y for degenerate input.
func normalize(v [3]float64) [3]float32 {
	l := gomath.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if l < 1e-12 || gomath.IsNaN(l) || gomath.IsInf(l, 0) {
		return [3]float32{0, 1, 0}
	}
	return [3]float32{float32(v[0] / l), float32(v[1] / l), float32(v[2] / l)}
}
