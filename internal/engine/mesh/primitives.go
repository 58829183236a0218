package mesh

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"
)

// Cylinder builds a capped prism with the given number of sides, centered on
// the origin along Y. Side faces keep their own vertices so low side counts
// read as faceted stone drums.
func Cylinder(name string, radius, height float64, sides int) *Mesh {
	if sides < 3 {
		sides = 3
	}
	m := &Mesh{Name: name}
	half := height / 2

	for i := range sides {
		a0 := float64(i) / float64(sides) * 2 * gomath.Pi
		a1 := float64(i+1) / float64(sides) * 2 * gomath.Pi
		p0 := [2]float64{gomath.Cos(a0) * radius, gomath.Sin(a0) * radius}
		p1 := [2]float64{gomath.Cos(a1) * radius, gomath.Sin(a1) * radius}
		u0 := float32(i) / float32(sides)
		u1 := float32(i+1) / float32(sides)

		base := uint32(len(m.Vertices))
		m.Vertices = append(m.Vertices,
			vtx(p0[0], -half, p0[1], u0, 0),
			vtx(p1[0], -half, p1[1], u1, 0),
			vtx(p1[0], half, p1[1], u1, 1),
			vtx(p0[0], half, p0[1], u0, 1),
		)
		m.Indices = append(m.Indices, base, base+2, base+1, base, base+3, base+2)
	}

	capFan(m, radius, half, sides, true)
	capFan(m, radius, -half, sides, false)

	RecomputeNormals(m)
	m.UpdateBounds()
	return m
}

func capFan(m *Mesh, radius, y float64, sides int, up bool) {
	center := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, vtx(0, y, 0, 0.5, 0.5))
	for i := range sides {
		a := float64(i) / float64(sides) * 2 * gomath.Pi
		c, s := gomath.Cos(a), gomath.Sin(a)
		m.Vertices = append(m.Vertices, vtx(c*radius, y, s*radius, float32(c*0.5+0.5), float32(s*0.5+0.5)))
	}
	for i := range uint32(sides) {
		a := center + 1 + i
		b := center + 1 + (i+1)%uint32(sides)
		if up {
			m.Indices = append(m.Indices, center, b, a)
		} else {
			m.Indices = append(m.Indices, center, a, b)
		}
	}
}

// ProfilePoint is one (radius, height) sample of a lathe profile.
type ProfilePoint struct {
	R, Y float64
}

// Lathe revolves a bottom-to-top profile around Y. UV.x wraps around the
// axis, UV.y runs along the profile.
func Lathe(name string, profile []ProfilePoint, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	m := &Mesh{Name: name}
	if len(profile) < 2 {
		return m
	}

	rows := len(profile)
	for r, p := range profile {
		v := float32(r) / float32(rows-1)
		for s := 0; s <= segments; s++ {
			a := float64(s) / float64(segments) * 2 * gomath.Pi
			m.Vertices = append(m.Vertices,
				vtx(gomath.Cos(a)*p.R, p.Y, gomath.Sin(a)*p.R, float32(s)/float32(segments), v))
		}
	}

	stride := uint32(segments + 1)
	for r := range uint32(rows - 1) {
		for s := range uint32(segments) {
			cur := r*stride + s
			next := cur + stride
			m.Indices = append(m.Indices, cur, next, cur+1, cur+1, next, next+1)
		}
	}

	RecomputeNormals(m)
	SmoothNormals(m.Vertices)
	m.UpdateBounds()
	return m
}

// Ring builds a flat annulus in the XZ plane subdivided radially and
// angularly so a vertex shader has enough vertices to displace.
func Ring(name string, inner, outer float64, radial, angular int) *Mesh {
	if radial < 1 {
		radial = 1
	}
	if angular < 3 {
		angular = 3
	}
	m := &Mesh{Name: name}

	for r := 0; r <= radial; r++ {
		rad := inner + (outer-inner)*float64(r)/float64(radial)
		for a := 0; a <= angular; a++ {
			ang := float64(a) / float64(angular) * 2 * gomath.Pi
			x, z := gomath.Cos(ang)*rad, gomath.Sin(ang)*rad
			m.Vertices = append(m.Vertices, Vertex{
				Position: [3]float32{float32(x), 0, float32(z)},
				Normal:   [3]float32{0, 1, 0},
				UV:       [2]float32{float32(x), float32(z)},
			})
		}
	}

	stride := uint32(angular + 1)
	for r := range uint32(radial) {
		for a := range uint32(angular) {
			cur := r*stride + a
			next := cur + stride
			m.Indices = append(m.Indices, cur, cur+1, next, cur+1, next+1, next)
		}
	}

	m.UpdateBounds()
	return m
}

// Disc builds a flat +Y facing disc with UVs spanning [0,1] across its
// diameter.
func Disc(name string, radius float64, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	m := &Mesh{Name: name}
	m.Vertices = append(m.Vertices, Vertex{
		Normal: [3]float32{0, 1, 0},
		UV:     [2]float32{0.5, 0.5},
	})
	for i := 0; i <= segments; i++ {
		ang := float64(i) / float64(segments) * 2 * gomath.Pi
		c, s := gomath.Cos(ang), gomath.Sin(ang)
		m.Vertices = append(m.Vertices, Vertex{
			Position: [3]float32{float32(c * radius), 0, float32(s * radius)},
			Normal:   [3]float32{0, 1, 0},
			UV:       [2]float32{float32(c*0.5 + 0.5), float32(s*0.5 + 0.5)},
		})
	}
	for i := uint32(1); i <= uint32(segments); i++ {
		m.Indices = append(m.Indices, 0, i+1, i)
	}
	m.UpdateBounds()
	return m
}

// Box builds an axis-aligned box centered on the origin.
func Box(name string, sx, sy, sz float64) *Mesh {
	m := &Mesh{Name: name}
	hx, hy, hz := sx/2, sy/2, sz/2

	faces := [6][4][3]float64{
		{{hx, -hy, -hz}, {hx, hy, -hz}, {hx, hy, hz}, {hx, -hy, hz}},
		{{-hx, -hy, hz}, {-hx, hy, hz}, {-hx, hy, -hz}, {-hx, -hy, -hz}},
		{{-hx, hy, -hz}, {-hx, hy, hz}, {hx, hy, hz}, {hx, hy, -hz}},
		{{-hx, -hy, hz}, {-hx, -hy, -hz}, {hx, -hy, -hz}, {hx, -hy, hz}},
		{{hx, -hy, hz}, {hx, hy, hz}, {-hx, hy, hz}, {-hx, -hy, hz}},
		{{-hx, -hy, -hz}, {-hx, hy, -hz}, {hx, hy, -hz}, {hx, -hy, -hz}},
	}
	uvs := [4][2]float32{{0, 0}, {0, 1}, {1, 1}, {1, 0}}

	for _, f := range faces {
		base := uint32(len(m.Vertices))
		for i, p := range f {
			m.Vertices = append(m.Vertices, vtx(p[0], p[1], p[2], uvs[i][0], uvs[i][1]))
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}

	RecomputeNormals(m)
	m.UpdateBounds()
	return m
}

// Transform returns a copy of m with positions moved by xf and normals
// rotated by its inverse transpose.
func Transform(m *Mesh, xf mgl64.Mat4) *Mesh {
	out := &Mesh{
		Name:     m.Name,
		Vertices: make([]Vertex, len(m.Vertices)),
		Indices:  append([]uint32(nil), m.Indices...),
	}
	nm := xf.Mat3().Inv().Transpose()

	for i, v := range m.Vertices {
		p := xf.Mul4x1(mgl64.Vec4{float64(v.Position[0]), float64(v.Position[1]), float64(v.Position[2]), 1})
		n := nm.Mul3x1(mgl64.Vec3{float64(v.Normal[0]), float64(v.Normal[1]), float64(v.Normal[2])})
		out.Vertices[i] = Vertex{
			Position: [3]float32{float32(p[0]), float32(p[1]), float32(p[2])},
			Normal:   normalize([3]float64{n[0], n[1], n[2]}),
			UV:       v.UV,
		}
	}
	out.UpdateBounds()
	return out
}

// Merge concatenates meshes into one, rebasing indices.
func Merge(name string, parts ...*Mesh) *Mesh {
	out := &Mesh{Name: name}
	for _, p := range parts {
		base := uint32(len(out.Vertices))
		out.Vertices = append(out.Vertices, p.Vertices...)
		for _, idx := range p.Indices {
			out.Indices = append(out.Indices, base+idx)
		}
	}
	out.UpdateBounds()
	return out
}

func vtx(x, y, z float64, u, v float32) Vertex {
	return Vertex{
		Position: [3]float32{float32(x), float32(y), float32(z)},
		UV:       [2]float32{u, v},
	}
}
