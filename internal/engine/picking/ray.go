// Package picking casts pointer rays into the scene and finds the object
// under the cursor.
package picking

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3 // Normalized direction
}

// At returns the point t units along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates, viewportW/H are viewport dimensions.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float64, invViewProj mgl64.Mat4) Ray {
	if viewportW <= 0 || viewportH <= 0 {
		return Ray{Direction: mgl64.Vec3{0, 0, -1}}
	}

	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH // Flip Y

	nearWorld := unproject(invViewProj, mgl64.Vec4{ndcX, ndcY, -1, 1})
	farWorld := unproject(invViewProj, mgl64.Vec4{ndcX, ndcY, 1, 1})

	dir := farWorld.Sub(nearWorld)
	if l := dir.Len(); l > 0 && !gomath.IsNaN(l) && !gomath.IsInf(l, 0) {
		dir = dir.Mul(1 / l)
	} else {
		dir = mgl64.Vec3{0, 0, -1}
	}
	return Ray{Origin: nearWorld, Direction: dir}
}

func unproject(inv mgl64.Mat4, ndc mgl64.Vec4) mgl64.Vec3 {
	p := inv.Mul4x1(ndc)
	if p.W() != 0 {
		return p.Vec3().Mul(1 / p.W())
	}
	return p.Vec3()
}

// IntersectSphere returns the nearest non-negative distance at which the ray
// meets a sphere. A ray starting inside hits at its exit point.
func (r Ray) IntersectSphere(center mgl64.Vec3, radius float64) (t float64, hit bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	s := gomath.Sqrt(disc)
	t0, t1 := -b-s, -b+s
	if t1 < 0 {
		return 0, false
	}
	if t0 < 0 {
		return t1, true
	}
	return t0, true
}

// IntersectPlaneY intersects a ray with a horizontal plane at the given Y level.
// Returns the intersection point (X, Z) and whether the intersection is valid.
func (r Ray) IntersectPlaneY(planeY float64) (x, z float64, ok bool) {
	if gomath.Abs(r.Direction.Y()) < 0.001 {
		return 0, 0, false // Ray parallel to plane
	}

	t := (planeY - r.Origin.Y()) / r.Direction.Y()
	if t < 0 {
		return 0, 0, false // Intersection behind ray origin
	}

	p := r.At(t)
	return p.X(), p.Z(), true
}

// Target is a pickable sphere.
type Target struct {
	ID     string
	Center mgl64.Vec3
	Radius float64
}

// Pick returns the id of the nearest target the ray hits, or "" when it
// misses everything.
func Pick(r Ray, targets []Target) (id string, t float64) {
	best := gomath.Inf(1)
	for _, tg := range targets {
		if d, ok := r.IntersectSphere(tg.Center, tg.Radius); ok && d < best {
			best, id = d, tg.ID
		}
	}
	if id == "" {
		return "", 0
	}
	return id, best
}
