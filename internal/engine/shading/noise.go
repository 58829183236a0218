package shading

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"

	dmath "github.com/Faultbox/dunehall/pkg/math"
)

// hashFunc maps a lattice point to [0, 1).
type hashFunc func(p mgl64.Vec2) float64

// sinHash builds the classic fract(sin(dot(p, k)) * 43758.5453) hash.
func sinHash(kx, ky float64) hashFunc {
	return func(p mgl64.Vec2) float64 {
		return dmath.Fract(gomath.Sin(p[0]*kx+p[1]*ky) * 43758.5453)
	}
}

var (
	hashA = sinHash(12.9898, 78.233)
	hashB = sinHash(127.1, 311.7)
	hashC = sinHash(12.71, 311.7)
)

// valueNoise2 is smooth lattice noise in [0, 1].
func valueNoise2(p mgl64.Vec2, h hashFunc) float64 {
	ix, iy := gomath.Floor(p[0]), gomath.Floor(p[1])
	fx, fy := p[0]-ix, p[1]-iy
	ux := fx * fx * (3 - 2*fx)
	uy := fy * fy * (3 - 2*fy)

	a := h(mgl64.Vec2{ix, iy})
	b := h(mgl64.Vec2{ix + 1, iy})
	c := h(mgl64.Vec2{ix, iy + 1})
	d := h(mgl64.Vec2{ix + 1, iy + 1})
	return dmath.Mix(dmath.Mix(a, b, ux), dmath.Mix(c, d, ux), uy)
}

// valueNoise3 stacks 2D lattices along z with a fixed offset per slice.
func valueNoise3(p mgl64.Vec3) float64 {
	ix, iy, iz := gomath.Floor(p[0]), gomath.Floor(p[1]), gomath.Floor(p[2])
	fx, fy, fz := p[0]-ix, p[1]-iy, p[2]-iz
	fx = fx * fx * (3 - 2*fx)
	fy = fy * fy * (3 - 2*fy)
	fz = fz * fz * (3 - 2*fz)

	slice := func(z float64) float64 {
		o := z * 17
		return dmath.Mix(
			dmath.Mix(hashA(mgl64.Vec2{ix + o, iy + o}), hashA(mgl64.Vec2{ix + 1 + o, iy + o}), fx),
			dmath.Mix(hashA(mgl64.Vec2{ix + o, iy + 1 + o}), hashA(mgl64.Vec2{ix + 1 + o, iy + 1 + o}), fx),
			fy)
	}
	return dmath.Mix(slice(iz), slice(iz+1), fz)
}
