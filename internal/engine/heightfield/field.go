package heightfield

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/dunehall/pkg/math"
)

// normalStep is the finite-difference spacing used by Normal, in world units.
const normalStep = 0.1

// Field is an immutable dune height field. The zero value is not usable;
// construct with New.
type Field struct {
	p Params
}

// New creates a field for the given parameters.
func New(p Params) *Field {
	return &Field{p: p.sanitized()}
}

// Default creates a field with DefaultParams.
func Default() *Field {
	return New(DefaultParams())
}

// Params returns the (sanitized) parameters in use.
func (f *Field) Params() Params {
	return f.p
}

// Blend returns the dune amplitude factor at distance dist from the origin:
// 0 inside the platform, smoothstep up to 1 at BlendRadius.
func (f *Field) Blend(dist float64) float64 {
	p := f.p
	if dist < p.PlatformRadius {
		return 0
	}
	return math.Smoothstep(p.PlatformRadius, p.BlendRadius, dist)
}

// Elevation returns the terrain height at world (x, z). It is total over
// finite inputs and has no state.
func (f *Field) Elevation(x, z float64) float64 {
	p := f.p

	blend := f.Blend(gomath.Hypot(x, z))
	if blend <= p.BlendEpsilon {
		return p.PlatformHeight
	}

	wx := x + gomath.Sin(z*p.WarpFreq)*p.WarpAmp
	wz := z + gomath.Sin(x*p.WarpFreq*1.5)*p.WarpAmp

	y := (1 - gomath.Abs(gomath.Sin(wx*p.PrimaryFreq))) * p.PrimaryAmp

	ridge := 1 - gomath.Abs(gomath.Sin(wz*p.SecondaryFreq+wx*p.SecondarySkew*p.SecondaryFreq))
	y += ipow(ridge, p.SecondaryPower) * p.SecondaryAmp

	y += gomath.Sin(x*p.RippleFreq) * gomath.Cos(z*p.RippleFreq*1.2) * p.RippleAmp

	y += gomath.Sin(x*p.RollFreqX)*p.RollAmp + gomath.Cos(z*p.RollFreqZ)*p.RollAmp

	return y*blend - p.BaseOffset
}

// Normal returns the unit surface normal at (x, z) by central differencing.
func (f *Field) Normal(x, z float64) mgl64.Vec3 {
	hl := f.Elevation(x-normalStep, z)
	hr := f.Elevation(x+normalStep, z)
	hd := f.Elevation(x, z-normalStep)
	hu := f.Elevation(x, z+normalStep)

	n := mgl64.Vec3{hl - hr, 2 * normalStep, hd - hu}
	l := n.Len()
	if l == 0 || gomath.IsNaN(l) || gomath.IsInf(l, 0) {
		return mgl64.Vec3{0, 1, 0}
	}
	return n.Mul(1 / l)
}

// Range returns conservative bounds for Elevation over the whole plane.
func (f *Field) Range() (lo, hi float64) {
	p := f.p
	amp := gomath.Abs(p.PrimaryAmp) + gomath.Abs(p.SecondaryAmp) + gomath.Abs(p.RippleAmp) + 2*gomath.Abs(p.RollAmp)
	lo = gomath.Min(p.PlatformHeight, -amp-p.BaseOffset)
	hi = gomath.Max(p.PlatformHeight, amp-p.BaseOffset)
	return lo, hi
}

func ipow(x float64, n int) float64 {
	r := 1.0
	for range n {
		r *= x
	}
	return r
}
