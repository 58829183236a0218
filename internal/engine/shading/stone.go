package shading

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/ojrac/opensimplex-go"

	dmath "github.com/Faultbox/dunehall/pkg/math"
)

// StoneParams tunes the weathered travertine model.
type StoneParams struct {
	Base  mgl64.Vec3
	Decay mgl64.Vec3 // crevice patina
	Sand  mgl64.Vec3 // drift settling on ledges

	// Erosion blends pristine (0) to ancient (1).
	Erosion float64

	ChipScale   float64
	WobbleScale float64

	FluteFrequency float64 // grooves around the circumference, 0 disables
	FluteDepth     float64

	// Chip noise below HoleThreshold discards the fragment when Holes is set.
	Holes         bool
	HoleThreshold float64

	WindFrom mgl64.Vec3
	Seed     int64
}

// ColumnStoneParams is the heavily weathered drum look.
func ColumnStoneParams() StoneParams {
	return StoneParams{
		Base:           MustHex("#dccca3"),
		Decay:          MustHex("#5d5b55"),
		Sand:           MustHex("#e6a65c"),
		Erosion:        1.0,
		ChipScale:      15,
		WobbleScale:    2,
		FluteFrequency: 20,
		FluteDepth:     0.02,
		Holes:          true,
		HoleThreshold:  -0.62,
		WindFrom:       mgl64.Vec3{0.8, 0, 0.6},
		Seed:           1,
	}
}

// PlinthStoneParams is the restored central plinth: light erosion, smooth
// shaft, no holes.
func PlinthStoneParams() StoneParams {
	p := ColumnStoneParams()
	p.Erosion = 0.15
	p.FluteFrequency = 0
	p.Holes = false
	return p
}

// Stone is the erosion/decay shading model.
type Stone struct {
	P     StoneParams
	noise opensimplex.Noise
}

// NewStone seeds the gradient noise from p.Seed.
func NewStone(p StoneParams) *Stone {
	return &Stone{P: p, noise: opensimplex.New(p.Seed)}
}

// Kind implements Model.
func (s *Stone) Kind() Kind { return KindStone }

// ChipNoise is the raw 3D gradient noise that carves chips, in about [-1, 1].
func (s *Stone) ChipNoise(p mgl64.Vec3) float64 {
	q := p.Mul(s.P.ChipScale)
	return s.noise.Eval3(q[0], q[1], q[2])
}

// chip is 1 on intact surface and 0 inside a chip.
func chip(n float64) float64 {
	return dmath.Smoothstep(-0.3, -0.2, n)
}

// deepChip is 1 in the deepest part of a chip.
func deepChip(n float64) float64 {
	return 1 - dmath.Smoothstep(-0.35, -0.15, n)
}

// fluteMask fades grooves out near the rims.
func fluteMask(v float64) float64 {
	return dmath.Smoothstep(0, 0.1, v) * dmath.Smoothstep(1, 0.9, v)
}

// sideMask is 1 on walls and 0 on caps.
func sideMask(n mgl64.Vec3) float64 {
	return dmath.Smoothstep(0.9, 0.5, gomath.Abs(n.Y()))
}

// Displace moves a surface point along its normal by the flute, chip and
// wobble terms. The GPU vertex stage applies the same offsets.
func (s *Stone) Displace(pos, normal mgl64.Vec3, uv mgl64.Vec2) mgl64.Vec3 {
	n := unit(normal, up)
	p := s.P

	var d float64
	if p.FluteFrequency > 0 {
		flute := -gomath.Cos(uv.X()*p.FluteFrequency*2*gomath.Pi)*0.5 + 0.5
		d -= flute * p.FluteDepth * sideMask(n) * fluteMask(uv.Y())
	}
	d -= (1 - chip(s.ChipNoise(pos))) * 0.05 * p.Erosion
	w := pos.Mul(p.WobbleScale)
	d += s.noise.Eval3(w[0], w[1], w[2]) * 0.02 * p.Erosion

	return pos.Add(n.Mul(d))
}

// gradient estimates the chip noise gradient by forward differences.
func (s *Stone) gradient(p mgl64.Vec3, c float64) mgl64.Vec3 {
	const eps = 0.002
	return mgl64.Vec3{
		s.ChipNoise(p.Add(mgl64.Vec3{eps, 0, 0})) - c,
		s.ChipNoise(p.Add(mgl64.Vec3{0, eps, 0})) - c,
		s.ChipNoise(p.Add(mgl64.Vec3{0, 0, eps})) - c,
	}.Mul(1 / (eps * s.P.ChipScale))
}

// Evaluate implements Model.
func (s *Stone) Evaluate(in Input) Output {
	p := s.P
	pos := in.WorldPos
	n0 := unit(in.Normal, up)

	cn := s.ChipNoise(pos)
	if p.Holes && cn < p.HoleThreshold {
		return Output{Normal: n0, Roughness: 1, Discard: true}
	}

	// Chip walls tilt the normal against the noise gradient; flutes tilt it
	// around the axis.
	g := s.gradient(pos, cn)
	g = g.Sub(n0.Mul(g.Dot(n0)))
	relief := (1 - chip(cn)) * 0.08 * p.Erosion
	n := n0.Sub(g.Mul(relief))

	if p.FluteFrequency > 0 {
		t, _ := tangentBasis(n0)
		slope := gomath.Sin(in.UV.X()*p.FluteFrequency*2*gomath.Pi) * p.FluteDepth * p.FluteFrequency * gomath.Pi
		n = n.Add(t.Mul(slope * sideMask(n0) * fluteMask(in.UV.Y())))
	}
	n = unit(n, n0)

	fine := valueNoise3(pos.Mul(30))
	macro := valueNoise3(pos.Mul(6))
	deep := deepChip(cn)

	albedo := mix3(p.Base, p.Base.Mul(0.9), macro)
	dirt := deep*0.8 + (1-fine)*0.2
	albedo = mix3(albedo, p.Decay, dirt*p.Erosion)

	weather := gomath.Max(n.Dot(unit(p.WindFrom, mgl64.Vec3{1, 0, 0})), 0)
	albedo = mix3(albedo, p.Decay, weather*0.15*p.Erosion)

	upFactor := gomath.Max(n.Y(), 0)
	ledgeSand := dmath.Smoothstep(0.5, 0.9, upFactor) * dmath.Step(0.1, deep)
	baseSand := dmath.Smoothstep(0.2, 0, in.UV.Y())
	albedo = mix3(albedo, p.Sand, gomath.Max(ledgeSand, baseSand)*0.9)

	roughness := dmath.Clamp(0.95-(1-p.Erosion)*0.25, 0.05, 1)

	l := unit(in.LightDir, up)
	v := unit(in.ViewDir, up)
	diff := gomath.Max(n.Dot(l), 0)
	spec := gomath.Pow(gomath.Max(v.Dot(reflect(l.Mul(-1), n)), 0), 32) * (1 - roughness)

	ambient := albedo.Mul(0.4)
	diffuse := mgl64.Vec3{albedo[0], albedo[1] * 0.95, albedo[2] * 0.85}.Mul(diff)

	return Output{
		Color:     ambient.Add(diffuse).Add(splat(spec)),
		Normal:    n,
		Roughness: roughness,
	}
}
