package shading

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"

	dmath "github.com/Faultbox/dunehall/pkg/math"
)

// SandParams tunes the dune surface.
type SandParams struct {
	Bleached mgl64.Vec3 // flat, windward
	Ochre    mgl64.Vec3 // mid tone
	Shadowed mgl64.Vec3 // slip faces, leeward

	RippleScale    float64
	RippleDrift    float64 // world units per second along the ripple axis
	WindNoiseScale float64
	GrainScale     float64

	// Grain values at or above this glint.
	SparkleThreshold float64

	// WindFrom points toward where the wind comes from. Faces turned into
	// it are windward.
	WindFrom mgl64.Vec3

	// Perturbation fades out between these camera distances.
	LODNear float64
	LODFar  float64

	Roughness float64
}

// DefaultSandParams returns the showcase dune look.
func DefaultSandParams() SandParams {
	return SandParams{
		Bleached:         mgl64.Vec3{0.82, 0.72, 0.55},
		Ochre:            mgl64.Vec3{0.76, 0.60, 0.40},
		Shadowed:         mgl64.Vec3{0.65, 0.50, 0.35},
		RippleScale:      6,
		RippleDrift:      0.15,
		WindNoiseScale:   0.2,
		GrainScale:       120,
		SparkleThreshold: 0.98,
		WindFrom:         mgl64.Vec3{-1, 0, -1}.Normalize(),
		LODNear:          30,
		LODFar:           160,
		Roughness:        0.9,
	}
}

// Sand is the dune shading model.
type Sand struct {
	P SandParams
}

// NewSand returns a sand model.
func NewSand(p SandParams) *Sand {
	return &Sand{P: p}
}

// Kind implements Model.
func (s *Sand) Kind() Kind { return KindSand }

// Detail returns the level-of-detail weight for perturbation at dist:
// 1 up close, 0 beyond LODFar.
func (s *Sand) Detail(dist float64) float64 {
	return 1 - dmath.Smoothstep(s.P.LODNear, s.P.LODFar, dist)
}

// Evaluate implements Model.
func (s *Sand) Evaluate(in Input) Output {
	p := s.P
	xz := mgl64.Vec2{in.WorldPos.X(), in.WorldPos.Z()}
	n0 := unit(in.Normal, up)
	detail := s.Detail(in.Distance)

	windNoise := valueNoise2(xz.Mul(p.WindNoiseScale), hashB)
	ru := xz.Mul(p.RippleScale)
	rippleVal := gomath.Sin(ru.X() + ru.Y()*0.2 + windNoise*2 + in.Time*p.RippleDrift)
	ripple := dmath.Smoothstep(-0.3, 0.3, rippleVal)

	grain := hashB(xz.Mul(p.GrainScale))
	sparkle := dmath.Step(p.SparkleThreshold, grain) * detail

	perturb := mgl64.Vec3{ripple * 0.2, 0, ripple * 0.05}.Add(splat(grain * 0.05)).Mul(detail)
	n := unit(n0.Add(perturb), n0)

	slope := 1 - n.Y()
	albedo := mix3(p.Bleached, p.Ochre, windNoise*0.5+0.5)
	albedo = mix3(albedo, p.Shadowed, dmath.Smoothstep(0.1, 0.5, slope))

	facing := n.Dot(unit(p.WindFrom, mgl64.Vec3{-1, 0, -1}))
	windward := dmath.Smoothstep(0, 0.5, facing)
	leeward := dmath.Smoothstep(0, 0.5, -facing)
	albedo = mix3(albedo, p.Bleached, windward*0.3)
	albedo = mix3(albedo, p.Shadowed, leeward*0.25)

	roughness := dmath.Clamp(p.Roughness-sparkle*0.4-windward*0.1+leeward*0.05, 0.05, 1)

	l := unit(in.LightDir, up)
	v := unit(in.ViewDir, up)
	ndl := n.Dot(l)
	terminator := dmath.Smoothstep(-0.1, 0.1, ndl)

	ambient := mgl64.Vec3{0.1, 0.1, 0.25}.Mul((1 - terminator) * 0.5).Add(p.Ochre.Mul(0.2))
	diffuse := albedo.Mul(terminator * gomath.Max(ndl, 0.35))

	h := unit(l.Add(v), n)
	glint := gomath.Pow(gomath.Max(n.Dot(h), 0), 20) * sparkle * terminator * 2

	rim := gomath.Pow(1-gomath.Max(v.Dot(n), 0), 4)
	rimColor := p.Bleached.Mul(rim * terminator * 0.5)

	return Output{
		Color:     ambient.Add(diffuse).Add(splat(glint)).Add(rimColor),
		Normal:    n,
		Roughness: roughness,
	}
}
