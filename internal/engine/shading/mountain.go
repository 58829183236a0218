package shading

import (
	gomath "math"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl64"

	dmath "github.com/Faultbox/dunehall/pkg/math"
)

// MountainParams tunes the distant sandstone strata.
type MountainParams struct {
	Sandstone mgl64.Vec3
	Gold      mgl64.Vec3
	Crevice   mgl64.Vec3
	Seed      int64
}

// DefaultMountainParams returns the red-sandstone palette.
func DefaultMountainParams() MountainParams {
	return MountainParams{
		Sandstone: MustHex("#8c4b31"),
		Gold:      MustHex("#e6c288"),
		Crevice:   MustHex("#5e2c14"),
		Seed:      11,
	}
}

// Mountain shades sedimentary bands keyed to world height.
type Mountain struct {
	P     MountainParams
	noise *perlin.Perlin
}

// NewMountain seeds the strata noise.
func NewMountain(p MountainParams) *Mountain {
	return &Mountain{P: p, noise: perlin.NewPerlin(2, 2, 3, p.Seed)}
}

// Kind implements Model.
func (m *Mountain) Kind() Kind { return KindMountain }

func (m *Mountain) strata(xz mgl64.Vec2) float64 {
	v := m.noise.Noise2D(xz[0], xz[1])*0.5 + 0.5
	return dmath.Saturate(v * v)
}

// Evaluate implements Model.
func (m *Mountain) Evaluate(in Input) Output {
	p := m.P
	pos := in.WorldPos
	xz := mgl64.Vec2{pos.X(), pos.Z()}

	sn := m.strata(xz.Mul(0.2))
	layer := gomath.Sin((pos.Y() + sn*5) * 0.5)
	rock := mix3(p.Sandstone, p.Gold, dmath.Smoothstep(-0.5, 0.5, layer))

	band := dmath.Smoothstep(0.9, 0.95, gomath.Sin(pos.Y()*3+sn))
	rock = mix3(rock, p.Crevice, band*0.5)

	n0 := unit(in.Normal, up)
	bump := valueNoise2(xz.Mul(10), hashA)
	bump *= bump
	n := unit(n0.Add(splat(bump*0.1)), n0)

	l := unit(in.LightDir, up)
	v := unit(in.ViewDir, up)
	shadow := dmath.Smoothstep(-0.1, 0.3, gomath.Max(n.Dot(l), 0))

	ambient := p.Gold.Mul(0.3)
	rim := gomath.Pow(1-gomath.Max(v.Dot(n), 0), 3)

	return Output{
		Color:     ambient.Add(rock.Mul(shadow)).Add(p.Gold.Mul(rim * 0.5)),
		Normal:    n,
		Roughness: 1,
	}
}
