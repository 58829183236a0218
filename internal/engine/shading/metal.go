package shading

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"
)

// MetalParams describes a polished metal part.
type MetalParams struct {
	Color     mgl64.Vec3
	Roughness float64
}

// GoldParams is the champagne gold of the case and hands.
func GoldParams() MetalParams {
	return MetalParams{Color: MustHex("#e5c885"), Roughness: 0.2}
}

// SteelParams is the brushed steel of the bezel screws.
func SteelParams() MetalParams {
	return MetalParams{Color: MustHex("#c0c0c0"), Roughness: 0.3}
}

// Metal is a tinted Blinn-Phong reflector: the specular lobe takes the base
// color and narrows as roughness drops.
type Metal struct {
	P MetalParams
}

// NewMetal returns a metal model.
func NewMetal(p MetalParams) *Metal {
	return &Metal{P: p}
}

// Kind implements Model.
func (m *Metal) Kind() Kind { return KindMetal }

// Evaluate implements Model.
func (m *Metal) Evaluate(in Input) Output {
	n := unit(in.Normal, up)
	l := unit(in.LightDir, up)
	v := unit(in.ViewDir, up)

	rough := gomath.Max(m.P.Roughness, 0.02)
	shininess := 2/(rough*rough) - 2
	diff := gomath.Max(n.Dot(l), 0)
	half := unit(l.Add(v), n)
	spec := gomath.Pow(gomath.Max(n.Dot(half), 0), shininess)

	ambient := m.P.Color.Mul(0.25)
	color := ambient.Add(m.P.Color.Mul(diff * 0.35)).Add(m.P.Color.Mul(spec))
	return Output{Color: color, Normal: n, Roughness: m.P.Roughness}
}
