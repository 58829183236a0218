package shading

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"
)

// Fog is exponential-squared distance fog applied over shaded color.
type Fog struct {
	Color   mgl64.Vec3
	Density float64
}

// DefaultFog is the warm desert haze.
func DefaultFog() Fog {
	return Fog{Color: MustHex("#eac899"), Density: 0.002}
}

// Factor returns how much of the fog color replaces the surface at dist.
func (f Fog) Factor(dist float64) float64 {
	d := f.Density * dist
	return 1 - gomath.Exp(-d*d)
}

// Apply blends c toward the fog color.
func (f Fog) Apply(c mgl64.Vec3, dist float64) mgl64.Vec3 {
	return mix3(c, f.Color, f.Factor(dist))
}
