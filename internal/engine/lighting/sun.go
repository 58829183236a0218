// Package lighting provides the scene lights: a fixed desert sun and the
// inspection spotlight that fades in over the focused object.
package lighting

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"
)

// Sun is the directional key light.
type Sun struct {
	Position  mgl64.Vec3
	Color     mgl64.Vec3
	Intensity float64
}

// DefaultSun returns the high afternoon sun.
func DefaultSun() Sun {
	return Sun{
		Position:  mgl64.Vec3{-50, 50, -80},
		Color:     mgl64.Vec3{1, 245.0 / 255, 204.0 / 255},
		Intensity: 4,
	}
}

// Direction returns the unit vector toward the sun. A sun at the origin
// shines straight down.
func (s Sun) Direction() mgl64.Vec3 {
	l := s.Position.Len()
	if l < 1e-9 || gomath.IsNaN(l) || gomath.IsInf(l, 0) {
		return mgl64.Vec3{0, 1, 0}
	}
	return s.Position.Mul(1 / l)
}

// SunDirection converts azimuth/elevation angles in degrees to a light
// direction vector pointing towards the sun. Azimuth turns around Y from
// +Z, elevation rises from the horizon.
func SunDirection(azimuth, elevation float64) mgl64.Vec3 {
	az := mgl64.DegToRad(azimuth)
	el := mgl64.DegToRad(elevation)
	return mgl64.Vec3{
		gomath.Cos(el) * gomath.Sin(az),
		gomath.Sin(el),
		gomath.Cos(el) * gomath.Cos(az),
	}
}
