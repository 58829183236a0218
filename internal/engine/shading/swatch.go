package shading

import "github.com/go-gl/mathgl/mgl64"

// Swatch is a flat stand-in for a procedural model, for consumers that
// cannot run the shader, such as static scene exports.
type Swatch struct {
	Color     mgl64.Vec3
	Roughness float64
	Metallic  float64
}

// SwatchOf summarizes m as a single base color.
func SwatchOf(m Model) Swatch {
	switch v := m.(type) {
	case *Sand:
		return Swatch{Color: v.P.Ochre, Roughness: v.P.Roughness}
	case *Stone:
		return Swatch{Color: mix3(v.P.Base, v.P.Decay, v.P.Erosion*0.3), Roughness: 0.9}
	case *Mountain:
		return Swatch{Color: v.P.Sandstone, Roughness: 1}
	case *Dial:
		return Swatch{Color: v.P.Color, Roughness: 0.35}
	case *Metal:
		return Swatch{Color: v.P.Color, Roughness: v.P.Roughness, Metallic: 1}
	default:
		return Swatch{Color: splat(0.8), Roughness: 1}
	}
}
