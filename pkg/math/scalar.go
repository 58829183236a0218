// Package math provides the scalar easing helpers shared by CPU terrain
// evaluation, the CPU shading models, and the pose animators.
//
// Every helper mirrors the GLSL built-in of the same name so that a formula
// written against this package ports to a shader line by line.
package math

import gomath "math"

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Saturate clamps x to [0, 1].
func Saturate(x float64) float64 {
	return Clamp(x, 0, 1)
}

// Smoothstep is the GLSL cubic ease t*t*(3-2t) on the clamped ramp from
// edge0 to edge1. Reversed edges (edge0 > edge1) produce a falling ramp.
// Equal edges degrade to a step at edge0.
func Smoothstep(edge0, edge1, x float64) float64 {
	if edge0 == edge1 {
		return Step(edge0, x)
	}
	t := Saturate((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

// Step returns 0 when x < edge, else 1.
func Step(edge, x float64) float64 {
	if x < edge {
		return 0
	}
	return 1
}

// Mix linearly interpolates a to b by t.
func Mix(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Fract returns the fractional part, always in [0, 1).
func Fract(x float64) float64 {
	f := x - gomath.Floor(x)
	if f >= 1 {
		return 0
	}
	return f
}
