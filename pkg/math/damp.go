package math

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"
)

// DampFactor returns the fraction of the remaining distance removed over dt
// for a time constant tau. The remaining distance shrinks by exp(-dt/tau),
// so splitting dt into smaller steps converges to the same place.
func DampFactor(tau, dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	if tau <= 0 {
		return 1
	}
	return 1 - gomath.Exp(-dt/tau)
}

// Damp moves current toward target with exponential decay.
func Damp(current, target, tau, dt float64) float64 {
	return current + (target-current)*DampFactor(tau, dt)
}

// DampVec3 damps each component of current toward target.
func DampVec3(current, target mgl64.Vec3, tau, dt float64) mgl64.Vec3 {
	k := DampFactor(tau, dt)
	return current.Add(target.Sub(current).Mul(k))
}

// WrapAngle maps a to (-pi, pi].
func WrapAngle(a float64) float64 {
	if gomath.IsNaN(a) || gomath.IsInf(a, 0) {
		return 0
	}
	a = gomath.Mod(a+gomath.Pi, 2*gomath.Pi)
	if a <= 0 {
		a += 2 * gomath.Pi
	}
	return a - gomath.Pi
}

// DampAngle damps an angle toward target along the shorter arc. The result
// is not wrapped, so accumulated turns stay continuous.
func DampAngle(current, target, tau, dt float64) float64 {
	return current + WrapAngle(target-current)*DampFactor(tau, dt)
}
