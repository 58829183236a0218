// Package shading holds the procedural surface models of the scene. Each
// variant is a pure function of the fragment inputs and its own parameter
// set; the GPU programs in shaders/ evaluate the same formulas per fragment.
package shading

import (
	"fmt"
	gomath "math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Kind tags a shading variant. Meshes pick their variant at scene build.
type Kind int

const (
	KindSand Kind = iota
	KindStone
	KindMountain
	KindDial
	KindMetal
)

func (k Kind) String() string {
	switch k {
	case KindSand:
		return "sand"
	case KindStone:
		return "stone"
	case KindMountain:
		return "mountain"
	case KindDial:
		return "dial"
	case KindMetal:
		return "metal"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Input is everything a fragment evaluation sees.
type Input struct {
	WorldPos mgl64.Vec3
	Normal   mgl64.Vec3 // geometric normal, any length
	ViewDir  mgl64.Vec3 // surface toward camera
	LightDir mgl64.Vec3 // surface toward sun
	UV       mgl64.Vec2
	Time     float64
	Distance float64 // camera distance, drives level-of-detail fades
}

// Output is the shaded fragment. Color is lit but unfogged so the renderer
// can blend its own fog over it.
type Output struct {
	Color     mgl64.Vec3
	Normal    mgl64.Vec3 // perturbed, unit length
	Roughness float64
	Discard   bool
}

// Model is one shading variant.
type Model interface {
	Kind() Kind
	Evaluate(in Input) Output
}

var up = mgl64.Vec3{0, 1, 0}

// unit normalizes v, returning fallback (itself normalized, or +Y) when v
// is degenerate.
func unit(v, fallback mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l > 1e-12 && !gomath.IsNaN(l) && !gomath.IsInf(l, 0) {
		return v.Mul(1 / l)
	}
	fl := fallback.Len()
	if fl > 1e-12 && !gomath.IsNaN(fl) && !gomath.IsInf(fl, 0) {
		return fallback.Mul(1 / fl)
	}
	return up
}

func mix3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

func splat(v float64) mgl64.Vec3 {
	return mgl64.Vec3{v, v, v}
}

// reflect mirrors the incident vector i about n, as GLSL reflect.
func reflect(i, n mgl64.Vec3) mgl64.Vec3 {
	return i.Sub(n.Mul(2 * n.Dot(i)))
}

// tangentBasis returns two unit vectors perpendicular to n.
func tangentBasis(n mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	ref := up
	if gomath.Abs(n.Y()) > 0.99 {
		ref = mgl64.Vec3{1, 0, 0}
	}
	t := unit(ref.Cross(n), mgl64.Vec3{1, 0, 0})
	return t, n.Cross(t)
}

// Hex parses "#rrggbb" into linear 0..1 components.
func Hex(s string) (mgl64.Vec3, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return mgl64.Vec3{}, fmt.Errorf("color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return mgl64.Vec3{}, fmt.Errorf("color %q: %w", s, err)
	}
	return mgl64.Vec3{
		float64(v>>16&0xff) / 255,
		float64(v>>8&0xff) / 255,
		float64(v&0xff) / 255,
	}, nil
}

// MustHex is Hex for compile-time palette constants.
func MustHex(s string) mgl64.Vec3 {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
