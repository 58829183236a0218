package heightfield

import (
	gomath "math"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElevationDeterministic(t *testing.T) {
	f := Default()
	points := [][2]float64{{130, -40}, {-300, 250}, {0.5, 499}, {77.7, 88.8}}

	first := make([]float64, len(points))
	for i, p := range points {
		first[i] = f.Elevation(p[0], p[1])
	}

	// Interleave unrelated calls in a different order.
	for i := len(points) - 1; i >= 0; i-- {
		_ = f.Elevation(points[i][1], points[i][0])
		assert.Equal(t, first[i], f.Elevation(points[i][0], points[i][1]))
	}

	other := Default()
	for i, p := range points {
		assert.Equal(t, first[i], other.Elevation(p[0], p[1]))
	}
}

func TestPlatformIsExactlyFlat(t *testing.T) {
	f := Default()
	p := f.Params()
	rng := rand.New(rand.NewSource(7))
	for range 2000 {
		r := rng.Float64() * p.PlatformRadius * 0.999999
		a := rng.Float64() * 2 * gomath.Pi
		x, z := r*gomath.Cos(a), r*gomath.Sin(a)
		require.Equal(t, p.PlatformHeight, f.Elevation(x, z), "(%v, %v)", x, z)
	}
}

func TestBlendContinuity(t *testing.T) {
	f := Default()
	p := f.Params()
	const step = 0.02

	for _, angle := range []float64{0, 0.7, 2.1, 3.9, 5.5} {
		dx, dz := gomath.Cos(angle), gomath.Sin(angle)
		prev := f.Elevation(dx*(p.PlatformRadius-2), dz*(p.PlatformRadius-2))
		for d := p.PlatformRadius - 2 + step; d < p.BlendRadius+2; d += step {
			h := f.Elevation(dx*d, dz*d)
			require.LessOrEqual(t, gomath.Abs(h-prev), 0.1, "jump at dist %.3f angle %.1f", d, angle)
			prev = h
		}
	}
}

func TestBlendRamp(t *testing.T) {
	f := Default()
	p := f.Params()
	assert.Equal(t, 0.0, f.Blend(p.PlatformRadius-0.01))
	assert.Equal(t, 1.0, f.Blend(p.BlendRadius))
	assert.InDelta(t, 0.5, f.Blend((p.PlatformRadius+p.BlendRadius)/2), 1e-12)
}

func TestElevationFiniteEverywhere(t *testing.T) {
	f := Default()
	lo, hi := f.Range()
	inputs := []float64{-1e9, -500, -123.456, 0, 1e-300, 499.999, 500, 1e12}
	for _, x := range inputs {
		for _, z := range inputs {
			h := f.Elevation(x, z)
			require.False(t, gomath.IsNaN(h) || gomath.IsInf(h, 0), "(%v, %v) -> %v", x, z, h)
			require.GreaterOrEqual(t, h, lo)
			require.LessOrEqual(t, h, hi)
		}
	}
}

func TestNormalUnitLength(t *testing.T) {
	f := Default()
	for x := -500.0; x <= 500; x += 37.5 {
		for z := -500.0; z <= 500; z += 41.25 {
			n := f.Normal(x, z)
			assert.InDelta(t, 1.0, n.Len(), 1e-9)
			assert.Greater(t, n.Y(), 0.0, "normal must face up at (%v, %v)", x, z)
		}
	}
	assert.InDelta(t, 1.0, f.Normal(0, 0).Y(), 1e-12)
}

func TestSanitizedParams(t *testing.T) {
	p := DefaultParams()
	p.BlendRadius = 10
	p.SecondaryPower = 0
	f := New(p)
	got := f.Params()
	assert.Greater(t, got.BlendRadius, got.PlatformRadius)
	assert.Equal(t, 1, got.SecondaryPower)
}

func TestGLSLCarriesConstants(t *testing.T) {
	src := Default().GLSL()
	assert.Contains(t, src, "float duneHeight(vec2 p)")
	assert.Contains(t, src, "smoothstep(45.0, 120.0, dist)")
	assert.Contains(t, src, "return -0.5;")
	assert.Contains(t, src, "(ridge * ridge * ridge)")
	assert.Contains(t, src, "* 0.012")
	assert.False(t, strings.Contains(src, "{{"), "template not fully expanded")
}

func TestGLSLFloat(t *testing.T) {
	assert.Equal(t, "15.0", glslFloat(15))
	assert.Equal(t, "-0.5", glslFloat(-0.5))
	assert.Equal(t, "0.003", glslFloat(0.003))
	assert.Equal(t, "x", glslPow("x", 1))
	assert.Equal(t, "(x * x)", glslPow("x", 2))
}
