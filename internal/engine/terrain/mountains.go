package terrain

import (
	gomath "math"

	"github.com/aquilax/go-perlin"

	"github.com/Faultbox/dunehall/internal/engine/mesh"
)

// MountainParams controls the distant sandstone band behind the dunes.
type MountainParams struct {
	Seed      int64   `yaml:"seed" toml:"seed"`
	Scale     float64 `yaml:"scale" toml:"scale"`         // world to noise space
	Exponent  float64 `yaml:"exponent" toml:"exponent"`   // valleys flatter, peaks sharper
	Amplitude float64 `yaml:"amplitude" toml:"amplitude"` // final vertical scale
}

// DefaultMountainParams returns the band used by the showcase scene.
func DefaultMountainParams() MountainParams {
	return MountainParams{
		Seed:      7,
		Scale:     0.02,
		Exponent:  1.5,
		Amplitude: 12,
	}
}

// Mountains is a perlin-driven Sampler producing mesa-like ridges.
type Mountains struct {
	p     MountainParams
	noise *perlin.Perlin
}

// NewMountains builds the sampler. The same seed always yields the same
// range.
func NewMountains(p MountainParams) *Mountains {
	return &Mountains{
		p:     p,
		noise: perlin.NewPerlin(2, 2, 3, p.Seed),
	}
}

// unit maps perlin output to [0, 1].
func (m *Mountains) unit(x, z float64) float64 {
	v := m.noise.Noise2D(x, z)*0.5 + 0.5
	return gomath.Max(0, gomath.Min(1, v))
}

// Elevation implements Sampler. The result is never negative.
func (m *Mountains) Elevation(x, z float64) float64 {
	px, pz := x*m.p.Scale, z*m.p.Scale

	e := m.unit(px, pz) * 8
	e += m.unit(px*2.5, pz*2.5) * 4
	ridge := gomath.Abs(m.unit(px*4, pz*4))
	e += (1 - ridge) * 3

	return gomath.Pow(gomath.Max(e, 0), m.p.Exponent) * m.p.Amplitude
}

// BuildMountains lays a width x depth strip centered on origin and displaced
// upward from origin's height by the mountain law.
func BuildMountains(width, depth float64, resolution int, origin [3]float64, p MountainParams) *mesh.Mesh {
	src := NewMountains(p)
	ext := Extent{CenterX: origin[0], CenterZ: origin[2], Width: width, Depth: depth}

	return BuildGrid("mountains", ext, resolution, samplerFunc(func(x, z float64) float64 {
		return origin[1] + src.Elevation(x, z)
	}))
}

type samplerFunc func(x, z float64) float64

func (f samplerFunc) Elevation(x, z float64) float64 { return f(x, z) }
