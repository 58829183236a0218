// Package heightfield evaluates the procedural dune elevation law.
//
// The same Params table drives the CPU evaluation used to build the terrain
// mesh and the GLSL function emitted for shader-side displacement, so the
// static mesh and any GPU-displaced surface agree.
package heightfield

// Params holds every constant of the dune law. Lengths are world units.
type Params struct {
	// Sanctuary disc: exactly flat inside PlatformRadius, dunes fade in
	// until BlendRadius.
	PlatformRadius float64 `yaml:"platform_radius" toml:"platform_radius"`
	BlendRadius    float64 `yaml:"blend_radius" toml:"blend_radius"`
	BlendEpsilon   float64 `yaml:"blend_epsilon" toml:"blend_epsilon"`
	PlatformHeight float64 `yaml:"platform_height" toml:"platform_height"`

	// Wind flow domain warp.
	WarpFreq float64 `yaml:"warp_freq" toml:"warp_freq"`
	WarpAmp  float64 `yaml:"warp_amp" toml:"warp_amp"`

	// Primary barchan ridges.
	PrimaryFreq float64 `yaml:"primary_freq" toml:"primary_freq"`
	PrimaryAmp  float64 `yaml:"primary_amp" toml:"primary_amp"`

	// Secondary transverse ridges, sharpened by SecondaryPower.
	SecondaryFreq  float64 `yaml:"secondary_freq" toml:"secondary_freq"`
	SecondarySkew  float64 `yaml:"secondary_skew" toml:"secondary_skew"`
	SecondaryAmp   float64 `yaml:"secondary_amp" toml:"secondary_amp"`
	SecondaryPower int     `yaml:"secondary_power" toml:"secondary_power"`

	// Micro ripple roughness.
	RippleFreq float64 `yaml:"ripple_freq" toml:"ripple_freq"`
	RippleAmp  float64 `yaml:"ripple_amp" toml:"ripple_amp"`

	// Global rolling undulation.
	RollFreqX float64 `yaml:"roll_freq_x" toml:"roll_freq_x"`
	RollFreqZ float64 `yaml:"roll_freq_z" toml:"roll_freq_z"`
	RollAmp   float64 `yaml:"roll_amp" toml:"roll_amp"`

	// Subtracted after blending so dune bases meet the platform.
	BaseOffset float64 `yaml:"base_offset" toml:"base_offset"`
}

// DefaultParams returns the tuned desert constants.
func DefaultParams() Params {
	return Params{
		PlatformRadius: 45,
		BlendRadius:    120,
		BlendEpsilon:   0.001,
		PlatformHeight: -0.5,

		WarpFreq: 0.008,
		WarpAmp:  15,

		PrimaryFreq: 0.012,
		PrimaryAmp:  15,

		SecondaryFreq:  0.03,
		SecondarySkew:  0.2,
		SecondaryAmp:   5,
		SecondaryPower: 3,

		RippleFreq: 0.1,
		RippleAmp:  0.5,

		RollFreqX: 0.003,
		RollFreqZ: 0.005,
		RollAmp:   10,

		BaseOffset: 0.5,
	}
}

// sanitized returns a copy safe to evaluate: radii ordered and the ridge
// power at least 1.
func (p Params) sanitized() Params {
	if p.PlatformRadius < 0 {
		p.PlatformRadius = 0
	}
	if p.BlendRadius <= p.PlatformRadius {
		p.BlendRadius = p.PlatformRadius + 1
	}
	if p.SecondaryPower < 1 {
		p.SecondaryPower = 1
	}
	return p
}
