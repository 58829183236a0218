package lighting

import (
	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl64"
)

// SpotParams shapes the inspection spotlight.
type SpotParams struct {
	Height      float64 `yaml:"height"`
	Angle       float64 `yaml:"angle"`
	Penumbra    float64 `yaml:"penumbra"`
	Distance    float64 `yaml:"distance"`
	Intensity   float64 `yaml:"intensity"`
	Frequency   float64 `yaml:"frequency"`
	DampingRate float64 `yaml:"damping"`
}

// DefaultSpotParams returns a narrow white spot ten units up.
func DefaultSpotParams() SpotParams {
	return SpotParams{
		Height:      10,
		Angle:       0.15,
		Penumbra:    1,
		Distance:    15,
		Intensity:   5,
		Frequency:   10,
		DampingRate: 1,
	}
}

// Spotlight hangs above the focused object. Its intensity rides a
// critically damped spring toward full while something is inspected and
// toward zero otherwise.
type Spotlight struct {
	P        SpotParams
	Position mgl64.Vec3
	Target   mgl64.Vec3

	intensity float64
	velocity  float64
	on        bool

	spring harmonica.Spring
	dt     float64
}

// NewSpotlight returns a dark spotlight.
func NewSpotlight(p SpotParams) *Spotlight {
	return &Spotlight{P: p}
}

// Aim points the light down at target and switches it on or off. The light
// keeps its last aim when switched off so it fades where it was.
func (s *Spotlight) Aim(target mgl64.Vec3, on bool) {
	s.on = on
	if !on {
		return
	}
	s.Target = target
	s.Position = mgl64.Vec3{target.X(), s.P.Height, target.Z()}
}

// On reports whether the light is heading to full intensity.
func (s *Spotlight) On() bool { return s.on }

// Intensity returns the current intensity.
func (s *Spotlight) Intensity() float64 { return s.intensity }

// Update advances the spring by dt seconds.
func (s *Spotlight) Update(dt float64) {
	if dt <= 0 {
		return
	}
	if dt != s.dt {
		s.spring = harmonica.NewSpring(dt, s.P.Frequency, s.P.DampingRate)
		s.dt = dt
	}
	goal := 0.0
	if s.on {
		goal = s.P.Intensity
	}
	s.intensity, s.velocity = s.spring.Update(s.intensity, s.velocity, goal)
	if s.intensity < 0 {
		s.intensity, s.velocity = 0, 0
	}
}
