package shading

import "github.com/go-gl/mathgl/mgl64"

// Uniforms are the per-frame values every program receives.
type Uniforms struct {
	Time      float64
	SunDir    mgl64.Vec3 // toward the sun, unit
	CameraPos mgl64.Vec3
	Fog       Fog
}

// SunDirection converts a sun position into a unit direction, falling back
// to straight up for the origin.
func SunDirection(pos mgl64.Vec3) mgl64.Vec3 {
	return unit(pos, up)
}

// At builds the fragment input for a surface point seen from the camera.
func (u Uniforms) At(worldPos, normal mgl64.Vec3, uv mgl64.Vec2) Input {
	toCam := u.CameraPos.Sub(worldPos)
	return Input{
		WorldPos: worldPos,
		Normal:   normal,
		ViewDir:  unit(toCam, up),
		LightDir: u.SunDir,
		UV:       uv,
		Time:     u.Time,
		Distance: toCam.Len(),
	}
}

// Shade evaluates m at a surface point and applies fog, the way the GPU
// pipeline composes the two.
func (u Uniforms) Shade(m Model, worldPos, normal mgl64.Vec3, uv mgl64.Vec2) Output {
	in := u.At(worldPos, normal, uv)
	out := m.Evaluate(in)
	if !out.Discard {
		out.Color = u.Fog.Apply(out.Color, in.Distance)
	}
	return out
}
