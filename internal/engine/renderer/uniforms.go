package renderer

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/dunehall/internal/engine/lighting"
	"github.com/Faultbox/dunehall/internal/engine/shading"
)

// noHoles is below any chip value the stone vertex stage produces.
const noHoles = -2.0

// Value is one uniform: a float, or a vec3 when Vec is set.
type Value struct {
	F   float32
	V   [3]float32
	Vec bool
}

func f(v float64) Value { return Value{F: float32(v)} }

func v3(v mgl64.Vec3) Value {
	return Value{V: [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}, Vec: true}
}

// Values maps uniform names to values.
type Values map[string]Value

// MaterialUniforms returns the per-draw uniforms of a shading model.
func MaterialUniforms(m shading.Model) Values {
	switch s := m.(type) {
	case *shading.Sand:
		p := s.P
		return Values{
			"uBleached":         v3(p.Bleached),
			"uOchre":            v3(p.Ochre),
			"uShadowed":         v3(p.Shadowed),
			"uWindFrom":         v3(p.WindFrom),
			"uWindNoiseScale":   f(p.WindNoiseScale),
			"uRippleScale":      f(p.RippleScale),
			"uRippleDrift":      f(p.RippleDrift),
			"uGrainScale":       f(p.GrainScale),
			"uSparkleThreshold": f(p.SparkleThreshold),
			"uLodNear":          f(p.LODNear),
			"uLodFar":           f(p.LODFar),
		}
	case *shading.Stone:
		p := s.P
		hole := noHoles
		if p.Holes {
			hole = p.HoleThreshold
		}
		return Values{
			"uBase":           v3(p.Base),
			"uDecay":          v3(p.Decay),
			"uSand":           v3(p.Sand),
			"uWindFrom":       v3(p.WindFrom),
			"uErosion":        f(p.Erosion),
			"uHoleThreshold":  f(hole),
			"uChipScale":      f(p.ChipScale),
			"uWobbleScale":    f(p.WobbleScale),
			"uFluteFrequency": f(p.FluteFrequency),
			"uFluteDepth":     f(p.FluteDepth),
		}
	case *shading.Mountain:
		return Values{
			"uSandstone": v3(s.P.Sandstone),
			"uGold":      v3(s.P.Gold),
			"uCrevice":   v3(s.P.Crevice),
		}
	case *shading.Dial:
		return Values{
			"uColor":     v3(s.P.Color),
			"uHighlight": v3(s.P.Highlight),
			"uGridSize":  f(s.P.GridSize),
		}
	case *shading.Metal:
		return Values{
			"uColor":     v3(s.P.Color),
			"uRoughness": f(s.P.Roughness),
		}
	}
	return Values{}
}

// FrameUniforms returns the uniforms shared by every draw in a frame. A nil
// spot leaves the spotlight dark.
func FrameUniforms(u shading.Uniforms, spot *lighting.Spotlight) Values {
	vals := Values{
		"uTime":       f(u.Time),
		"uSunDir":     v3(u.SunDir),
		"uCameraPos":  v3(u.CameraPos),
		"uFogColor":   v3(u.Fog.Color),
		"uFogDensity": f(u.Fog.Density),

		"uSpotIntensity": f(0),
	}
	if spot != nil {
		vals["uSpotPos"] = v3(spot.Position)
		vals["uSpotTarget"] = v3(spot.Target)
		vals["uSpotAngle"] = f(spot.P.Angle)
		vals["uSpotPenumbra"] = f(spot.P.Penumbra)
		vals["uSpotDistance"] = f(spot.P.Distance)
		vals["uSpotIntensity"] = f(spot.Intensity())
	}
	return vals
}

// mat32 converts a column-major matrix for upload.
func mat32(m mgl64.Mat4) [16]float32 {
	var out [16]float32
	for i, v := range m {
		out[i] = float32(v)
	}
	return out
}
