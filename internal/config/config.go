// Package config handles showcase configuration loading and management.
package config

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/dunehall/internal/engine/camera"
	"github.com/Faultbox/dunehall/internal/engine/heightfield"
	"github.com/Faultbox/dunehall/internal/engine/lighting"
	"github.com/Faultbox/dunehall/internal/engine/scene"
	"github.com/Faultbox/dunehall/internal/engine/shading"
	"github.com/Faultbox/dunehall/internal/export"
	"github.com/Faultbox/dunehall/internal/game/entity"
	"github.com/Faultbox/dunehall/internal/game/interaction"
	"github.com/Faultbox/dunehall/internal/game/states"
	dmath "github.com/Faultbox/dunehall/pkg/math"
)

// Config holds all showcase settings.
type Config struct {
	Graphics    GraphicsConfig    `yaml:"graphics"`
	Scene       SceneConfig       `yaml:"scene"`
	Camera      CameraConfig      `yaml:"camera"`
	Terrain     TerrainConfig     `yaml:"terrain"`
	Shading     ShadingConfig     `yaml:"shading"`
	Interaction InteractionConfig `yaml:"interaction"`
	Game        GameConfig        `yaml:"game"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
	MSAA       int  `yaml:"msaa"`
}

// SceneConfig holds the room layout. None of it changes during a session.
type SceneConfig struct {
	// Placements is an optional .yaml/.yml/.toml placement table; empty
	// uses the built-in room.
	Placements string              `yaml:"placements"`
	Layout     scene.Params        `yaml:"layout"`
	Motion     entity.Params       `yaml:"motion"`
	Spotlight  lighting.SpotParams `yaml:"spotlight"`
}

// CameraConfig holds the framing and easing of the showcase camera.
type CameraConfig struct {
	RoomPosition    [3]float64 `yaml:"room_position"`
	RoomTarget      [3]float64 `yaml:"room_target"`
	RoomFOV         float64    `yaml:"room_fov"`
	InspectHeight   float64    `yaml:"inspect_height"`
	ProductDistance float64    `yaml:"product_distance"`
	ProductFOV      float64    `yaml:"product_fov"`
	MacroDistance   float64    `yaml:"macro_distance"`
	MacroFOV        float64    `yaml:"macro_fov"`
	SmoothTime      float64    `yaml:"smooth_time"`
	Threshold       float64    `yaml:"threshold"`
	Near            float64    `yaml:"near"`
	Far             float64    `yaml:"far"`
}

// Framing converts the settings into camera framing rules.
func (c CameraConfig) Framing() camera.Framing {
	f := camera.DefaultFraming()
	f.RoomPosition = mgl64.Vec3(c.RoomPosition)
	f.RoomTarget = mgl64.Vec3(c.RoomTarget)
	f.RoomFOV = c.RoomFOV
	f.InspectHeight = c.InspectHeight
	f.ProductDistance = c.ProductDistance
	f.ProductFOV = c.ProductFOV
	f.MacroDistance = c.MacroDistance
	f.MacroFOV = c.MacroFOV
	return f
}

// TerrainConfig holds the dune law and the elevation scan.
type TerrainConfig struct {
	Dunes heightfield.Params `yaml:"dunes"`
	Scan  export.ScanParams  `yaml:"scan"`
}

// ShadingConfig holds the per-frame look of the scene. It is the only part
// of the config that reloads while running.
type ShadingConfig struct {
	SunPosition [3]float64 `yaml:"sun_position"`
	FogColor    string     `yaml:"fog_color"`
	FogDensity  float64    `yaml:"fog_density"`
	// TimeScale multiplies the clock fed to animated shaders.
	TimeScale float64 `yaml:"time_scale"`

	Sand SandShading `yaml:"sand"`

	ColumnErosion float64 `yaml:"column_erosion"`
	PlinthErosion float64 `yaml:"plinth_erosion"`
}

// SandShading holds the tunable sand parameters.
type SandShading struct {
	RippleScale      float64 `yaml:"ripple_scale"`
	RippleDrift      float64 `yaml:"ripple_drift"`
	GrainScale       float64 `yaml:"grain_scale"`
	SparkleThreshold float64 `yaml:"sparkle_threshold"`
	LODNear          float64 `yaml:"lod_near"`
	LODFar           float64 `yaml:"lod_far"`
}

// Fog returns the fog settings, falling back to the default color when
// FogColor does not parse.
func (s ShadingConfig) Fog() shading.Fog {
	fog := shading.DefaultFog()
	if c, err := shading.Hex(s.FogColor); err == nil {
		fog.Color = c
	}
	fog.Density = s.FogDensity
	return fog
}

// InteractionConfig holds pointer and scroll handling.
type InteractionConfig struct {
	Pointer interaction.Config `yaml:"pointer"`
	View    states.Config      `yaml:"view"`
	// StartFocus opens the session in PRODUCT on this placement. An
	// unknown id falls back to the first placement.
	StartFocus string `yaml:"start_focus"`
}

// GameConfig holds runtime toggles.
type GameConfig struct {
	ShowFPS bool `yaml:"show_fps"`
	// HotReload watches the config file and applies shading changes live.
	HotReload bool `yaml:"hot_reload"`

	ScreenshotDir    string `yaml:"screenshot_dir"`
	ScreenshotFormat string `yaml:"screenshot_format"` // png, webp or tga
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	sand := shading.DefaultSandParams()
	fog := shading.DefaultFog()
	framing := camera.DefaultFraming()

	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
			MSAA:       4,
		},
		Scene: SceneConfig{
			Layout:    scene.DefaultParams(),
			Motion:    entity.DefaultParams(),
			Spotlight: lighting.DefaultSpotParams(),
		},
		Camera: CameraConfig{
			RoomPosition:    framing.RoomPosition,
			RoomTarget:      framing.RoomTarget,
			RoomFOV:         framing.RoomFOV,
			InspectHeight:   framing.InspectHeight,
			ProductDistance: framing.ProductDistance,
			ProductFOV:      framing.ProductFOV,
			MacroDistance:   framing.MacroDistance,
			MacroFOV:        framing.MacroFOV,
			SmoothTime:      0.8,
			Threshold:       0.01,
			Near:            0.1,
			Far:             2000,
		},
		Terrain: TerrainConfig{
			Dunes: heightfield.DefaultParams(),
			Scan:  export.DefaultScanParams(),
		},
		Shading: ShadingConfig{
			SunPosition: lighting.DefaultSun().Position,
			FogColor:    "#eac899",
			FogDensity:  fog.Density,
			TimeScale:   1,
			Sand: SandShading{
				RippleScale:      sand.RippleScale,
				RippleDrift:      sand.RippleDrift,
				GrainScale:       sand.GrainScale,
				SparkleThreshold: sand.SparkleThreshold,
				LODNear:          sand.LODNear,
				LODFar:           sand.LODFar,
			},
			ColumnErosion: shading.ColumnStoneParams().Erosion,
			PlinthErosion: shading.PlinthStoneParams().Erosion,
		},
		Interaction: InteractionConfig{
			Pointer: interaction.DefaultConfig(),
			View:    states.DefaultConfig(),
		},
		Game: GameConfig{
			ScreenshotDir:    "screenshots",
			ScreenshotFormat: "png",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Apply copies the tunable values onto the live materials. Nil materials
// are skipped.
func (s ShadingConfig) Apply(m scene.Materials) {
	if m.Sand != nil {
		m.Sand.P.RippleScale = s.Sand.RippleScale
		m.Sand.P.RippleDrift = s.Sand.RippleDrift
		m.Sand.P.GrainScale = s.Sand.GrainScale
		m.Sand.P.SparkleThreshold = s.Sand.SparkleThreshold
		m.Sand.P.LODNear = s.Sand.LODNear
		m.Sand.P.LODFar = s.Sand.LODFar
	}
	if m.Column != nil {
		m.Column.P.Erosion = dmath.Clamp(s.ColumnErosion, 0, 1)
	}
	if m.Plinth != nil {
		m.Plinth.P.Erosion = dmath.Clamp(s.PlinthErosion, 0, 1)
	}
}

// Uniforms builds the per-frame shader inputs from the shading settings.
func (s ShadingConfig) Uniforms(elapsed float64, cameraPos mgl64.Vec3) shading.Uniforms {
	return shading.Uniforms{
		Time:      elapsed * s.TimeScale,
		SunDir:    shading.SunDirection(mgl64.Vec3(s.SunPosition)),
		CameraPos: cameraPos,
		Fog:       s.Fog(),
	}
}
