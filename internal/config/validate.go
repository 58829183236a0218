package config

import (
	"errors"
	"fmt"

	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/dunehall/internal/engine/shading"
)

// Validate reports every setting that cannot drive a session.
func (c *Config) Validate() error {
	var errs []error
	bad := func(field, format string, args ...any) {
		errs = append(errs, fmt.Errorf("%s: "+format, append([]any{field}, args...)...))
	}

	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		bad("graphics", "window size %dx%d", c.Graphics.Width, c.Graphics.Height)
	}
	if c.Graphics.MSAA < 0 {
		bad("graphics.msaa", "negative sample count %d", c.Graphics.MSAA)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		bad("camera", "clip range near=%g far=%g", c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.SmoothTime < 0 {
		bad("camera.smooth_time", "negative %g", c.Camera.SmoothTime)
	}
	if c.Scene.Layout.TerrainResolution < 2 {
		bad("scene.layout.terrain_resolution", "need at least 2, got %d", c.Scene.Layout.TerrainResolution)
	}
	if err := c.Shading.Validate(); err != nil {
		errs = append(errs, err)
	}
	switch c.Game.ScreenshotFormat {
	case "png", "webp", "tga":
	default:
		bad("game.screenshot_format", "unknown format %q", c.Game.ScreenshotFormat)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		bad("logging.level", "%v", err)
	}
	return errors.Join(errs...)
}

// Validate checks the settings that reload while running.
func (s ShadingConfig) Validate() error {
	var errs []error
	if _, err := shading.Hex(s.FogColor); err != nil {
		errs = append(errs, fmt.Errorf("shading.fog_color: %w", err))
	}
	if s.FogDensity < 0 {
		errs = append(errs, fmt.Errorf("shading.fog_density: negative %g", s.FogDensity))
	}
	if s.Sand.LODFar < s.Sand.LODNear {
		errs = append(errs, fmt.Errorf("shading.sand: lod_far %g below lod_near %g", s.Sand.LODFar, s.Sand.LODNear))
	}
	return errors.Join(errs...)
}
