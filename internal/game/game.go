// Package game implements the showcase loop: one goroutine polls input,
// advances the frame and draws it.
package game

import (
	"context"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/dunehall/internal/config"
	"github.com/Faultbox/dunehall/internal/engine/debug"
	"github.com/Faultbox/dunehall/internal/engine/input"
	"github.com/Faultbox/dunehall/internal/engine/renderer"
	"github.com/Faultbox/dunehall/internal/engine/scene"
	"github.com/Faultbox/dunehall/internal/engine/window"
	"github.com/Faultbox/dunehall/internal/logger"
	"github.com/Faultbox/dunehall/internal/store"
)

// Title is the window title.
const Title = "Dunehall"

// Game is the main showcase instance.
type Game struct {
	config   *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	frame    *Frame
	shots    *debug.ScreenshotCapture
	log      *zap.Logger
}

// New creates the window and GL context, uploads the scene and wires the
// frame.
func New(cfg *config.Config, s *scene.Scene, st *store.Store) (*Game, error) {
	log := logger.Named("game")
	log.Info("initializing showcase",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Int("placements", len(s.Placements)),
	)

	g := &Game{
		config: cfg,
		shots:  debug.NewScreenshotCapture(cfg.Game.ScreenshotDir, "dunehall", cfg.Game.ScreenshotFormat),
		log:    log,
	}

	// Create window (this also creates OpenGL context)
	var err error
	g.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		MSAA:       cfg.Graphics.MSAA,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	width, height := g.window.GetSize()
	dw, dh := g.window.DrawableSize()
	g.renderer, err = renderer.New(renderer.Config{
		Width:      dw,
		Height:     dh,
		MSAA:       cfg.Graphics.MSAA,
		HeightGLSL: s.Field.GLSL(),
	})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	if err := g.renderer.Prepare(s); err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to upload scene: %w", err)
	}

	g.input = input.New()
	g.frame = NewFrame(s, cfg, st)
	g.frame.Resize(width, height)

	log.Info("showcase initialized")
	return g, nil
}

// Frame returns the frame state driven by the loop.
func (g *Game) Frame() *Frame { return g.frame }

// Run starts the main loop. It returns when the window closes or ctx is
// done.
func (g *Game) Run(ctx context.Context) error {
	g.running = true

	// Timing
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := lastTime

	var budget time.Duration
	if g.config.Graphics.FPSLimit > 0 {
		budget = time.Second / time.Duration(g.config.Graphics.FPSLimit)
	}

	g.log.Info("starting showcase loop")

	for g.running {
		if ctx.Err() != nil {
			break
		}

		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		// 1. Poll input
		if g.input.Update() {
			g.running = false
			break
		}
		capture := false
		for _, ev := range g.input.Events() {
			switch {
			case ev.Type == input.EventWindowResize:
				g.renderer.Resize(g.window.DrawableSize())
			case ev.Type == input.EventKeyDown && ev.Sym == sdl.K_F12:
				capture = true
			}
		}

		// 2. Advance
		r := g.frame.Step(now, dt, g.input.Events())
		g.window.SetPointing(g.frame.Hovered() != "")

		// 3. Render
		if err := g.render(r); err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		if capture {
			g.screenshot()
		}

		// 4. Present (swap buffers)
		g.window.SwapBuffers()

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			g.log.Debug("fps", zap.Int("count", frameCount), zap.Float64("dt_ms", dt*1000))
			if g.config.Game.ShowFPS {
				g.window.SetTitle(fmt.Sprintf("%s - %d fps", Title, frameCount))
			}
			frameCount = 0
			fpsTimer = time.Now()
		}

		if budget > 0 {
			if spare := budget - time.Since(now); spare > 0 {
				time.Sleep(spare)
			}
		}
	}

	return nil
}

// Close cleans up showcase resources.
func (g *Game) Close() {
	g.log.Info("closing showcase")

	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}

// render draws the static scene, then every object at its current pose.
func (g *Game) render(r Render) error {
	g.renderer.Begin(renderer.Frame{
		View:     r.View,
		Proj:     r.Proj,
		Uniforms: renderer.FrameUniforms(r.Uniforms, r.Spot),
	})
	defer g.renderer.End()

	s := g.frame.Scene
	if err := g.renderer.DrawNodes(s.Static); err != nil {
		return err
	}
	for _, o := range s.Objects {
		pose := g.frame.Poses.Get(o.Placement.ID)
		if pose == nil {
			continue
		}
		if err := g.renderer.DrawModel(o.Model, pose.Transform()); err != nil {
			return err
		}
	}
	return nil
}

// screenshot saves the frame just drawn. Failures are logged, not fatal.
func (g *Game) screenshot() {
	pixels, w, h := g.renderer.ReadPixels()
	path, err := g.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		g.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", path))
}
