// Package interaction turns pointer input into selection and drag rotation.
package interaction

import (
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/dunehall/internal/game/entity"
	"github.com/Faultbox/dunehall/internal/game/states"
	"github.com/Faultbox/dunehall/internal/logger"
)

// Config tunes pointer handling.
type Config struct {
	// Sensitivity is radians of rotation per pixel of drag.
	Sensitivity float64 `yaml:"sensitivity"`
	// ClickSlop is how far, in pixels, a press may travel and still count
	// as a click on release.
	ClickSlop float64 `yaml:"click_slop"`
}

// DefaultConfig returns the showcase tuning.
func DefaultConfig() Config {
	return Config{Sensitivity: 0.015, ClickSlop: 4}
}

type press struct {
	id     string
	x, y   float64
	active bool
}

// Controller routes pointer events. A press on the focused object starts a
// drag that keeps capturing moves until release, wherever the cursor goes.
// A press and release on any other object, without travelling, selects it.
type Controller struct {
	cfg     Config
	machine *states.Machine
	poses   *entity.Poses
	log     *zap.Logger

	press    press
	dragging bool
	lastX    float64
	lastY    float64
}

// New creates a controller driving machine and poses.
func New(machine *states.Machine, poses *entity.Poses, cfg Config) *Controller {
	return &Controller{
		cfg:     cfg,
		machine: machine,
		poses:   poses,
		log:     logger.Sampled("input", 5, 100),
	}
}

// Dragging reports whether a drag is in progress.
func (c *Controller) Dragging() bool { return c.dragging }

func (c *Controller) focusedID() string {
	snap := c.machine.Snapshot()
	if snap.View != states.Product {
		return ""
	}
	return snap.FocusedID
}

// PointerDown handles a press at (x, y) over object id ("" for empty
// space). It reports whether a drag began.
func (c *Controller) PointerDown(id string, x, y float64) bool {
	c.press = press{id: id, x: x, y: y, active: true}
	if id == "" || id != c.focusedID() {
		return false
	}
	c.dragging = true
	c.lastX, c.lastY = x, y
	c.log.Debug("drag start", zap.String("id", id))
	return true
}

// PointerMove handles cursor motion. While dragging, the pixel delta since
// the last event rotates the focused object.
func (c *Controller) PointerMove(x, y float64) {
	if !c.dragging {
		return
	}
	dx, dy := x-c.lastX, y-c.lastY
	c.lastX, c.lastY = x, y
	c.log.Debug("drag", zap.Float64("dx", dx), zap.Float64("dy", dy))
	if !c.poses.AddDrag(dx*c.cfg.Sensitivity, dy*c.cfg.Sensitivity) {
		c.dragging = false
	}
}

// PointerUp ends a drag, or turns a short press on an unfocused object
// into a click.
func (c *Controller) PointerUp(x, y float64) {
	p := c.press
	c.press = press{}
	if c.dragging {
		c.dragging = false
		c.log.Debug("drag end")
		return
	}
	if !p.active || p.id == "" {
		return
	}
	if gomath.Hypot(x-p.x, y-p.y) <= c.cfg.ClickSlop {
		c.Click(p.id)
	}
}

// Click selects an unfocused object. Clicking the focused object does
// nothing; that gesture belongs to dragging.
func (c *Controller) Click(id string) {
	if id == "" || id == c.focusedID() {
		return
	}
	c.machine.SelectObject(id)
}

// HandleTransition cancels any drag when focus moves.
func (c *Controller) HandleTransition(tr states.Transition) {
	if tr.FocusChanged() {
		c.dragging = false
	}
}
