package game

import (
	gomath "math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/dunehall/internal/config"
	"github.com/Faultbox/dunehall/internal/engine/camera"
	"github.com/Faultbox/dunehall/internal/engine/input"
	"github.com/Faultbox/dunehall/internal/engine/lighting"
	"github.com/Faultbox/dunehall/internal/engine/model"
	"github.com/Faultbox/dunehall/internal/engine/picking"
	"github.com/Faultbox/dunehall/internal/engine/scene"
	"github.com/Faultbox/dunehall/internal/engine/shading"
	"github.com/Faultbox/dunehall/internal/game/anchor"
	"github.com/Faultbox/dunehall/internal/game/entity"
	"github.com/Faultbox/dunehall/internal/game/interaction"
	"github.com/Faultbox/dunehall/internal/game/states"
	"github.com/Faultbox/dunehall/internal/store"
)

// Render is everything the renderer needs for one frame.
type Render struct {
	View     mgl64.Mat4
	Proj     mgl64.Mat4
	Uniforms shading.Uniforms
	Spot     *lighting.Spotlight
}

// Frame owns the per-frame state of the showcase and advances it in a
// fixed order: reloads and input, motion, anchors, then the render
// snapshot. It does no GL work.
type Frame struct {
	Scene      *scene.Scene
	Store      *store.Store
	Machine    *states.Machine
	Poses      *entity.Poses
	Rig        *camera.Rig
	Spot       *lighting.Spotlight
	Controller *interaction.Controller
	Projector  *anchor.Projector

	framing    camera.Framing
	near, far  float64
	shading    config.ShadingConfig
	reloads    <-chan config.ShadingConfig
	viewport   anchor.Viewport
	pickRadius float64
	hovered    string
	elapsed    float64
}

// NewFrame wires the state machine to everything that follows it. Listener
// order is poses, anchors, pointer, then the store and camera.
func NewFrame(s *scene.Scene, cfg *config.Config, st *store.Store) *Frame {
	framing := cfg.Camera.Framing()
	machine := states.NewMachine(s.Placements.IDs(), cfg.Interaction.View)
	poses := entity.NewPoses(s.Placements, cfg.Scene.Motion)

	f := &Frame{
		Scene:      s,
		Store:      st,
		Machine:    machine,
		Poses:      poses,
		Rig:        camera.NewRig(framing.Room(), cfg.Camera.SmoothTime, cfg.Camera.Threshold),
		Spot:       lighting.NewSpotlight(cfg.Scene.Spotlight),
		Controller: interaction.New(machine, poses, cfg.Interaction.Pointer),
		Projector:  anchor.NewProjector(model.WatchAnchors(), st),
		framing:    framing,
		near:       cfg.Camera.Near,
		far:        cfg.Camera.Far,
		shading:    cfg.Shading,
		viewport:   anchor.Viewport{Width: float64(cfg.Graphics.Width), Height: float64(cfg.Graphics.Height)},
		pickRadius: pickRadius(s),
	}

	machine.OnTransition(poses.HandleTransition)
	machine.OnTransition(f.Projector.HandleTransition)
	machine.OnTransition(f.Controller.HandleTransition)
	machine.OnTransition(f.handleTransition)

	cfg.Shading.Apply(s.Materials)
	f.sync(machine.Snapshot())
	if id := cfg.Interaction.StartFocus; id != "" {
		machine.Restore(states.Snapshot{View: states.Product, FocusedID: id})
	}
	return f
}

// pickRadius bounds the shared object model with a sphere.
func pickRadius(s *scene.Scene) float64 {
	if len(s.Objects) == 0 {
		return 1
	}
	b := s.Objects[0].Model.Bounds()
	var sq float64
	for i := range 3 {
		d := float64(b.Max[i] - b.Min[i])
		sq += d * d
	}
	return gomath.Sqrt(sq) / 2
}

// Reloads sets the channel drained at the start of every step.
func (f *Frame) Reloads(ch <-chan config.ShadingConfig) { f.reloads = ch }

// Resize sets the viewport used for picking, projection and anchors.
func (f *Frame) Resize(width, height int) {
	f.viewport = anchor.Viewport{Width: float64(width), Height: float64(height)}
}

// Elapsed returns the seconds simulated so far.
func (f *Frame) Elapsed() float64 { return f.elapsed }

// handleTransition runs after the machine has logged the transition.
func (f *Frame) handleTransition(tr states.Transition) {
	f.sync(tr.To)
}

// sync mirrors a snapshot into the store and retargets the camera.
func (f *Frame) sync(snap states.Snapshot) {
	f.Store.SetView(snap.View.String(), snap.FocusedID, snap.Macro)
	f.Rig.SetTarget(f.cameraTarget(snap))
}

func (f *Frame) cameraTarget(snap states.Snapshot) camera.Pose {
	if snap.View != states.Product {
		return f.framing.Room()
	}
	pl, ok := f.Scene.Placements.Find(snap.FocusedID)
	if !ok {
		return f.framing.Room()
	}
	return f.framing.Product(pl.Pos(), pl.IsCenter(), snap.Macro)
}

// Step advances one frame of dt seconds at wall time now.
func (f *Frame) Step(now time.Time, dt float64, events []input.Event) Render {
	if dt < 0 || gomath.IsNaN(dt) || gomath.IsInf(dt, 0) {
		dt = 0
	}

	// 1. reloads and input
	f.drainReloads()
	for _, ev := range events {
		f.handleEvent(now, ev)
	}

	// 2. motion
	f.elapsed += dt
	f.Rig.Update(dt)
	f.Poses.Update(dt, f.elapsed)
	focused := f.Poses.Focused()
	if focused != nil {
		f.Spot.Aim(focused.Position, true)
	} else {
		f.Spot.Aim(mgl64.Vec3{}, false)
	}
	f.Spot.Update(dt)

	// 3. anchors
	view, proj := f.matrices()
	if focused != nil && f.Machine.Snapshot().View == states.Product {
		f.Projector.Project(view, proj, f.viewport, focused.Transform())
	}

	// 4. render snapshot
	return Render{
		View:     view,
		Proj:     proj,
		Uniforms: f.shading.Uniforms(f.elapsed, f.Rig.Pose().Position),
		Spot:     f.Spot,
	}
}

func (f *Frame) drainReloads() {
	if f.reloads == nil {
		return
	}
	for {
		select {
		case s, ok := <-f.reloads:
			if !ok {
				f.reloads = nil
				return
			}
			f.shading = s
			s.Apply(f.Scene.Materials)
		default:
			return
		}
	}
}

func (f *Frame) handleEvent(now time.Time, ev input.Event) {
	switch ev.Type {
	case input.EventWindowResize:
		f.Resize(ev.Width, ev.Height)
	case input.EventKeyDown:
		switch ev.Sym {
		case sdl.K_ESCAPE:
			f.Machine.KeyDown(states.KeyEscape)
		case sdl.K_m:
			f.Machine.KeyDown(states.KeyMacro)
		}
	case input.EventMouseDown:
		if ev.Button == sdl.BUTTON_LEFT {
			f.Controller.PointerDown(f.Pick(ev.MouseX, ev.MouseY), ev.MouseX, ev.MouseY)
		}
	case input.EventMouseMove:
		f.Controller.PointerMove(ev.MouseX, ev.MouseY)
		f.hovered = f.Pick(ev.MouseX, ev.MouseY)
	case input.EventMouseUp:
		if ev.Button == sdl.BUTTON_LEFT {
			f.Controller.PointerUp(ev.MouseX, ev.MouseY)
		}
	case input.EventWheel:
		f.Machine.Scroll(now, ev.DeltaY)
	}
}

// Hovered returns the object under the pointer as of its last move, or "".
func (f *Frame) Hovered() string { return f.hovered }

// Pick returns the id of the nearest object under the viewport pixel
// (x, y), or "" for empty space.
func (f *Frame) Pick(x, y float64) string {
	view, proj := f.matrices()
	ray := picking.ScreenToRay(x, y, f.viewport.Width, f.viewport.Height, proj.Mul4(view).Inv())
	targets := make([]picking.Target, 0, len(f.Poses.All()))
	for _, o := range f.Poses.All() {
		targets = append(targets, picking.Target{ID: o.Placement.ID, Center: o.Position, Radius: f.pickRadius})
	}
	id, _ := picking.Pick(ray, targets)
	return id
}

func (f *Frame) matrices() (view, proj mgl64.Mat4) {
	pose := f.Rig.Pose()
	aspect := 1.0
	if f.viewport.Height > 0 {
		aspect = f.viewport.Width / f.viewport.Height
	}
	return camera.View(pose), camera.Projection(pose.FOV, aspect, f.near, f.far)
}
