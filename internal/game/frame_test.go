package game

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/dunehall/internal/assets"
	"github.com/Faultbox/dunehall/internal/config"
	"github.com/Faultbox/dunehall/internal/engine/heightfield"
	"github.com/Faultbox/dunehall/internal/engine/input"
	"github.com/Faultbox/dunehall/internal/engine/model"
	"github.com/Faultbox/dunehall/internal/engine/scene"
	"github.com/Faultbox/dunehall/internal/game/anchor"
	"github.com/Faultbox/dunehall/internal/game/states"
	"github.com/Faultbox/dunehall/internal/logger"
	"github.com/Faultbox/dunehall/internal/store"
)

const step = 1.0 / 60

func newFrame(t *testing.T) (*Frame, *store.Store) {
	t.Helper()
	cfg := config.Default()
	cfg.Scene.Layout.TerrainResolution = 32
	cfg.Scene.Layout.RingSegments = 16
	cfg.Scene.Layout.MountainResolution = 16
	cfg.Scene.Layout.PlinthSegments = 16

	s := scene.Build(assets.DefaultPlacements(), heightfield.Default(), cfg.Scene.Layout)
	st := store.New()
	return NewFrame(s, cfg, st), st
}

func wheel(dy float64) input.Event { return input.Event{Type: input.EventWheel, DeltaY: dy} }

func key(sym sdl.Keycode) input.Event { return input.Event{Type: input.EventKeyDown, Sym: sym} }

func TestNewFrame_StartsInRoom(t *testing.T) {
	f, st := newFrame(t)
	assert.Equal(t, "ROOM", st.ViewState())
	_, focused := st.FocusedObjectID()
	assert.False(t, focused)
	assert.False(t, st.MacroMode())
	assert.Empty(t, st.Anchors())
	assert.Equal(t, f.framing.Room(), f.Rig.Target())
}

func TestStep_ScrollFocusesAndProjectsSameFrame(t *testing.T) {
	f, st := newFrame(t)
	now := time.Unix(100, 0)

	r := f.Step(now, step, []input.Event{wheel(100)})

	assert.Equal(t, "PRODUCT", st.ViewState())
	id, ok := st.FocusedObjectID()
	require.True(t, ok)
	assert.Equal(t, assets.CenterID, id)

	// Anchors come from this frame's pose and camera, not the previous one.
	obj := f.Poses.Focused()
	require.NotNil(t, obj)
	vp := anchor.Viewport{Width: 1280, Height: 720}
	for key, local := range model.WatchAnchors() {
		world := obj.Transform().Mul4x1(local.Vec4(1)).Vec3()
		want, ok := anchor.ToScreen(world, r.View, r.Proj, vp)
		require.True(t, ok, key)
		got, ok := st.Anchor(key)
		require.True(t, ok, key)
		assert.InDelta(t, want.X, got.X, 1e-9, key)
		assert.InDelta(t, want.Y, got.Y, 1e-9, key)
	}

	pl, _ := f.Scene.Placements.Find(id)
	assert.Equal(t, f.framing.Product(pl.Pos(), true, false), f.Rig.Target())
}

func TestStep_EscapeReturnsAndClearsAnchors(t *testing.T) {
	f, st := newFrame(t)
	now := time.Unix(100, 0)
	f.Step(now, step, []input.Event{wheel(100)})
	require.NotEmpty(t, st.Anchors())

	f.Step(now.Add(time.Second), step, []input.Event{key(sdl.K_ESCAPE)})
	assert.Equal(t, "ROOM", st.ViewState())
	assert.Empty(t, st.Anchors())
	assert.Equal(t, f.framing.Room(), f.Rig.Target())

	// No projection while in ROOM.
	f.Step(now.Add(2*time.Second), step, nil)
	assert.Empty(t, st.Anchors())
}

func TestStoreSubscribersSeeConsistentView(t *testing.T) {
	f, st := newFrame(t)
	var broken []string
	st.Subscribe(func(c store.Change) {
		id, focused := st.FocusedObjectID()
		view, macro := st.ViewState(), st.MacroMode()
		switch {
		case macro && (view != "PRODUCT" || !focused):
			broken = append(broken, fmt.Sprintf("%s: view=%s macro=%v focus=%q", c.Field, view, macro, id))
		case view == "PRODUCT" && !focused:
			broken = append(broken, fmt.Sprintf("%s: PRODUCT without focus", c.Field))
		case view == "ROOM" && focused:
			broken = append(broken, fmt.Sprintf("%s: ROOM focused on %q", c.Field, id))
		}
	})

	now := time.Unix(100, 0)
	f.Step(now, step, []input.Event{wheel(100), key(sdl.K_m)})
	require.True(t, st.MacroMode())

	// Leave PRODUCT straight from macro.
	f.Machine.ReturnToRoom()
	assert.Equal(t, "ROOM", st.ViewState())
	assert.False(t, st.MacroMode())

	// Scroll in and back out again.
	f.Step(now.Add(2*time.Second), step, []input.Event{wheel(100), key(sdl.K_m)})
	f.Step(now.Add(4*time.Second), step, []input.Event{wheel(-100)})
	assert.Equal(t, "ROOM", st.ViewState())

	assert.Empty(t, broken)
}

func TestNewFrame_StartFocus(t *testing.T) {
	for _, tt := range []struct{ start, want string }{
		{"perimeter-watch-2", "perimeter-watch-2"},
		{"no-such-watch", assets.CenterID},
	} {
		t.Run(tt.start, func(t *testing.T) {
			cfg := config.Default()
			cfg.Scene.Layout.TerrainResolution = 32
			cfg.Scene.Layout.RingSegments = 16
			cfg.Scene.Layout.MountainResolution = 16
			cfg.Scene.Layout.PlinthSegments = 16
			cfg.Interaction.StartFocus = tt.start

			s := scene.Build(assets.DefaultPlacements(), heightfield.Default(), cfg.Scene.Layout)
			st := store.New()
			f := NewFrame(s, cfg, st)

			assert.Equal(t, "PRODUCT", st.ViewState())
			id, ok := st.FocusedObjectID()
			require.True(t, ok)
			assert.Equal(t, tt.want, id)
			require.NotNil(t, f.Poses.Focused())
			assert.Equal(t, tt.want, f.Poses.Focused().Placement.ID)

			f.Step(time.Unix(100, 0), step, nil)
			assert.NotEmpty(t, st.Anchors())
		})
	}
}

func TestStep_LogsEachTransitionOnce(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := logger.Log
	logger.Log = zap.New(core)
	t.Cleanup(func() { logger.Log = prev })

	f, _ := newFrame(t)
	transitions := 0
	f.Machine.OnTransition(func(states.Transition) { transitions++ })

	now := time.Unix(100, 0)
	f.Step(now, step, []input.Event{wheel(100)})
	f.Step(now.Add(time.Second), step, []input.Event{key(sdl.K_m)})
	f.Step(now.Add(2*time.Second), step, []input.Event{key(sdl.K_m)})

	require.Equal(t, 3, transitions)
	assert.Equal(t, transitions, logs.FilterMessage("view transition").Len())
}

func TestStep_MacroKey(t *testing.T) {
	f, st := newFrame(t)
	now := time.Unix(100, 0)

	f.Step(now, step, []input.Event{key(sdl.K_m)})
	assert.False(t, st.MacroMode(), "macro needs a focus")

	f.Step(now, step, []input.Event{wheel(100), key(sdl.K_m)})
	assert.True(t, st.MacroMode())
	assert.Equal(t, f.framing.MacroFOV, f.Rig.Target().FOV)

	// Escape leaves macro before leaving the product.
	f.Step(now, step, []input.Event{key(sdl.K_ESCAPE)})
	assert.False(t, st.MacroMode())
	assert.Equal(t, "PRODUCT", st.ViewState())
}

func TestStep_ClickSelectsObject(t *testing.T) {
	f, st := newFrame(t)
	r := f.Step(time.Unix(100, 0), 0, nil)

	target := f.Poses.Get("perimeter-watch-0")
	require.NotNil(t, target)
	px, ok := anchor.ToScreen(target.Position, r.View, r.Proj, anchor.Viewport{Width: 1280, Height: 720})
	require.True(t, ok)
	require.Equal(t, "perimeter-watch-0", f.Pick(px.X, px.Y))

	f.Step(time.Unix(101, 0), step, []input.Event{
		{Type: input.EventMouseDown, MouseX: px.X, MouseY: px.Y, Button: sdl.BUTTON_LEFT},
		{Type: input.EventMouseUp, MouseX: px.X + 1, MouseY: px.Y, Button: sdl.BUTTON_LEFT},
	})
	id, ok := st.FocusedObjectID()
	require.True(t, ok)
	assert.Equal(t, "perimeter-watch-0", id)
}

func TestPick_EmptySky(t *testing.T) {
	f, _ := newFrame(t)
	f.Step(time.Unix(100, 0), 0, nil)
	assert.Equal(t, "", f.Pick(5, 5))
}

func TestStep_HoverTracksPointer(t *testing.T) {
	f, st := newFrame(t)
	r := f.Step(time.Unix(100, 0), 0, nil)
	assert.Equal(t, "", f.Hovered())

	target := f.Poses.Get("perimeter-watch-0")
	require.NotNil(t, target)
	px, ok := anchor.ToScreen(target.Position, r.View, r.Proj, anchor.Viewport{Width: 1280, Height: 720})
	require.True(t, ok)

	f.Step(time.Unix(101, 0), 0, []input.Event{{Type: input.EventMouseMove, MouseX: px.X, MouseY: px.Y}})
	assert.Equal(t, "perimeter-watch-0", f.Hovered())
	assert.Equal(t, "ROOM", st.ViewState(), "hovering does not select")

	f.Step(time.Unix(102, 0), 0, []input.Event{{Type: input.EventMouseMove, MouseX: 5, MouseY: 5}})
	assert.Equal(t, "", f.Hovered())
}

func TestStep_SpotlightFollowsFocus(t *testing.T) {
	f, _ := newFrame(t)
	now := time.Unix(100, 0)
	f.Step(now, step, []input.Event{wheel(100)})
	for range 120 {
		f.Step(now, step, nil)
	}
	assert.Greater(t, f.Spot.Intensity(), 4.0)
	obj := f.Poses.Focused()
	assert.InDelta(t, obj.Position.X(), f.Spot.Position.X(), 1e-9)

	f.Step(now.Add(2*time.Second), step, []input.Event{key(sdl.K_ESCAPE)})
	for range 120 {
		f.Step(now, step, nil)
	}
	assert.Less(t, f.Spot.Intensity(), 0.5)
}

func TestStep_ReloadsApplyBeforeRender(t *testing.T) {
	f, _ := newFrame(t)
	ch := make(chan config.ShadingConfig, 1)
	f.Reloads(ch)

	s := config.Default().Shading
	s.TimeScale = 0
	s.Sand.RippleScale = 11
	ch <- s

	r := f.Step(time.Unix(100, 0), 0.5, nil)
	assert.Equal(t, 0.0, r.Uniforms.Time)
	assert.Equal(t, 11.0, f.Scene.Materials.Sand.P.RippleScale)

	close(ch)
	f.Step(time.Unix(100, 0), step, nil)
	assert.Nil(t, f.reloads)
}

func TestStep_BadDeltaIsIgnored(t *testing.T) {
	f, _ := newFrame(t)
	before := f.Rig.Pose()
	f.Step(time.Unix(100, 0), -1, nil)
	f.Step(time.Unix(100, 0), math.NaN(), nil)
	assert.Equal(t, before, f.Rig.Pose())
	assert.Equal(t, 0.0, f.Elapsed())
}

func TestResizeChangesAspect(t *testing.T) {
	f, _ := newFrame(t)
	wide := f.Step(time.Unix(100, 0), 0, nil)
	f.Step(time.Unix(100, 0), 0, []input.Event{{Type: input.EventWindowResize, Width: 720, Height: 720}})
	square := f.Step(time.Unix(100, 0), 0, nil)
	assert.NotEqual(t, wide.Proj, square.Proj)
}
