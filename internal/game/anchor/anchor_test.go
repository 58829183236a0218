package anchor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/dunehall/internal/engine/camera"
	"github.com/Faultbox/dunehall/internal/engine/model"
	"github.com/Faultbox/dunehall/internal/game/states"
	"github.com/Faultbox/dunehall/internal/store"
)

var vp = Viewport{Width: 800, Height: 600}

func frontCamera() (mgl64.Mat4, mgl64.Mat4) {
	view := camera.View(camera.Pose{Position: mgl64.Vec3{0, 0, 5}, Target: mgl64.Vec3{}, FOV: 45})
	proj := camera.Projection(45, vp.Width/vp.Height, 0.1, 100)
	return view, proj
}

func TestToScreen(t *testing.T) {
	view, proj := frontCamera()

	a, ok := ToScreen(mgl64.Vec3{}, view, proj, vp)
	require.True(t, ok)
	assert.InDelta(t, 400, a.X, 1e-6)
	assert.InDelta(t, 300, a.Y, 1e-6)

	up, ok := ToScreen(mgl64.Vec3{0, 1, 0}, view, proj, vp)
	require.True(t, ok)
	assert.Less(t, up.Y, 300.0, "screen y grows downward")

	right, ok := ToScreen(mgl64.Vec3{1, 0, 0}, view, proj, vp)
	require.True(t, ok)
	assert.Greater(t, right.X, 400.0)

	_, ok = ToScreen(mgl64.Vec3{0, 0, 10}, view, proj, vp)
	assert.False(t, ok, "behind the camera")
}

func TestProjectWritesEveryAnchor(t *testing.T) {
	view, proj := frontCamera()
	s := store.New()
	p := NewProjector(model.WatchAnchors(), s)
	assert.Equal(t, []string{"calibre", "dial", "material"}, p.Keys())

	n := p.Project(view, proj, vp, mgl64.Translate3D(0, 0, 0))
	assert.Equal(t, 3, n)

	dial, ok := s.Anchor("dial")
	require.True(t, ok)
	calibre, ok := s.Anchor("calibre")
	require.True(t, ok)
	assert.Less(t, dial.Y, calibre.Y, "dial sits above the case back")
}

func TestProjectFollowsObject(t *testing.T) {
	view, proj := frontCamera()
	s := store.New()
	p := NewProjector(map[string]mgl64.Vec3{"dot": {}}, s)

	p.Project(view, proj, vp, mgl64.Translate3D(1, 0, 0))
	moved, _ := s.Anchor("dot")
	assert.Greater(t, moved.X, 400.0)
}

func TestFocusChangeClearsAnchors(t *testing.T) {
	view, proj := frontCamera()
	s := store.New()
	p := NewProjector(model.WatchAnchors(), s)
	m := states.NewMachine([]string{"a", "b"}, states.DefaultConfig())
	m.OnTransition(p.HandleTransition)

	m.SelectObject("a")
	p.Project(view, proj, vp, mgl64.Ident4())
	require.Len(t, s.Anchors(), 3)

	m.ToggleMacro()
	assert.Len(t, s.Anchors(), 3, "macro keeps the same focus")

	m.SelectObject("b")
	assert.Empty(t, s.Anchors())

	_, ok := s.Anchor("dial")
	assert.False(t, ok)
}
