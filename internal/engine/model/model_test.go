package model

import (
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/dunehall/internal/engine/shading"
)

func TestWatchParts(t *testing.T) {
	w := Watch()
	require.Len(t, w.Parts, 3)

	kinds := []shading.Kind{}
	for _, p := range w.Parts {
		kinds = append(kinds, p.Shader.Kind())
		assert.NotEmpty(t, p.Mesh.Vertices)
		assert.Zero(t, len(p.Mesh.Indices)%3)
	}
	assert.Equal(t, []shading.Kind{shading.KindMetal, shading.KindMetal, shading.KindDial}, kinds)

	b := w.Bounds()
	assert.InDelta(t, -0.2, float64(b.Min[1]), 1e-5)
	assert.InDelta(t, 1.6, float64(b.Max[0]), 1e-5)
	assert.Greater(t, w.TriangleCount(), 100)
}

func TestWatchAnchorsInsideCase(t *testing.T) {
	w := Watch()
	require.Len(t, w.Anchors, 3)
	b := w.Bounds()
	for key, a := range w.Anchors {
		for i := range 3 {
			assert.GreaterOrEqual(t, a[i], float64(b.Min[i])-1e-6, key)
			assert.LessOrEqual(t, a[i], float64(b.Max[i])+1e-6, key)
		}
	}
	assert.Equal(t, mgl64.Vec3{0, 0.26, 0}, w.Anchors[AnchorDial])
	assert.Less(t, w.Anchors[AnchorCalibre].Y(), 0.0, "calibre sits on the case back")
}

func TestDrumTilt(t *testing.T) {
	assert.Equal(t, mgl64.Vec3{0.2, 0.1, 0.1}, DrumTilt(0, true))

	got := DrumTilt(2, false)
	assert.InDelta(t, gomath.Pi/4+gomath.Sin(246.8)*0.5, got.X(), 1e-12)
	assert.InDelta(t, gomath.Pi/3+gomath.Cos(1135.6)*0.5, got.Y(), 1e-12)
	assert.Equal(t, got, DrumTilt(2, false))
}

func TestDrumTransformHangsBelow(t *testing.T) {
	pos := mgl64.Vec3{3, 4.2, -1}
	m := DrumTransform(1, pos, false)
	origin := m.Mul4x1(mgl64.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 3, origin.X(), 1e-12)
	assert.InDelta(t, 4.2-DrumDrop, origin.Y(), 1e-12)
	assert.InDelta(t, -1, origin.Z(), 1e-12)
}

func TestDrumAndPlinth(t *testing.T) {
	d := Drum()
	require.Len(t, d.Parts, 1)
	assert.Equal(t, shading.KindStone, d.Parts[0].Shader.Kind())
	assert.Equal(t, shading.StageStone, d.Parts[0].Stage)
	assert.InDelta(t, 0.6, float64(d.Bounds().Max[1]), 1e-5)

	p := Plinth(64)
	require.Len(t, p.Parts, 1)
	b := p.Bounds()
	assert.InDelta(t, 0.6, float64(b.Max[1]), 1e-5)
	assert.InDelta(t, 3.92, float64(b.Max[0]), 1e-3)
	assert.Equal(t, 11*64*2, p.TriangleCount())
}
