// Package anchor projects the focused object's feature points into viewport
// pixels for the overlay's annotation lines.
package anchor

import (
	"maps"
	gomath "math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/dunehall/internal/game/states"
	"github.com/Faultbox/dunehall/internal/store"
)

// Viewport is the drawable size in pixels.
type Viewport struct {
	Width, Height float64
}

// Sink receives projected anchors.
type Sink interface {
	SetAnchor(key string, a store.Anchor)
	ClearAnchors()
}

// ToScreen maps a world point through view and projection into pixels with
// the origin at the top-left. It reports false when the point is on or
// behind the camera plane, where the perspective divide is meaningless.
func ToScreen(world mgl64.Vec3, view, proj mgl64.Mat4, vp Viewport) (store.Anchor, bool) {
	clip := proj.Mul4(view).Mul4x1(world.Vec4(1))
	if clip.W() <= 1e-9 {
		return store.Anchor{}, false
	}
	ndcX := clip.X() / clip.W()
	ndcY := clip.Y() / clip.W()
	a := store.Anchor{
		X: (ndcX*0.5 + 0.5) * vp.Width,
		Y: (-ndcY*0.5 + 0.5) * vp.Height,
	}
	if gomath.IsNaN(a.X) || gomath.IsNaN(a.Y) || gomath.IsInf(a.X, 0) || gomath.IsInf(a.Y, 0) {
		return store.Anchor{}, false
	}
	return a, true
}

// Projector tracks one set of local anchor points.
type Projector struct {
	points map[string]mgl64.Vec3
	keys   []string
	sink   Sink
}

// NewProjector projects points, given in the object's local frame, into
// sink.
func NewProjector(points map[string]mgl64.Vec3, sink Sink) *Projector {
	return &Projector{
		points: maps.Clone(points),
		keys:   slices.Sorted(maps.Keys(points)),
		sink:   sink,
	}
}

// Keys returns the anchor names in sorted order.
func (p *Projector) Keys() []string { return p.keys }

// Project writes every anchor of an object with transform model and
// returns how many were written. Points behind the camera keep their
// previous value.
func (p *Projector) Project(view, proj mgl64.Mat4, vp Viewport, model mgl64.Mat4) int {
	n := 0
	for _, key := range p.keys {
		world := model.Mul4x1(p.points[key].Vec4(1)).Vec3()
		if a, ok := ToScreen(world, view, proj, vp); ok {
			p.sink.SetAnchor(key, a)
			n++
		}
	}
	return n
}

// HandleTransition drops every anchor when focus moves, so the overlay
// never pairs a new focus with the previous object's points.
func (p *Projector) HandleTransition(tr states.Transition) {
	if tr.FocusChanged() {
		p.sink.ClearAnchors()
	}
}
