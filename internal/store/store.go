// Package store is the process-wide observable state shared between the
// frame loop (the single writer) and the presentation layer (readers).
//
// The store is owned by the frame loop goroutine. Readers on other
// goroutines must go through Subscribe or read between frames.
package store

import "maps"

// Field names a store entry.
type Field string

const (
	FieldViewState       Field = "viewState"
	FieldMacroMode       Field = "macroMode"
	FieldFocusedObjectID Field = "focusedObjectId"
	FieldAnchorPositions Field = "anchorPositions"
)

// Anchor is a projected annotation point in viewport pixels.
type Anchor struct {
	X, Y float64
}

// Change is delivered to subscribers after a write that altered a field.
// AnchorKey is set for anchor writes and empty when anchors are cleared.
type Change struct {
	Field     Field
	AnchorKey string
}

// Store holds the shared fields.
type Store struct {
	viewState string
	macroMode bool
	focusedID string
	anchors   map[string]Anchor

	subs   map[int]func(Change)
	order  []int
	nextID int
}

// New returns a store in the ROOM state with no anchors.
func New() *Store {
	return &Store{
		viewState: "ROOM",
		anchors:   make(map[string]Anchor),
		subs:      make(map[int]func(Change)),
	}
}

// ViewState returns "ROOM" or "PRODUCT".
func (s *Store) ViewState() string { return s.viewState }

// MacroMode reports the macro flag.
func (s *Store) MacroMode() bool { return s.macroMode }

// FocusedObjectID returns the focused id and whether one is set.
func (s *Store) FocusedObjectID() (string, bool) {
	return s.focusedID, s.focusedID != ""
}

// Anchor returns the projected position for key. A missing anchor means no
// data yet; callers skip drawing it.
func (s *Store) Anchor(key string) (Anchor, bool) {
	a, ok := s.anchors[key]
	return a, ok
}

// Anchors returns a copy of every anchor.
func (s *Store) Anchors() map[string]Anchor {
	return maps.Clone(s.anchors)
}

// SetViewState writes the view mode.
func (s *Store) SetViewState(v string) {
	if v == s.viewState {
		return
	}
	s.viewState = v
	s.notify(Change{Field: FieldViewState})
}

// SetMacroMode writes the macro flag.
func (s *Store) SetMacroMode(on bool) {
	if on == s.macroMode {
		return
	}
	s.macroMode = on
	s.notify(Change{Field: FieldMacroMode})
}

// SetFocusedObjectID writes the focus; "" clears it.
func (s *Store) SetFocusedObjectID(id string) {
	if id == s.focusedID {
		return
	}
	s.focusedID = id
	s.notify(Change{Field: FieldFocusedObjectID})
}

// SetView writes the view mode, focus and macro flag together. Subscribers
// are notified only after all three are stored, so they never observe a
// half-applied transition such as ROOM with macro still on.
func (s *Store) SetView(view, focusedID string, macro bool) {
	var changed []Field
	if view != s.viewState {
		s.viewState = view
		changed = append(changed, FieldViewState)
	}
	if focusedID != s.focusedID {
		s.focusedID = focusedID
		changed = append(changed, FieldFocusedObjectID)
	}
	if macro != s.macroMode {
		s.macroMode = macro
		changed = append(changed, FieldMacroMode)
	}
	for _, f := range changed {
		s.notify(Change{Field: f})
	}
}

// SetAnchor writes one anchor.
func (s *Store) SetAnchor(key string, a Anchor) {
	if old, ok := s.anchors[key]; ok && old == a {
		return
	}
	s.anchors[key] = a
	s.notify(Change{Field: FieldAnchorPositions, AnchorKey: key})
}

// ClearAnchors drops every anchor.
func (s *Store) ClearAnchors() {
	if len(s.anchors) == 0 {
		return
	}
	clear(s.anchors)
	s.notify(Change{Field: FieldAnchorPositions})
}

// Subscribe registers fn for every change and returns a function that
// removes it. Subscribers run synchronously inside the write, in
// registration order.
func (s *Store) Subscribe(fn func(Change)) (unsubscribe func()) {
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.order = append(s.order, id)

	return func() {
		if _, ok := s.subs[id]; !ok {
			return
		}
		delete(s.subs, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

func (s *Store) notify(c Change) {
	for _, id := range append([]int(nil), s.order...) {
		if fn, ok := s.subs[id]; ok {
			fn(c)
		}
	}
}
