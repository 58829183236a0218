// Package states implements the view-state machine: the discrete ROOM and
// PRODUCT modes, the macro sub-state, the focused placement, and the
// debounced scroll gate that moves between them.
package states

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/dunehall/internal/logger"
)

// View is the discrete view mode.
type View int

const (
	Room View = iota
	Product
)

func (v View) String() string {
	if v == Product {
		return "PRODUCT"
	}
	return "ROOM"
}

// Snapshot is the complete discrete view state. FocusedID is empty when
// nothing is focused.
type Snapshot struct {
	View      View
	Macro     bool
	FocusedID string
}

// Valid reports whether s satisfies the view invariants: macro only inside
// PRODUCT with a focus, PRODUCT always with a focus, ROOM never with one.
func (s Snapshot) Valid() bool {
	if s.Macro && (s.View != Product || s.FocusedID == "") {
		return false
	}
	if s.View == Product && s.FocusedID == "" {
		return false
	}
	if s.View == Room && s.FocusedID != "" {
		return false
	}
	return true
}

// Transition describes one applied state change.
type Transition struct {
	From, To Snapshot
}

// FocusChanged reports whether the focused placement differs, including
// gaining or losing focus.
func (t Transition) FocusChanged() bool {
	return t.From.FocusedID != t.To.FocusedID
}

// Listener observes applied transitions, in registration order.
type Listener func(Transition)

// Key is a keyboard command understood by the machine.
type Key int

const (
	KeyEscape Key = iota
	KeyMacro
)

// Config tunes the scroll gate.
type Config struct {
	ScrollDebounce  time.Duration `yaml:"scroll_debounce"`
	ScrollThreshold float64       `yaml:"scroll_threshold"`
}

// DefaultConfig is a one second cool-down and a 30 unit wheel threshold.
func DefaultConfig() Config {
	return Config{
		ScrollDebounce:  time.Second,
		ScrollThreshold: 30,
	}
}

// Machine owns the view state. It is driven from the frame loop's input
// phase and is not safe for concurrent use.
type Machine struct {
	cfg   Config
	ids   []string
	known map[string]bool

	snap      Snapshot
	lastFocus string

	lastScroll time.Time
	scrolled   bool

	listeners []Listener
	log       *zap.Logger
}

// NewMachine creates a machine in ROOM over the given placement ids. The
// first id is the fallback for unknown or missing focus.
func NewMachine(ids []string, cfg Config) *Machine {
	m := &Machine{
		cfg:   cfg,
		ids:   append([]string(nil), ids...),
		known: make(map[string]bool, len(ids)),
		log:   logger.Named("view"),
	}
	for _, id := range ids {
		m.known[id] = true
	}
	return m
}

// Snapshot returns the current state.
func (m *Machine) Snapshot() Snapshot { return m.snap }

// OnTransition registers l for every applied change.
func (m *Machine) OnTransition(l Listener) {
	m.listeners = append(m.listeners, l)
}

// Resolve maps id onto a known placement, falling back to the first one.
// It returns "" only when the machine has no placements at all.
func (m *Machine) Resolve(id string) string {
	if m.known[id] {
		return id
	}
	if len(m.ids) == 0 {
		return ""
	}
	return m.ids[0]
}

// SelectObject focuses id and enters PRODUCT with macro off. Unknown ids
// resolve to the default placement.
func (m *Machine) SelectObject(id string) {
	resolved := m.Resolve(id)
	if resolved == "" {
		m.log.Warn("select with no placements", zap.String("id", id))
		return
	}
	if resolved != id {
		m.log.Debug("unknown placement, using default", zap.String("id", id), zap.String("default", resolved))
	}
	m.apply(Snapshot{View: Product, FocusedID: resolved})
}

// Restore replaces the state with s, repaired to satisfy the view
// invariants: macro is dropped outside PRODUCT, ROOM drops its focus, and a
// PRODUCT focus resolves to a known placement (or falls back to ROOM when
// there are none).
func (m *Machine) Restore(s Snapshot) {
	m.apply(m.normalize(s))
}

func (m *Machine) normalize(s Snapshot) Snapshot {
	if s.View == Product {
		s.FocusedID = m.Resolve(s.FocusedID)
		if s.FocusedID == "" {
			return Snapshot{View: Room}
		}
		return s
	}
	return Snapshot{View: Room}
}

// ReturnToRoom clears focus and macro and enters ROOM.
func (m *Machine) ReturnToRoom() {
	m.apply(Snapshot{View: Room})
}

// ToggleMacro flips macro while in PRODUCT and does nothing elsewhere.
func (m *Machine) ToggleMacro() {
	if m.snap.View != Product {
		return
	}
	next := m.snap
	next.Macro = !next.Macro
	m.apply(next)
}

// KeyDown handles keyboard commands. Escape leaves macro first, then
// PRODUCT.
func (m *Machine) KeyDown(k Key) {
	switch k {
	case KeyEscape:
		switch {
		case m.snap.Macro:
			next := m.snap
			next.Macro = false
			m.apply(next)
		case m.snap.View == Product:
			m.ReturnToRoom()
		}
	case KeyMacro:
		m.ToggleMacro()
	}
}

// Scroll applies a wheel delta received at now and reports whether it
// caused a transition. Deltas under the threshold, deltas pointing nowhere
// from the current view, and anything inside the cool-down after the last
// scroll transition are ignored. Only a transition restarts the cool-down.
func (m *Machine) Scroll(now time.Time, deltaY float64) bool {
	if m.scrolled && now.Sub(m.lastScroll) < m.cfg.ScrollDebounce {
		return false
	}
	if deltaY < m.cfg.ScrollThreshold && deltaY > -m.cfg.ScrollThreshold {
		return false
	}

	switch {
	case deltaY > 0 && m.snap.View == Room:
		target := m.lastFocus
		if target == "" {
			target = m.Resolve("")
		}
		if target == "" {
			return false
		}
		m.SelectObject(target)
	case deltaY < 0 && m.snap.View == Product:
		m.ReturnToRoom()
	default:
		return false
	}

	m.lastScroll = now
	m.scrolled = true
	return true
}

func (m *Machine) apply(next Snapshot) {
	if next == m.snap {
		return
	}
	tr := Transition{From: m.snap, To: next}
	m.snap = next
	if next.FocusedID != "" {
		m.lastFocus = next.FocusedID
	}

	m.log.Debug("view transition",
		zap.String("from", tr.From.View.String()),
		zap.String("to", tr.To.View.String()),
		zap.String("focus", tr.To.FocusedID),
		zap.Bool("macro", tr.To.Macro),
	)
	for _, l := range m.listeners {
		l(tr)
	}
}
