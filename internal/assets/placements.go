// Package assets holds the static placement table: which objects float in
// the room, where they rest, and how they are labelled.
package assets

import (
	"errors"
	"fmt"
	gomath "math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// CenterID is the reserved id of the placement at the room center.
const CenterID = "center-watch"

// Validation errors.
var (
	ErrNoCenter    = errors.New("assets: table has no center placement")
	ErrDuplicateID = errors.New("assets: duplicate placement id")
	ErrUneven      = errors.New("assets: perimeter placements are not evenly spaced on one circle")
	ErrEmptyID     = errors.New("assets: placement id is empty")
)

// Placement is one showcased object. Rotation is Euler radians (x, y, z)
// applied in Y, X, Z order.
type Placement struct {
	ID       string     `yaml:"id" toml:"id"`
	Position [3]float64 `yaml:"position" toml:"position"`
	Rotation [3]float64 `yaml:"rotation" toml:"rotation"`
	Label    string     `yaml:"label" toml:"label"`
}

// Pos returns the rest position.
func (p Placement) Pos() mgl64.Vec3 { return mgl64.Vec3(p.Position) }

// Rot returns the rest rotation.
func (p Placement) Rot() mgl64.Vec3 { return mgl64.Vec3(p.Rotation) }

// IsCenter reports whether p is the reserved center placement.
func (p Placement) IsCenter() bool { return p.ID == CenterID }

// Table is the ordered placement list. The first entry is the default
// focus.
type Table []Placement

// Perimeter returns count placements evenly spaced on a circle, each facing
// outward and tipped toward the viewer.
func Perimeter(count int, radius, height float64) []Placement {
	out := make([]Placement, 0, count)
	for i := range count {
		angle := float64(i) / float64(count) * 2 * gomath.Pi
		out = append(out, Placement{
			ID:       fmt.Sprintf("perimeter-watch-%d", i),
			Position: [3]float64{gomath.Sin(angle) * radius, height, gomath.Cos(angle) * radius},
			Rotation: [3]float64{gomath.Pi / 3, angle - gomath.Pi/2, 0},
			Label:    fmt.Sprintf("COLLECTION %d", i+1),
		})
	}
	return out
}

// DefaultPlacements returns the showcase room: one center watch and five
// on a 5.5 unit circle.
func DefaultPlacements() Table {
	t := Table{{
		ID:       CenterID,
		Position: [3]float64{0, 4.5, 0},
		Rotation: [3]float64{gomath.Pi / 3, -gomath.Pi / 2, 0},
		Label:    "TRANSCENDENCE",
	}}
	return append(t, Perimeter(5, 5.5, 4.2)...)
}

// IDs returns the ids in table order.
func (t Table) IDs() []string {
	ids := make([]string, len(t))
	for i, p := range t {
		ids[i] = p.ID
	}
	return ids
}

// Find looks up a placement by id.
func (t Table) Find(id string) (Placement, bool) {
	if i := t.Index(id); i >= 0 {
		return t[i], true
	}
	return Placement{}, false
}

// Index returns the position of id in the table, or -1.
func (t Table) Index(id string) int {
	for i, p := range t {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Center returns the center placement.
func (t Table) Center() (Placement, bool) {
	return t.Find(CenterID)
}

// Validate checks the table invariants: ids are non-empty and unique,
// exactly one center exists, and the rest share one radius with equal
// angular gaps.
func (t Table) Validate() error {
	seen := make(map[string]bool, len(t))
	hasCenter := false
	var perimeter []Placement

	for _, p := range t {
		if p.ID == "" {
			return ErrEmptyID
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateID, p.ID)
		}
		seen[p.ID] = true
		if p.IsCenter() {
			hasCenter = true
			continue
		}
		perimeter = append(perimeter, p)
	}
	if !hasCenter {
		return ErrNoCenter
	}
	return checkSpacing(perimeter)
}

func checkSpacing(ps []Placement) error {
	const tol = 1e-3
	if len(ps) == 0 {
		return nil
	}

	radius := gomath.Hypot(ps[0].Position[0], ps[0].Position[2])
	if radius < tol {
		return fmt.Errorf("%w: %q sits on the center", ErrUneven, ps[0].ID)
	}
	angles := make([]float64, len(ps))
	for i, p := range ps {
		r := gomath.Hypot(p.Position[0], p.Position[2])
		if gomath.Abs(r-radius) > tol*gomath.Max(1, radius) {
			return fmt.Errorf("%w: %q radius %.4f, want %.4f", ErrUneven, p.ID, r, radius)
		}
		angles[i] = gomath.Atan2(p.Position[0], p.Position[2])
	}
	if len(ps) == 1 {
		return nil
	}

	sort.Float64s(angles)
	want := 2 * gomath.Pi / float64(len(ps))
	for i := range angles {
		next := angles[(i+1)%len(angles)]
		if i == len(angles)-1 {
			next += 2 * gomath.Pi
		}
		if gomath.Abs(next-angles[i]-want) > tol {
			return fmt.Errorf("%w: gap %.4f rad, want %.4f", ErrUneven, next-angles[i], want)
		}
	}
	return nil
}
