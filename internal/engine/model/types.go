// Package model builds the showcase models: the watch that floats over each
// placement, the stone drum beneath it, and the central plinth.
package model

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/dunehall/internal/engine/mesh"
	"github.com/Faultbox/dunehall/internal/engine/shading"
)

// Part is one mesh of a model with the shading variant it is drawn with.
type Part struct {
	Mesh   *mesh.Mesh
	Shader shading.Model
	Stage  shading.Stage
}

// Model is a group of parts in a shared local frame.
type Model struct {
	Name  string
	Parts []Part
	// Anchors are named feature points in the model's local frame.
	Anchors map[string]mgl64.Vec3
}

// Bounds returns the union of the part bounds.
func (m *Model) Bounds() mesh.Bounds {
	b := mesh.EmptyBounds()
	for _, p := range m.Parts {
		b.Extend(p.Mesh.Bounds.Min)
		b.Extend(p.Mesh.Bounds.Max)
	}
	return b
}

// TriangleCount sums the part triangle counts.
func (m *Model) TriangleCount() int {
	n := 0
	for _, p := range m.Parts {
		n += p.Mesh.TriangleCount()
	}
	return n
}

func rotateY(a float64) mgl64.Mat4 { return mgl64.HomogRotate3DY(a) }

func translate(x, y, z float64) mgl64.Mat4 { return mgl64.Translate3D(x, y, z) }
