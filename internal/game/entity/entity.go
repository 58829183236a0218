// Package entity animates the showcased objects: each placement floats at
// rest until focused, then rises to inspection height and turns to face the
// camera, tumbling with the user's drag.
package entity

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/dunehall/internal/assets"
	"github.com/Faultbox/dunehall/internal/game/states"
	dmath "github.com/Faultbox/dunehall/pkg/math"
)

// Params tunes the object motion. Smooth times are settle times; the decay
// time constant is half of each.
type Params struct {
	InspectHeight  float64 `yaml:"inspect_height"`
	PositionSmooth float64 `yaml:"position_smooth"`
	RotationSmooth float64 `yaml:"rotation_smooth"`
	DragSmooth     float64 `yaml:"drag_smooth"`
	FloatSpeed     float64 `yaml:"float_speed"`
	FloatAmplitude float64 `yaml:"float_amplitude"`
	// FacePitch tips a focused object so its dial faces the camera.
	FacePitch float64 `yaml:"face_pitch"`
}

// DefaultParams returns the showcase motion.
func DefaultParams() Params {
	return Params{
		InspectHeight:  3.5,
		PositionSmooth: 0.4,
		RotationSmooth: 0.25,
		DragSmooth:     0.1,
		FloatSpeed:     1.5,
		FloatAmplitude: 0.05,
		FacePitch:      gomath.Pi / 2,
	}
}

// Drag is the accumulated user rotation of the focused object.
type Drag struct {
	Yaw   float64
	Pitch float64
}

// Object is the displayed pose of one placement.
type Object struct {
	Placement assets.Placement
	Position  mgl64.Vec3
	// Rotation is Euler radians applied in Y, X, Z order.
	Rotation mgl64.Vec3

	focused bool
	baseYaw float64
	drag    Drag
}

// Focused reports whether the object is the one being inspected.
func (o *Object) Focused() bool { return o.focused }

// BaseYaw returns the yaw locked in when focus began.
func (o *Object) BaseYaw() float64 { return o.baseYaw }

// Drag returns the accumulated drag offset.
func (o *Object) Drag() Drag { return o.drag }

// Transform returns the model matrix: translation times Y*X*Z rotation.
func (o *Object) Transform() mgl64.Mat4 {
	return Transform(o.Position, o.Rotation)
}

// Transform composes a model matrix from a position and YXZ Euler angles.
func Transform(pos, rot mgl64.Vec3) mgl64.Mat4 {
	r := mgl64.HomogRotate3DY(rot.Y()).
		Mul4(mgl64.HomogRotate3DX(rot.X())).
		Mul4(mgl64.HomogRotate3DZ(rot.Z()))
	return mgl64.Translate3D(pos.X(), pos.Y(), pos.Z()).Mul4(r)
}

// BaseYaw is the inspection yaw for a placement: the bearing from the room
// center, or zero for the center placement.
func BaseYaw(p assets.Placement) float64 {
	if p.IsCenter() {
		return 0
	}
	x, z := p.Position[0], p.Position[2]
	if gomath.Hypot(x, z) < 1e-9 {
		return 0
	}
	return gomath.Atan2(x, z)
}

// Poses owns every object's pose. It is written once per frame by the frame
// loop and read by the renderer and anchor projector.
type Poses struct {
	params  Params
	objects []*Object
	byID    map[string]*Object
	focused *Object
}

// NewPoses places every object at rest.
func NewPoses(table assets.Table, p Params) *Poses {
	ps := &Poses{
		params:  p,
		objects: make([]*Object, 0, len(table)),
		byID:    make(map[string]*Object, len(table)),
	}
	for _, pl := range table {
		o := &Object{
			Placement: pl,
			Position:  pl.Pos(),
			Rotation:  pl.Rot(),
		}
		ps.objects = append(ps.objects, o)
		ps.byID[pl.ID] = o
	}
	return ps
}

// Params returns the motion parameters.
func (ps *Poses) Params() Params { return ps.params }

// All returns the objects in placement order.
func (ps *Poses) All() []*Object { return ps.objects }

// Get returns the object for id, or nil.
func (ps *Poses) Get(id string) *Object { return ps.byID[id] }

// Focused returns the inspected object, or nil in ROOM.
func (ps *Poses) Focused() *Object { return ps.focused }

// Focus moves inspection to id. Both the object losing focus and the one
// gaining it start from zero drag; the new one locks its base yaw. An empty
// or unknown id clears focus. Refocusing the current object is a no-op.
func (ps *Poses) Focus(id string) {
	next := ps.byID[id]
	if next == ps.focused {
		return
	}
	if prev := ps.focused; prev != nil {
		prev.focused = false
		prev.drag = Drag{}
	}
	ps.focused = next
	if next != nil {
		next.focused = true
		next.drag = Drag{}
		next.baseYaw = BaseYaw(next.Placement)
	}
}

// HandleTransition follows focus changes from the view machine.
func (ps *Poses) HandleTransition(tr states.Transition) {
	if tr.FocusChanged() {
		ps.Focus(tr.To.FocusedID)
	}
}

// AddDrag accumulates a rotation on the focused object and reports whether
// one was focused.
func (ps *Poses) AddDrag(yaw, pitch float64) bool {
	if ps.focused == nil {
		return false
	}
	ps.focused.drag.Yaw += yaw
	ps.focused.drag.Pitch += pitch
	return true
}

// Update advances every object by dt seconds. elapsed drives the idle
// float.
func (ps *Poses) Update(dt, elapsed float64) {
	p := ps.params
	posTau := p.PositionSmooth / 2
	for _, o := range ps.objects {
		rest := o.Placement.Pos()
		if o.focused {
			target := mgl64.Vec3{rest.X(), p.InspectHeight, rest.Z()}
			o.Position = dmath.DampVec3(o.Position, target, posTau, dt)

			tau := p.DragSmooth / 2
			o.Rotation = mgl64.Vec3{
				dmath.Damp(o.Rotation.X(), p.FacePitch+o.drag.Pitch, tau, dt),
				dmath.DampAngle(o.Rotation.Y(), o.baseYaw+o.drag.Yaw, tau, dt),
				dmath.Damp(o.Rotation.Z(), 0, tau, dt),
			}
			continue
		}

		bob := gomath.Sin(elapsed*p.FloatSpeed) * p.FloatAmplitude
		target := mgl64.Vec3{rest.X(), rest.Y() + bob, rest.Z()}
		o.Position = dmath.DampVec3(o.Position, target, posTau, dt)

		tau := p.RotationSmooth / 2
		restRot := o.Placement.Rot()
		o.Rotation = mgl64.Vec3{
			dmath.Damp(o.Rotation.X(), restRot.X(), tau, dt),
			dmath.DampAngle(o.Rotation.Y(), restRot.Y(), tau, dt),
			dmath.Damp(o.Rotation.Z(), restRot.Z(), tau, dt),
		}
	}
}
