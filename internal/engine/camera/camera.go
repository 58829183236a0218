// Package camera provides the damped showcase camera: framing rules that
// turn a view mode into a target pose, and a rig that eases toward it.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"

	dmath "github.com/Faultbox/dunehall/pkg/math"
)

// Pose is a camera placement. FOV is the vertical field of view in degrees.
type Pose struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	FOV      float64
}

// Framing holds the constants that map a view mode to a target pose.
type Framing struct {
	RoomPosition mgl64.Vec3
	RoomTarget   mgl64.Vec3
	RoomFOV      float64

	// Look-at height above a focused placement's ground position.
	InspectHeight float64

	ProductDistance float64
	ProductFOV      float64
	MacroDistance   float64
	MacroFOV        float64

	// Outward direction for the center placement, whose own direction from
	// the room center is undefined.
	CenterDirection mgl64.Vec3
}

// DefaultFraming returns the showcase framing.
func DefaultFraming() Framing {
	return Framing{
		RoomPosition:    mgl64.Vec3{0, 5, 12},
		RoomTarget:      mgl64.Vec3{0, 2, 0},
		RoomFOV:         45,
		InspectHeight:   3.5,
		ProductDistance: 2.5,
		ProductFOV:      45,
		MacroDistance:   1.2,
		MacroFOV:        25,
		CenterDirection: mgl64.Vec3{0, 0, 1},
	}
}

// Room returns the overview pose.
func (f Framing) Room() Pose {
	return Pose{Position: f.RoomPosition, Target: f.RoomTarget, FOV: f.RoomFOV}
}

// Outward returns the unit horizontal direction from the room center through
// (x, z). The center placement, or any point too close to the origin to
// normalize, gets CenterDirection.
func (f Framing) Outward(x, z float64, center bool) mgl64.Vec3 {
	fallback := f.CenterDirection
	if l := fallback.Len(); l > 1e-9 {
		fallback = fallback.Mul(1 / l)
	} else {
		fallback = mgl64.Vec3{0, 0, 1}
	}
	if center {
		return fallback
	}
	l := gomath.Hypot(x, z)
	if l < 1e-9 || gomath.IsNaN(l) || gomath.IsInf(l, 0) {
		return fallback
	}
	return mgl64.Vec3{x / l, 0, z / l}
}

// Product returns the inspection pose for a placement at pos. The camera
// sits outside the placement looking back toward the room center.
func (f Framing) Product(pos mgl64.Vec3, center, macro bool) Pose {
	target := mgl64.Vec3{pos.X(), f.InspectHeight, pos.Z()}
	dist, fov := f.ProductDistance, f.ProductFOV
	if macro {
		dist, fov = f.MacroDistance, f.MacroFOV
	}
	dir := f.Outward(pos.X(), pos.Z(), center)
	return Pose{Position: target.Add(dir.Mul(dist)), Target: target, FOV: fov}
}

// Rig eases a camera toward a target pose with frame-rate independent
// exponential damping.
type Rig struct {
	current Pose
	target  Pose

	// SmoothTime is roughly how long the rig takes to settle; the decay time
	// constant is half of it.
	SmoothTime float64
	// Threshold ends an animation once both position and look-at are this
	// close to the target.
	Threshold float64

	animating bool
}

// NewRig starts a rig resting at pose.
func NewRig(pose Pose, smoothTime, threshold float64) *Rig {
	return &Rig{
		current:    pose,
		target:     pose,
		SmoothTime: smoothTime,
		Threshold:  threshold,
	}
}

// Pose returns the current interpolated pose.
func (r *Rig) Pose() Pose { return r.current }

// Target returns the pose being approached.
func (r *Rig) Target() Pose { return r.target }

// Animating reports whether the rig is still moving.
func (r *Rig) Animating() bool { return r.animating }

// SetTarget retargets the rig. A changed target restarts the animation from
// wherever the camera currently is.
func (r *Rig) SetTarget(p Pose) {
	if p == r.target {
		return
	}
	r.target = p
	r.animating = true
}

// Update advances the rig by dt seconds and reports whether it is still
// animating.
func (r *Rig) Update(dt float64) bool {
	if !r.animating {
		return false
	}
	tau := r.SmoothTime / 2
	r.current.Position = dmath.DampVec3(r.current.Position, r.target.Position, tau, dt)
	r.current.Target = dmath.DampVec3(r.current.Target, r.target.Target, tau, dt)
	r.current.FOV = dmath.Damp(r.current.FOV, r.target.FOV, tau, dt)

	if r.Remaining() < r.Threshold && r.current.Target.Sub(r.target.Target).Len() < r.Threshold {
		r.animating = false
	}
	return r.animating
}

// Remaining is the position distance left to the target.
func (r *Rig) Remaining() float64 {
	return r.current.Position.Sub(r.target.Position).Len()
}

// ViewMatrix returns the world-to-view transform for the current pose.
func (r *Rig) ViewMatrix() mgl64.Mat4 {
	return View(r.current)
}

// View returns the world-to-view transform for p.
func View(p Pose) mgl64.Mat4 {
	upv := mgl64.Vec3{0, 1, 0}
	fwd := p.Target.Sub(p.Position)
	if fwd.Len() < 1e-9 {
		fwd = mgl64.Vec3{0, 0, -1}
		p.Target = p.Position.Add(fwd)
	}
	if gomath.Abs(fwd.Normalize().Dot(upv)) > 0.999 {
		upv = mgl64.Vec3{0, 0, -1}
	}
	return mgl64.LookAtV(p.Position, p.Target, upv)
}

// Projection returns the perspective transform for a vertical FOV in
// degrees. A non-positive aspect is treated as square.
func Projection(fov, aspect, near, far float64) mgl64.Mat4 {
	if aspect <= 0 || gomath.IsNaN(aspect) {
		aspect = 1
	}
	return mgl64.Perspective(mgl64.DegToRad(fov), aspect, near, far)
}
