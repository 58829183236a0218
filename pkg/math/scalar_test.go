package math

import (
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestSmoothstep(t *testing.T) {
	tests := []struct {
		name               string
		edge0, edge1, x, w float64
	}{
		{"below", 0, 1, -1, 0},
		{"above", 0, 1, 2, 1},
		{"mid", 0, 1, 0.5, 0.5},
		{"quarter", 0, 1, 0.25, 0.15625},
		{"reversed", 1, 0, 0.25, 0.84375},
		{"equal edges below", 1, 1, 0.5, 0},
		{"equal edges above", 1, 1, 1.5, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Smoothstep(tt.edge0, tt.edge1, tt.x)
			if gomath.Abs(got-tt.w) > 1e-12 {
				t.Errorf("Smoothstep(%v, %v, %v) = %v, want %v", tt.edge0, tt.edge1, tt.x, got, tt.w)
			}
		})
	}
}

func TestFract(t *testing.T) {
	if got := Fract(-0.25); got != 0.75 {
		t.Errorf("Fract(-0.25) = %v, want 0.75", got)
	}
	if got := Fract(3.5); got != 0.5 {
		t.Errorf("Fract(3.5) = %v, want 0.5", got)
	}
}

func TestDampIsFrameRateIndependent(t *testing.T) {
	coarse := Damp(0, 10, 0.3, 0.1)

	fine := 0.0
	for range 10 {
		fine = Damp(fine, 10, 0.3, 0.01)
	}

	if gomath.Abs(coarse-fine) > 1e-9 {
		t.Errorf("one 100ms step = %v, ten 10ms steps = %v", coarse, fine)
	}
}

func TestDampVec3Approaches(t *testing.T) {
	cur := mgl64.Vec3{0, 0, 0}
	target := mgl64.Vec3{3, 4, 0}
	prev := cur.Sub(target).Len()
	for range 50 {
		cur = DampVec3(cur, target, 0.25, 1.0/60)
		d := cur.Sub(target).Len()
		if d >= prev {
			t.Fatalf("distance did not decrease: %v -> %v", prev, d)
		}
		prev = d
	}
}

func TestDampZeroDt(t *testing.T) {
	if got := Damp(1, 5, 0.5, 0); got != 1 {
		t.Errorf("Damp with dt=0 moved to %v", got)
	}
	if got := Damp(1, 5, 0, 0.016); got != 5 {
		t.Errorf("Damp with tau=0 should snap, got %v", got)
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{gomath.Pi, gomath.Pi},
		{-gomath.Pi, gomath.Pi},
		{3 * gomath.Pi / 2, -gomath.Pi / 2},
		{-5 * gomath.Pi / 2, -gomath.Pi / 2},
		{gomath.NaN(), 0},
	}
	for _, tt := range tests {
		if got := WrapAngle(tt.in); gomath.Abs(got-tt.want) > 1e-12 {
			t.Errorf("WrapAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDampAngleTakesShortArc(t *testing.T) {
	// From just below +pi to just above -pi is a short step across the seam.
	got := DampAngle(3.0, -3.0, 0.1, 10)
	if gomath.Abs(got-(2*gomath.Pi-3.0)) > 1e-6 {
		t.Errorf("DampAngle crossed the long way: got %v", got)
	}
}
