package ledlayout

import (
	"math"
	"testing"
)

func TestVec2Operations(t *testing.T) {
	v := V2(3, 4)

	if got := v.Length(); got != 5 {
		t.Errorf("Length() = %v, want 5", got)
	}
	if got := v.Normalize(); math.Abs(got.Length()-1) > 1e-12 {
		t.Errorf("Normalize() length = %v, want 1", got.Length())
	}
	if got := (Vec2{}).Normalize(); !got.IsZero() {
		t.Errorf("Normalize of zero vector = %+v, want zero", got)
	}
	if got := v.Add(V2(1, 1)); got != V2(4, 5) {
		t.Errorf("Add = %+v", got)
	}
	if got := v.Sub(V2(1, 1)); got != V2(2, 3) {
		t.Errorf("Sub = %+v", got)
	}
	if got := v.Mul(2); got != V2(6, 8) {
		t.Errorf("Mul = %+v", got)
	}
	if got := v.Neg(); got != V2(-3, -4) {
		t.Errorf("Neg = %+v", got)
	}
	if got := v.Dot(V2(2, 1)); got != 10 {
		t.Errorf("Dot = %v, want 10", got)
	}
	if got := V2(1, 0).Cross(V2(0, 1)); got != 1 {
		t.Errorf("Cross = %v, want 1", got)
	}
}

// TestVec2Perp: rotating the tangent 90 degrees clockwise in y-down
// coordinates turns the walk direction into the inward-facing side.
func TestVec2Perp(t *testing.T) {
	tests := []struct {
		in, want Vec2
	}{
		{V2(1, 0), V2(0, 1)},
		{V2(0, 1), V2(-1, 0)},
		{V2(-1, 0), V2(0, -1)},
	}
	for _, tt := range tests {
		if got := tt.in.Perp(); got != tt.want {
			t.Errorf("Perp(%+v) = %+v, want %+v", tt.in, got, tt.want)
		}
		if d := tt.in.Dot(tt.in.Perp()); d != 0 {
			t.Errorf("Perp(%+v) not perpendicular, dot = %v", tt.in, d)
		}
	}
}

func TestVec2Atan2(t *testing.T) {
	if got := V2(1, 0).Atan2(); got != 0 {
		t.Errorf("Atan2 along +x = %v, want 0", got)
	}
	if got := V2(0, 1).Atan2(); math.Abs(got-math.Pi/2) > 1e-12 {
		t.Errorf("Atan2 along +y = %v, want pi/2", got)
	}
}

func TestPointOperations(t *testing.T) {
	a, b := Pt(1, 2), Pt(4, 6)

	if got := a.Distance(b); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
	if got := a.DistanceSquared(b); got != 25 {
		t.Errorf("DistanceSquared = %v, want 25", got)
	}
	if got := a.Sub(b); got != V2(-3, -4) {
		t.Errorf("Sub = %+v, want (-3, -4)", got)
	}
	if got := a.Add(V2(1, 1)); got != Pt(2, 3) {
		t.Errorf("Add = %+v, want (2, 3)", got)
	}
	if got := a.Lerp(b, 0.5); got != Pt(2.5, 4) {
		t.Errorf("Lerp = %+v, want (2.5, 4)", got)
	}
	if got := a.Midpoint(b); got != Pt(2.5, 4) {
		t.Errorf("Midpoint = %+v, want (2.5, 4)", got)
	}
}
