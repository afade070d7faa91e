package ledlayout

import (
	"math"
	"testing"
)

func squareOutline(x, y, size float64) *Outline {
	p := NewPath()
	p.Rectangle(x, y, size, size)
	return NewOutline(p, 0)
}

// donutOutline is a square with a square hole, both wound the same way.
// The even-odd rule makes the inner square a hole regardless of winding.
func donutOutline() *Outline {
	p := NewPath()
	p.Rectangle(0, 0, 100, 100)
	p.Rectangle(30, 30, 40, 40)
	return NewOutline(p, 0)
}

func TestInside(t *testing.T) {
	tests := []struct {
		name    string
		outline *Outline
		point   Point
		want    bool
	}{
		{"square center", squareOutline(0, 0, 100), Pt(50, 50), true},
		{"square near edge", squareOutline(0, 0, 100), Pt(1, 50), true},
		{"square outside left", squareOutline(0, 0, 100), Pt(-10, 50), false},
		{"square outside below", squareOutline(0, 0, 100), Pt(50, 150), false},
		{"donut ring", donutOutline(), Pt(10, 50), true},
		{"donut hole", donutOutline(), Pt(50, 50), false},
		{"donut ring right of hole", donutOutline(), Pt(85, 50), true},
		{"donut outside", donutOutline(), Pt(200, 50), false},
		{"empty outline", NewOutline(NewPath(), 0), Pt(0, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.outline.Inside(tt.point); got != tt.want {
				t.Errorf("Inside(%+v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

// TestInsideVertexRay checks the half-open crossing rule: a horizontal ray
// through a vertex must not double-count the two edges meeting there.
func TestInsideVertexRay(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(50, 50)
	p.LineTo(100, 0)
	p.LineTo(100, 100)
	p.LineTo(0, 100)
	p.Close()
	o := NewOutline(p, 0)

	// The ray through y=50 passes exactly through the notch vertex (50, 50).
	if !o.Inside(Pt(10, 50)) {
		t.Error("point left of the notch vertex should be inside")
	}
	if !o.Inside(Pt(90, 50)) {
		t.Error("point right of the notch vertex should be inside")
	}
	if o.Inside(Pt(-5, 50)) {
		t.Error("point outside at vertex height should be outside")
	}
}

func TestDistanceToEdge(t *testing.T) {
	o := squareOutline(0, 0, 100)

	tests := []struct {
		name    string
		from    Point
		dir     Vec2
		maxDist float64
		want    float64
		tol     float64
	}{
		{"center to right wall", Pt(50, 50), V2(1, 0), 400, 50, 0.05},
		{"center to top wall", Pt(50, 50), V2(0, -1), 400, 50, 0.05},
		{"off-center short side", Pt(10, 50), V2(-1, 0), 400, 10, 0.05},
		{"capped before wall", Pt(50, 50), V2(1, 0), 20, 20, 1e-9},
		{"starting outside", Pt(150, 50), V2(1, 0), 400, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := o.DistanceToEdge(tt.from, tt.dir, tt.maxDist)
			if math.Abs(got-tt.want) > tt.tol {
				t.Errorf("DistanceToEdge = %v, want %v (tol %v)", got, tt.want, tt.tol)
			}
			// The returned offset must itself remain interior (or zero).
			if got > 0 && !o.Inside(tt.from.Add(tt.dir.Mul(got))) {
				t.Errorf("point at returned distance %v is not inside", got)
			}
		})
	}
}

// TestDistanceToEdgeHole checks that a hole boundary stops the march.
func TestDistanceToEdgeHole(t *testing.T) {
	o := donutOutline()
	got := o.DistanceToEdge(Pt(10, 50), V2(1, 0), 400)
	if math.Abs(got-20) > 0.05 {
		t.Errorf("march into hole stopped at %v, want ~20", got)
	}
}

func TestCapsuleInside(t *testing.T) {
	o := squareOutline(0, 0, 100)

	tests := []struct {
		name      string
		center    Point
		angle     float64
		halfLen   float64
		capRadius float64
		want      bool
	}{
		{"small centered horizontal", Pt(50, 50), 0, 13, 3, true},
		{"small centered vertical", Pt(50, 50), math.Pi / 2, 13, 3, true},
		{"too long", Pt(50, 50), 0, 60, 3, false},
		{"center outside", Pt(150, 50), 0, 5, 2, false},
		{"tip pokes out", Pt(90, 50), 0, 13, 3, false},
		{"lateral pokes out", Pt(50, 2), 0, 13, 3, false},
		{"diagonal fits", Pt(50, 50), math.Pi / 4, 13, 3, true},
		{"zero cap radius", Pt(50, 50), 0, 45, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := o.CapsuleInside(tt.center, tt.angle, tt.halfLen, tt.capRadius)
			if got != tt.want {
				t.Errorf("CapsuleInside = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestCapsuleInsideHole checks that a capsule straddling a hole is rejected
// even when both tips are in the filled ring.
func TestCapsuleInsideHole(t *testing.T) {
	o := donutOutline()
	// Axis spans the hole: center in the hole region.
	if o.CapsuleInside(Pt(50, 50), 0, 30, 2) {
		t.Error("capsule centered in the hole should be rejected")
	}
	// Fully inside the left band of the ring.
	if !o.CapsuleInside(Pt(15, 50), math.Pi/2, 10, 3) {
		t.Error("capsule in the ring band should fit")
	}
}
