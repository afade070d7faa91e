package ledlayout

import (
	"math"
	"strings"
	"testing"
)

// pathEndpoints flattens the parsed path and returns the vertices of the
// first contour, which is enough to verify command decoding.
func pathEndpoints(t *testing.T, data string) []Point {
	t.Helper()
	p, err := ParsePathData(data)
	if err != nil {
		t.Fatalf("ParsePathData(%q) failed: %v", data, err)
	}
	o := NewOutline(p, 0)
	if o.ContourCount() == 0 {
		t.Fatalf("ParsePathData(%q) produced no contours", data)
	}
	return o.Contour(0)
}

func TestParsePathDataLines(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []Point
	}{
		{
			name: "absolute",
			data: "M 0 0 L 10 0 L 10 10 Z",
			want: []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10)},
		},
		{
			name: "relative",
			data: "m 5 5 l 10 0 l 0 10 z",
			want: []Point{Pt(5, 5), Pt(15, 5), Pt(15, 15)},
		},
		{
			name: "horizontal and vertical",
			data: "M 0 0 H 20 V 20 h -20 Z",
			want: []Point{Pt(0, 0), Pt(20, 0), Pt(20, 20), Pt(0, 20)},
		},
		{
			name: "implicit lineto after moveto",
			data: "M 0 0 10 0 10 10 Z",
			want: []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10)},
		},
		{
			name: "comma separators",
			data: "M0,0L10,0L10,10Z",
			want: []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10)},
		},
		{
			name: "negative and decimal numbers",
			data: "M -5.5 0 L 4.5 0 L 4.5 1.25e1 Z",
			want: []Point{Pt(-5.5, 0), Pt(4.5, 0), Pt(4.5, 12.5)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pathEndpoints(t, tt.data)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d vertices %v, want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if got[i].Distance(tt.want[i]) > 1e-9 {
					t.Errorf("vertex %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParsePathDataCurves(t *testing.T) {
	// A cubic from (0,0) to (30,0) bulging downward; the flattened contour
	// must pass near the curve midpoint (15, 7.5) for symmetric controls.
	pts := pathEndpoints(t, "M 0 0 C 10 10 20 10 30 0 L 30 20 L 0 20 Z")
	found := false
	for _, p := range pts {
		if math.Abs(p.X-15) < 2 && math.Abs(p.Y-7.5) < 1 {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("flattened cubic misses the expected midpoint; vertices %v", pts)
	}

	// Quadratic midpoint at (10, 5) for control (10, 10).
	pts = pathEndpoints(t, "M 0 0 Q 10 10 20 0 L 20 20 L 0 20 Z")
	found = false
	for _, p := range pts {
		if math.Abs(p.X-10) < 2 && math.Abs(p.Y-5) < 1 {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("flattened quadratic misses the expected midpoint; vertices %v", pts)
	}
}

// TestParsePathDataSmooth: S and T reflect the previous control point, so a
// smooth pair produces a continuous S-shape with no kink at the join.
func TestParsePathDataSmooth(t *testing.T) {
	p, err := ParsePathData("M 0 0 Q 10 10 20 0 T 40 0 L 40 20 L 0 20 Z")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	o := NewOutline(p, 0)
	// Reflection of control (10,10) about (20,0) is (30,-10): the second lobe
	// bends the other way.
	sawBelow, sawAbove := false, false
	for _, pt := range o.Contour(0) {
		if pt.X > 0 && pt.X < 20 && pt.Y > 1 {
			sawBelow = true
		}
		if pt.X > 20 && pt.X < 40 && pt.Y < -1 {
			sawAbove = true
		}
	}
	if !sawBelow || !sawAbove {
		t.Errorf("smooth quadratic did not produce an s-shape (below=%v above=%v)", sawBelow, sawAbove)
	}
}

func TestParsePathDataMultipleSubpaths(t *testing.T) {
	p, err := ParsePathData("M 0 0 L 10 0 L 10 10 L 0 10 Z M 20 0 L 30 0 L 30 10 L 20 10 Z")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	o := NewOutline(p, 0)
	if o.ContourCount() != 2 {
		t.Errorf("got %d contours, want 2", o.ContourCount())
	}
	if math.Abs(o.ArcLength()-80) > 1e-9 {
		t.Errorf("arc length = %v, want 80", o.ArcLength())
	}
}

func TestParsePathDataErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"leading number", "10 10 L 20 20"},
		{"command before moveto", "L 10 10"},
		{"arc unsupported", "M 0 0 A 5 5 0 0 1 10 10"},
		{"truncated coordinates", "M 0 0 L 10"},
		{"garbage number", "M 0 0 L ten 10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePathData(tt.data); err == nil {
				t.Errorf("ParsePathData(%q) succeeded, want error", tt.data)
			} else if !strings.HasPrefix(err.Error(), "ledlayout:") {
				t.Errorf("error %q missing package prefix", err)
			}
		})
	}
}

func TestReflectControl(t *testing.T) {
	cur, prevCtrl := Pt(20, 0), Pt(10, 10)

	got := reflectControl(cur, prevCtrl, 'Q', 'Q')
	if got.Distance(Pt(30, -10)) > 1e-9 {
		t.Errorf("reflection after Q = %+v, want (30, -10)", got)
	}

	// After a non-curve command the current point is used instead.
	got = reflectControl(cur, prevCtrl, 'L', 'Q')
	if got != cur {
		t.Errorf("reflection after L = %+v, want current point", got)
	}

	// Cross-family commands do not reflect either.
	got = reflectControl(cur, prevCtrl, 'C', 'Q')
	if got != cur {
		t.Errorf("reflection after C for Q family = %+v, want current point", got)
	}
}
