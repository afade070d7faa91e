package ledlayout

import "math"

// DefaultFlattenTolerance is the maximum distance between a flattened
// polyline and the source curve, in outline units.
const DefaultFlattenTolerance = 0.25

// contour is one closed loop of a flattened outline. pts holds the vertices
// without repeating the first one; the closing edge pts[len-1] -> pts[0] is
// implicit. cum[i] is the arc length from pts[0] to pts[i]; length includes
// the closing edge.
type contour struct {
	pts    []Point
	cum    []float64
	length float64
	offset float64 // arc-length position of this contour within the outline
}

// Outline is the flattened boundary of a filled region: one or more closed
// polyline contours (outer boundaries plus holes), with precomputed arc
// lengths for sampling. Outlines are immutable once built; regenerate them
// whenever the source glyph or edit changes.
type Outline struct {
	contours []contour
	total    float64
	bounds   Rect
}

// NewOutline flattens the path into polyline contours with the given
// tolerance (<= 0 uses DefaultFlattenTolerance). Subpaths that collapse to
// fewer than three distinct vertices are discarded; an empty or fully
// degenerate path yields an outline with zero arc length.
func NewOutline(p *Path, tolerance float64) *Outline {
	if tolerance <= 0 {
		tolerance = DefaultFlattenTolerance
	}
	o := &Outline{bounds: emptyBounds()}
	if p == nil {
		o.bounds = Rect{}
		return o
	}

	for _, poly := range flattenPath(p, tolerance) {
		c := newContour(poly)
		if c == nil {
			continue
		}
		c.offset = o.total
		o.total += c.length
		o.contours = append(o.contours, *c)
		for _, pt := range c.pts {
			o.bounds = expandToInclude(o.bounds, pt)
		}
	}
	if len(o.contours) == 0 {
		o.bounds = Rect{}
	}
	return o
}

// newContour builds a contour from a polyline, dropping repeated vertices.
// Returns nil for degenerate input (fewer than 3 distinct points or zero
// perimeter).
func newContour(poly []Point) *contour {
	const eps = 1e-9

	pts := make([]Point, 0, len(poly))
	for _, p := range poly {
		if len(pts) > 0 && p.DistanceSquared(pts[len(pts)-1]) < eps*eps {
			continue
		}
		pts = append(pts, p)
	}
	// Drop a trailing vertex that duplicates the start.
	if len(pts) > 1 && pts[len(pts)-1].DistanceSquared(pts[0]) < eps*eps {
		pts = pts[:len(pts)-1]
	}
	if len(pts) < 3 {
		return nil
	}

	cum := make([]float64, len(pts))
	for i := 1; i < len(pts); i++ {
		cum[i] = cum[i-1] + pts[i-1].Distance(pts[i])
	}
	length := cum[len(pts)-1] + pts[len(pts)-1].Distance(pts[0])
	if length <= 0 {
		return nil
	}
	return &contour{pts: pts, cum: cum, length: length}
}

// ArcLength returns the total perimeter of all contours.
func (o *Outline) ArcLength() float64 {
	return o.total
}

// BoundingBox returns the axis-aligned bounding box of the outline. It is
// computed from the current contours, never cached across edits.
func (o *Outline) BoundingBox() Rect {
	return o.bounds
}

// ContourCount returns the number of closed contours.
func (o *Outline) ContourCount() int {
	return len(o.contours)
}

// Contour returns the vertices of contour i. The returned slice is shared;
// callers must not modify it.
func (o *Outline) Contour(i int) []Point {
	return o.contours[i].pts
}

// contourAt locates the contour containing global arc distance d and returns
// it together with the local distance within the contour.
func (o *Outline) contourAt(d float64) (*contour, float64) {
	if len(o.contours) == 0 {
		return nil, 0
	}
	for i := range o.contours {
		c := &o.contours[i]
		if d < c.offset+c.length {
			return c, d - c.offset
		}
	}
	last := &o.contours[len(o.contours)-1]
	return last, last.length
}

// PointAt returns the point at arc distance d along the outline, walking
// contours in order. d is clamped into [0, ArcLength].
func (o *Outline) PointAt(d float64) Point {
	c, local := o.contourAt(clamp(d, 0, o.total))
	if c == nil {
		return Point{}
	}
	return c.pointAt(local)
}

// TangentAt returns the unit tangent at arc distance d, estimated by a
// central finite difference with the given half-step h. The sample wraps
// cyclically within the contour containing d, so tangents near a contour seam
// stay local to that contour.
func (o *Outline) TangentAt(d, h float64) Vec2 {
	c, local := o.contourAt(clamp(d, 0, o.total))
	if c == nil {
		return Vec2{}
	}
	if h <= 0 {
		h = 0.5
	}
	before := c.pointAt(wrap(local-h, c.length))
	after := c.pointAt(wrap(local+h, c.length))
	return after.Sub(before).Normalize()
}

// pointAt returns the point at local arc distance s within the contour.
// s must be in [0, length]; distances on the closing edge interpolate back
// toward the first vertex.
func (c *contour) pointAt(s float64) Point {
	n := len(c.pts)
	if s <= 0 {
		return c.pts[0]
	}
	if s >= c.length {
		return c.pts[0]
	}
	// Binary search for the segment with cum[i] <= s.
	lo, hi := 0, n-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if c.cum[mid] <= s {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	a := c.pts[lo]
	b := c.pts[(lo+1)%n]
	segStart := c.cum[lo]
	var segLen float64
	if lo == n-1 {
		segLen = c.length - segStart
	} else {
		segLen = c.cum[lo+1] - segStart
	}
	if segLen <= 0 {
		return a
	}
	return a.Lerp(b, (s-segStart)/segLen)
}

// wrap maps s into [0, length) cyclically.
func wrap(s, length float64) float64 {
	if length <= 0 {
		return 0
	}
	s = math.Mod(s, length)
	if s < 0 {
		s += length
	}
	return s
}

// clamp limits v to the range [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// flattenPath converts every subpath into a polyline within tolerance.
func flattenPath(p *Path, tolerance float64) [][]Point {
	var polys [][]Point
	var cur []Point
	var current, start Point

	flush := func() {
		if len(cur) >= 3 {
			polys = append(polys, cur)
		}
		cur = nil
	}

	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			flush()
			cur = append(cur, e.Point)
			current = e.Point
			start = e.Point
		case LineTo:
			cur = append(cur, e.Point)
			current = e.Point
		case QuadTo:
			q := QuadBez{P0: current, P1: e.Control, P2: e.Point}
			flattenQuad(q, tolerance*tolerance, func(pt Point) {
				cur = append(cur, pt)
			})
			current = e.Point
		case CubicTo:
			c := CubicBez{P0: current, P1: e.Control1, P2: e.Control2, P3: e.Point}
			flattenCubic(c, tolerance*tolerance, func(pt Point) {
				cur = append(cur, pt)
			})
			current = e.Point
		case Close:
			// The closing edge is implicit in the contour representation.
			flush()
			current = start
		}
	}
	flush()
	return polys
}

// flattenQuad recursively subdivides the quadratic until flat, emitting
// endpoint vertices (the start point is already in the polyline).
func flattenQuad(q QuadBez, tolSq float64, emit func(Point)) {
	if q.flatness() <= tolSq {
		emit(q.P2)
		return
	}
	q1, q2 := q.Subdivide()
	flattenQuad(q1, tolSq, emit)
	flattenQuad(q2, tolSq, emit)
}

// flattenCubic recursively subdivides the cubic until flat.
func flattenCubic(c CubicBez, tolSq float64, emit func(Point)) {
	if c.flatness() <= tolSq*16 {
		emit(c.P3)
		return
	}
	c1, c2 := c.Subdivide()
	flattenCubic(c1, tolSq, emit)
	flattenCubic(c2, tolSq, emit)
}
