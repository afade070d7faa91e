package ledlayout

import (
	"math"
	"sort"
	"strings"
)

// ValidationReason classifies why a path edit was flagged.
type ValidationReason string

const (
	// ReasonSelfIntersection marks a candidate whose sampled polyline
	// crosses itself.
	ReasonSelfIntersection ValidationReason = "self_intersection"

	// ReasonCurvatureSpike marks a disproportionate growth in sampled
	// length or a single runaway segment, the signature of a bad drag.
	ReasonCurvatureSpike ValidationReason = "curvature_spike"

	// ReasonBBoxEscape marks a candidate extending too far beyond the
	// previous outline's bounding box.
	ReasonBBoxEscape ValidationReason = "bbox_escape"

	// ReasonDegenerateSegment marks empty or collapsed path data.
	ReasonDegenerateSegment ValidationReason = "degenerate_segment"
)

// Severity grades a validation finding. Warnings surface to the user but do
// not block the edit; errors do.
type Severity string

const (
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// ValidateOptions tunes the path edit gate.
type ValidateOptions struct {
	// Strict promotes every finding to an error.
	Strict bool
}

// PathEditMetrics carries validation diagnostics for observability. They
// never drive control flow.
type PathEditMetrics struct {
	PrevLength    float64 `json:"prevLength"`
	CandLength    float64 `json:"candLength"`
	MaxSegment    float64 `json:"maxSegment"`
	MedianSegment float64 `json:"medianSegment"`
	ContourCount  int     `json:"contourCount"`
}

// PathEditValidationResult is the gate decision for one candidate edit.
// OK is false only when Severity is SeverityError.
type PathEditValidationResult struct {
	OK       bool             `json:"ok"`
	Severity Severity         `json:"severity,omitempty"`
	Reason   ValidationReason `json:"reason,omitempty"`
	Metrics  PathEditMetrics  `json:"metrics"`
}

// ValidatePathEdit decides whether a free-hand edit to an outline is safe to
// persist. prevData and candData are SVG path data; baseBBox optionally
// overrides the previous outline's bounding box as the escape reference.
//
// Checks run in order — degenerate input, bounding-box escape,
// self-intersection, curvature spike — and the first failing check determines
// the reason. Inputs are never mutated.
func ValidatePathEdit(prevData, candData string, baseBBox *Rect, opts ValidateOptions) PathEditValidationResult {
	fail := func(reason ValidationReason, sev Severity, m PathEditMetrics) PathEditValidationResult {
		if opts.Strict {
			sev = SeverityError
		}
		return PathEditValidationResult{
			OK:       sev != SeverityError,
			Severity: sev,
			Reason:   reason,
			Metrics:  m,
		}
	}

	var metrics PathEditMetrics

	// Degenerate candidate: empty data, unparsable data, a collapsed
	// bounding box, or too few points to enclose area.
	if strings.TrimSpace(candData) == "" {
		return fail(ReasonDegenerateSegment, SeverityError, metrics)
	}
	cand, err := samplePathData(candData)
	if err != nil || cand.bounds.IsEmpty() || cand.pointCount < 3 {
		return fail(ReasonDegenerateSegment, SeverityError, metrics)
	}
	metrics.CandLength = cand.length
	metrics.MaxSegment = cand.maxSegment
	metrics.ContourCount = len(cand.contours)

	prev, prevErr := samplePathData(prevData)
	if prevErr == nil {
		metrics.PrevLength = prev.length
		metrics.MedianSegment = prev.medianSegment
	}

	// Bounding-box escape, measured against the supplied base box or the
	// previous outline's box.
	base := cand.bounds
	switch {
	case baseBBox != nil:
		base = *baseBBox
	case prevErr == nil:
		base = prev.bounds
	}
	tol := math.Max(3, base.Diagonal()*0.06)
	if escape := bboxEscape(cand.bounds, base); escape > tol {
		sev := SeverityWarn
		if escape > tol*2.5 {
			sev = SeverityError
		}
		return fail(ReasonBBoxEscape, sev, metrics)
	}

	// Self-intersection is never acceptable.
	if cand.selfIntersects() {
		return fail(ReasonSelfIntersection, SeverityError, metrics)
	}

	// Curvature spike: total length growing disproportionately, or one
	// sampled segment dwarfing the rest of the outline.
	if prevErr == nil && prev.length > 0 {
		if cand.length > prev.length*3.5 {
			return fail(ReasonCurvatureSpike, SeverityWarn, metrics)
		}
		segBound := math.Max(prev.medianSegment*14, base.Diagonal()*2.2)
		if cand.maxSegment > segBound {
			sev := SeverityWarn
			if cand.maxSegment > segBound*2.5 {
				sev = SeverityError
			}
			return fail(ReasonCurvatureSpike, sev, metrics)
		}
	}

	return PathEditValidationResult{OK: true, Metrics: metrics}
}

// sampledPath is a polyline rendering of path data used only for validation.
type sampledPath struct {
	contours      [][]Point
	bounds        Rect
	length        float64
	maxSegment    float64
	medianSegment float64
	pointCount    int
}

// samplePathData parses and samples path data into closed polylines with an
// adaptive per-contour sample count.
func samplePathData(data string) (*sampledPath, error) {
	p, err := ParsePathData(data)
	if err != nil {
		return nil, err
	}
	o := NewOutline(p, DefaultFlattenTolerance)

	sp := &sampledPath{bounds: o.BoundingBox()}
	var segments []float64
	for i := 0; i < o.ContourCount(); i++ {
		c := &o.contours[i]
		n := int(math.Ceil(c.length / 8))
		if n < 24 {
			n = 24
		} else if n > 220 {
			n = 220
		}

		pts := make([]Point, n)
		for j := 0; j < n; j++ {
			pts[j] = c.pointAt(c.length * float64(j) / float64(n))
		}
		sp.contours = append(sp.contours, pts)
		sp.pointCount += n

		for j := 0; j < n; j++ {
			seg := pts[j].Distance(pts[(j+1)%n])
			segments = append(segments, seg)
			sp.length += seg
			if seg > sp.maxSegment {
				sp.maxSegment = seg
			}
		}
	}
	if len(segments) > 0 {
		sort.Float64s(segments)
		sp.medianSegment = segments[len(segments)/2]
	}
	return sp, nil
}

// bboxEscape returns how far cand extends beyond base in the worst direction.
func bboxEscape(cand, base Rect) float64 {
	escape := math.Max(base.Min.X-cand.Min.X, base.Min.Y-cand.Min.Y)
	escape = math.Max(escape, cand.Max.X-base.Max.X)
	escape = math.Max(escape, cand.Max.Y-base.Max.Y)
	return math.Max(escape, 0)
}

// selfIntersects tests all non-adjacent sampled segment pairs, across all
// contours, for intersection. Colinear overlapping segments count.
func (sp *sampledPath) selfIntersects() bool {
	type seg struct {
		a, b    Point
		contour int
		index   int
		count   int // segment count of the owning contour
	}
	var segs []seg
	for ci, pts := range sp.contours {
		n := len(pts)
		for i := 0; i < n; i++ {
			segs = append(segs, seg{a: pts[i], b: pts[(i+1)%n], contour: ci, index: i, count: n})
		}
	}

	for i := 0; i < len(segs); i++ {
		for j := i + 1; j < len(segs); j++ {
			s, t := segs[i], segs[j]
			if s.contour == t.contour {
				// Skip adjacent segments (shared endpoint), including the
				// wrap-around pair.
				d := t.index - s.index
				if d == 1 || d == s.count-1 {
					continue
				}
			}
			if segmentsIntersect(s.a, s.b, t.a, t.b) {
				return true
			}
		}
	}
	return false
}

// segmentsIntersect reports whether segments ab and cd intersect, using the
// orientation sign test. Colinear segments intersect when their ranges
// overlap; touching endpoints count as intersecting.
func segmentsIntersect(a, b, c, d Point) bool {
	o1 := orient(a, b, c)
	o2 := orient(a, b, d)
	o3 := orient(c, d, a)
	o4 := orient(c, d, b)

	if ((o1 > 0) != (o2 > 0)) && ((o3 > 0) != (o4 > 0)) && o1 != 0 && o2 != 0 && o3 != 0 && o4 != 0 {
		return true
	}

	// Colinear or touching cases.
	if o1 == 0 && onSegment(a, b, c) {
		return true
	}
	if o2 == 0 && onSegment(a, b, d) {
		return true
	}
	if o3 == 0 && onSegment(c, d, a) {
		return true
	}
	if o4 == 0 && onSegment(c, d, b) {
		return true
	}
	return false
}

// orient returns the cross-product sign of the turn a->b->c: positive for one
// winding, negative for the other, zero for colinear.
func orient(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// onSegment reports whether colinear point p lies within segment ab's range.
func onSegment(a, b, p Point) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}
