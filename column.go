package ledlayout

import (
	"math"
	"sort"
)

// Column expansion: each selected centerline point becomes 1-5 parallel
// positions offset along the local normal. The centermost column is placed
// first so the count budget is not exhausted by outer columns that may not
// fit on narrow strokes.

// columnOffsets returns symmetric column multipliers around the centerline,
// sorted by absolute value (center first). Ties keep the negative offset
// first for determinism.
func columnOffsets(columnCount int) []float64 {
	offsets := make([]float64, columnCount)
	for i := range offsets {
		offsets[i] = float64(i) - float64(columnCount-1)/2
	}
	sort.SliceStable(offsets, func(a, b int) bool {
		return math.Abs(offsets[a]) < math.Abs(offsets[b])
	})
	return offsets
}

// expandColumns turns base centerline candidates into final positions,
// verifying each column offset still fits inside the shape and stopping once
// the running total reaches target.
func expandColumns(o *Outline, base []CenterCandidate, cfg PlacementConfig, target int) []LEDPosition {
	offsets := columnOffsets(cfg.ColumnCount)
	halfLen := cfg.renderLength() / 2
	capRadius := cfg.renderHeight() / 2

	positions := make([]LEDPosition, 0, target)
	for _, cand := range base {
		usable := math.Max(cfg.renderHeight()*1.25, cand.LocalWidth*0.65)
		spacing := 0.0
		if cfg.ColumnCount > 1 {
			spacing = usable / float64(cfg.ColumnCount-1)
		}

		rotation := moduleRotation(cfg.Orientation, cand.Tangent)
		angle := rotation * math.Pi / 180

		for _, off := range offsets {
			p, ok := fitColumnPoint(o, cand, off*spacing, angle, halfLen, capRadius)
			if !ok {
				continue
			}
			positions = append(positions, LEDPosition{
				X:        p.X,
				Y:        p.Y,
				Rotation: rotation,
				Source:   SourceAuto,
			})
			if len(positions) >= target {
				return positions
			}
		}
	}
	return positions
}

// fitColumnPoint verifies a column offset along the candidate's normal.
// The capsule is first tested at 90% of the module half-length; on failure a
// shrunken retry at 75% of the offset with an 85% capsule runs, and finally
// plain point containment is accepted. The leniency keeps narrow strokes from
// starving multi-column layouts even though the footprint may then touch the
// boundary.
func fitColumnPoint(o *Outline, cand CenterCandidate, offset, angle, halfLen, capRadius float64) (Point, bool) {
	p := cand.Point.Add(cand.Normal.Mul(offset))
	if o.CapsuleInside(p, angle, halfLen*0.9, capRadius) {
		return p, true
	}

	if offset != 0 {
		shrunk := cand.Point.Add(cand.Normal.Mul(offset * 0.75))
		if o.CapsuleInside(shrunk, angle, halfLen*0.9*0.85, capRadius*0.85) {
			return shrunk, true
		}
		if o.Inside(shrunk) {
			Logger().Debug("capsule fallback to point containment",
				"x", shrunk.X, "y", shrunk.Y)
			return shrunk, true
		}
	}

	if o.Inside(p) {
		Logger().Debug("capsule fallback to point containment", "x", p.X, "y", p.Y)
		return p, true
	}
	return Point{}, false
}

// moduleRotation maps the configured orientation to a rotation in degrees.
func moduleRotation(orientation Orientation, tangent Vec2) float64 {
	switch orientation {
	case OrientationHorizontal:
		return 0
	case OrientationVertical:
		return 90
	default:
		return tangent.Atan2() * 180 / math.Pi
	}
}
