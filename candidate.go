package ledlayout

import "math"

// CenterCandidate is a proposed module-center location on the local centerline
// of the shape. Candidates are ephemeral: generated, filtered, deduplicated
// and consumed within a single placement computation.
type CenterCandidate struct {
	Point        Point
	PathDistance float64 // arc distance of the originating outline sample
	LocalWidth   float64 // inscribed width along the inward normal
	Clearance    float64 // lesser of the two distances to the boundary
	Normal       Vec2    // unit inward normal at the sample
	Tangent      Vec2    // unit tangent at the sample
	ID           int     // emission index, stable for identical inputs
}

const (
	// minUsableWidth is the narrowest inscribed width that can still hold a
	// module, in outline units.
	minUsableWidth = 6.0

	// insetProbe is how far inside the boundary the normal probe starts.
	insetProbe = 1.5

	// maxWidthProbe caps the edge march when measuring local width.
	maxWidthProbe = 400.0
)

// samplingStep picks the arc-length stride between outline samples: denser
// for fewer target modules relative to shape size, bounded to avoid
// pathological over- or under-sampling.
func samplingStep(arcLength float64, targetCount int) float64 {
	if targetCount < 1 {
		targetCount = 1
	}
	return clamp(arcLength/(float64(targetCount)*12), 1.5, 4)
}

// generateCandidates walks the outline at the sampling step, measures the
// inscribed width along the inward normal at each sample, and emits
// deduplicated centerline candidates. The returned step feeds the chain-break
// threshold downstream.
func generateCandidates(o *Outline, targetCount int) ([]CenterCandidate, float64) {
	total := o.ArcLength()
	if total <= 0 {
		return nil, 0
	}
	step := samplingStep(total, targetCount)

	var raw []CenterCandidate
	for d := 0.0; d < total; d += step {
		if c, ok := candidateAt(o, d, step); ok {
			raw = append(raw, c)
		}
	}

	kept := dedupeCandidates(raw, step)
	for i := range kept {
		kept[i].ID = i
	}
	Logger().Debug("centerline candidates",
		"arcLength", total, "step", step, "raw", len(raw), "kept", len(kept))
	return kept, step
}

// candidateAt measures the shape at arc distance d and returns a candidate if
// the local region is usable.
func candidateAt(o *Outline, d, step float64) (CenterCandidate, bool) {
	p := o.PointAt(d)
	tangent := o.TangentAt(d, step*0.5)
	if tangent.IsZero() {
		return CenterCandidate{}, false
	}
	normal := tangent.Perp()

	// Probe a small inset along the normal; flip if it lands outside.
	inset := p.Add(normal.Mul(insetProbe))
	if !o.Inside(inset) {
		normal = normal.Neg()
		inset = p.Add(normal.Mul(insetProbe))
		if !o.Inside(inset) {
			// Open or degenerate region on both sides.
			return CenterCandidate{}, false
		}
	}

	forward := o.DistanceToEdge(inset, normal, maxWidthProbe)
	backward := o.DistanceToEdge(inset, normal.Neg(), maxWidthProbe)
	width := forward + backward
	if width < minUsableWidth {
		return CenterCandidate{}, false
	}

	// Recenter between the two boundary hits and re-verify: concave pockets
	// can push the midpoint outside the fill.
	center := inset.Add(normal.Mul((forward - backward) / 2))
	if !o.Inside(center) {
		return CenterCandidate{}, false
	}

	return CenterCandidate{
		Point:        center,
		PathDistance: d,
		LocalWidth:   width,
		Clearance:    math.Min(forward, backward),
		Normal:       normal,
		Tangent:      tangent,
	}, true
}

// gridKey addresses a cell of the dedup grid.
type gridKey struct {
	col, row int
}

// dedupeCandidates removes near-duplicate candidates produced by path
// curvature (opposite sides of a stroke meeting in the middle) using a
// spatial grid: a candidate is rejected when any previously accepted
// candidate in the surrounding 3x3 cells is closer than cellSize * 0.75.
// The grid keeps the scan local instead of an O(n^2) pass.
func dedupeCandidates(cands []CenterCandidate, step float64) []CenterCandidate {
	cellSize := step * 0.9
	if cellSize <= 0 {
		return cands
	}
	minDist := cellSize * 0.75
	minDistSq := minDist * minDist

	grid := make(map[gridKey][]int, len(cands))
	kept := make([]CenterCandidate, 0, len(cands))

	for _, c := range cands {
		col := int(math.Floor(c.Point.X / cellSize))
		row := int(math.Floor(c.Point.Y / cellSize))

		tooClose := false
	scan:
		for dc := -1; dc <= 1; dc++ {
			for dr := -1; dr <= 1; dr++ {
				for _, ki := range grid[gridKey{col + dc, row + dr}] {
					if kept[ki].Point.DistanceSquared(c.Point) < minDistSq {
						tooClose = true
						break scan
					}
				}
			}
		}
		if tooClose {
			continue
		}
		grid[gridKey{col, row}] = append(grid[gridKey{col, row}], len(kept))
		kept = append(kept, c)
	}
	return kept
}
