package ledlayout

import "math"

// Geometry kernel: point containment, directed distance to the boundary, and
// capsule footprint containment. Every placement and validation decision is
// built from these three queries.

// Inside reports whether the point lies in the filled region of the outline
// under the even-odd fill rule. Holes (nested contours) toggle containment,
// matching the convention for font and vector outlines.
//
// The crossing test uses the half-open rule y0 <= y < y1 per edge, so a ray
// passing exactly through a vertex is counted once. Points exactly on the
// boundary may land on either side of the test; callers that need boundary
// leniency probe with a small interior inset instead.
func (o *Outline) Inside(p Point) bool {
	inside := false
	for ci := range o.contours {
		pts := o.contours[ci].pts
		n := len(pts)
		for i := 0; i < n; i++ {
			a := pts[i]
			b := pts[(i+1)%n]
			if (a.Y <= p.Y) == (b.Y <= p.Y) {
				continue
			}
			// X coordinate where the edge crosses the horizontal through p.
			x := a.X + (p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// distanceMarchStep is the coarse step for DistanceToEdge before binary
// refinement. Smaller steps resolve thinner features at higher cost.
const distanceMarchStep = 1.0

// DistanceToEdge marches from p along the unit direction dir and returns the
// distance at which the ray exits the filled region, capped at maxDist.
// If p itself is outside, the distance is 0. The result is refined by binary
// search to ~1e-2 units, and reports the last distance still inside, so the
// returned offset is always interior-contained.
func (o *Outline) DistanceToEdge(p Point, dir Vec2, maxDist float64) float64 {
	if maxDist <= 0 {
		return 0
	}
	if !o.Inside(p) {
		return 0
	}

	lastIn := 0.0
	firstOut := -1.0
	for t := distanceMarchStep; t <= maxDist; t += distanceMarchStep {
		if o.Inside(p.Add(dir.Mul(t))) {
			lastIn = t
		} else {
			firstOut = t
			break
		}
	}
	if firstOut < 0 {
		// Never exited within the cap. Check the cap itself before giving up.
		if o.Inside(p.Add(dir.Mul(maxDist))) {
			return maxDist
		}
		firstOut = maxDist
	}

	// Binary refine between the last inside and first outside distance.
	lo, hi := lastIn, firstOut
	for i := 0; i < 12 && hi-lo > 1e-2; i++ {
		mid := (lo + hi) / 2
		if o.Inside(p.Add(dir.Mul(mid))) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

// capsuleStations is the number of sample stations along the capsule axis.
const capsuleStations = 5

// CapsuleInside reports whether a capsule footprint (a segment of the given
// half-length with rounded caps of capRadius) centered at p and rotated by
// angle radians lies fully inside the filled region. The capsule is tested by
// sampling its axis and lateral extents; all samples must be inside.
func (o *Outline) CapsuleInside(p Point, angle, halfLen, capRadius float64) bool {
	axis := V2(math.Cos(angle), math.Sin(angle))
	lat := axis.Perp()

	if !o.Inside(p) {
		return false
	}
	// Axis tips including the cap extent.
	tip := halfLen + capRadius
	if !o.Inside(p.Add(axis.Mul(tip))) || !o.Inside(p.Add(axis.Mul(-tip))) {
		return false
	}

	for i := 0; i < capsuleStations; i++ {
		t := -halfLen + float64(i)*(2*halfLen)/float64(capsuleStations-1)
		base := p.Add(axis.Mul(t))
		if !o.Inside(base) {
			return false
		}
		if capRadius > 0 {
			if !o.Inside(base.Add(lat.Mul(capRadius))) {
				return false
			}
			if !o.Inside(base.Add(lat.Mul(-capRadius))) {
				return false
			}
		}
	}
	return true
}
