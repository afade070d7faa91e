package ledlayout

import (
	"math"
	"sort"
)

// Chain is a maximal run of centerline candidates that are mutually close:
// one physically contiguous stroke segment. Disjoint strokes of a character
// (the dot and stem of "i") form separate chains. No two chains share a
// candidate.
type Chain struct {
	Candidates []CenterCandidate
	Length     float64 // polyline arc length over consecutive candidates
}

// buildChains walks candidates in generation order and starts a new chain
// whenever the gap between consecutive candidates exceeds breakThreshold.
// The threshold must exceed normal inter-sample spacing but stay small enough
// to split genuinely disjoint strokes.
func buildChains(cands []CenterCandidate, breakThreshold float64) []Chain {
	if len(cands) == 0 {
		return nil
	}

	var chains []Chain
	cur := Chain{Candidates: []CenterCandidate{cands[0]}}
	for i := 1; i < len(cands); i++ {
		gap := cands[i].Point.Distance(cands[i-1].Point)
		if gap > breakThreshold {
			chains = append(chains, cur)
			cur = Chain{Candidates: []CenterCandidate{cands[i]}}
			continue
		}
		cur.Length += gap
		cur.Candidates = append(cur.Candidates, cands[i])
	}
	chains = append(chains, cur)

	Logger().Debug("chains built", "count", len(chains), "breakThreshold", breakThreshold)
	return chains
}

// chainBreakThreshold derives the chain gap limit from the sampling step and
// the module's rendered length.
func chainBreakThreshold(step, moduleRenderLength float64) float64 {
	return math.Max(step*4, moduleRenderLength*1.25)
}

// allocateCounts distributes count across chains proportional to chain
// length using floor plus largest remainder, so the totals always sum to
// count (capped by the number of available candidates overall). When every
// chain has zero length (degenerate single-point chains) the count is spread
// as evenly as possible instead.
func allocateCounts(chains []Chain, count int) []int {
	alloc := make([]int, len(chains))
	if count <= 0 || len(chains) == 0 {
		return alloc
	}

	var totalLength float64
	for _, c := range chains {
		totalLength += c.Length
	}

	if totalLength <= 0 {
		// Even spread, earlier chains get the remainder.
		base := count / len(chains)
		extra := count % len(chains)
		for i := range alloc {
			alloc[i] = base
			if i < extra {
				alloc[i]++
			}
		}
		return alloc
	}

	type remainder struct {
		index int
		frac  float64
	}
	remainders := make([]remainder, len(chains))
	assigned := 0
	for i, c := range chains {
		raw := c.Length / totalLength * float64(count)
		alloc[i] = int(math.Floor(raw))
		assigned += alloc[i]
		remainders[i] = remainder{index: i, frac: raw - math.Floor(raw)}
	}

	// Hand leftover units to the chains with the largest fractional parts.
	// Ties resolve by chain order to keep the result deterministic.
	sort.SliceStable(remainders, func(a, b int) bool {
		return remainders[a].frac > remainders[b].frac
	})
	for i := 0; assigned < count && i < len(remainders); i++ {
		alloc[remainders[i].index]++
		assigned++
	}
	return alloc
}

// pickEvenly subsamples a chain down to count candidates at even arc-length
// spacing. Chains at or below the requested count are returned whole. Each
// target distance maps to the nearest candidate; on collision the search
// moves outward (alternating left and right) to the nearest unused index.
func pickEvenly(c Chain, count int) []CenterCandidate {
	n := len(c.Candidates)
	if count <= 0 {
		return nil
	}
	if n <= count {
		return c.Candidates
	}

	// Cumulative arc length along the chain polyline.
	cum := make([]float64, n)
	for i := 1; i < n; i++ {
		cum[i] = cum[i-1] + c.Candidates[i].Point.Distance(c.Candidates[i-1].Point)
	}
	total := cum[n-1]
	if total <= 0 {
		return c.Candidates[:count]
	}

	used := make([]bool, n)
	picked := make([]CenterCandidate, 0, count)
	spacing := total / float64(count)

	for i := 0; i < count; i++ {
		target := spacing * (float64(i) + 0.5)
		idx := nearestIndex(cum, target)
		if used[idx] {
			idx = nearestUnused(used, idx)
			if idx < 0 {
				break
			}
		}
		used[idx] = true
		picked = append(picked, c.Candidates[idx])
	}
	return picked
}

// nearestIndex returns the index whose cumulative distance is closest to
// target. cum is sorted ascending.
func nearestIndex(cum []float64, target float64) int {
	i := sort.SearchFloat64s(cum, target)
	if i == 0 {
		return 0
	}
	if i >= len(cum) {
		return len(cum) - 1
	}
	if target-cum[i-1] <= cum[i]-target {
		return i - 1
	}
	return i
}

// nearestUnused searches outward from idx, alternating left and right, for
// the closest unused index. Returns -1 when every index is taken.
func nearestUnused(used []bool, idx int) int {
	n := len(used)
	for off := 1; off < n; off++ {
		if left := idx - off; left >= 0 && !used[left] {
			return left
		}
		if right := idx + off; right < n && !used[right] {
			return right
		}
	}
	return -1
}
