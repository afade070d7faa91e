package ledlayout

import (
	"math"
	"testing"
)

func candidatesAlongX(xs ...float64) []CenterCandidate {
	cands := make([]CenterCandidate, len(xs))
	for i, x := range xs {
		cands[i] = CenterCandidate{Point: Pt(x, 0), ID: i}
	}
	return cands
}

func TestBuildChains(t *testing.T) {
	tests := []struct {
		name       string
		cands      []CenterCandidate
		threshold  float64
		wantCounts []int
		wantLens   []float64
	}{
		{
			name:       "single run",
			cands:      candidatesAlongX(0, 4, 8, 12),
			threshold:  10,
			wantCounts: []int{4},
			wantLens:   []float64{12},
		},
		{
			name:       "split on gap",
			cands:      candidatesAlongX(0, 4, 8, 100, 104),
			threshold:  10,
			wantCounts: []int{3, 2},
			wantLens:   []float64{8, 4},
		},
		{
			name:       "every candidate isolated",
			cands:      candidatesAlongX(0, 50, 100),
			threshold:  10,
			wantCounts: []int{1, 1, 1},
			wantLens:   []float64{0, 0, 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chains := buildChains(tt.cands, tt.threshold)
			if len(chains) != len(tt.wantCounts) {
				t.Fatalf("got %d chains, want %d", len(chains), len(tt.wantCounts))
			}
			for i, c := range chains {
				if len(c.Candidates) != tt.wantCounts[i] {
					t.Errorf("chain %d has %d candidates, want %d", i, len(c.Candidates), tt.wantCounts[i])
				}
				if math.Abs(c.Length-tt.wantLens[i]) > 1e-9 {
					t.Errorf("chain %d length = %v, want %v", i, c.Length, tt.wantLens[i])
				}
			}
		})
	}

	if got := buildChains(nil, 10); got != nil {
		t.Errorf("buildChains(nil) = %v, want nil", got)
	}
}

func TestChainBreakThreshold(t *testing.T) {
	if got := chainBreakThreshold(4, 26); got != 32.5 {
		t.Errorf("module length should dominate: got %v, want 32.5", got)
	}
	if got := chainBreakThreshold(10, 8); got != 40 {
		t.Errorf("sampling step should dominate: got %v, want 40", got)
	}
}

func TestAllocateCounts(t *testing.T) {
	tests := []struct {
		name    string
		lengths []float64
		count   int
		want    []int
	}{
		{"proportional exact", []float64{75, 25}, 4, []int{3, 1}},
		{"largest remainder", []float64{50, 30, 20}, 4, []int{2, 1, 1}},
		{"equal ties go to earlier chains", []float64{60, 60, 60}, 4, []int{2, 1, 1}},
		{"all zero length spreads evenly", []float64{0, 0, 0}, 4, []int{2, 1, 1}},
		{"zero count", []float64{10, 20}, 0, []int{0, 0}},
		{"single chain", []float64{42}, 7, []int{7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chains := make([]Chain, len(tt.lengths))
			for i, l := range tt.lengths {
				chains[i] = Chain{Length: l}
			}
			got := allocateCounts(chains, tt.count)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d allocations, want %d", len(got), len(tt.want))
			}
			sum := 0
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("allocation = %v, want %v", got, tt.want)
					break
				}
				sum += got[i]
			}
			if sum != tt.count {
				t.Errorf("allocations sum to %d, want %d", sum, tt.count)
			}
		})
	}
}

func TestPickEvenly(t *testing.T) {
	chain := Chain{Candidates: candidatesAlongX(0, 10, 20, 30, 40), Length: 40}

	t.Run("subsample to two", func(t *testing.T) {
		got := pickEvenly(chain, 2)
		if len(got) != 2 {
			t.Fatalf("picked %d, want 2", len(got))
		}
		if got[0].Point.X != 10 || got[1].Point.X != 30 {
			t.Errorf("picked x = %v, %v; want 10, 30", got[0].Point.X, got[1].Point.X)
		}
	})

	t.Run("count covers chain", func(t *testing.T) {
		got := pickEvenly(chain, 5)
		if len(got) != 5 {
			t.Errorf("picked %d, want all 5", len(got))
		}
		got = pickEvenly(chain, 9)
		if len(got) != 5 {
			t.Errorf("picked %d, want all 5", len(got))
		}
	})

	t.Run("zero count", func(t *testing.T) {
		if got := pickEvenly(chain, 0); got != nil {
			t.Errorf("picked %v, want nil", got)
		}
	})

	t.Run("collisions resolve to distinct candidates", func(t *testing.T) {
		clustered := Chain{Candidates: candidatesAlongX(0, 0.1, 0.2, 10)}
		got := pickEvenly(clustered, 3)
		if len(got) != 3 {
			t.Fatalf("picked %d, want 3", len(got))
		}
		seen := map[int]bool{}
		for _, c := range got {
			if seen[c.ID] {
				t.Fatalf("candidate %d picked twice", c.ID)
			}
			seen[c.ID] = true
		}
	})
}

func TestNearestIndex(t *testing.T) {
	cum := []float64{0, 10, 20, 30}
	tests := []struct {
		target float64
		want   int
	}{
		{-5, 0},
		{0, 0},
		{4, 0},
		{6, 1},
		{15, 1}, // ties round down
		{29, 3},
		{100, 3},
	}
	for _, tt := range tests {
		if got := nearestIndex(cum, tt.target); got != tt.want {
			t.Errorf("nearestIndex(%v) = %d, want %d", tt.target, got, tt.want)
		}
	}
}

func TestNearestUnused(t *testing.T) {
	tests := []struct {
		name string
		used []bool
		idx  int
		want int
	}{
		{"left preferred on tie", []bool{false, true, false}, 1, 0},
		{"right when left taken", []bool{true, true, false}, 1, 2},
		{"all taken", []bool{true, true, true}, 1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nearestUnused(tt.used, tt.idx); got != tt.want {
				t.Errorf("nearestUnused = %d, want %d", got, tt.want)
			}
		})
	}
}
