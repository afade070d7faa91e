package ledlayout

import (
	"fmt"
	"math"
)

// Orientation selects how module footprints are rotated.
type Orientation string

const (
	// OrientationAuto rotates each module to the local outline tangent.
	OrientationAuto Orientation = "auto"

	// OrientationHorizontal keeps every module at 0 degrees.
	OrientationHorizontal Orientation = "horizontal"

	// OrientationVertical keeps every module at 90 degrees.
	OrientationVertical Orientation = "vertical"
)

// PositionSource tags how an LED position came to exist.
type PositionSource string

const (
	// SourceAuto marks positions produced by the placement engine.
	SourceAuto PositionSource = "auto"

	// SourceManual marks positions placed or moved by hand.
	SourceManual PositionSource = "manual"
)

// AutoTargetCount asks GenerateLEDPositions to derive the module count from
// the module's density and the outline's measured arc length.
const AutoTargetCount = -1

// ModuleInfo carries the physical data of an LED module SKU that placement
// needs. Catalog lookups (see the catalog package) produce these.
type ModuleInfo struct {
	// ModulesPerFoot is the manufacturer's linear density rating.
	ModulesPerFoot float64

	// LengthInches and HeightInches are the module footprint dimensions.
	LengthInches float64
	HeightInches float64
}

// defaultModule is used when a zero ModuleInfo is supplied.
var defaultModule = ModuleInfo{ModulesPerFoot: 6, LengthInches: 2.6, HeightInches: 0.55}

// PlacementConfig controls a placement computation. The zero value of every
// field has a sensible default except TargetCount: 0 explicitly requests no
// modules, AutoTargetCount derives the count from ModulesPerFoot.
type PlacementConfig struct {
	// Module is the physical module being placed.
	Module ModuleInfo

	// PixelsPerInch converts outline units to physical inches. Default 10.
	PixelsPerInch float64

	// TargetCount is the requested total module count. Use AutoTargetCount
	// to derive it from the module density and outline arc length.
	TargetCount int

	// ColumnCount is the number of parallel module columns, 1 to 5.
	ColumnCount int

	// Orientation selects module rotation. Default OrientationAuto.
	Orientation Orientation
}

// DefaultPlacementConfig returns a config for the given module with automatic
// target count, a single column, and auto orientation.
func DefaultPlacementConfig(m ModuleInfo) PlacementConfig {
	return PlacementConfig{
		Module:        m,
		PixelsPerInch: 10,
		TargetCount:   AutoTargetCount,
		ColumnCount:   1,
		Orientation:   OrientationAuto,
	}
}

// withDefaults normalizes out-of-range fields.
func (cfg PlacementConfig) withDefaults() PlacementConfig {
	if cfg.Module.ModulesPerFoot <= 0 {
		cfg.Module.ModulesPerFoot = defaultModule.ModulesPerFoot
	}
	if cfg.Module.LengthInches <= 0 {
		cfg.Module.LengthInches = defaultModule.LengthInches
	}
	if cfg.Module.HeightInches <= 0 {
		cfg.Module.HeightInches = defaultModule.HeightInches
	}
	if cfg.PixelsPerInch <= 0 {
		cfg.PixelsPerInch = 10
	}
	if cfg.ColumnCount < 1 {
		cfg.ColumnCount = 1
	} else if cfg.ColumnCount > 5 {
		cfg.ColumnCount = 5
	}
	switch cfg.Orientation {
	case OrientationAuto, OrientationHorizontal, OrientationVertical:
	default:
		cfg.Orientation = OrientationAuto
	}
	return cfg
}

// renderLength returns the module footprint length in outline units.
func (cfg PlacementConfig) renderLength() float64 {
	return cfg.Module.LengthInches * cfg.PixelsPerInch
}

// renderHeight returns the module footprint height in outline units.
func (cfg PlacementConfig) renderHeight() float64 {
	return cfg.Module.HeightInches * cfg.PixelsPerInch
}

// LEDPosition is a final placed module: the only artifact that crosses the
// engine boundary to rendering and persistence.
type LEDPosition struct {
	X        float64        `json:"x"`
	Y        float64        `json:"y"`
	Rotation float64        `json:"rotation"` // degrees
	ID       string         `json:"id,omitempty"`
	Source   PositionSource `json:"source"`
}

// GenerateLEDPositions computes evenly spaced module positions inside the
// outline. It returns an ordered list (emission order, not spatially
// meaningful) whose length never exceeds the target count. Degenerate input
// (nil or zero-length outline, target count 0) yields an empty result.
func GenerateLEDPositions(o *Outline, cfg PlacementConfig) []LEDPosition {
	cfg = cfg.withDefaults()
	if o == nil || o.ArcLength() <= 0 {
		return nil
	}

	target := cfg.TargetCount
	if target == AutoTargetCount || target < 0 {
		target = derivedTargetCount(o.ArcLength(), cfg)
	}
	if target <= 0 {
		return nil
	}

	candidates, step := generateCandidates(o, target)
	if len(candidates) == 0 {
		return nil
	}

	chains := buildChains(candidates, chainBreakThreshold(step, cfg.renderLength()))

	// Base positions are allocated per centerline; columns multiply them.
	baseCount := int(math.Ceil(float64(target) / float64(cfg.ColumnCount)))
	counts := allocateCounts(chains, baseCount)

	var base []CenterCandidate
	for i, c := range chains {
		base = append(base, pickEvenly(c, counts[i])...)
	}

	positions := expandColumns(o, base, cfg, target)
	for i := range positions {
		positions[i].ID = fmt.Sprintf("led-%d", i)
	}
	if len(positions) < target {
		Logger().Warn("target count not reached",
			"target", target, "placed", len(positions))
	}
	return positions
}

// derivedTargetCount converts the outline's perimeter into a module count via
// the module's linear density: modulesPerFoot * (arcLength in feet).
func derivedTargetCount(arcLength float64, cfg PlacementConfig) int {
	feet := arcLength / cfg.PixelsPerInch / 12
	n := int(math.Round(cfg.Module.ModulesPerFoot * feet))
	if n < 1 {
		n = 1
	}
	return n
}

// MergeManualPositions combines generated positions with hand-placed
// overrides. Manual positions whose centers have left the outline (after an
// edit regenerated it) are dropped; the survivors keep their IDs and are
// tagged SourceManual. Auto positions come first, in their emission order.
func MergeManualPositions(o *Outline, auto, manual []LEDPosition) []LEDPosition {
	merged := make([]LEDPosition, 0, len(auto)+len(manual))
	merged = append(merged, auto...)
	for _, m := range manual {
		if o != nil && !o.Inside(Pt(m.X, m.Y)) {
			Logger().Debug("dropping manual position outside outline", "id", m.ID)
			continue
		}
		m.Source = SourceManual
		merged = append(merged, m)
	}
	return merged
}
