// Package ledlayout computes LED module placements for channel-letter signage.
//
// # Overview
//
// Given the closed outline of a glyph or free-hand shape, ledlayout finds a
// set of evenly spaced, non-overlapping LED module positions that lie inside
// the filled region of the shape. Placement walks the outline, measures the
// locally inscribed width along the inward normal at each sample, groups the
// resulting centerline candidates into contiguous chains, distributes the
// requested module count across chains proportional to their arc length, and
// finally expands each selected point into one or more parallel columns.
//
// The package also contains a safety validator for free-hand outline edits:
// it rejects candidate paths that self-intersect, escape the original
// bounding box, or grow disproportionately in sampled length (a sign of an
// accidental spike introduced by a bad drag).
//
// # Quick Start
//
//	p := ledlayout.NewPath()
//	p.Rectangle(0, 0, 300, 120)
//	outline := ledlayout.NewOutline(p, 0.25)
//
//	positions := ledlayout.GenerateLEDPositions(outline, ledlayout.PlacementConfig{
//		Module:        ledlayout.ModuleInfo{ModulesPerFoot: 6, LengthInches: 2.6, HeightInches: 0.55},
//		PixelsPerInch: 10,
//		TargetCount:   12,
//	})
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Rotations in degrees for output positions, radians for internal math
//
// Interior containment uses the even-odd fill rule, matching the usual
// convention for font and vector outlines with holes.
//
// # Determinism
//
// All computations are pure functions of their inputs. Identical outlines and
// configurations always produce identical placements; there is no randomness
// and no hidden state.
package ledlayout
