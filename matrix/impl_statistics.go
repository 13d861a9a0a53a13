// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide the per-column range query and min-max rescaling used by the
//     clustering pre-processing step.
//
// Exposed API:
//   - (*Dense).Ranges()                        -> []MinMax  // per-column min/max
//   - (*Dense).Scale(lo, hi)                   -> error     // rescale every column into [lo,hi]
//   - (*Dense).ScaleWithRanges(ranges, lo, hi) -> error     // same, with externally supplied ranges
//   - ScaleValue(x, src, lo, hi)               -> float64   // scalar kernel shared with callers
//
// Determinism & Performance:
//   - Fixed i→j traversal for all explicit loops; flat-buffer access, no At/Set overhead.
//   - Zero-row matrices are treated as no-ops.

package matrix

import "fmt"

// Operation name constants for unified error wrapping.
const (
	opScale           = "Scale"
	opScaleWithRanges = "ScaleWithRanges"
)

// Ranges returns the observed [min,max] of every column.
// MAIN DESCRIPTION:
//   - One deterministic pass over the buffer; both bounds are seeded from row 0.
//
// Behavior highlights:
//   - 0×c matrices return c zero-valued ranges.
//
// Complexity:
//   - Time O(r*c), Space O(c).
func (m *Dense) Ranges() []MinMax {
	ranges := make([]MinMax, m.c)
	if m.r == 0 {
		return ranges
	}

	var i, j, base int
	var v float64
	for j = 0; j < m.c; j++ {
		ranges[j] = MinMax{Min: m.data[j], Max: m.data[j]}
	}
	for i = 1; i < m.r; i++ {
		base = i * m.c
		for j = 0; j < m.c; j++ {
			v = m.data[base+j]
			if v < ranges[j].Min {
				ranges[j].Min = v
			}
			if v > ranges[j].Max {
				ranges[j].Max = v
			}
		}
	}

	return ranges
}

// Scale linearly maps every column from its own observed range into [lo,hi].
// Equivalent to ScaleWithRanges(m.Ranges(), lo, hi).
//
// Errors:
//   - ErrBadRange when lo >= hi.
//
// Complexity:
//   - Time O(r*c), Space O(c).
func (m *Dense) Scale(lo, hi float64) error {
	if lo >= hi {
		return fmt.Errorf("%s: %w", opScale, ErrBadRange)
	}

	return m.ScaleWithRanges(m.Ranges(), lo, hi)
}

// ScaleWithRanges linearly maps column j from ranges[j] into [lo,hi], in place.
// MAIN DESCRIPTION:
//   - Reuse training-time ranges at inference time so both share one mapping.
//
// Behavior highlights:
//   - Constant columns (Min==Max) map to lo.
//   - Values outside ranges[j] are extrapolated, not clamped.
//
// Errors:
//   - ErrDimensionMismatch when len(ranges) != Cols().
//   - ErrBadRange when lo >= hi.
//
// Complexity:
//   - Time O(r*c), Space O(1).
func (m *Dense) ScaleWithRanges(ranges []MinMax, lo, hi float64) error {
	if len(ranges) != m.c {
		return fmt.Errorf("%s: %w", opScaleWithRanges, ErrDimensionMismatch)
	}
	if lo >= hi {
		return fmt.Errorf("%s: %w", opScaleWithRanges, ErrBadRange)
	}

	return m.Apply(func(_, j int, v float64) float64 {
		return ScaleValue(v, ranges[j], lo, hi)
	})
}

// ScaleValue maps x from src into [lo,hi]; a degenerate src maps to lo.
// Complexity: O(1).
func ScaleValue(x float64, src MinMax, lo, hi float64) float64 {
	if src.Min == src.Max {
		return lo
	}

	return (x-src.Min)*(hi-lo)/(src.Max-src.Min) + lo
}

// UnscaleValue maps y from [lo,hi] back into dst; a degenerate dst maps to dst.Min.
// For a non-degenerate dst it inverts ScaleValue.
// Complexity: O(1).
func UnscaleValue(y float64, dst MinMax, lo, hi float64) float64 {
	if dst.Min == dst.Max {
		return dst.Min
	}

	return (y-lo)*(dst.Max-dst.Min)/(hi-lo) + dst.Min
}
