// Package matrix provides the small dense-matrix primitive used by the
// clustering and HMM packages.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 buffer with bounds-checked At/Set.
//   - Row extraction (Row) and growth by rows (AppendRow) for time-series
//     samples whose length is not known up front.
//   - Per-column range queries (Ranges) and linear rescaling of every value
//     into a target interval (Scale, ScaleWithRanges).
//
// It is not a general linear-algebra package: only the
// operations the learning algorithms need are implemented.
//
// See the examples in this package for usage patterns.
package matrix
