// Package dataset: sentinel error set.
package dataset

import "errors"

var (
	// ErrBadDimensions indicates a non-positive dimensionality.
	ErrBadDimensions = errors.New("dataset: number of dimensions must be > 0")

	// ErrDimensionMismatch indicates a sample whose column count differs from the dataset's.
	ErrDimensionMismatch = errors.New("dataset: sample dimensionality mismatch")

	// ErrNullClass indicates label 0 while the null class is not allowed.
	ErrNullClass = errors.New("dataset: class label 0 is reserved for the null class")

	// ErrNilSample indicates a nil sample matrix.
	ErrNilSample = errors.New("dataset: nil sample data")

	// ErrEmpty indicates an operation that needs at least one time step.
	ErrEmpty = errors.New("dataset: no data")

	// ErrIndexOutOfRange indicates a sample index outside [0, NumSamples).
	ErrIndexOutOfRange = errors.New("dataset: sample index out of range")

	// ErrFormat indicates malformed input while decoding the text format.
	ErrFormat = errors.New("dataset: malformed dataset file")
)
