package quantizer

import "errors"

var (
	// ErrNotTrained indicates use before a successful Train or Restore.
	ErrNotTrained = errors.New("quantizer: not trained")

	// ErrDimensionMismatch indicates an input width different from the trained D.
	ErrDimensionMismatch = errors.New("quantizer: input dimensionality mismatch")

	// ErrBadSnapshot indicates an inconsistent persisted codebook.
	ErrBadSnapshot = errors.New("quantizer: invalid snapshot")
)
