// Package classifier: sentinel error set.
package classifier

import "errors"

var (
	// ErrEmptyDataset indicates a nil dataset or one without samples.
	ErrEmptyDataset = errors.New("classifier: no training samples")

	// ErrNotQuantized indicates data with more than one column.
	ErrNotQuantized = errors.New("classifier: data must be one column of quantized symbols")

	// ErrSymbolOutOfRange indicates a value that is not an integer in [0, numSymbols).
	ErrSymbolOutOfRange = errors.New("classifier: symbol out of range")

	// ErrNotTrained indicates prediction before a successful Train or Restore.
	ErrNotTrained = errors.New("classifier: not trained")

	// ErrBadOption indicates an invalid numeric setting.
	ErrBadOption = errors.New("classifier: invalid option value")

	// ErrBadSnapshot indicates an inconsistent persisted ensemble.
	ErrBadSnapshot = errors.New("classifier: invalid snapshot")
)
