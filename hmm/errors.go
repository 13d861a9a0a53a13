// Package hmm: sentinel error set.
// Configuration errors leave the model untouched; training failures leave
// the previous parameters in place.
package hmm

import "errors"

var (
	// ErrNoStates indicates numStates <= 0.
	ErrNoStates = errors.New("hmm: number of states must be > 0")

	// ErrNoSymbols indicates numSymbols <= 0.
	ErrNoSymbols = errors.New("hmm: number of symbols must be > 0")

	// ErrBadDelta indicates a non-positive left-right band width.
	ErrBadDelta = errors.New("hmm: delta must be > 0")

	// ErrUnknownTopology indicates a topology other than Ergodic or LeftRight.
	ErrUnknownTopology = errors.New("hmm: unknown topology")

	// ErrBadOption indicates a non-positive iteration, tolerance or restart setting.
	ErrBadOption = errors.New("hmm: invalid option value")

	// ErrNotReady indicates use before Reset or FromParams.
	ErrNotReady = errors.New("hmm: model not initialised")

	// ErrEmptySequence indicates an observation sequence of length 0.
	ErrEmptySequence = errors.New("hmm: empty observation sequence")

	// ErrSymbolOutOfRange indicates a symbol outside [0, numSymbols).
	ErrSymbolOutOfRange = errors.New("hmm: symbol out of range")

	// ErrNoSequences indicates Train was called with no sequences.
	ErrNoSequences = errors.New("hmm: no training sequences")

	// ErrZeroDenominator indicates a state with zero expected occupancy
	// during re-estimation of A or B.
	ErrZeroDenominator = errors.New("hmm: zero denominator in re-estimation")

	// ErrNumerical indicates an infinite or NaN sequence log-likelihood.
	ErrNumerical = errors.New("hmm: non-finite log-likelihood")

	// ErrBadParams indicates restored parameters with the wrong shape or
	// rows that do not sum to 1.
	ErrBadParams = errors.New("hmm: invalid parameters")
)
