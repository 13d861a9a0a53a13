// SPDX-License-Identifier: MIT
// Package: classifier
//
// options.go: ensemble configuration: functional options plus validating
// setters. Setters affect the next Train only.

package classifier

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/katalvlaran/lvhmm/hmm"
	"github.com/katalvlaran/lvhmm/internal/logger"
	"github.com/katalvlaran/lvhmm/internal/rng"
)

// Defaults.
const (
	DefaultNumStates      = 5
	DefaultNumSymbols     = 10
	DefaultTopology       = hmm.LeftRight
	DefaultDelta          = 1
	DefaultMaxIterations  = 100
	DefaultMinImprovement = 1.0e-2
	DefaultRandomRestarts = hmm.DefaultRandomRestarts
	DefaultNullRejection  = false
)

type config struct {
	numStates      int
	numSymbols     int
	topology       hmm.Topology
	delta          int
	maxIter        int
	minImprovement float64
	restarts       int
	nullRejection  bool
	rng            *rand.Rand
	log            *zap.SugaredLogger
	modelLog       *zap.SugaredLogger
}

// Option customizes an Ensemble.
type Option func(*config)

func (c *config) validate() error {
	switch {
	case c.numStates <= 0:
		return hmm.ErrNoStates
	case c.numSymbols <= 0:
		return hmm.ErrNoSymbols
	case !c.topology.Valid():
		return hmm.ErrUnknownTopology
	case c.delta <= 0:
		return hmm.ErrBadDelta
	case c.maxIter <= 0 || !(c.minImprovement > 0) || c.restarts <= 0:
		return ErrBadOption
	}

	return nil
}

// WithNumStates sets the hidden state count of every class model.
func WithNumStates(n int) Option { return func(c *config) { c.numStates = n } }

// WithNumSymbols sets the alphabet size.
func WithNumSymbols(n int) Option { return func(c *config) { c.numSymbols = n } }

// WithTopology selects ergodic or left-right models.
func WithTopology(t hmm.Topology) Option { return func(c *config) { c.topology = t } }

// WithDelta sets the left-right band width.
func WithDelta(d int) Option { return func(c *config) { c.delta = d } }

// WithMaxIterations caps Baum-Welch iterations per class.
func WithMaxIterations(n int) Option { return func(c *config) { c.maxIter = n } }

// WithMinImprovement sets the per-class convergence tolerance.
func WithMinImprovement(eps float64) Option { return func(c *config) { c.minImprovement = eps } }

// WithRandomRestarts sets the random trials per class.
func WithRandomRestarts(n int) Option { return func(c *config) { c.restarts = n } }

// WithNullRejection toggles rejection to label 0.
func WithNullRejection(on bool) Option { return func(c *config) { c.nullRejection = on } }

// WithSeed seeds every class model through derived streams.
func WithSeed(seed int64) Option { return func(c *config) { c.rng = rng.FromSeed(seed) } }

// WithLogger routes training progress to l. Panics on nil.
func WithLogger(l *zap.SugaredLogger) Option {
	if l == nil {
		panic("classifier: WithLogger(nil)")
	}
	return func(c *config) { c.log = l }
}

// WithModelLogger routes per-class HMM training logs to l; by default they
// share the ensemble logger. Panics on nil.
func WithModelLogger(l *zap.SugaredLogger) Option {
	if l == nil {
		panic("classifier: WithModelLogger(nil)")
	}
	return func(c *config) { c.modelLog = l }
}

func newConfig(opts ...Option) config {
	cfg := config{
		numStates:      DefaultNumStates,
		numSymbols:     DefaultNumSymbols,
		topology:       DefaultTopology,
		delta:          DefaultDelta,
		maxIter:        DefaultMaxIterations,
		minImprovement: DefaultMinImprovement,
		restarts:       DefaultRandomRestarts,
		nullRejection:  DefaultNullRejection,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rng.FromSeed(0)
	}
	if cfg.log == nil {
		cfg.log = logger.Nop()
	}
	if cfg.modelLog == nil {
		cfg.modelLog = cfg.log
	}

	return cfg
}

// set applies one option and keeps it only if the result validates.
func (e *Ensemble) set(opt Option) error {
	next := e.cfg
	opt(&next)
	if err := next.validate(); err != nil {
		return err
	}
	e.cfg = next

	return nil
}

// SetNumStates changes N; n must be > 0.
func (e *Ensemble) SetNumStates(n int) error { return e.set(WithNumStates(n)) }

// SetNumSymbols changes M; n must be > 0.
func (e *Ensemble) SetNumSymbols(n int) error { return e.set(WithNumSymbols(n)) }

// SetTopology changes the model topology.
func (e *Ensemble) SetTopology(t hmm.Topology) error { return e.set(WithTopology(t)) }

// SetDelta changes the left-right band width; d must be > 0.
func (e *Ensemble) SetDelta(d int) error { return e.set(WithDelta(d)) }

// SetMaxIterations changes the iteration cap; n must be > 0.
func (e *Ensemble) SetMaxIterations(n int) error { return e.set(WithMaxIterations(n)) }

// SetMinImprovement changes the tolerance; eps must be > 0.
func (e *Ensemble) SetMinImprovement(eps float64) error { return e.set(WithMinImprovement(eps)) }

// SetRandomRestarts changes the restarts; n must be > 0.
func (e *Ensemble) SetRandomRestarts(n int) error { return e.set(WithRandomRestarts(n)) }

// SetNullRejection toggles null rejection; it also applies to a trained ensemble.
func (e *Ensemble) SetNullRejection(on bool) { e.cfg.nullRejection = on }

// NumStates returns N.
func (e *Ensemble) NumStates() int { return e.cfg.numStates }

// NumSymbols returns M.
func (e *Ensemble) NumSymbols() int { return e.cfg.numSymbols }

// Topology returns the model topology.
func (e *Ensemble) Topology() hmm.Topology { return e.cfg.topology }

// Delta returns the left-right band width.
func (e *Ensemble) Delta() int { return e.cfg.delta }

// NullRejection reports whether rejection is on.
func (e *Ensemble) NullRejection() bool { return e.cfg.nullRejection }
