// SPDX-License-Identifier: MIT
// Package: hmm
//
// options.go: functional options for Model.
//
// Contract:
//   • Numeric values are validated by New and the Set* methods (ErrBadOption).
//   • WithRand/WithLogger panic on nil.

package hmm

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/katalvlaran/lvhmm/internal/logger"
	"github.com/katalvlaran/lvhmm/internal/rng"
)

// Defaults.
const (
	DefaultMaxIterations  = 100
	DefaultMinImprovement = 1.0e-5
	DefaultRandomRestarts = 5
	// maxTrialIterations caps each random-restart trial.
	maxTrialIterations = 10
)

type config struct {
	maxIter        int
	minImprovement float64
	restarts       int
	rng            *rand.Rand
	log            *zap.SugaredLogger
}

// Option customizes a Model.
type Option func(*config)

func (c *config) validate() error {
	if c.maxIter <= 0 || c.minImprovement <= 0 || c.restarts <= 0 {
		return ErrBadOption
	}

	return nil
}

// WithMaxIterations caps Baum-Welch iterations of the full run.
func WithMaxIterations(n int) Option {
	return func(c *config) { c.maxIter = n }
}

// WithMinImprovement sets the log-likelihood change below which training stops.
func WithMinImprovement(eps float64) Option {
	return func(c *config) { c.minImprovement = eps }
}

// WithRandomRestarts sets the number of random trials; 1 disables restarts.
func WithRandomRestarts(n int) Option {
	return func(c *config) { c.restarts = n }
}

// WithSeed seeds parameter draws (seed 0 maps to rng.DefaultSeed).
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = rng.FromSeed(seed) }
}

// WithRand provides an explicit RNG. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("hmm: WithRand(nil)")
	}
	return func(c *config) { c.rng = r }
}

// WithLogger routes training progress to l. Panics on nil.
func WithLogger(l *zap.SugaredLogger) Option {
	if l == nil {
		panic("hmm: WithLogger(nil)")
	}
	return func(c *config) { c.log = l }
}

func newConfig(opts ...Option) config {
	cfg := config{
		maxIter:        DefaultMaxIterations,
		minImprovement: DefaultMinImprovement,
		restarts:       DefaultRandomRestarts,
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

	return cfg
}
