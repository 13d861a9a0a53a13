// SPDX-License-Identifier: MIT
// Package: kmeans
//
// options.go: functional options and deterministic defaults.
//
// Contract:
//   • Numeric settings are validated by New/Set* and reported as errors.
//   • Option constructors PANIC only on nil pointers (programmer error).
//   • Determinism: seeding is done via WithSeed or WithRand; the default
//     stream is rng.FromSeed(0).

package kmeans

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/katalvlaran/lvhmm/internal/logger"
	"github.com/katalvlaran/lvhmm/internal/rng"
)

// Deterministic defaults (named, no magic numbers).
const (
	DefaultNumClusters  = 10
	DefaultMinEpochs    = 5
	DefaultMaxEpochs    = 1000
	DefaultMinChange    = 1.0e-5
	DefaultComputeTheta = true
	DefaultScaling      = false
)

// config aggregates all knobs of one Engine.
type config struct {
	numClusters  int
	minEpochs    int
	maxEpochs    int
	minChange    float64
	computeTheta bool
	scaling      bool
	rng          *rand.Rand
	log          *zap.SugaredLogger
}

// Option customizes an Engine.
type Option func(*config)

func defaultConfig() config {
	return config{
		numClusters:  DefaultNumClusters,
		minEpochs:    DefaultMinEpochs,
		maxEpochs:    DefaultMaxEpochs,
		minChange:    DefaultMinChange,
		computeTheta: DefaultComputeTheta,
		scaling:      DefaultScaling,
	}
}

// validate checks every numeric knob.
func (c *config) validate() error {
	if c.numClusters <= 0 {
		return ErrNoClusters
	}
	if c.minEpochs < 0 || c.maxEpochs <= 0 || c.minChange < 0 {
		return ErrBadOption
	}

	return nil
}

// WithNumClusters sets K.
func WithNumClusters(k int) Option {
	return func(c *config) { c.numClusters = k }
}

// WithMinEpochs sets the number of epochs that must pass before the
// no-change and theta rules may stop training.
func WithMinEpochs(n int) Option {
	return func(c *config) { c.minEpochs = n }
}

// WithMaxEpochs caps the number of epochs.
func WithMaxEpochs(n int) Option {
	return func(c *config) { c.maxEpochs = n }
}

// WithMinChange sets the theta tolerance.
func WithMinChange(eps float64) Option {
	return func(c *config) { c.minChange = eps }
}

// WithComputeTheta toggles dispersion tracking.
func WithComputeTheta(on bool) Option {
	return func(c *config) { c.computeTheta = on }
}

// WithScaling rescales training data into [0,1] per column before
// clustering; Result.Ranges keeps the source ranges.
func WithScaling(on bool) Option {
	return func(c *config) { c.scaling = on }
}

// WithSeed seeds the initialisation stream (seed 0 maps to rng.DefaultSeed).
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = rng.FromSeed(seed) }
}

// WithRand provides an explicit RNG. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("kmeans: WithRand(nil)")
	}
	return func(c *config) { c.rng = r }
}

// WithLogger routes per-epoch progress to l. Panics on nil.
func WithLogger(l *zap.SugaredLogger) Option {
	if l == nil {
		panic("kmeans: WithLogger(nil)")
	}
	return func(c *config) { c.log = l }
}

// newConfig applies opts in order over the defaults.
func newConfig(opts ...Option) config {
	cfg := defaultConfig()
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
