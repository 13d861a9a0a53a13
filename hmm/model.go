// SPDX-License-Identifier: MIT
// Package: hmm
//
// model.go: parameters, reset and lifecycle of a discrete HMM.

package hmm

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvhmm/internal/rng"
)

// Uniform draw interval for fresh parameters; keeps every weight well away from 0.
const (
	drawLo = 0.9
	drawHi = 1.0
)

// StochasticTolerance is the row-sum tolerance used by CheckStochastic callers.
const StochasticTolerance = 1e-6

// Params holds the model probabilities.
//   - A: N×N transitions, rows sum to 1.
//   - B: N×M emissions, rows sum to 1.
//   - Pi: length-N initial distribution, sums to 1.
type Params struct {
	A  [][]float64 `json:"a"`
	B  [][]float64 `json:"b"`
	Pi []float64   `json:"pi"`
}

// Clone returns a deep copy.
func (p Params) Clone() Params {
	return Params{A: cloneRows(p.A), B: cloneRows(p.B), Pi: append([]float64(nil), p.Pi...)}
}

func cloneRows(src [][]float64) [][]float64 {
	if src == nil {
		return nil
	}
	out := make([][]float64, len(src))
	for i, row := range src {
		out[i] = append([]float64(nil), row...)
	}

	return out
}

func newRows(r, c int) [][]float64 {
	buf := make([]float64, r*c)
	out := make([][]float64, r)
	for i := range out {
		out[i] = buf[i*c : (i+1)*c : (i+1)*c]
	}

	return out
}

// normalize scales v to sum to 1; all-zero vectors are left as is.
func normalize(v []float64) {
	if s := floats.Sum(v); s > 0 {
		floats.Scale(1/s, v)
	}
}

// Model is a discrete HMM for one class of sequences. A Model is not safe
// for concurrent use.
type Model struct {
	cfg config

	numStates  int
	numSymbols int
	topology   Topology
	delta      int

	params Params
	state  State

	trainingLog     []float64
	iterations      int
	estimatedStates []int
}

// New creates an Uninitialized model.
//
// Errors:
//   - ErrBadOption for non-positive iterations, tolerance or restarts.
func New(opts ...Option) (*Model, error) {
	cfg := newConfig(opts...)
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Model{cfg: cfg}, nil
}

// NumStates returns N.
func (m *Model) NumStates() int { return m.numStates }

// NumSymbols returns M.
func (m *Model) NumSymbols() int { return m.numSymbols }

// Topology returns the structural variant.
func (m *Model) Topology() Topology { return m.topology }

// Delta returns the left-right band width.
func (m *Model) Delta() int { return m.delta }

// State returns the lifecycle stage.
func (m *Model) State() State { return m.state }

// MaxIterations returns the full-run iteration cap.
func (m *Model) MaxIterations() int { return m.cfg.maxIter }

// MinImprovement returns the convergence tolerance.
func (m *Model) MinImprovement() float64 { return m.cfg.minImprovement }

// RandomRestarts returns the number of random trials.
func (m *Model) RandomRestarts() int { return m.cfg.restarts }

// SetMaxIterations changes the iteration cap; n must be > 0.
func (m *Model) SetMaxIterations(n int) error {
	if n <= 0 {
		return ErrBadOption
	}
	m.cfg.maxIter = n

	return nil
}

// SetMinImprovement changes the convergence tolerance; eps must be > 0.
func (m *Model) SetMinImprovement(eps float64) error {
	if !(eps > 0) {
		return ErrBadOption
	}
	m.cfg.minImprovement = eps

	return nil
}

// SetRandomRestarts changes the number of random trials; n must be > 0.
func (m *Model) SetRandomRestarts(n int) error {
	if n <= 0 {
		return ErrBadOption
	}
	m.cfg.restarts = n

	return nil
}

// TrainingLog returns the average log-likelihood per Baum-Welch iteration of
// the last full training run.
func (m *Model) TrainingLog() []float64 { return append([]float64(nil), m.trainingLog...) }

// Iterations returns the number of iterations of the last full training run.
func (m *Model) Iterations() int { return m.iterations }

// EstimatedStates returns the per-step arg-max of the scaled forward
// variables from the last LogLikelihood call.
func (m *Model) EstimatedStates() []int { return append([]int(nil), m.estimatedStates...) }

// Params returns a deep copy of the parameters.
func (m *Model) Params() Params { return m.params.Clone() }

// validateShape checks a (numStates, numSymbols, topology, delta) tuple.
func validateShape(numStates, numSymbols int, topology Topology, delta int) error {
	if numStates <= 0 {
		return ErrNoStates
	}
	if numSymbols <= 0 {
		return ErrNoSymbols
	}
	if !topology.Valid() {
		return ErrUnknownTopology
	}
	if topology == LeftRight && delta <= 0 {
		return ErrBadDelta
	}

	return nil
}

// Reset configures the model and draws fresh random parameters.
// MAIN DESCRIPTION:
//   - Every A, B and π entry is drawn from [0.9, 1.0), the topology is
//     applied, then rows are normalised.
//
// Errors:
//   - ErrNoStates, ErrNoSymbols, ErrUnknownTopology, ErrBadDelta; the model
//     is unchanged on error.
func (m *Model) Reset(numStates, numSymbols int, topology Topology, delta int) error {
	if err := validateShape(numStates, numSymbols, topology, delta); err != nil {
		return err
	}
	m.numStates = numStates
	m.numSymbols = numSymbols
	m.topology = topology
	m.delta = delta
	m.params = m.randomParams(m.cfg.rng)
	m.state = Randomized
	m.trainingLog = nil
	m.iterations = 0
	m.estimatedStates = nil

	return nil
}

// randomParams draws A, then B, then π from r.
// Complexity: O(N·(N+M)).
func (m *Model) randomParams(r *rand.Rand) Params {
	n, k := m.numStates, m.numSymbols
	p := Params{A: newRows(n, n), B: newRows(n, k), Pi: make([]float64, n)}

	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			p.A[i][j] = rng.Uniform(r, drawLo, drawHi)
		}
	}
	for i = 0; i < n; i++ {
		for j = 0; j < k; j++ {
			p.B[i][j] = rng.Uniform(r, drawLo, drawHi)
		}
	}
	for i = 0; i < n; i++ {
		p.Pi[i] = rng.Uniform(r, drawLo, drawHi)
	}

	if m.topology == LeftRight {
		for i = 0; i < n; i++ {
			for j = 0; j < n; j++ {
				if j < i || j > i+m.delta {
					p.A[i][j] = 0
				}
			}
		}
		clear(p.Pi)
		p.Pi[0] = 1
	}
	for i = 0; i < n; i++ {
		normalize(p.A[i])
		normalize(p.B[i])
	}
	normalize(p.Pi)

	return p
}

// FromParams installs externally supplied parameters and marks the model
// Trained. Inputs are copied.
//
// Errors:
//   - shape errors as in Reset.
//   - ErrBadParams when sizes disagree, an entry is negative or non-finite,
//     a row does not sum to 1 within StochasticTolerance, or a left-right
//     model has out-of-band mass.
func (m *Model) FromParams(p Params, topology Topology, delta int) error {
	n := len(p.A)
	if n == 0 || len(p.B) != n || len(p.Pi) != n {
		return fmt.Errorf("FromParams: A has %d rows, B %d, Pi %d: %w", len(p.A), len(p.B), len(p.Pi), ErrBadParams)
	}
	k := len(p.B[0])
	if err := validateShape(n, k, topology, delta); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if len(p.A[i]) != n || len(p.B[i]) != k {
			return fmt.Errorf("FromParams: row %d: %w", i, ErrBadParams)
		}
		if topology == LeftRight {
			for j := 0; j < n; j++ {
				if (j < i || j > i+delta) && p.A[i][j] != 0 {
					return fmt.Errorf("FromParams: A[%d][%d] outside band: %w", i, j, ErrBadParams)
				}
			}
		}
	}
	if err := checkStochastic(p, StochasticTolerance); err != nil {
		return err
	}

	m.numStates, m.numSymbols = n, k
	m.topology, m.delta = topology, delta
	m.params = p.Clone()
	m.state = Trained
	m.trainingLog = nil
	m.iterations = 0
	m.estimatedStates = nil

	return nil
}

// CheckStochastic verifies that every row of A and B, and π, sums to 1
// within tol and holds only finite non-negative values.
func (m *Model) CheckStochastic(tol float64) error {
	if m.state == Uninitialized {
		return ErrNotReady
	}

	return checkStochastic(m.params, tol)
}

func checkStochastic(p Params, tol float64) error {
	check := func(name string, i int, row []float64) error {
		for _, v := range row {
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%s row %d has invalid entry %g: %w", name, i, v, ErrBadParams)
			}
		}
		if s := floats.Sum(row); math.Abs(s-1) > tol {
			return fmt.Errorf("%s row %d sums to %g: %w", name, i, s, ErrBadParams)
		}
		return nil
	}
	for i, row := range p.A {
		if err := check("A", i, row); err != nil {
			return err
		}
	}
	for i, row := range p.B {
		if err := check("B", i, row); err != nil {
			return err
		}
	}

	return check("Pi", 0, p.Pi)
}
