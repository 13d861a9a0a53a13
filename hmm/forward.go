// SPDX-License-Identifier: MIT
// Package: hmm
//
// forward.go: scaled forward and backward recursions.
//
// Scaling: after each step the forward row is multiplied by
// c[t] = 1/Σ_i alpha[t][i], so it sums to 1. Then
// log P(O|λ) = −Σ_t log c[t]. The backward rows reuse the same c[t], which
// makes alpha[t][i]·beta[t][i]/c[t] the state occupancy γ_t(i).

package hmm

import (
	"fmt"
	"math"
)

// lattice is the per-sequence scratch of one forward-backward pass.
type lattice struct {
	alpha [][]float64 // T×N scaled forward variables
	beta  [][]float64 // T×N scaled backward variables (nil for scoring only)
	c     []float64   // T scaling coefficients
}

func newLattice(t, n int, withBeta bool) *lattice {
	l := &lattice{alpha: newRows(t, n), c: make([]float64, t)}
	if withBeta {
		l.beta = newRows(t, n)
	}

	return l
}

// forward fills l.alpha and l.c for obs and returns Σ log c[t].
// A zero-probability step yields c[t]=+Inf and therefore +Inf.
// Complexity: O(T·N²).
func (p *Params) forward(obs []int, l *lattice) float64 {
	n := len(p.Pi)
	var (
		i, j, t int
		s, v    float64
		logC    float64
	)

	// t = 0
	s = 0
	for i = 0; i < n; i++ {
		v = p.Pi[i] * p.B[i][obs[0]]
		l.alpha[0][i] = v
		s += v
	}
	l.c[0] = 1 / s
	for i = 0; i < n; i++ {
		l.alpha[0][i] *= l.c[0]
	}
	logC = math.Log(l.c[0])

	// t = 1..T-1
	for t = 1; t < len(obs); t++ {
		s = 0
		prev, cur := l.alpha[t-1], l.alpha[t]
		for j = 0; j < n; j++ {
			v = 0
			for i = 0; i < n; i++ {
				v += prev[i] * p.A[i][j]
			}
			v *= p.B[j][obs[t]]
			cur[j] = v
			s += v
		}
		l.c[t] = 1 / s
		for j = 0; j < n; j++ {
			cur[j] *= l.c[t]
		}
		logC += math.Log(l.c[t])
	}

	return logC
}

// backward fills l.beta using the coefficients from forward.
// Complexity: O(T·N²).
func (p *Params) backward(obs []int, l *lattice) {
	n := len(p.Pi)
	last := len(obs) - 1
	var (
		i, j, t int
		v       float64
	)
	for i = 0; i < n; i++ {
		l.beta[last][i] = l.c[last]
	}
	for t = last - 1; t >= 0; t-- {
		next, cur := l.beta[t+1], l.beta[t]
		sym := obs[t+1]
		for i = 0; i < n; i++ {
			v = 0
			for j = 0; j < n; j++ {
				v += p.A[i][j] * p.B[j][sym] * next[j]
			}
			cur[i] = v * l.c[t]
		}
	}
}

// checkSequence validates one observation sequence against numSymbols.
func checkSequence(obs []int, numSymbols int) error {
	if len(obs) == 0 {
		return ErrEmptySequence
	}
	for t, s := range obs {
		if s < 0 || s >= numSymbols {
			return fmt.Errorf("symbol %d at t=%d (numSymbols=%d): %w", s, t, numSymbols, ErrSymbolOutOfRange)
		}
	}

	return nil
}

// LogLikelihood scores obs with the scaled forward algorithm and returns
// log P(obs|λ) (≤ 0, larger is better). A sequence the model cannot produce
// scores −Inf. As a side effect it records EstimatedStates: the arg-max
// state of each scaled forward row.
//
// Errors:
//   - ErrNotReady before Reset/FromParams.
//   - ErrEmptySequence, ErrSymbolOutOfRange.
//
// Complexity:
//   - Time O(T·N²), Space O(T·N).
func (m *Model) LogLikelihood(obs []int) (float64, error) {
	if m.state == Uninitialized {
		return 0, ErrNotReady
	}
	if err := checkSequence(obs, m.numSymbols); err != nil {
		return 0, err
	}
	l := newLattice(len(obs), m.numStates, false)
	logC := m.params.forward(obs, l)

	states := make([]int, len(obs))
	for t, row := range l.alpha {
		best := 0
		for i := 1; i < len(row); i++ {
			if row[i] > row[best] {
				best = i
			}
		}
		states[t] = best
	}
	m.estimatedStates = states

	if math.IsNaN(logC) {
		return math.Inf(-1), nil
	}

	return -logC, nil
}
