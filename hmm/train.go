// SPDX-License-Identifier: MIT
// Package: hmm
//
// train.go: Baum-Welch re-estimation with random restarts.

package hmm

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvhmm/internal/rng"
)

// fit is the outcome of one Baum-Welch run.
type fit struct {
	params Params
	ll     float64   // average log-likelihood under params
	log    []float64 // average log-likelihood per iteration
	iters  int
}

// Train fits the model to seqs.
// MAIN DESCRIPTION:
//   - With restarts > 1, run that many short trials (≤10 iterations each)
//     from independent random draws, keep the one with the highest average
//     log-likelihood, and continue it with a full run. Otherwise run once
//     from a fresh draw.
//
// Implementation:
//   - Stage 1: validate state and every sequence.
//   - Stage 2: trials, each on its own derived RNG stream; reduce to the best.
//   - Stage 3: full Baum-Welch from the winner; install parameters.
//
// Errors:
//   - ErrNotReady, ErrNoSequences, ErrEmptySequence, ErrSymbolOutOfRange.
//   - ErrZeroDenominator, ErrNumerical from any run. On any error the
//     previous parameters and state are kept.
func (m *Model) Train(seqs [][]int) error {
	if m.state == Uninitialized {
		return ErrNotReady
	}
	if len(seqs) == 0 {
		return ErrNoSequences
	}
	for k, obs := range seqs {
		if err := checkSequence(obs, m.numSymbols); err != nil {
			return fmt.Errorf("sequence %d: %w", k, err)
		}
	}

	var start Params
	if m.cfg.restarts > 1 {
		trialIter := min(m.cfg.maxIter, maxTrialIterations)
		trials := make([]fit, m.cfg.restarts)
		for n := range trials {
			r := rng.Derive(m.cfg.rng, uint64(n))
			f, err := m.baumWelch(m.randomParams(r), seqs, trialIter)
			if err != nil {
				return fmt.Errorf("restart %d: %w", n, err)
			}
			trials[n] = f
		}
		best := bestFit(trials)
		m.cfg.log.Debugw("random restarts done", "trials", len(trials), "best", best, "ll", trials[best].ll)
		start = trials[best].params
	} else {
		start = m.randomParams(m.cfg.rng)
	}

	f, err := m.baumWelch(start, seqs, m.cfg.maxIter)
	if err != nil {
		return err
	}
	m.params = f.params
	m.trainingLog = f.log
	m.iterations = f.iters
	m.state = Trained
	m.cfg.log.Infow("hmm trained", "states", m.numStates, "symbols", m.numSymbols,
		"topology", m.topology.String(), "sequences", len(seqs), "iterations", f.iters, "loglikelihood", f.ll)

	return nil
}

// bestFit returns the index of the highest log-likelihood (first on ties).
func bestFit(trials []fit) int {
	best := 0
	for n := 1; n < len(trials); n++ {
		if trials[n].ll > trials[best].ll {
			best = n
		}
	}

	return best
}

// baumWelch iterates forward-backward and re-estimation on p (owned by the
// call) until maxIter or |Δll| < minImprovement after the first iteration.
// Complexity: O(iter·ΣT·N·(N+M)).
func (m *Model) baumWelch(p Params, seqs [][]int, maxIter int) (fit, error) {
	lat := make([]*lattice, len(seqs))
	for k, obs := range seqs {
		lat[k] = newLattice(len(obs), m.numStates, true)
	}

	var (
		iter   int
		ll     float64
		oldLL  float64
		trace  []float64
		logSum float64
	)
	for {
		ll = 0
		for k, obs := range seqs {
			logSum = p.forward(obs, lat[k])
			if math.IsInf(logSum, 0) || math.IsNaN(logSum) {
				return fit{}, fmt.Errorf("sequence %d at iteration %d: %w", k, iter+1, ErrNumerical)
			}
			p.backward(obs, lat[k])
			ll -= logSum
		}
		ll /= float64(len(seqs))
		trace = append(trace, ll)
		iter++

		stop := iter >= maxIter || (math.Abs(ll-oldLL) < m.cfg.minImprovement && iter > 1)
		m.cfg.log.Debugw("baum-welch", "iter", iter, "loglikelihood", ll, "change", ll-oldLL)
		oldLL = ll
		if stop {
			break
		}
		next, err := m.reestimate(p, seqs, lat)
		if err != nil {
			return fit{}, fmt.Errorf("iteration %d: %w", iter, err)
		}
		p = next
	}

	return fit{params: p, ll: ll, log: trace, iters: iter}, nil
}

// reestimate returns new parameters from the lattices computed under p.
//
//	A[i][j] = Σ_k Σ_{t<T-1} alpha[t][i]·A[i][j]·B[j][o_{t+1}]·beta[t+1][j]
//	          / Σ_k Σ_{t<T-1} γ_t(i)
//	B[i][s] = Σ_k Σ_{t: o_t=s} γ_t(i) / Σ_k Σ_t γ_t(i)
//	π[i]    = mean_k γ_0(i)              (ergodic only)
//
// A B row with any zero entry gets 1/M added to every entry and is
// renormalised.
func (m *Model) reestimate(p Params, seqs [][]int, lat []*lattice) (Params, error) {
	n, ms := m.numStates, m.numSymbols
	next := Params{A: newRows(n, n), B: newRows(n, ms), Pi: append([]float64(nil), p.Pi...)}

	var (
		i, j, t, k int
		den, g, v  float64
	)

	// A
	for i = 0; i < n; i++ {
		den = 0
		for k = range seqs {
			l := lat[k]
			for t = 0; t < len(seqs[k])-1; t++ {
				den += l.alpha[t][i] * l.beta[t][i] / l.c[t]
			}
		}
		if !(den > 0) {
			return Params{}, fmt.Errorf("A row %d: %w", i, ErrZeroDenominator)
		}
		for j = 0; j < n; j++ {
			if p.A[i][j] == 0 {
				continue
			}
			v = 0
			for k = range seqs {
				l, obs := lat[k], seqs[k]
				for t = 0; t < len(obs)-1; t++ {
					v += l.alpha[t][i] * p.B[j][obs[t+1]] * l.beta[t+1][j]
				}
			}
			next.A[i][j] = p.A[i][j] * v / den
		}
	}

	// B
	for i = 0; i < n; i++ {
		den = 0
		row := next.B[i]
		for k = range seqs {
			l, obs := lat[k], seqs[k]
			for t = range obs {
				g = l.alpha[t][i] * l.beta[t][i] / l.c[t]
				row[obs[t]] += g
				den += g
			}
		}
		if !(den > 0) {
			return Params{}, fmt.Errorf("B row %d: %w", i, ErrZeroDenominator)
		}
		renorm := false
		for j = 0; j < ms; j++ {
			row[j] /= den
			if row[j] == 0 {
				renorm = true
			}
		}
		if renorm {
			for j = 0; j < ms; j++ {
				row[j] += 1 / float64(ms)
			}
			normalize(row)
		}
	}

	// π
	if m.topology == Ergodic {
		clear(next.Pi)
		for k = range seqs {
			l := lat[k]
			for i = 0; i < n; i++ {
				next.Pi[i] += l.alpha[0][i] * l.beta[0][i] / l.c[0]
			}
		}
		normalize(next.Pi)
	}

	return next, nil
}
