// SPDX-License-Identifier: MIT
// Package: classifier
//
// classifier.go: per-class HMM ensemble: training, scoring, prediction.

package classifier

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvhmm/dataset"
	"github.com/katalvlaran/lvhmm/hmm"
	"github.com/katalvlaran/lvhmm/internal/rng"
	"github.com/katalvlaran/lvhmm/matrix"
)

// NullLabel is returned when nothing is predicted or a prediction is rejected.
const NullLabel = 0

// classModel is one trained class: its label, model and rejection threshold.
type classModel struct {
	label     int
	model     *hmm.Model
	threshold float64
}

// Prediction is the outcome of scoring one sequence.
// Likelihoods and Distances are indexed like Ensemble.Labels().
type Prediction struct {
	Label         int       // predicted label, NullLabel if rejected
	Best          int       // index of the winning class
	Rejected      bool      // true if null rejection replaced the winner
	Likelihoods   []float64 // normalised over classes, sums to 1 unless all are 0
	Distances     []float64 // raw log-likelihoods
	MaxLikelihood float64   // Likelihoods[Best]
	BestDistance  float64   // Distances[Best]
}

// Ensemble holds one discrete HMM per class label.
// An Ensemble is not safe for concurrent use.
type Ensemble struct {
	cfg     config
	classes []*classModel // class-tracker order of the training set
	trained bool
	last    Prediction
}

// New returns an untrained ensemble.
//
// Errors:
//   - hmm.ErrNoStates, hmm.ErrNoSymbols, hmm.ErrUnknownTopology, hmm.ErrBadDelta.
//   - ErrBadOption for non-positive iterations, tolerance or restarts.
func New(opts ...Option) (*Ensemble, error) {
	cfg := newConfig(opts...)
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Ensemble{cfg: cfg}, nil
}

// Trained reports whether Predict may be called.
func (e *Ensemble) Trained() bool { return e.trained }

// NumClasses returns the number of class models.
func (e *Ensemble) NumClasses() int { return len(e.classes) }

// Labels returns the class labels in training order.
func (e *Ensemble) Labels() []int {
	out := make([]int, len(e.classes))
	for k, c := range e.classes {
		out[k] = c.label
	}

	return out
}

// NullRejectionThresholds returns one threshold per class in training order.
func (e *Ensemble) NullRejectionThresholds() []float64 {
	out := make([]float64, len(e.classes))
	for k, c := range e.classes {
		out[k] = c.threshold
	}

	return out
}

// Model returns a copy of the trained parameters for label.
func (e *Ensemble) Model(label int) (hmm.Params, bool) {
	for _, c := range e.classes {
		if c.label == label {
			return c.model.Params(), true
		}
	}

	return hmm.Params{}, false
}

// TrainingLog returns the per-iteration average log-likelihood recorded while
// training label. Restored ensembles have empty logs.
func (e *Ensemble) TrainingLog(label int) ([]float64, bool) {
	for _, c := range e.classes {
		if c.label == label {
			return c.model.TrainingLog(), true
		}
	}

	return nil, false
}

// Clear drops every class model and the last prediction.
func (e *Ensemble) Clear() {
	e.classes = nil
	e.trained = false
	e.last = Prediction{}
}

// Train fits one model per class of ds.
// MAIN DESCRIPTION:
//   - Classes are trained in ds's class-tracker order. Each class model is
//     reset with the ensemble's shape and trained on that class's sequences.
//
// Implementation:
//   - Stage 1: clear, validate ds.
//   - Stage 2: per class, convert samples to symbols, Reset and Train a
//     model seeded from its own derived stream.
//   - Stage 3: per class, threshold = −mean |LL| of its training sequences.
//
// Errors:
//   - ErrEmptyDataset, ErrNotQuantized, ErrSymbolOutOfRange.
//   - Any hmm error, wrapped with the class label. On error the ensemble
//     stays untrained.
func (e *Ensemble) Train(ds *dataset.Dataset) error {
	e.Clear()
	if ds == nil || ds.NumSamples() == 0 {
		return ErrEmptyDataset
	}
	if ds.NumDimensions() != 1 {
		return fmt.Errorf("%w: got %d columns", ErrNotQuantized, ds.NumDimensions())
	}

	labels := ds.Labels()
	classes := make([]*classModel, 0, len(labels))
	for k, label := range labels {
		seqs, err := e.sequences(ds.ClassData(label))
		if err != nil {
			return fmt.Errorf("class %d: %w", label, err)
		}
		m, err := hmm.New(
			hmm.WithMaxIterations(e.cfg.maxIter),
			hmm.WithMinImprovement(e.cfg.minImprovement),
			hmm.WithRandomRestarts(e.cfg.restarts),
			hmm.WithRand(rng.Derive(e.cfg.rng, uint64(k))),
			hmm.WithLogger(e.cfg.modelLog),
		)
		if err != nil {
			return fmt.Errorf("class %d: %w", label, err)
		}
		if err = m.Reset(e.cfg.numStates, e.cfg.numSymbols, e.cfg.topology, e.cfg.delta); err != nil {
			return fmt.Errorf("class %d: %w", label, err)
		}
		if err = m.Train(seqs); err != nil {
			e.cfg.log.Warnw("class training failed", "label", label, "error", err)
			return fmt.Errorf("class %d: %w", label, err)
		}

		threshold, err := rejectionThreshold(m, seqs)
		if err != nil {
			return fmt.Errorf("class %d: %w", label, err)
		}
		e.cfg.log.Infow("class trained",
			"label", label, "sequences", len(seqs), "iterations", m.Iterations(), "threshold", threshold)
		classes = append(classes, &classModel{label: label, model: m, threshold: threshold})
	}

	e.classes = classes
	e.trained = true

	return nil
}

// rejectionThreshold is −mean |log P(seq|λ)| over the training sequences.
func rejectionThreshold(m *hmm.Model, seqs [][]int) (float64, error) {
	sum := 0.0
	for _, obs := range seqs {
		ll, err := m.LogLikelihood(obs)
		if err != nil {
			return 0, err
		}
		sum += math.Abs(ll)
	}

	return -sum / float64(len(seqs)), nil
}

// sequences converts every sample of ds into a symbol sequence.
func (e *Ensemble) sequences(ds *dataset.Dataset) ([][]int, error) {
	seqs := make([][]int, 0, ds.NumSamples())
	for i, s := range ds.Samples() {
		obs, err := ToSequence(s.Data, e.cfg.numSymbols)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		seqs = append(seqs, obs)
	}

	return seqs, nil
}

// ToSequence converts a one-column matrix of integral values into symbols
// in [0, numSymbols).
//
// Errors:
//   - ErrNotQuantized if m is nil or has more than one column.
//   - ErrSymbolOutOfRange for a non-integral or out-of-range value.
func ToSequence(m *matrix.Dense, numSymbols int) ([]int, error) {
	if m == nil || m.Cols() != 1 {
		return nil, ErrNotQuantized
	}
	obs := make([]int, m.Rows())
	for t := range obs {
		v, _ := m.At(t, 0)
		if v != math.Trunc(v) || v < 0 || v >= float64(numSymbols) {
			return nil, fmt.Errorf("%w: %v at t=%d", ErrSymbolOutOfRange, v, t)
		}
		obs[t] = int(v)
	}

	return obs, nil
}

// Predict scores obs against every class model.
// MAIN DESCRIPTION:
//   - The winner is the class with the highest raw log-likelihood (first
//     class on ties). Likelihoods are exp(LL) normalised over classes,
//     computed relative to the maximum LL; all −Inf gives all zeros.
//   - With null rejection on, the label is NullLabel unless the winner's
//     normalised likelihood exceeds its threshold.
//
// Errors:
//   - ErrNotTrained, ErrSymbolOutOfRange, hmm.ErrEmptySequence.
//     A failed call leaves the last prediction unchanged.
func (e *Ensemble) Predict(obs []int) (Prediction, error) {
	if !e.trained {
		return Prediction{Label: NullLabel}, ErrNotTrained
	}
	for t, o := range obs {
		if o < 0 || o >= e.cfg.numSymbols {
			return Prediction{Label: NullLabel}, fmt.Errorf("%w: %d at t=%d", ErrSymbolOutOfRange, o, t)
		}
	}

	k := len(e.classes)
	p := Prediction{
		Likelihoods: make([]float64, k),
		Distances:   make([]float64, k),
	}
	for i, c := range e.classes {
		ll, err := c.model.LogLikelihood(obs)
		if err != nil {
			return Prediction{Label: NullLabel}, fmt.Errorf("class %d: %w", c.label, err)
		}
		p.Distances[i] = ll
		if ll > p.Distances[p.Best] {
			p.Best = i
		}
	}

	top := p.Distances[p.Best]
	if !math.IsInf(top, -1) {
		sum := 0.0
		for i, ll := range p.Distances {
			p.Likelihoods[i] = math.Exp(ll - top)
			sum += p.Likelihoods[i]
		}
		for i := range p.Likelihoods {
			p.Likelihoods[i] /= sum
		}
	}

	p.MaxLikelihood = p.Likelihoods[p.Best]
	p.BestDistance = top
	p.Label = e.classes[p.Best].label
	if e.cfg.nullRejection && !(p.MaxLikelihood > e.classes[p.Best].threshold) {
		p.Label = NullLabel
		p.Rejected = true
	}
	e.last = p

	return p, nil
}

// PredictSample converts a one-column quantized matrix and predicts it.
func (e *Ensemble) PredictSample(m *matrix.Dense) (Prediction, error) {
	if !e.trained {
		return Prediction{Label: NullLabel}, ErrNotTrained
	}
	obs, err := ToSequence(m, e.cfg.numSymbols)
	if err != nil {
		return Prediction{Label: NullLabel}, err
	}

	return e.Predict(obs)
}

// PredictedLabel returns the label of the last successful prediction.
func (e *Ensemble) PredictedLabel() int { return e.last.Label }

// ClassLikelihoods returns the normalised likelihoods of the last prediction.
func (e *Ensemble) ClassLikelihoods() []float64 {
	return append([]float64(nil), e.last.Likelihoods...)
}

// ClassDistances returns the raw log-likelihoods of the last prediction.
func (e *Ensemble) ClassDistances() []float64 {
	return append([]float64(nil), e.last.Distances...)
}

// MaxLikelihood returns the winner's normalised likelihood.
func (e *Ensemble) MaxLikelihood() float64 { return e.last.MaxLikelihood }

// BestDistance returns the winner's raw log-likelihood.
func (e *Ensemble) BestDistance() float64 { return e.last.BestDistance }
