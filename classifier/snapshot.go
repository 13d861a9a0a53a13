package classifier

import (
	"fmt"

	"github.com/katalvlaran/lvhmm/hmm"
)

// ClassSnapshot is one persisted class model.
type ClassSnapshot struct {
	Label     int        `json:"label"`
	Threshold float64    `json:"threshold"`
	Params    hmm.Params `json:"params"`
}

// Snapshot is the persisted form of a trained Ensemble.
type Snapshot struct {
	NumStates      int             `json:"num_states"`
	NumSymbols     int             `json:"num_symbols"`
	Topology       hmm.Topology    `json:"topology"`
	Delta          int             `json:"delta"`
	MaxIterations  int             `json:"max_iterations"`
	MinImprovement float64         `json:"min_improvement"`
	RandomRestarts int             `json:"random_restarts"`
	NullRejection  bool            `json:"null_rejection"`
	Classes        []ClassSnapshot `json:"classes"`
}

// Snapshot captures the ensemble. It fails with ErrNotTrained if untrained.
func (e *Ensemble) Snapshot() (Snapshot, error) {
	if !e.trained {
		return Snapshot{}, ErrNotTrained
	}
	s := Snapshot{
		NumStates:      e.cfg.numStates,
		NumSymbols:     e.cfg.numSymbols,
		Topology:       e.cfg.topology,
		Delta:          e.cfg.delta,
		MaxIterations:  e.cfg.maxIter,
		MinImprovement: e.cfg.minImprovement,
		RandomRestarts: e.cfg.restarts,
		NullRejection:  e.cfg.nullRejection,
		Classes:        make([]ClassSnapshot, len(e.classes)),
	}
	for k, c := range e.classes {
		s.Classes[k] = ClassSnapshot{Label: c.label, Threshold: c.threshold, Params: c.model.Params()}
	}

	return s, nil
}

// Restore replaces the ensemble with s. Every class model is validated;
// on error the receiver is unchanged.
//
// Errors:
//   - ErrBadSnapshot wrapping the configuration or hmm.FromParams failure.
func (e *Ensemble) Restore(s Snapshot) error {
	next := e.cfg
	next.numStates = s.NumStates
	next.numSymbols = s.NumSymbols
	next.topology = s.Topology
	next.delta = s.Delta
	next.maxIter = s.MaxIterations
	next.minImprovement = s.MinImprovement
	next.restarts = s.RandomRestarts
	next.nullRejection = s.NullRejection
	if err := next.validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrBadSnapshot, err)
	}
	if len(s.Classes) == 0 {
		return fmt.Errorf("%w: no classes", ErrBadSnapshot)
	}

	seen := make(map[int]bool, len(s.Classes))
	classes := make([]*classModel, len(s.Classes))
	for k, cs := range s.Classes {
		if seen[cs.Label] {
			return fmt.Errorf("%w: duplicate label %d", ErrBadSnapshot, cs.Label)
		}
		seen[cs.Label] = true

		m, err := hmm.New(
			hmm.WithMaxIterations(next.maxIter),
			hmm.WithMinImprovement(next.minImprovement),
			hmm.WithRandomRestarts(next.restarts),
			hmm.WithLogger(next.modelLog),
		)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBadSnapshot, err)
		}
		if err = m.FromParams(cs.Params, next.topology, next.delta); err != nil {
			return fmt.Errorf("%w: class %d: %w", ErrBadSnapshot, cs.Label, err)
		}
		if m.NumStates() != next.numStates || m.NumSymbols() != next.numSymbols {
			return fmt.Errorf("%w: class %d shape %dx%d", ErrBadSnapshot, cs.Label, m.NumStates(), m.NumSymbols())
		}
		classes[k] = &classModel{label: cs.Label, model: m, threshold: cs.Threshold}
	}

	e.cfg = next
	e.classes = classes
	e.trained = true
	e.last = Prediction{}

	return nil
}
