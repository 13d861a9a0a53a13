package classifier

import (
	"fmt"

	"github.com/katalvlaran/lvhmm/dataset"
)

// Result is the prediction for one sample of an evaluated dataset.
type Result struct {
	Index      int
	Label      int
	Prediction Prediction
}

// Evaluation summarises Evaluate.
type Evaluation struct {
	Results  []Result
	Correct  int
	Rejected int
	Accuracy float64 // Correct / len(Results)
}

// Evaluate predicts every sample of a quantized dataset and counts the
// predictions equal to the sample label.
//
// Errors:
//   - ErrNotTrained, ErrEmptyDataset, ErrNotQuantized.
//   - Any Predict error, wrapped with the sample index.
func (e *Ensemble) Evaluate(ds *dataset.Dataset) (Evaluation, error) {
	var ev Evaluation
	if !e.trained {
		return ev, ErrNotTrained
	}
	if ds == nil || ds.NumSamples() == 0 {
		return ev, ErrEmptyDataset
	}
	if ds.NumDimensions() != 1 {
		return ev, ErrNotQuantized
	}

	ev.Results = make([]Result, 0, ds.NumSamples())
	for i, s := range ds.Samples() {
		p, err := e.PredictSample(s.Data)
		if err != nil {
			return Evaluation{}, fmt.Errorf("sample %d: %w", i, err)
		}
		if p.Label == s.Label {
			ev.Correct++
		}
		if p.Rejected {
			ev.Rejected++
		}
		ev.Results = append(ev.Results, Result{Index: i, Label: s.Label, Prediction: p})
	}
	ev.Accuracy = float64(ev.Correct) / float64(len(ev.Results))

	return ev, nil
}
