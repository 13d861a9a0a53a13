package dataset

import (
	"fmt"

	"github.com/katalvlaran/lvhmm/matrix"
)

// DefaultName is used when a dataset is created without a name.
const DefaultName = "NOT_SET"

// Sample is one labelled time series: Data has one row per time step.
type Sample struct {
	Label int
	Data  *matrix.Dense
}

// Length returns the number of time steps.
func (s Sample) Length() int {
	if s.Data == nil {
		return 0
	}

	return s.Data.Rows()
}

// ClassTracker counts the samples of one label.
type ClassTracker struct {
	Label int
	Count int
	Name  string
}

// Dataset is an ordered collection of labelled time series sharing one
// dimensionality. The zero value is not usable; call New.
type Dataset struct {
	name           string
	info           string
	numDimensions  int
	AllowNullClass bool

	samples        []Sample
	tracker        []ClassTracker
	externalRanges []matrix.MinMax
}

// New creates an empty dataset of dimensionality d.
//
// Errors:
//   - ErrBadDimensions when d <= 0.
func New(d int, name, info string) (*Dataset, error) {
	if d <= 0 {
		return nil, ErrBadDimensions
	}
	if name == "" {
		name = DefaultName
	}

	return &Dataset{name: name, info: info, numDimensions: d}, nil
}

// Name returns the dataset name.
func (ds *Dataset) Name() string { return ds.name }

// Info returns the free-form info text.
func (ds *Dataset) Info() string { return ds.info }

// SetName replaces the dataset name.
func (ds *Dataset) SetName(name string) { ds.name = name }

// SetInfo replaces the info text.
func (ds *Dataset) SetInfo(info string) { ds.info = info }

// NumDimensions returns D.
func (ds *Dataset) NumDimensions() int { return ds.numDimensions }

// NumSamples returns the number of stored samples.
func (ds *Dataset) NumSamples() int { return len(ds.samples) }

// NumClasses returns the number of distinct labels seen.
func (ds *Dataset) NumClasses() int { return len(ds.tracker) }

// Sample returns the i-th sample in insertion order.
func (ds *Dataset) Sample(i int) (Sample, error) {
	if i < 0 || i >= len(ds.samples) {
		return Sample{}, fmt.Errorf("Sample(%d): %w", i, ErrIndexOutOfRange)
	}

	return ds.samples[i], nil
}

// Samples returns the samples in insertion order. The slice is a copy; the
// matrices are shared.
func (ds *Dataset) Samples() []Sample {
	out := make([]Sample, len(ds.samples))
	copy(out, ds.samples)

	return out
}

// ClassTracker returns a copy of the per-label counters in first-seen order.
func (ds *Dataset) ClassTracker() []ClassTracker {
	out := make([]ClassTracker, len(ds.tracker))
	copy(out, ds.tracker)

	return out
}

// Labels returns the distinct labels in first-seen order.
func (ds *Dataset) Labels() []int {
	out := make([]int, len(ds.tracker))
	for i, t := range ds.tracker {
		out[i] = t.Label
	}

	return out
}

// SetClassName names a tracked label. Unknown labels are ignored.
func (ds *Dataset) SetClassName(label int, name string) bool {
	for i := range ds.tracker {
		if ds.tracker[i].Label == label {
			ds.tracker[i].Name = name
			return true
		}
	}

	return false
}

// AddSample appends a labelled sample and updates the class tracker.
// On error the dataset is unchanged. The matrix is stored, not copied.
//
// Errors:
//   - ErrNilSample for a nil matrix.
//   - ErrDimensionMismatch when data.Cols() != NumDimensions().
//   - ErrNullClass when label==0 and AllowNullClass is false.
func (ds *Dataset) AddSample(label int, data *matrix.Dense) error {
	if data == nil {
		return ErrNilSample
	}
	if data.Cols() != ds.numDimensions {
		return fmt.Errorf("AddSample: sample has %d columns, dataset has %d: %w",
			data.Cols(), ds.numDimensions, ErrDimensionMismatch)
	}
	if label == 0 && !ds.AllowNullClass {
		return ErrNullClass
	}
	ds.append(label, data)

	return nil
}

// append stores the sample without validation.
func (ds *Dataset) append(label int, data *matrix.Dense) {
	ds.samples = append(ds.samples, Sample{Label: label, Data: data})
	for i := range ds.tracker {
		if ds.tracker[i].Label == label {
			ds.tracker[i].Count++
			return
		}
	}
	ds.tracker = append(ds.tracker, ClassTracker{Label: label, Count: 1, Name: DefaultName})
}

// ClassData returns a new dataset with only the samples labelled label, in
// their original order. The receiver is not modified; sample matrices are shared.
func (ds *Dataset) ClassData(label int) *Dataset {
	out := &Dataset{
		name:           ds.name,
		info:           ds.info,
		numDimensions:  ds.numDimensions,
		AllowNullClass: ds.AllowNullClass,
	}
	for _, s := range ds.samples {
		if s.Label == label {
			out.append(s.Label, s.Data)
		}
	}
	for _, t := range ds.tracker {
		if t.Label == label {
			out.SetClassName(label, t.Name)
		}
	}

	return out
}

// TotalLength returns the number of time steps across all samples.
func (ds *Dataset) TotalLength() int {
	n := 0
	for _, s := range ds.samples {
		n += s.Length()
	}

	return n
}

// Flatten concatenates every time step of every sample, in order, into one
// matrix of TotalLength()×D.
//
// Errors:
//   - ErrEmpty when the dataset has no time steps.
func (ds *Dataset) Flatten() (*matrix.Dense, error) {
	n := ds.TotalLength()
	if n == 0 {
		return nil, ErrEmpty
	}
	out, err := matrix.NewEmpty(ds.numDimensions)
	if err != nil {
		return nil, err
	}

	var row []float64
	for k, s := range ds.samples {
		for i := 0; i < s.Length(); i++ {
			if row, err = s.Data.RowView(i); err != nil {
				return nil, fmt.Errorf("Flatten: sample %d: %w", k, err)
			}
			if err = out.AppendRow(row); err != nil {
				return nil, fmt.Errorf("Flatten: sample %d: %w", k, err)
			}
		}
	}

	return out, nil
}

// Ranges returns per-dimension [min,max]. External ranges, when set, win.
// An empty dataset yields D zero ranges.
func (ds *Dataset) Ranges() []matrix.MinMax {
	if ds.externalRanges != nil {
		out := make([]matrix.MinMax, len(ds.externalRanges))
		copy(out, ds.externalRanges)
		return out
	}
	ranges := make([]matrix.MinMax, ds.numDimensions)
	seeded := false
	for _, s := range ds.samples {
		if s.Length() == 0 {
			continue
		}
		r := s.Data.Ranges()
		if !seeded {
			copy(ranges, r)
			seeded = true
			continue
		}
		for j := range ranges {
			if r[j].Min < ranges[j].Min {
				ranges[j].Min = r[j].Min
			}
			if r[j].Max > ranges[j].Max {
				ranges[j].Max = r[j].Max
			}
		}
	}

	return ranges
}

// ExternalRanges returns the user-supplied ranges, or nil.
func (ds *Dataset) ExternalRanges() []matrix.MinMax {
	if ds.externalRanges == nil {
		return nil
	}
	out := make([]matrix.MinMax, len(ds.externalRanges))
	copy(out, ds.externalRanges)

	return out
}

// SetExternalRanges overrides the computed ranges. nil clears the override.
//
// Errors:
//   - ErrDimensionMismatch when len(r) != NumDimensions().
func (ds *Dataset) SetExternalRanges(r []matrix.MinMax) error {
	if r == nil {
		ds.externalRanges = nil
		return nil
	}
	if len(r) != ds.numDimensions {
		return fmt.Errorf("SetExternalRanges: %w", ErrDimensionMismatch)
	}
	ds.externalRanges = make([]matrix.MinMax, len(r))
	copy(ds.externalRanges, r)

	return nil
}

// Clear removes every sample and counter.
func (ds *Dataset) Clear() {
	ds.samples = nil
	ds.tracker = nil
}

// SetNumDimensions changes D, clearing samples and external ranges.
//
// Errors:
//   - ErrBadDimensions when d <= 0 (dataset unchanged).
func (ds *Dataset) SetNumDimensions(d int) error {
	if d <= 0 {
		return ErrBadDimensions
	}
	ds.Clear()
	ds.numDimensions = d
	ds.externalRanges = nil

	return nil
}
