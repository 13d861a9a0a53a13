// SPDX-License-Identifier: MIT
// Package: quantizer
//
// quantizer.go: nearest-centroid vector quantization.

package quantizer

import (
	"fmt"

	"github.com/katalvlaran/lvhmm/dataset"
	"github.com/katalvlaran/lvhmm/kmeans"
	"github.com/katalvlaran/lvhmm/matrix"
)

// Quantizer defaults differ from a bare kmeans.Engine: fewer epochs, no warm-up.
const (
	DefaultMinEpochs = 0
	DefaultMaxEpochs = 100
	DefaultMinChange = 1.0e-5
)

// Quantizer holds a frozen K×D codebook.
type Quantizer struct {
	engine *kmeans.Engine

	trained   bool
	numDims   int
	centroids [][]float64
	ranges    []matrix.MinMax // raw training ranges, used when scaled
	scaled    bool
	theta     float64

	distances  []float64 // squared distance per cluster from the last Quantize
	lastSymbol int
	ready      bool // a feature vector is available
}

// New creates an untrained quantizer with numClusters symbols. opts tune the
// underlying K-Means run; the cluster count always comes from numClusters.
//
// Errors:
//   - kmeans.ErrNoClusters when numClusters <= 0.
//   - kmeans.ErrBadOption for invalid epoch or tolerance settings.
func New(numClusters int, opts ...kmeans.Option) (*Quantizer, error) {
	all := make([]kmeans.Option, 0, len(opts)+4)
	all = append(all,
		kmeans.WithMinEpochs(DefaultMinEpochs),
		kmeans.WithMaxEpochs(DefaultMaxEpochs),
		kmeans.WithMinChange(DefaultMinChange),
	)
	all = append(all, opts...)
	all = append(all, kmeans.WithNumClusters(numClusters))
	eng, err := kmeans.New(all...)
	if err != nil {
		return nil, err
	}

	return &Quantizer{engine: eng}, nil
}

// NumClusters returns the alphabet size K.
func (q *Quantizer) NumClusters() int { return q.engine.NumClusters() }

// NumDimensions returns the trained input width (0 when untrained).
func (q *Quantizer) NumDimensions() int { return q.numDims }

// Trained reports whether a codebook is loaded.
func (q *Quantizer) Trained() bool { return q.trained }

// Theta returns the final K-Means dispersion of the last Train.
func (q *Quantizer) Theta() float64 { return q.theta }

// clear drops the codebook and diagnostics.
func (q *Quantizer) clear() {
	q.trained = false
	q.numDims = 0
	q.centroids = nil
	q.ranges = nil
	q.scaled = false
	q.theta = 0
	q.distances = nil
	q.ready = false
	q.lastSymbol = 0
}

// Train clears any previous codebook, runs K-Means on data and freezes the
// result. On error the quantizer is left untrained.
func (q *Quantizer) Train(data *matrix.Dense) error {
	q.clear()
	res, err := q.engine.Train(data)
	if err != nil {
		return fmt.Errorf("quantizer: train: %w", err)
	}
	q.centroids = res.Centroids.ToRows()
	q.numDims = data.Cols()
	q.ranges = res.Ranges
	q.scaled = res.Scaled
	q.theta = res.Theta
	q.distances = make([]float64, len(q.centroids))
	q.trained = true

	return nil
}

// TrainDataset trains on every time step of ds.
func (q *Quantizer) TrainDataset(ds *dataset.Dataset) error {
	flat, err := ds.Flatten()
	if err != nil {
		q.clear()
		return fmt.Errorf("quantizer: train: %w", err)
	}

	return q.Train(flat)
}

// Quantize returns the index of the centroid nearest to vec (squared
// Euclidean, first index on ties) and records the per-cluster distances.
// Failures return symbol 0 with an error and change nothing.
//
// Errors:
//   - ErrNotTrained, ErrDimensionMismatch.
func (q *Quantizer) Quantize(vec []float64) (int, error) {
	if !q.trained {
		return 0, ErrNotTrained
	}
	if err := matrix.ValidateVecLen(vec, q.numDims); err != nil {
		return 0, fmt.Errorf("Quantize: input has %d values, quantizer %d: %w: %w", len(vec), q.numDims, ErrDimensionMismatch, err)
	}
	x := vec
	if q.scaled {
		x = make([]float64, len(vec))
		for j, v := range vec {
			x[j] = matrix.ScaleValue(v, q.ranges[j], 0, 1)
		}
	}
	symbol, _ := kmeans.Nearest(x, q.centroids, q.distances)
	q.lastSymbol = symbol
	q.ready = true

	return symbol, nil
}

// QuantizeSample quantizes every row of a T×D sample.
func (q *Quantizer) QuantizeSample(m *matrix.Dense) ([]int, error) {
	if !q.trained {
		return nil, ErrNotTrained
	}
	if m == nil || m.Cols() != q.numDims {
		return nil, fmt.Errorf("QuantizeSample: %w", ErrDimensionMismatch)
	}
	out := make([]int, m.Rows())
	for i := range out {
		row, _ := m.RowView(i)
		s, err := q.Quantize(row)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}

	return out, nil
}

// QuantizeDataset converts every sample of ds into a T×1 symbol sample,
// keeping labels, order and class names.
func (q *Quantizer) QuantizeDataset(ds *dataset.Dataset) (*dataset.Dataset, error) {
	out, err := dataset.New(1, ds.Name(), ds.Info())
	if err != nil {
		return nil, err
	}
	out.AllowNullClass = ds.AllowNullClass
	for i, s := range ds.Samples() {
		symbols, err := q.QuantizeSample(s.Data)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		seq, err := SymbolsToMatrix(symbols)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		if err = out.AddSample(s.Label, seq); err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
	}
	for _, c := range ds.ClassTracker() {
		out.SetClassName(c.Label, c.Name)
	}

	return out, nil
}

// SymbolsToMatrix packs a symbol sequence into a T×1 matrix.
func SymbolsToMatrix(symbols []int) (*matrix.Dense, error) {
	m, err := matrix.NewEmpty(1)
	if err != nil {
		return nil, err
	}
	for _, s := range symbols {
		if err = m.AppendRow([]float64{float64(s)}); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Distances returns a copy of the squared distances from the last Quantize.
func (q *Quantizer) Distances() []float64 {
	return append([]float64(nil), q.distances...)
}

// FeatureVector returns the last symbol as a one-element vector, and whether
// any Quantize call has succeeded since training.
func (q *Quantizer) FeatureVector() ([]float64, bool) {
	return []float64{float64(q.lastSymbol)}, q.ready
}

// Centroids returns a copy of the codebook in input space (nil when
// untrained). A scaled codebook is mapped back through the training ranges,
// so Quantize(Centroids().Row(k)) == k.
func (q *Quantizer) Centroids() *matrix.Dense {
	if !q.trained {
		return nil
	}
	m, err := matrix.NewDenseFromRows(q.centroids)
	if err != nil {
		return nil
	}
	if q.scaled {
		if err = m.Apply(func(_, j int, v float64) float64 {
			return matrix.UnscaleValue(v, q.ranges[j], 0, 1)
		}); err != nil {
			return nil
		}
	}

	return m
}
