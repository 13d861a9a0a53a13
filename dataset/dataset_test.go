package dataset_test

import (
	"testing"

	"github.com/katalvlaran/lvhmm/dataset"
	"github.com/katalvlaran/lvhmm/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// series builds a T×D matrix from literal rows.
func series(t *testing.T, rows ...[]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)
	return m
}

func TestNewRejectsBadDimensions(t *testing.T) {
	_, err := dataset.New(0, "x", "")
	require.ErrorIs(t, err, dataset.ErrBadDimensions)

	ds, err := dataset.New(2, "", "")
	require.NoError(t, err)
	assert.Equal(t, dataset.DefaultName, ds.Name())
}

// TestAddSampleTracksClassesInFirstSeenOrder covers the tracker bookkeeping.
func TestAddSampleTracksClassesInFirstSeenOrder(t *testing.T) {
	ds, err := dataset.New(1, "seq", "")
	require.NoError(t, err)

	require.NoError(t, ds.AddSample(3, series(t, []float64{1})))
	require.NoError(t, ds.AddSample(1, series(t, []float64{2})))
	require.NoError(t, ds.AddSample(3, series(t, []float64{3}, []float64{4})))

	assert.Equal(t, 3, ds.NumSamples())
	assert.Equal(t, 2, ds.NumClasses())
	assert.Equal(t, []int{3, 1}, ds.Labels())
	tr := ds.ClassTracker()
	assert.Equal(t, 2, tr[0].Count)
	assert.Equal(t, 1, tr[1].Count)
	assert.Equal(t, 4, ds.TotalLength())
}

// TestAddSampleFailuresLeaveDatasetUnchanged checks both rejection paths.
func TestAddSampleFailuresLeaveDatasetUnchanged(t *testing.T) {
	ds, err := dataset.New(2, "x", "")
	require.NoError(t, err)

	err = ds.AddSample(1, series(t, []float64{1, 2, 3}))
	require.ErrorIs(t, err, dataset.ErrDimensionMismatch)

	err = ds.AddSample(0, series(t, []float64{1, 2}))
	require.ErrorIs(t, err, dataset.ErrNullClass)

	require.ErrorIs(t, ds.AddSample(1, nil), dataset.ErrNilSample)

	assert.Equal(t, 0, ds.NumSamples())
	assert.Equal(t, 0, ds.NumClasses())

	ds.AllowNullClass = true
	require.NoError(t, ds.AddSample(0, series(t, []float64{1, 2})))
	assert.Equal(t, []int{0}, ds.Labels())
}

// TestClassDataIsNonDestructive filters one label and keeps order.
func TestClassDataIsNonDestructive(t *testing.T) {
	ds, _ := dataset.New(1, "x", "")
	a := series(t, []float64{1})
	b := series(t, []float64{2})
	c := series(t, []float64{3})
	require.NoError(t, ds.AddSample(1, a))
	require.NoError(t, ds.AddSample(2, b))
	require.NoError(t, ds.AddSample(1, c))

	sub := ds.ClassData(1)
	require.Equal(t, 2, sub.NumSamples())
	s0, _ := sub.Sample(0)
	s1, _ := sub.Sample(1)
	assert.Same(t, a, s0.Data)
	assert.Same(t, c, s1.Data)
	assert.Equal(t, 3, ds.NumSamples())

	assert.Equal(t, 0, ds.ClassData(99).NumSamples())

	_, err := ds.Sample(3)
	require.ErrorIs(t, err, dataset.ErrIndexOutOfRange)
}

// TestFlattenConcatenatesInOrder stacks every time step of every sample.
func TestFlattenConcatenatesInOrder(t *testing.T) {
	ds, _ := dataset.New(2, "x", "")
	require.NoError(t, ds.AddSample(1, series(t, []float64{1, 2}, []float64{3, 4})))
	require.NoError(t, ds.AddSample(2, series(t, []float64{5, 6})))

	flat, err := ds.Flatten()
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}, {5, 6}}, flat.ToRows())

	empty, _ := dataset.New(2, "x", "")
	_, err = empty.Flatten()
	require.ErrorIs(t, err, dataset.ErrEmpty)
}

// TestRanges spans samples, and external ranges override them.
func TestRanges(t *testing.T) {
	ds, _ := dataset.New(2, "x", "")
	require.NoError(t, ds.AddSample(1, series(t, []float64{1, -2}, []float64{3, 4})))
	require.NoError(t, ds.AddSample(2, series(t, []float64{-5, 0})))

	assert.Equal(t, []matrix.MinMax{{Min: -5, Max: 3}, {Min: -2, Max: 4}}, ds.Ranges())

	require.ErrorIs(t, ds.SetExternalRanges([]matrix.MinMax{{}}), dataset.ErrDimensionMismatch)
	ext := []matrix.MinMax{{Min: -10, Max: 10}, {Min: 0, Max: 1}}
	require.NoError(t, ds.SetExternalRanges(ext))
	assert.Equal(t, ext, ds.Ranges())
}

// TestSetNumDimensionsClears resets samples and trackers.
func TestSetNumDimensionsClears(t *testing.T) {
	ds, _ := dataset.New(1, "x", "")
	require.NoError(t, ds.AddSample(1, series(t, []float64{1})))

	require.ErrorIs(t, ds.SetNumDimensions(0), dataset.ErrBadDimensions)
	assert.Equal(t, 1, ds.NumSamples())

	require.NoError(t, ds.SetNumDimensions(3))
	assert.Equal(t, 3, ds.NumDimensions())
	assert.Equal(t, 0, ds.NumSamples())
	assert.Equal(t, 0, ds.NumClasses())
}
