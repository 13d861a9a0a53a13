package quantizer_test

import (
	"testing"

	"github.com/katalvlaran/lvhmm/dataset"
	"github.com/katalvlaran/lvhmm/kmeans"
	"github.com/katalvlaran/lvhmm/matrix"
	"github.com/katalvlaran/lvhmm/quantizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grid(t *testing.T) *matrix.Dense {
	t.Helper()
	rows := [][]float64{}
	for _, c := range [][2]float64{{0, 0}, {5, 5}, {10, 0}, {5, -5}} {
		for _, o := range []float64{-0.1, 0, 0.1} {
			rows = append(rows, []float64{c[0] + o, c[1] - o})
		}
	}
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)
	return m
}

// TestQuantizeBeforeTrain returns symbol 0 and an error.
func TestQuantizeBeforeTrain(t *testing.T) {
	q, err := quantizer.New(4)
	require.NoError(t, err)

	s, err := q.Quantize([]float64{1, 2})
	require.ErrorIs(t, err, quantizer.ErrNotTrained)
	assert.Equal(t, 0, s)

	_, ready := q.FeatureVector()
	assert.False(t, ready)

	_, err = q.Snapshot()
	require.ErrorIs(t, err, quantizer.ErrNotTrained)
}

func TestNewRejectsZeroClusters(t *testing.T) {
	_, err := quantizer.New(0)
	require.ErrorIs(t, err, kmeans.ErrNoClusters)
}

// TestCentroidRoundTrip quantizes each centroid to its own index.
func TestCentroidRoundTrip(t *testing.T) {
	q, err := quantizer.New(4, kmeans.WithSeed(9))
	require.NoError(t, err)
	require.NoError(t, q.Train(grid(t)))
	require.True(t, q.Trained())
	assert.Equal(t, 2, q.NumDimensions())

	for k, c := range q.Centroids().ToRows() {
		s, err := q.Quantize(c)
		require.NoError(t, err)
		assert.Equal(t, k, s)
		assert.Zero(t, q.Distances()[k])

		fv, ready := q.FeatureVector()
		assert.True(t, ready)
		assert.Equal(t, []float64{float64(k)}, fv)
	}
}

// TestDimensionMismatch leaves the quantizer usable.
func TestDimensionMismatch(t *testing.T) {
	q, err := quantizer.New(4, kmeans.WithSeed(9))
	require.NoError(t, err)
	require.NoError(t, q.Train(grid(t)))

	s, err := q.Quantize([]float64{1, 2, 3})
	require.ErrorIs(t, err, quantizer.ErrDimensionMismatch)
	assert.Equal(t, 0, s)

	_, err = q.Quantize([]float64{0, 0})
	require.NoError(t, err)
}

// TestTrainFailureClearsCodebook drops a previous codebook on failure.
func TestTrainFailureClearsCodebook(t *testing.T) {
	q, err := quantizer.New(4, kmeans.WithSeed(9))
	require.NoError(t, err)
	require.NoError(t, q.Train(grid(t)))

	tiny, _ := matrix.NewDenseFromRows([][]float64{{1, 1}})
	require.ErrorIs(t, q.Train(tiny), kmeans.ErrTooFewSamples)
	assert.False(t, q.Trained())
	_, err = q.Quantize([]float64{0, 0})
	require.ErrorIs(t, err, quantizer.ErrNotTrained)
}

// TestScaledQuantizerRescalesInputs keeps the training ranges for inference.
func TestScaledQuantizerRescalesInputs(t *testing.T) {
	data, _ := matrix.NewDenseFromRows([][]float64{{0, 0}, {0, 1}, {100, 1000}, {100, 999}})
	q, err := quantizer.New(2, kmeans.WithScaling(true), kmeans.WithSeed(2))
	require.NoError(t, err)
	require.NoError(t, q.Train(data))

	low, err := q.Quantize([]float64{1, 5})
	require.NoError(t, err)
	high, err := q.Quantize([]float64{99, 990})
	require.NoError(t, err)
	assert.NotEqual(t, low, high)
}

// TestScaledCentroidRoundTrip returns input-space centroids that quantize to
// their own index.
func TestScaledCentroidRoundTrip(t *testing.T) {
	data, err := matrix.NewDenseFromRows([][]float64{
		{0, 0}, {0, 0.1},
		{5, 50}, {5, 50.2},
		{10, 100}, {10, 99.9},
	})
	require.NoError(t, err)
	ranges := data.Ranges()

	for _, seed := range []int64{1, 2, 3, 4, 5} {
		q, err := quantizer.New(3, kmeans.WithScaling(true), kmeans.WithSeed(seed))
		require.NoError(t, err)
		require.NoError(t, q.Train(data))

		for k, c := range q.Centroids().ToRows() {
			for j, v := range c {
				assert.GreaterOrEqual(t, v, ranges[j].Min-1e-9, "seed %d centroid %d", seed, k)
				assert.LessOrEqual(t, v, ranges[j].Max+1e-9, "seed %d centroid %d", seed, k)
			}
			s, err := q.Quantize(c)
			require.NoError(t, err)
			assert.Equal(t, k, s, "seed %d", seed)
			assert.InDelta(t, 0, q.Distances()[k], 1e-12)
		}
	}
}

// TestQuantizeDataset converts samples into one-column symbol sequences.
func TestQuantizeDataset(t *testing.T) {
	q, err := quantizer.New(4, kmeans.WithSeed(9))
	require.NoError(t, err)
	require.NoError(t, q.Train(grid(t)))

	ds, _ := dataset.New(2, "raw", "")
	s1, _ := matrix.NewDenseFromRows([][]float64{{0, 0}, {10, 0}})
	s2, _ := matrix.NewDenseFromRows([][]float64{{5, 5}})
	require.NoError(t, ds.AddSample(1, s1))
	require.NoError(t, ds.AddSample(2, s2))

	out, err := q.QuantizeDataset(ds)
	require.NoError(t, err)
	assert.Equal(t, 1, out.NumDimensions())
	assert.Equal(t, []int{1, 2}, out.Labels())

	first, _ := out.Sample(0)
	want, _ := q.QuantizeSample(s1)
	require.Len(t, want, 2)
	assert.Equal(t, [][]float64{{float64(want[0])}, {float64(want[1])}}, first.Data.ToRows())
}

// TestSnapshotRestore moves a codebook into a fresh quantizer.
func TestSnapshotRestore(t *testing.T) {
	q, err := quantizer.New(4, kmeans.WithSeed(9))
	require.NoError(t, err)
	require.NoError(t, q.Train(grid(t)))
	snap, err := q.Snapshot()
	require.NoError(t, err)

	r, err := quantizer.New(7)
	require.NoError(t, err)
	require.ErrorIs(t, r.Restore(quantizer.Snapshot{NumClusters: 2, NumDimensions: 2, Centroids: [][]float64{{1, 2}}}), quantizer.ErrBadSnapshot)
	assert.False(t, r.Trained())

	require.NoError(t, r.Restore(snap))
	assert.Equal(t, 4, r.NumClusters())
	for _, v := range [][]float64{{0.2, 0.1}, {9, 1}, {5, -4}, {4, 6}} {
		a, _ := q.Quantize(v)
		b, _ := r.Quantize(v)
		assert.Equal(t, a, b)
	}
}
