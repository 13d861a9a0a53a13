package matrix_test

import (
	"testing"

	"github.com/katalvlaran/lvhmm/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRanges verifies per-column min/max.
func TestRanges(t *testing.T) {
	m, err := matrix.NewDenseFromRows([][]float64{
		{1, -5},
		{4, 2},
		{-2, 0},
	})
	require.NoError(t, err)

	r := m.Ranges()
	require.Len(t, r, 2)
	assert.Equal(t, matrix.MinMax{Min: -2, Max: 4}, r[0])
	assert.Equal(t, matrix.MinMax{Min: -5, Max: 2}, r[1])
	assert.Equal(t, 6.0, r[0].Span())
}

// TestRangesEmpty returns zero ranges for a 0×c matrix.
func TestRangesEmpty(t *testing.T) {
	m, err := matrix.NewEmpty(3)
	require.NoError(t, err)
	assert.Equal(t, make([]matrix.MinMax, 3), m.Ranges())
}

// TestScaleUnitInterval maps every column onto [0,1].
func TestScaleUnitInterval(t *testing.T) {
	m, err := matrix.NewDenseFromRows([][]float64{
		{0, 10, 7},
		{5, 20, 7},
		{10, 30, 7},
	})
	require.NoError(t, err)

	require.NoError(t, m.Scale(0, 1))

	want := [][]float64{
		{0, 0, 0},
		{0.5, 0.5, 0}, // constant column maps to lo
		{1, 1, 0},
	}
	assert.InDeltaSlice(t, want[0], mustRow(t, m, 0), 1e-12)
	assert.InDeltaSlice(t, want[1], mustRow(t, m, 1), 1e-12)
	assert.InDeltaSlice(t, want[2], mustRow(t, m, 2), 1e-12)
}

// TestScaleErrors covers bad target ranges and range-count mismatch.
func TestScaleErrors(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	require.ErrorIs(t, m.Scale(1, 1), matrix.ErrBadRange)
	require.ErrorIs(t, m.ScaleWithRanges([]matrix.MinMax{{Min: 0, Max: 1}}, 0, 1), matrix.ErrDimensionMismatch)
}

// TestScaleValueExtrapolates keeps values outside the source range linear.
func TestScaleValueExtrapolates(t *testing.T) {
	src := matrix.MinMax{Min: 0, Max: 10}
	assert.Equal(t, 1.5, matrix.ScaleValue(15, src, 0, 1))
	assert.Equal(t, -1.0, matrix.ScaleValue(5, matrix.MinMax{Min: 3, Max: 3}, -1, 1))
}

func mustRow(t *testing.T, m *matrix.Dense, i int) []float64 {
	t.Helper()
	row, err := m.Row(i)
	require.NoError(t, err)
	return row
}

// TestUnscaleValueInvertsScaleValue maps values back into their source range.
func TestUnscaleValueInvertsScaleValue(t *testing.T) {
	src := matrix.MinMax{Min: -4, Max: 12}
	for _, x := range []float64{-4, 0, 3.5, 12} {
		y := matrix.ScaleValue(x, src, 0, 1)
		assert.InDelta(t, x, matrix.UnscaleValue(y, src, 0, 1), 1e-12)
	}
	flat := matrix.MinMax{Min: 7, Max: 7}
	assert.Equal(t, 7.0, matrix.UnscaleValue(0.3, flat, 0, 1))
}
