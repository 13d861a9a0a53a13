package dataset_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/katalvlaran/lvhmm/dataset"
	"github.com/katalvlaran/lvhmm/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFile = `GRT_LABELLED_TIME_SERIES_CLASSIFICATION_DATA_FILE_V1.0
DatasetName: swipes
InfoText: left and right
NumDimensions: 2
TotalNumTrainingExamples: 3
NumberOfClasses: 2
ClassIDsAndCounters:
1	2
2	1
UseExternalRanges: 0
LabelledTimeSeriesTrainingData:
************TIME_SERIES************
ClassID: 1
TimeSeriesLength: 2
TimeSeriesData:
0.1 0.2
0.3 0.4
************TIME_SERIES************
ClassID: 2
TimeSeriesLength: 1
TimeSeriesData:
-1 5e-3
************TIME_SERIES************
ClassID: 1
TimeSeriesLength: 1
TimeSeriesData:
7 8
`

func TestLoad(t *testing.T) {
	ds, err := dataset.Load(strings.NewReader(sampleFile))
	require.NoError(t, err)

	assert.Equal(t, "swipes", ds.Name())
	assert.Equal(t, "left and right", ds.Info())
	assert.Equal(t, 2, ds.NumDimensions())
	assert.Equal(t, 3, ds.NumSamples())
	assert.Equal(t, []int{1, 2}, ds.Labels())

	s1, err := ds.Sample(1)
	require.NoError(t, err)
	assert.Equal(t, 2, s1.Label)
	assert.Equal(t, [][]float64{{-1, 0.005}}, s1.Data.ToRows())
}

// TestSaveLoadRoundTrip encodes and decodes a dataset with external ranges.
func TestSaveLoadRoundTrip(t *testing.T) {
	ds, err := dataset.New(2, "rt", "round trip")
	require.NoError(t, err)
	require.NoError(t, ds.AddSample(4, series(t, []float64{1.5, -2}, []float64{0.125, 3})))
	require.NoError(t, ds.AddSample(9, series(t, []float64{1e-9, 42})))
	ds.SetClassName(9, "circle")
	require.NoError(t, ds.SetExternalRanges([]matrix.MinMax{{Min: -1, Max: 1}, {Min: 0, Max: 50}}))

	var buf bytes.Buffer
	require.NoError(t, ds.Save(&buf))

	got, err := dataset.Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, ds.Name(), got.Name())
	assert.Equal(t, ds.Info(), got.Info())
	assert.Equal(t, ds.ClassTracker(), got.ClassTracker())
	assert.Equal(t, ds.ExternalRanges(), got.ExternalRanges())
	for i := 0; i < ds.NumSamples(); i++ {
		want, _ := ds.Sample(i)
		have, _ := got.Sample(i)
		assert.Equal(t, want.Label, have.Label)
		assert.Equal(t, want.Data.ToRows(), have.Data.ToRows())
	}
}

// TestLoadMalformed exercises the structural checks.
func TestLoadMalformed(t *testing.T) {
	cases := map[string]string{
		"header":        strings.Replace(sampleFile, "V1.0", "V9.9", 1),
		"dimensions":    strings.Replace(sampleFile, "NumDimensions: 2", "NumDimensions: two", 1),
		"short row":     strings.Replace(sampleFile, "7 8", "7", 1),
		"truncated":     sampleFile[:len(sampleFile)-5],
		"counter":       strings.Replace(sampleFile, "1\t2\n", "1\t5\n", 1),
		"missing class": strings.Replace(sampleFile, "ClassID: 2", "ClassID: 1", 1),
		"bad number":    strings.Replace(sampleFile, "0.3 0.4", "0.3 abc", 1),
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := dataset.Load(strings.NewReader(body))
			require.ErrorIs(t, err, dataset.ErrFormat)
		})
	}
}

// TestLoadNullClass accepts label 0 and enables the null class.
func TestLoadNullClass(t *testing.T) {
	body := strings.ReplaceAll(sampleFile, "ClassID: 2", "ClassID: 0")
	body = strings.Replace(body, "2\t1\n", "0\t1\n", 1)
	ds, err := dataset.Load(strings.NewReader(body))
	require.NoError(t, err)
	assert.True(t, ds.AllowNullClass)
	assert.Equal(t, []int{1, 0}, ds.Labels())
}

func TestStatsReport(t *testing.T) {
	ds, err := dataset.Load(strings.NewReader(sampleFile))
	require.NoError(t, err)

	st := ds.Stats()
	assert.Equal(t, 3, st.NumSamples)
	assert.Equal(t, []dataset.SampleLength{{Label: 1, Length: 2}, {Label: 2, Length: 1}, {Label: 1, Length: 1}}, st.Lengths)

	var buf bytes.Buffer
	n, err := st.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Contains(t, buf.String(), "swipes")
	assert.Contains(t, buf.String(), "Timeseries Lengths:")
}
