package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/katalvlaran/lvhmm/classifier"
	"github.com/katalvlaran/lvhmm/hmm"
	"github.com/katalvlaran/lvhmm/quantizer"
	"github.com/katalvlaran/lvhmm/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord(id string, at time.Time) store.ModelRecord {
	r := store.NewRecord("gestures",
		quantizer.Snapshot{
			NumClusters:   2,
			NumDimensions: 2,
			Centroids:     [][]float64{{0, 0}, {1, 1}},
			Theta:         0.25,
		},
		classifier.Snapshot{
			NumStates:      2,
			NumSymbols:     2,
			Topology:       hmm.LeftRight,
			Delta:          1,
			MaxIterations:  100,
			MinImprovement: 0.01,
			RandomRestarts: 5,
			Classes: []classifier.ClassSnapshot{{
				Label:     1,
				Threshold: -3.5,
				Params: hmm.Params{
					A:  [][]float64{{0.5, 0.5}, {0, 1}},
					B:  [][]float64{{0.9, 0.1}, {0.2, 0.8}},
					Pi: []float64{1, 0},
				},
			}},
		})
	r.ID = id
	r.CreatedAt = at
	r.TrainingLogs = []store.ClassLog{{Label: 1, Log: []float64{-4, -3.6, -3.5}}}
	return r
}

func backends(t *testing.T) map[string]store.Store {
	t.Helper()
	sq := store.NewSQLiteStore(filepath.Join(t.TempDir(), "lvhmm.db"))
	t.Cleanup(func() { _ = sq.Close() })
	return map[string]store.Store{
		"memory": store.NewMemoryStore(),
		"sqlite": sq,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	t0 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Init(ctx))

			a := sampleRecord("run-a", t0.Add(time.Minute))
			b := sampleRecord("run-b", t0)
			require.NoError(t, s.SaveModel(ctx, a))
			require.NoError(t, s.SaveModel(ctx, b))

			got, ok, err := s.GetModel(ctx, "run-a")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, a.ID, got.ID)
			assert.Equal(t, a.Dataset, got.Dataset)
			assert.True(t, a.CreatedAt.Equal(got.CreatedAt))
			assert.Equal(t, a.Quantizer, got.Quantizer)
			assert.Equal(t, a.Classifier, got.Classifier)
			assert.Equal(t, a.TrainingLogs, got.TrainingLogs)

			list, err := s.ListModels(ctx)
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, "run-b", list[0].ID)
			assert.Equal(t, "run-a", list[1].ID)

			a.Dataset = "renamed"
			require.NoError(t, s.SaveModel(ctx, a))
			got, ok, err = s.GetModel(ctx, "run-a")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, "renamed", got.Dataset)

			require.NoError(t, s.DeleteModel(ctx, "run-a"))
			_, ok, err = s.GetModel(ctx, "run-a")
			require.NoError(t, err)
			assert.False(t, ok)
			require.NoError(t, s.DeleteModel(ctx, "run-a"))

			require.ErrorIs(t, s.SaveModel(ctx, store.ModelRecord{}), store.ErrEmptyID)
		})
	}
}

func TestStoreVersionMismatch(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Init(ctx))
			r := sampleRecord("old", time.Now().UTC())
			r.SchemaVersion = store.CurrentSchemaVersion + 1
			require.NoError(t, s.SaveModel(ctx, r))

			_, _, err := s.GetModel(ctx, "old")
			require.ErrorIs(t, err, store.ErrVersionMismatch)
		})
	}
}

func TestStoreRequiresInit(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, _, err := s.GetModel(ctx, "x")
			require.ErrorIs(t, err, store.ErrNotInitialized)
			_, err = s.ListModels(ctx)
			require.ErrorIs(t, err, store.ErrNotInitialized)
		})
	}
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "lvhmm.db")

	first := store.NewSQLiteStore(path)
	require.NoError(t, first.Init(ctx))
	r := sampleRecord(store.NewRunID(), time.Now().UTC())
	require.NoError(t, first.SaveModel(ctx, r))
	require.NoError(t, first.Close())

	second := store.NewSQLiteStore(path)
	require.NoError(t, second.Init(ctx))
	require.NoError(t, second.Init(ctx))
	t.Cleanup(func() { _ = second.Close() })
	got, ok, err := second.GetModel(ctx, r.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, r.Classifier, got.Classifier)

	require.NoError(t, second.Close())
	_, _, err = second.GetModel(ctx, r.ID)
	require.ErrorIs(t, err, store.ErrNotInitialized)
	require.NoError(t, second.Init(ctx))
	_, ok, err = second.GetModel(ctx, r.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	require.ErrorIs(t, store.NewSQLiteStore("").Init(ctx), store.ErrNoPath)
}

func TestNewStore(t *testing.T) {
	s, err := store.NewStore("", "")
	require.NoError(t, err)
	assert.IsType(t, &store.MemoryStore{}, s)
	require.NoError(t, store.CloseIfSupported(s))

	s, err = store.NewStore(store.BackendSQLite, filepath.Join(t.TempDir(), "x.db"))
	require.NoError(t, err)
	assert.IsType(t, &store.SQLiteStore{}, s)
	require.NoError(t, store.CloseIfSupported(s))

	_, err = store.NewStore("postgres", "")
	require.ErrorIs(t, err, store.ErrUnknownBackend)
}

func TestNewRecord(t *testing.T) {
	r := store.NewRecord("d", quantizer.Snapshot{}, classifier.Snapshot{})
	assert.NotEmpty(t, r.ID)
	assert.NotEqual(t, r.ID, store.NewRunID())
	assert.Equal(t, store.CurrentSchemaVersion, r.SchemaVersion)
	assert.Equal(t, store.CurrentCodecVersion, r.CodecVersion)

	raw, err := store.EncodeModel(r)
	require.NoError(t, err)
	back, err := store.DecodeModel(raw)
	require.NoError(t, err)
	assert.Equal(t, r.ID, back.ID)
}
