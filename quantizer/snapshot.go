package quantizer

import (
	"fmt"

	"github.com/katalvlaran/lvhmm/matrix"
)

// Snapshot is the persisted form of a trained codebook.
type Snapshot struct {
	NumClusters   int             `json:"num_clusters"`
	NumDimensions int             `json:"num_dimensions"`
	Centroids     [][]float64     `json:"centroids"`
	Ranges        []matrix.MinMax `json:"ranges,omitempty"`
	Scaled        bool            `json:"scaled"`
	Theta         float64         `json:"theta"`
}

// Snapshot exports the codebook.
//
// Errors:
//   - ErrNotTrained.
func (q *Quantizer) Snapshot() (Snapshot, error) {
	if !q.trained {
		return Snapshot{}, ErrNotTrained
	}
	cents := make([][]float64, len(q.centroids))
	for k, c := range q.centroids {
		cents[k] = append([]float64(nil), c...)
	}

	return Snapshot{
		NumClusters:   len(q.centroids),
		NumDimensions: q.numDims,
		Centroids:     cents,
		Ranges:        append([]matrix.MinMax(nil), q.ranges...),
		Scaled:        q.scaled,
		Theta:         q.theta,
	}, nil
}

// Restore loads a codebook, replacing the current one. On error nothing changes.
//
// Errors:
//   - ErrBadSnapshot for inconsistent sizes.
func (q *Quantizer) Restore(s Snapshot) error {
	if s.NumClusters <= 0 || s.NumDimensions <= 0 || len(s.Centroids) != s.NumClusters {
		return fmt.Errorf("Restore: %d clusters, %d dims, %d centroids: %w",
			s.NumClusters, s.NumDimensions, len(s.Centroids), ErrBadSnapshot)
	}
	for k, c := range s.Centroids {
		if len(c) != s.NumDimensions {
			return fmt.Errorf("Restore: centroid %d has %d values: %w", k, len(c), ErrBadSnapshot)
		}
	}
	if s.Scaled && len(s.Ranges) != s.NumDimensions {
		return fmt.Errorf("Restore: scaled codebook needs %d ranges: %w", s.NumDimensions, ErrBadSnapshot)
	}
	if err := q.engine.SetNumClusters(s.NumClusters); err != nil {
		return err
	}

	q.clear()
	q.centroids = make([][]float64, s.NumClusters)
	for k, c := range s.Centroids {
		q.centroids[k] = append([]float64(nil), c...)
	}
	q.numDims = s.NumDimensions
	q.ranges = append([]matrix.MinMax(nil), s.Ranges...)
	q.scaled = s.Scaled
	q.theta = s.Theta
	q.distances = make([]float64, s.NumClusters)
	q.trained = true

	return nil
}
