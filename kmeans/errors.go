// Package kmeans: sentinel error set.
package kmeans

import "errors"

var (
	// ErrNoClusters indicates numClusters <= 0.
	ErrNoClusters = errors.New("kmeans: number of clusters must be > 0")

	// ErrEmptyData indicates a nil matrix or one with zero rows or columns.
	ErrEmptyData = errors.New("kmeans: training data is empty")

	// ErrTooFewSamples indicates fewer rows than clusters, so K distinct
	// initial centroids cannot be drawn.
	ErrTooFewSamples = errors.New("kmeans: fewer samples than clusters")

	// ErrBadOption indicates an out-of-range epoch or tolerance setting.
	ErrBadOption = errors.New("kmeans: invalid option value")
)
