// SPDX-License-Identifier: MIT
// Package: kmeans
//
// kmeans.go: Lloyd's algorithm over a *matrix.Dense.

package kmeans

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvhmm/internal/rng"
	"github.com/katalvlaran/lvhmm/matrix"
)

// Result is the frozen outcome of one Train call.
type Result struct {
	Centroids    *matrix.Dense   // K×D codebook (in the scaled space when Scaled)
	Counts       []int           // points per cluster after the last E-step
	Assignments  []int           // cluster index per training row
	Converged    bool            // stopped by the no-change or theta rule
	Iterations   int             // epochs run
	Theta        float64         // final dispersion (0 when theta is off)
	ThetaHistory []float64       // theta per epoch (empty when theta is off)
	Ranges       []matrix.MinMax // per-column ranges of the raw training data
	Scaled       bool            // training ran on [0,1]-rescaled data
}

// Engine trains K-Means models. It holds only configuration and its RNG
// stream, so one Engine may be reused for several Train calls.
type Engine struct {
	cfg config
}

// New builds an Engine from options.
//
// Errors:
//   - ErrNoClusters when numClusters <= 0.
//   - ErrBadOption for negative minEpochs/minChange or maxEpochs <= 0.
func New(opts ...Option) (*Engine, error) {
	cfg := newConfig(opts...)
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Engine{cfg: cfg}, nil
}

// NumClusters returns K.
func (e *Engine) NumClusters() int { return e.cfg.numClusters }

// Scaling reports whether training rescales its input.
func (e *Engine) Scaling() bool { return e.cfg.scaling }

// SetNumClusters changes K. On error the engine is unchanged.
func (e *Engine) SetNumClusters(k int) error {
	if k <= 0 {
		return ErrNoClusters
	}
	e.cfg.numClusters = k

	return nil
}

// Train clusters the rows of data. data itself is never modified.
// MAIN DESCRIPTION:
//   - Lloyd's algorithm with seeded distinct-row initialisation.
//
// Implementation:
//   - Stage 1: validate config and shape; optionally rescale a copy into [0,1].
//   - Stage 2: seed K centroids from the first K indices of a random permutation.
//   - Stage 3: alternate E-step / M-step / theta until a stop rule fires.
//   - Stage 4: freeze the centroids into a K×D matrix.
//
// Behavior highlights:
//   - First epoch counts every point as reassigned.
//   - Ties go to the lowest centroid index.
//   - A cluster that receives no points keeps its previous centroid.
//
// Errors:
//   - ErrNoClusters, ErrEmptyData, ErrTooFewSamples.
//
// Complexity:
//   - Time O(epochs·N·K·D), Space O(N + K·D).
func (e *Engine) Train(data *matrix.Dense) (Result, error) {
	cfg := e.cfg
	if cfg.numClusters <= 0 {
		return Result{}, ErrNoClusters
	}
	if err := matrix.ValidateNonEmpty(data); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrEmptyData, err)
	}
	n, d, k := data.Rows(), data.Cols(), cfg.numClusters
	if n < k {
		return Result{}, fmt.Errorf("Train: %d samples for %d clusters: %w", n, k, ErrTooFewSamples)
	}

	// Stage 1: working copy.
	ranges := data.Ranges()
	work := data
	if cfg.scaling {
		work = data.CloneDense()
		if err := work.ScaleWithRanges(ranges, 0, 1); err != nil {
			return Result{}, err
		}
	}
	points := make([][]float64, n)
	for i := 0; i < n; i++ {
		points[i], _ = work.RowView(i)
	}

	// Stage 2: distinct initial centroids.
	perm, err := rng.Perm(n, cfg.rng)
	if err != nil {
		return Result{}, err
	}
	centroids := make([][]float64, k)
	for c := 0; c < k; c++ {
		centroids[c] = append([]float64(nil), points[perm[c]]...)
	}

	// Stage 3: main loop with per-call scratch.
	assign := make([]int, n)
	for i := range assign {
		assign[i] = -1
	}
	count := make([]int, k)
	sums := make([][]float64, k)
	for c := range sums {
		sums[c] = make([]float64, d)
	}

	var (
		iter, changed      int
		theta, last, delta float64
		converged          bool
		history            []float64
	)
	keepGoing := true
	for keepGoing {
		changed = estep(points, centroids, assign, count)
		mstep(points, centroids, assign, count, sums)
		iter++

		if cfg.computeTheta {
			theta = dispersion(points, centroids, assign)
			delta = last - theta
			last = theta
			history = append(history, theta)
		} else {
			theta, delta = 0, 0
		}

		if changed == 0 && iter > cfg.minEpochs {
			converged, keepGoing = true, false
		}
		if iter >= cfg.maxEpochs {
			keepGoing = false
		}
		if cfg.computeTheta && math.Abs(delta) < cfg.minChange && iter > cfg.minEpochs {
			converged, keepGoing = true, false
		}
		cfg.log.Debugw("epoch", "iter", iter, "maxEpochs", cfg.maxEpochs,
			"changed", changed, "theta", theta, "delta", delta)
	}
	cfg.log.Infow("kmeans trained", "clusters", k, "samples", n, "dims", d,
		"iterations", iter, "converged", converged, "theta", theta)

	// Stage 4: freeze.
	cm, err := matrix.NewDenseFromRows(centroids)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Centroids:    cm,
		Counts:       count,
		Assignments:  assign,
		Converged:    converged,
		Iterations:   iter,
		Theta:        theta,
		ThetaHistory: history,
		Ranges:       ranges,
		Scaled:       cfg.scaling,
	}, nil
}

// estep assigns every point to its nearest centroid, refreshes count and
// returns the number of points whose assignment changed.
func estep(points, centroids [][]float64, assign, count []int) int {
	clear(count)
	changed := 0
	for m, x := range points {
		kmin, _ := Nearest(x, centroids, nil)
		if kmin != assign[m] {
			changed++
			assign[m] = kmin
		}
		count[kmin]++
	}

	return changed
}

// mstep moves every non-empty cluster to the mean of its points.
func mstep(points, centroids [][]float64, assign, count []int, sums [][]float64) {
	for c := range sums {
		clear(sums[c])
	}
	for m, x := range points {
		floats.Add(sums[assign[m]], x)
	}
	for c := range centroids {
		if count[c] == 0 {
			continue
		}
		floats.Scale(1/float64(count[c]), sums[c])
		copy(centroids[c], sums[c])
	}
}

// dispersion is the mean Euclidean distance point → assigned centroid.
func dispersion(points, centroids [][]float64, assign []int) float64 {
	var s float64
	for m, x := range points {
		s += floats.Distance(x, centroids[assign[m]], 2)
	}

	return s / float64(len(points))
}
