// Package lvhmm classifies labelled multi-dimensional time series with
// discrete hidden Markov models.
//
// 🚀 What is lvhmm?
//
//	A small pipeline that turns continuous sequences into class labels:
//		• Quantize: K-Means codebook maps every time step to a symbol
//		• Model: one discrete HMM per class, trained with Baum-Welch
//		• Classify: highest log-likelihood wins, with optional null rejection
//		• Persist: codebook + ensemble stored in memory or SQLite
//
// ✨ Why choose lvhmm?
//
//   - Deterministic: every random draw comes from a seeded stream
//   - Scaled forward/backward: long sequences do not underflow
//   - Pure Go: SQLite through modernc.org/sqlite, no cgo
//   - Silent by default: pass a zap logger to see training progress
//
// Packages:
//
//	matrix/     - row-major float64 matrix, per-column ranges and rescaling
//	dataset/    - labelled time-series samples, class tracker, GRT text codec
//	kmeans/     - K-Means clustering with seeded initialisation
//	quantizer/  - codebook built on kmeans: vector → symbol
//	hmm/        - discrete HMM: ergodic / left-right, forward, Baum-Welch
//	classifier/ - per-class HMM ensemble with null rejection
//	store/      - versioned persistence of trained pipelines
//	cmd/lvhmm   - CLI: stats, train, predict, models
//
// Pipeline:
//
//	samples (T×D) ──kmeans──▶ symbols (T×1) ──HMM per class──▶ label
//
//	go install github.com/katalvlaran/lvhmm/cmd/lvhmm@latest
package lvhmm
