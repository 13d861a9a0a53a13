// Package hmm implements a discrete Hidden Markov Model with scaled
// forward-backward inference and Baum-Welch re-estimation.
//
// 🚀 What is it for?
//
//	One Model describes one class of symbol sequences. Score a sequence
//	with LogLikelihood; fit a model to a set of sequences with Train.
//
// ✨ Key features:
//   - ergodic or left-right banded topology (A[i][j]=0 unless i ≤ j ≤ i+delta)
//   - scaled recursions: no underflow on long sequences
//   - random restarts: N short trials, the best log-likelihood seeds the full run
//   - deterministic under WithSeed
//
// Sign convention: LogLikelihood returns log P(O|λ) = −Σ log c[t]. It is
// never positive and larger (closer to 0) is better, everywhere in this
// package: restart selection, the training log and classification.
//
// ⚙️ Usage:
//
//	m, _ := hmm.New(hmm.WithSeed(1))
//	_ = m.Reset(3, 10, hmm.LeftRight, 1)
//	err := m.Train([][]int{{0, 1, 2, 2}, {0, 0, 1, 2}})
//	ll, err := m.LogLikelihood([]int{0, 1, 2})
//
// Lifecycle: Uninitialized → Randomized (Reset) → Trained (Train/FromParams).
//
// Performance:
//
//   - LogLikelihood: O(T·N²) time, O(T·N) memory
//   - Train:         O(restarts·iter·ΣT·N·(N+M)) time
package hmm
