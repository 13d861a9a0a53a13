// Package classifier trains one discrete HMM per class label and labels new
// symbol sequences by the highest per-class log-likelihood.
//
// Training input is a quantized dataset: one column of integer symbols in
// [0, numSymbols). Every class is trained in the dataset's class-tracker
// order; any failure aborts the whole ensemble and leaves it untrained.
// After training each class gets a null-rejection threshold equal to the
// negative mean absolute log-likelihood of its own training sequences.
//
// Predict scores a sequence against every class model. The winner is the
// class with the highest raw log-likelihood. Per-class likelihoods are the
// exponentiated log-likelihoods normalised over classes. With null rejection
// on, the winner is kept only if its normalised likelihood exceeds its
// threshold; otherwise the label is 0.
package classifier
