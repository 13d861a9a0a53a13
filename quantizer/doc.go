// Package quantizer maps continuous feature vectors to discrete symbols: the
// index of the nearest centroid of a trained K-Means codebook.
//
// A Quantizer owns its codebook exclusively; Train replaces any previous one.
// Using an untrained quantizer, or a vector of the wrong length, is not fatal:
// Quantize returns symbol 0 together with an error.
package quantizer
