// Package kmeans partitions feature vectors into K clusters with Lloyd's
// algorithm and yields the centroid codebook used for vector quantization.
//
// 🚀 Algorithm
//
//	init:   K distinct rows picked by a seeded Fisher–Yates permutation
//	E-step: assign every point to its nearest centroid (squared Euclidean,
//	        first index wins on ties); count reassignments
//	M-step: move every centroid to the mean of its points; a centroid with
//	        no points keeps its previous position
//	theta:  mean Euclidean distance point → centroid (optional)
//
// Training stops when nothing moved after minEpochs, when maxEpochs is hit,
// or when theta changed by less than minChange after minEpochs.
//
// ⚙️ Usage:
//
//	eng, err := kmeans.New(kmeans.WithNumClusters(8), kmeans.WithSeed(42))
//	res, err := eng.Train(data) // data: N×D *matrix.Dense
//	res.Centroids               // 8×D codebook
//
// Performance:
//
//   - Time:   O(epochs · N · K · D)
//   - Memory: O(N + K·D); scratch buffers are allocated per Train call.
package kmeans
