package kmeans

// SquaredDistance returns Σ(a[i]-b[i])². The caller guarantees equal lengths.
// Complexity: O(len(a)).
func SquaredDistance(a, b []float64) float64 {
	var d, s float64
	for i := range a {
		d = a[i] - b[i]
		s += d * d
	}

	return s
}

// Nearest returns the index of the centroid closest to x and its squared
// distance. Comparison is strict, so the first of several equidistant
// centroids wins. When dists is non-nil it receives every squared distance.
// Complexity: O(K·D).
func Nearest(x []float64, centroids [][]float64, dists []float64) (int, float64) {
	best, bestD := 0, 0.0
	for k, c := range centroids {
		d := SquaredDistance(x, c)
		if dists != nil {
			dists[k] = d
		}
		if k == 0 || d < bestD {
			best, bestD = k, d
		}
	}

	return best, bestD
}
