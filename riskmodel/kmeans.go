package riskmodel

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// KMeans assigns each projected row to the nearest fitted cluster center by
// Euclidean distance. The label is the centroid's index, matching how the
// clusters were numbered at training time.
type KMeans struct {
	Centroids [][]float64 `json:"centroids"`
}

// Clusters returns the size of the label space.
func (m *KMeans) Clusters() int {
	return len(m.Centroids)
}

// Predict returns one label per row of X.
func (m *KMeans) Predict(X *mat.Dense) ([]int, error) {
	if len(m.Centroids) == 0 {
		return nil, fmt.Errorf("classifier has no centroids")
	}

	rows, cols := X.Dims()
	if cols != len(m.Centroids[0]) {
		return nil, fmt.Errorf("classifier was fitted on %d dimensions, matrix has %d columns", len(m.Centroids[0]), cols)
	}

	labels := make([]int, rows)
	row := make([]float64, cols)
	for i := 0; i < rows; i++ {
		mat.Row(row, i, X)

		best := 0
		bestDist := math.Inf(1)
		for label, centroid := range m.Centroids {
			if d := floats.Distance(row, centroid, 2); d < bestDist {
				best = label
				bestDist = d
			}
		}
		labels[i] = best
	}

	return labels, nil
}
