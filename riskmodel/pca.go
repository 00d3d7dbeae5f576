package riskmodel

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// PCA projects scaled feature rows into the fitted lower-dimensional space:
// (X - mean) · componentsᵀ. Components is row-major, one row per retained
// component, each as wide as the fitted feature vector.
type PCA struct {
	Mean       []float64   `json:"mean"`
	Components [][]float64 `json:"components"`
}

// Transform projects an N×d matrix to N×k, where k is the number of fitted
// components.
func (p *PCA) Transform(X *mat.Dense) (*mat.Dense, error) {
	rows, cols := X.Dims()
	if cols != len(p.Mean) {
		return nil, fmt.Errorf("reducer was fitted on %d features, matrix has %d columns", len(p.Mean), cols)
	}

	centered := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			centered.Set(i, j, X.At(i, j)-p.Mean[j])
		}
	}

	k := len(p.Components)
	flat := make([]float64, 0, k*cols)
	for _, row := range p.Components {
		flat = append(flat, row...)
	}
	components := mat.NewDense(k, cols, flat)

	var out mat.Dense
	out.Mul(centered, components.T())
	return &out, nil
}
