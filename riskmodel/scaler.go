package riskmodel

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// StandardScaler standardizes each column with the mean and spread captured
// at training time. Recomputing these from the current batch would score the
// window against itself instead of against the fitted distribution, so the
// parameters always come from the artifact.
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// Transform returns a new matrix with every column centered and scaled by the
// fitted parameters. A zero fitted scale degrades to centering only for that
// column.
func (s *StandardScaler) Transform(X *mat.Dense) (*mat.Dense, error) {
	rows, cols := X.Dims()
	if cols != len(s.Mean) {
		return nil, fmt.Errorf("scaler was fitted on %d features, matrix has %d columns", len(s.Mean), cols)
	}

	out := mat.NewDense(rows, cols, nil)
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			v := X.At(i, j) - s.Mean[j]
			if s.Scale[j] != 0 {
				v /= s.Scale[j]
			}
			out.Set(i, j, v)
		}
	}

	return out, nil
}
