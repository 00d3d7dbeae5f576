package pipeline

import (
	"errors"

	"gonum.org/v1/gonum/mat"

	"github.com/pbhargavreddy-5/Infection-risk-prediction-v2/types"
)

// ErrNoData is the terminal outcome for an empty feed window. It is not a
// failure: the channel simply has nothing to classify yet.
var ErrNoData = errors.New("no readings in window")

// BuildMatrix lays the readings out one row per reading in fetch order,
// columns in the canonical feature order the model was fitted on.
func BuildMatrix(readings []types.Reading) (*mat.Dense, error) {
	if len(readings) == 0 {
		return nil, ErrNoData
	}

	X := mat.NewDense(len(readings), types.FeatureCount, nil)
	for i, r := range readings {
		X.SetRow(i, r.Features())
	}
	return X, nil
}
