// Package riskmodel applies the pretrained classification chain to feature
// matrices. The three stages (scaler, reducer, classifier) were fitted
// offline against the channel's historical readings and exported as JSON
// artifacts; this package only ever applies them, it never refits anything
// from the batch being scored.
package riskmodel

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Transformer is a pretrained matrix-in matrix-out stage.
type Transformer interface {
	Transform(X *mat.Dense) (*mat.Dense, error)
}

// Classifier is a pretrained stage assigning one integer cluster label per
// input row.
type Classifier interface {
	Predict(X *mat.Dense) ([]int, error)
}

// Pipeline chains the three pretrained stages in their fitted order:
// scale, reduce, classify. The order is part of the model contract and is
// never shortcut, even for degenerate all-zero rows.
type Pipeline struct {
	Scaler     Transformer
	Reducer    Transformer
	Classifier Classifier
}

// Predict runs an N-row feature matrix through the full chain and returns
// exactly N cluster labels.
func (p *Pipeline) Predict(X *mat.Dense) ([]int, error) {
	scaled, err := p.Scaler.Transform(X)
	if err != nil {
		return nil, fmt.Errorf("scaler stage: %w", err)
	}

	reduced, err := p.Reducer.Transform(scaled)
	if err != nil {
		return nil, fmt.Errorf("reducer stage: %w", err)
	}

	labels, err := p.Classifier.Predict(reduced)
	if err != nil {
		return nil, fmt.Errorf("classifier stage: %w", err)
	}

	return labels, nil
}
