package riskmodel

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pbhargavreddy-5/Infection-risk-prediction-v2/types"
)

// Artifact file names inside the model directory. The directory layout
// mirrors the training exporter: one JSON file per fitted stage plus the
// hand-curated label-to-tier table.
const (
	ScalerFile = "scaler.json"
	PCAFile    = "pca.json"
	KMeansFile = "kmeans.json"
	TiersFile  = "tiers.json"
)

// Load reads the three stage artifacts from dir and assembles the pipeline.
// It checks every dimension the stages share, so a mismatched or reordered
// export fails here instead of silently scoring garbage.
func Load(dir string) (*Pipeline, error) {
	var scaler StandardScaler
	if err := loadJSON(filepath.Join(dir, ScalerFile), &scaler); err != nil {
		return nil, err
	}
	if len(scaler.Mean) == 0 || len(scaler.Mean) != len(scaler.Scale) {
		return nil, fmt.Errorf("%s: mean has %d entries, scale has %d", ScalerFile, len(scaler.Mean), len(scaler.Scale))
	}

	var pca PCA
	if err := loadJSON(filepath.Join(dir, PCAFile), &pca); err != nil {
		return nil, err
	}
	if len(pca.Mean) != len(scaler.Mean) {
		return nil, fmt.Errorf("%s: fitted on %d features but scaler has %d", PCAFile, len(pca.Mean), len(scaler.Mean))
	}
	if len(pca.Components) == 0 {
		return nil, fmt.Errorf("%s: no components", PCAFile)
	}
	for i, row := range pca.Components {
		if len(row) != len(pca.Mean) {
			return nil, fmt.Errorf("%s: component %d has %d entries, want %d", PCAFile, i, len(row), len(pca.Mean))
		}
	}

	var km KMeans
	if err := loadJSON(filepath.Join(dir, KMeansFile), &km); err != nil {
		return nil, err
	}
	if len(km.Centroids) == 0 {
		return nil, fmt.Errorf("%s: no centroids", KMeansFile)
	}
	for i, centroid := range km.Centroids {
		if len(centroid) != len(pca.Components) {
			return nil, fmt.Errorf("%s: centroid %d has %d dimensions, reducer produces %d", KMeansFile, i, len(centroid), len(pca.Components))
		}
	}

	return &Pipeline{Scaler: &scaler, Reducer: &pca, Classifier: &km}, nil
}

// LoadTiers reads the label-to-tier table. JSON object keys arrive as
// strings, so they are parsed back into integer cluster labels here.
func LoadTiers(dir string) (types.TierMap, error) {
	var raw map[string]string
	if err := loadJSON(filepath.Join(dir, TiersFile), &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%s: empty tier table", TiersFile)
	}

	tiers := make(types.TierMap, len(raw))
	for key, tier := range raw {
		label, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("%s: tier key %q is not a cluster label", TiersFile, key)
		}
		if tier == "" {
			return nil, fmt.Errorf("%s: label %d has an empty tier name", TiersFile, label)
		}
		tiers[label] = tier
	}

	return tiers, nil
}

func loadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read model artifact: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return nil
}
