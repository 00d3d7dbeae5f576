package riskmodel

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// writeArtifact marshals v into dir/name so tests can assemble model
// directories piecemeal.
func writeArtifact(t *testing.T, dir, name string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
}

// writeModelDir lays down a small but fully consistent artifact set:
// identity scaling, a reducer that keeps the first two features, and two
// centroids at the origin and at (10, 10).
func writeModelDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeArtifact(t, dir, ScalerFile, StandardScaler{
		Mean:  []float64{0, 0, 0, 0, 0, 0},
		Scale: []float64{1, 1, 1, 1, 1, 1},
	})
	writeArtifact(t, dir, PCAFile, PCA{
		Mean: []float64{0, 0, 0, 0, 0, 0},
		Components: [][]float64{
			{1, 0, 0, 0, 0, 0},
			{0, 1, 0, 0, 0, 0},
		},
	})
	writeArtifact(t, dir, KMeansFile, KMeans{
		Centroids: [][]float64{
			{0, 0},
			{10, 10},
		},
	})
	writeArtifact(t, dir, TiersFile, map[string]string{
		"0": "Low Risk",
		"1": "High Risk",
	})
	return dir
}

func TestLoadAndPredict(t *testing.T) {
	dir := writeModelDir(t)

	model, err := Load(dir)
	require.NoError(t, err)

	X := mat.NewDense(3, 6, []float64{
		0, 0, 0, 0, 0, 0,
		10, 10, 0, 0, 0, 0,
		1, 1, 99, 99, 99, 99,
	})
	labels, err := model.Predict(X)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 0}, labels)
}

func TestPredictRowCountPreserved(t *testing.T) {
	dir := writeModelDir(t)
	model, err := Load(dir)
	require.NoError(t, err)

	X := mat.NewDense(7, 6, nil)
	labels, err := model.Predict(X)
	require.NoError(t, err)
	assert.Len(t, labels, 7)
}

func TestPredictAllZeroRow(t *testing.T) {
	// Rows that defaulted to all zeros on parse failure still get a label.
	dir := writeModelDir(t)
	model, err := Load(dir)
	require.NoError(t, err)

	labels, err := model.Predict(mat.NewDense(1, 6, nil))
	require.NoError(t, err)
	assert.Equal(t, []int{0}, labels)
}

func TestPredictColumnMismatch(t *testing.T) {
	dir := writeModelDir(t)
	model, err := Load(dir)
	require.NoError(t, err)

	_, err = model.Predict(mat.NewDense(2, 4, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scaler stage")
}

func TestScalerTransform(t *testing.T) {
	scaler := &StandardScaler{
		Mean:  []float64{1, 2},
		Scale: []float64{2, 4},
	}
	out, err := scaler.Transform(mat.NewDense(1, 2, []float64{3, 10}))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, out.At(0, 0), 1e-9)
	assert.InDelta(t, 2.0, out.At(0, 1), 1e-9)
}

func TestScalerZeroScaleCentersOnly(t *testing.T) {
	scaler := &StandardScaler{
		Mean:  []float64{5},
		Scale: []float64{0},
	}
	out, err := scaler.Transform(mat.NewDense(1, 1, []float64{8}))
	require.NoError(t, err)
	assert.InDelta(t, 3.0, out.At(0, 0), 1e-9)
}

func TestPCATransform(t *testing.T) {
	pca := &PCA{
		Mean: []float64{1, 1},
		Components: [][]float64{
			{1, 0},
			{0, 1},
		},
	}
	out, err := pca.Transform(mat.NewDense(1, 2, []float64{4, 6}))
	require.NoError(t, err)
	rows, cols := out.Dims()
	assert.Equal(t, 1, rows)
	assert.Equal(t, 2, cols)
	assert.InDelta(t, 3.0, out.At(0, 0), 1e-9)
	assert.InDelta(t, 5.0, out.At(0, 1), 1e-9)
}

func TestKMeansTieGoesToFirstCentroid(t *testing.T) {
	km := &KMeans{Centroids: [][]float64{{-1}, {1}}}
	labels, err := km.Predict(mat.NewDense(1, 1, []float64{0}))
	require.NoError(t, err)
	assert.Equal(t, []int{0}, labels)
}

func TestLoadMissingArtifact(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read model artifact")
}

func TestLoadScalerLengthMismatch(t *testing.T) {
	dir := writeModelDir(t)
	writeArtifact(t, dir, ScalerFile, StandardScaler{
		Mean:  []float64{0, 0, 0},
		Scale: []float64{1},
	})
	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ScalerFile)
}

func TestLoadPCAFeatureMismatch(t *testing.T) {
	dir := writeModelDir(t)
	writeArtifact(t, dir, PCAFile, PCA{
		Mean:       []float64{0, 0, 0},
		Components: [][]float64{{1, 0, 0}},
	})
	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), PCAFile)
}

func TestLoadCentroidDimensionMismatch(t *testing.T) {
	dir := writeModelDir(t)
	writeArtifact(t, dir, KMeansFile, KMeans{
		Centroids: [][]float64{{0, 0, 0}},
	})
	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), KMeansFile)
}

func TestLoadTiers(t *testing.T) {
	dir := writeModelDir(t)
	tiers, err := LoadTiers(dir)
	require.NoError(t, err)
	assert.Equal(t, "Low Risk", tiers[0])
	assert.Equal(t, "High Risk", tiers[1])
}

func TestLoadTiersBadKey(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, TiersFile, map[string]string{"low": "Low Risk"})
	_, err := LoadTiers(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a cluster label")
}

func TestLoadTiersEmpty(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, TiersFile, map[string]string{})
	_, err := LoadTiers(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty tier table")
}
