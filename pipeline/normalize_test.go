package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbhargavreddy-5/Infection-risk-prediction-v2/types"
)

func TestFromFeedCoercesMixedValues(t *testing.T) {
	// The channel serves strings, bare numbers and nulls interchangeably.
	entry := types.FeedEntry{
		CreatedAt: "2026-01-05T10:00:00Z",
		Field1:    "23.5",
		Field2:    float64(61),
		Field3:    nil,
		Field4:    "",
		Field5:    "not-a-number",
		Field6:    "0.8",
	}

	reading := FromFeed(entry)

	assert.Equal(t, "2026-01-05T10:00:00Z", reading.CreatedAt)
	assert.Equal(t, 23.5, reading.Temperature)
	assert.Equal(t, 61.0, reading.Humidity)
	assert.Equal(t, 0.0, reading.Pressure)
	assert.Equal(t, 0.0, reading.Particulate)
	assert.Equal(t, 0.0, reading.CO2)
	assert.Equal(t, 0.8, reading.TVOC)
}

func TestFromFeedAllFieldsMissing(t *testing.T) {
	reading := FromFeed(types.FeedEntry{CreatedAt: "2026-01-05T10:00:00Z"})
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0}, reading.Features())
}

func TestNormalizeFeedsPreservesOrder(t *testing.T) {
	feeds := []types.FeedEntry{
		{CreatedAt: "2026-01-05T09:45:00Z", Field1: "21"},
		{CreatedAt: "2026-01-05T10:00:00Z", Field1: "22"},
	}

	readings := NormalizeFeeds(feeds)

	require.Len(t, readings, 2)
	assert.Equal(t, 21.0, readings[0].Temperature)
	assert.Equal(t, 22.0, readings[1].Temperature)
}

func TestBuildMatrixRoundTrip(t *testing.T) {
	readings := []types.Reading{
		{Temperature: 20, Humidity: 55, Pressure: 1010, Particulate: 9, CO2: 400, TVOC: 0.3},
		{Temperature: 25, Humidity: 60, Pressure: 1005, Particulate: 14, CO2: 600, TVOC: 0.9},
	}

	X, err := BuildMatrix(readings)
	require.NoError(t, err)

	rows, cols := X.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, types.FeatureCount, cols)
	for i, r := range readings {
		for j, want := range r.Features() {
			assert.InDelta(t, want, X.At(i, j), 1e-12)
		}
	}
}

func TestBuildMatrixEmptyWindow(t *testing.T) {
	_, err := BuildMatrix(nil)
	assert.ErrorIs(t, err, ErrNoData)
}
