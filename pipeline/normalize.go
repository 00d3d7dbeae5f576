package pipeline

import (
	"github.com/spf13/cast"

	"github.com/pbhargavreddy-5/Infection-risk-prediction-v2/types"
)

// FromFeed converts one raw feed entry into a Reading. The channel serves
// field values as strings, numbers or null depending on firmware mood, so
// each field is coerced individually; anything that will not parse becomes
// 0.0 and the reading as a whole survives.
func FromFeed(entry types.FeedEntry) types.Reading {
	return types.Reading{
		CreatedAt:   entry.CreatedAt,
		Temperature: safeFloat(entry.Field1),
		Humidity:    safeFloat(entry.Field2),
		Pressure:    safeFloat(entry.Field3),
		Particulate: safeFloat(entry.Field4),
		CO2:         safeFloat(entry.Field5),
		TVOC:        safeFloat(entry.Field6),
	}
}

// NormalizeFeeds converts the whole window in order, oldest first.
func NormalizeFeeds(feeds []types.FeedEntry) []types.Reading {
	readings := make([]types.Reading, 0, len(feeds))
	for _, entry := range feeds {
		readings = append(readings, FromFeed(entry))
	}
	return readings
}

func safeFloat(v any) float64 {
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0
	}
	return f
}
