package types

// FeatureCount is the width of the tracked measurement vector. The pretrained
// artifacts were fitted against exactly this many columns, in the order
// Features returns them.
const FeatureCount = 6

// Reading is one normalized telemetry sample. CreatedAt keeps the channel's
// raw timestamp string untouched; it is only parsed at report time.
type Reading struct {
	CreatedAt   string  `firestore:"createdAt" json:"created_at"`
	Temperature float64 `firestore:"temperature" json:"temperature"`
	Humidity    float64 `firestore:"humidity" json:"humidity"`
	Pressure    float64 `firestore:"pressure" json:"pressure"`
	Particulate float64 `firestore:"particulate" json:"particulate"`
	CO2         float64 `firestore:"co2" json:"co2"`
	TVOC        float64 `firestore:"tvoc" json:"tvoc"`
}

// Features returns the six tracked values in the canonical column order the
// pretrained transform stages expect: temperature, humidity, pressure,
// particulate, co2, tvoc. Reordering these silently breaks the model.
func (r Reading) Features() []float64 {
	return []float64{
		r.Temperature,
		r.Humidity,
		r.Pressure,
		r.Particulate,
		r.CO2,
		r.TVOC,
	}
}
