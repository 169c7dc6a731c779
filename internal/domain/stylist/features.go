package stylist

import (
	"strings"

	"github.com/ggyyuubb/wearther/internal/domain/forecast"
)

// Feature layout shared with the ranking model artifact. Changing any index or the
// dimension requires a new SchemaVersion and a retrained model.
const (
	SchemaVersion = "outfit-features/v1"
	Dimension     = 51

	IdxTemperature   = 0
	IdxTopLongSleeve = 1
	IdxBottomDenim   = 2
	// ReservedStart is the first zero-filled index kept for future features.
	ReservedStart = 3
)

const (
	comfortMinTemp        = 10.0
	comfortMaxTemp        = 30.0
	outOfRangeTemperature = 0.5
)

// FeatureVector is a fixed-length model input.
type FeatureVector []float32

// Encode converts a forecast day and candidate into a FeatureVector.
func Encode(day forecast.Day, c Candidate) FeatureVector {
	vec := make(FeatureVector, Dimension)
	vec[IdxTemperature] = NormalizeTemperature(day.AvgTemp)
	vec[IdxTopLongSleeve] = indicator(strings.Contains(c.Top, "longsleeve"))
	vec[IdxBottomDenim] = indicator(strings.Contains(c.Bottom, "denim"))
	return vec
}

// NormalizeTemperature maps [10,30]°C onto [0,1]; anything outside that range is 0.5.
func NormalizeTemperature(temp float64) float32 {
	if temp < comfortMinTemp || temp > comfortMaxTemp {
		return outOfRangeTemperature
	}
	return float32((temp - comfortMinTemp) / (comfortMaxTemp - comfortMinTemp))
}

func indicator(ok bool) float32 {
	if ok {
		return 1
	}
	return 0
}
