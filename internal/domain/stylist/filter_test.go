package stylist

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ggyyuubb/wearther/internal/domain/forecast"
)

func TestFilterRejectsOuterwearInHeat(t *testing.T) {
	candidates := []Candidate{
		{Top: "shortsleeve", Bottom: "shorts", Outerwear: "cardigan"},
		{Top: "sleeveless", Bottom: "skirt", Outerwear: "none"},
		{Top: "shirt", Bottom: "slacks", Outerwear: "blazer"},
	}
	kept := Filter(candidates, forecast.Day{AvgTemp: 35, Condition: "clear sky"}, DefaultConfig().Filter)

	require.Equal(t, []Candidate{candidates[1]}, kept)
	for _, c := range kept {
		require.Equal(t, "none", c.Outerwear)
	}
}

func TestFilterRejectsExposedBottomsInCold(t *testing.T) {
	candidates := []Candidate{
		{Top: "sweater", Bottom: "shorts", Outerwear: "coat"},
		{Top: "sweater", Bottom: "skirt", Outerwear: "coat"},
		{Top: "sweater", Bottom: "denim", Outerwear: "coat"},
	}
	kept := Filter(candidates, forecast.Day{AvgTemp: 10, Condition: "clouds"}, DefaultConfig().Filter)
	require.Equal(t, []Candidate{candidates[2]}, kept)
}

func TestFilterRejectsExposedBottomsInRain(t *testing.T) {
	candidates := []Candidate{
		{Top: "shortsleeve", Bottom: "shorts", Outerwear: "none"},
		{Top: "shortsleeve", Bottom: "cotton pants", Outerwear: "none"},
	}
	rules := DefaultConfig().Filter

	kept := Filter(candidates, forecast.Day{AvgTemp: 24, Condition: "Moderate Rain"}, rules)
	require.Equal(t, []Candidate{candidates[1]}, kept)

	kept = Filter(candidates, forecast.Day{AvgTemp: 24, Condition: "약한 비"}, rules)
	require.Equal(t, []Candidate{candidates[1]}, kept)

	kept = Filter(candidates, forecast.Day{AvgTemp: 24, Condition: "clear sky"}, rules)
	require.Equal(t, candidates, kept)
}

func TestFilterBoundaries(t *testing.T) {
	rules := DefaultConfig().Filter
	coat := Candidate{Top: "shirt", Bottom: "denim", Outerwear: "coat"}
	shorts := Candidate{Top: "shirt", Bottom: "shorts", Outerwear: "none"}

	require.Len(t, Filter([]Candidate{coat}, forecast.Day{AvgTemp: 30}, rules), 1)
	require.Len(t, Filter([]Candidate{shorts}, forecast.Day{AvgTemp: 18}, rules), 1)
	require.Empty(t, Filter(nil, forecast.Day{AvgTemp: 18}, rules))
}
