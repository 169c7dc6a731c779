package stylist

import (
	"strings"

	"github.com/ggyyuubb/wearther/internal/domain/forecast"
	"github.com/ggyyuubb/wearther/internal/domain/wardrobe"
)

const (
	adviceMissingTop    = "Your wardrobe has no top that suits this weather. A plain long-sleeve shirt is easy to style and worth adding."
	adviceMissingBottom = "Your wardrobe has no bottoms that suit this weather. Cotton pants are comfortable, practical and easy to match."
	adviceFreezing      = "It is very cold. Consider buying warm outerwear such as a longpedding or a coat."
	adviceChilly        = "Your wardrobe lacks outerwear for chilly weather. Consider buying a jumper or a coat."
	adviceHot           = "It will be very hot and you have no shortsleeve or sleeveless tops. Prepare some cooler tops."
	adviceHeavyRain     = "For heavy rain, a water-resistant nylon jumper or trainingpants would be a good purchase."
)

// Advise lists wardrobe-gap suggestions for the selected day. Missing slot details are
// always reported; of the weather rules only the first matching one is.
func Advise(day forecast.Day, catalog wardrobe.Catalog, outfit Outfit, rules AdvisoryRules) []string {
	advice := make([]string, 0, 3)
	if !outfit.Top.Available {
		advice = append(advice, adviceMissingTop)
	}
	if !outfit.Bottom.Available {
		advice = append(advice, adviceMissingBottom)
	}

	temp := day.AvgTemp
	switch {
	case temp < rules.FreezingTemp && !catalog.HasAny(wardrobe.SlotOuterwear, "longpedding", "coat"):
		advice = append(advice, adviceFreezing)
	case temp < rules.ChillyTemp && !catalog.HasAny(wardrobe.SlotOuterwear, "jumper", "fleece", "cardigan", "blazer"):
		advice = append(advice, adviceChilly)
	case temp > rules.HotTemp && !catalog.HasAny(wardrobe.SlotTop, "shortsleeve", "sleeveless"):
		advice = append(advice, adviceHot)
	case isHeavyRain(day.Condition, rules.HeavyRainIndicators) &&
		!catalog.HasAny(wardrobe.SlotOuterwear, "jumper") &&
		!catalog.HasAny(wardrobe.SlotBottom, "trainingpants"):
		advice = append(advice, adviceHeavyRain)
	}
	return advice
}

func isHeavyRain(condition string, indicators []string) bool {
	lowered := strings.ToLower(condition)
	if strings.Contains(lowered, "강한 비") {
		return true
	}
	return strings.Contains(lowered, "heavy") && isRainy(lowered, indicators)
}
