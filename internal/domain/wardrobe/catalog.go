package wardrobe

import "sort"

// typeVocabulary is the recognized garment-type vocabulary per slot.
var typeVocabulary = map[Slot][]string{
	SlotTop:       {"longsleeve", "shirt", "shortsleeve", "sleeveless", "sweater", "hood", "fleece", "cardigan"},
	SlotBottom:    {"denim", "cotton pants", "slacks", "trainingpants", "shorts", "skirt", "dress"},
	SlotOuterwear: {"blazer", "cardigan", "coat", "longpedding", "shortpedding", "hoodzip", "fleece", "jumper"},
}

// Catalog maps each slot to the sorted, distinct types a candidate may use.
type Catalog map[Slot][]string

// Recognized reports whether itemType is in the vocabulary for slot.
func Recognized(slot Slot, itemType string) bool {
	for _, known := range typeVocabulary[slot] {
		if known == itemType {
			return true
		}
	}
	return false
}

// BuildCatalog derives the allowed types per slot from the wardrobe. Types outside the
// vocabulary are skipped and the outerwear list always contains NoOuterwear.
func BuildCatalog(items []Item) Catalog {
	sets := map[Slot]map[string]struct{}{
		SlotTop:       {},
		SlotBottom:    {},
		SlotOuterwear: {NoOuterwear: {}},
	}
	for _, item := range items {
		set, ok := sets[item.Slot]
		if !ok || item.Type == "" || !Recognized(item.Slot, item.Type) {
			continue
		}
		set[item.Type] = struct{}{}
	}

	catalog := make(Catalog, len(sets))
	for slot, set := range sets {
		values := make([]string, 0, len(set))
		for v := range set {
			values = append(values, v)
		}
		sort.Strings(values)
		catalog[slot] = values
	}
	return catalog
}

// Allows reports whether value is an allowed choice for slot.
func (c Catalog) Allows(slot Slot, value string) bool {
	for _, v := range c[slot] {
		if v == value {
			return true
		}
	}
	return false
}

// HasAny reports whether any of values is available for slot.
func (c Catalog) HasAny(slot Slot, values ...string) bool {
	for _, v := range values {
		if c.Allows(slot, v) {
			return true
		}
	}
	return false
}
