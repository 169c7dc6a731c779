package stylist

import "github.com/ggyyuubb/wearther/internal/domain/wardrobe"

// NoItemAvailable labels a slot with nothing to wear.
const NoItemAvailable = "no item available"

const notAvailable = "N/A"

func resolveOutfit(c Candidate, items []wardrobe.Item) Outfit {
	return Outfit{
		Top:       resolveSlot(items, wardrobe.SlotTop, c.Top),
		Bottom:    resolveSlot(items, wardrobe.SlotBottom, c.Bottom),
		Outerwear: resolveSlot(items, wardrobe.SlotOuterwear, c.Outerwear),
	}
}

func resolveSlot(items []wardrobe.Item, slot wardrobe.Slot, itemType string) SlotDetail {
	if slot == wardrobe.SlotOuterwear && itemType == wardrobe.NoOuterwear {
		return placeholder()
	}
	item, ok := wardrobe.FindItem(items, slot, itemType)
	if !ok {
		return placeholder()
	}
	return SlotDetail{
		Type:      item.Type,
		Color:     item.Color,
		Material:  item.Material,
		LengthFit: item.LengthFit,
		ImageRef:  item.ImageRef,
		Available: true,
	}
}

func placeholder() SlotDetail {
	return SlotDetail{
		Type:      NoItemAvailable,
		Color:     notAvailable,
		Material:  notAvailable,
		LengthFit: notAvailable,
	}
}
