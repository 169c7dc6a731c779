package wardrobe

import (
	"context"
	"strings"
)

// Slot is the garment role an item can fill.
type Slot string

const (
	SlotTop       Slot = "top"
	SlotBottom    Slot = "bottom"
	SlotOuterwear Slot = "outerwear"
)

// NoOuterwear is the catalog value meaning "wear no outerwear".
const NoOuterwear = "none"

// Slots lists the recognized garment slots in display order.
var Slots = []Slot{SlotTop, SlotBottom, SlotOuterwear}

// Item is the canonical wardrobe entry consumed by the recommendation pipeline.
type Item struct {
	Slot      Slot    `json:"slot"`
	Type      string  `json:"type"`
	Color     string  `json:"color"`
	Material  string  `json:"material"`
	LengthFit string  `json:"lengthFit"`
	ImageRef  *string `json:"imageRef"`
}

// Record is a closet document as stored upstream. Upstream uses "type" for the slot label
// and "category" for the garment type, the opposite of Item.
type Record struct {
	Type      string   `json:"type" validate:"required"`
	Category  string   `json:"category" validate:"required"`
	Colors    []string `json:"colors"`
	Material  string   `json:"material"`
	LengthFit string   `json:"lengthFit"`
	URL       string   `json:"url" validate:"omitempty,max=4096"`
}

// Store reads raw closet records for a user.
type Store interface {
	ListRecords(ctx context.Context, userID string) ([]Record, error)
}

var slotLabels = map[string]Slot{
	"top":       SlotTop,
	"상의":        SlotTop,
	"bottom":    SlotBottom,
	"하의":        SlotBottom,
	"outerwear": SlotOuterwear,
	"outer":     SlotOuterwear,
	"아우터":       SlotOuterwear,
}

// ParseSlot maps an upstream slot label to a Slot.
func ParseSlot(label string) (Slot, bool) {
	slot, ok := slotLabels[strings.ToLower(strings.TrimSpace(label))]
	return slot, ok
}

// FindItem returns the first item matching slot and type.
func FindItem(items []Item, slot Slot, itemType string) (Item, bool) {
	for _, item := range items {
		if item.Slot == slot && item.Type == itemType {
			return item, true
		}
	}
	return Item{}, false
}
