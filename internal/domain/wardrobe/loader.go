package wardrobe

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
)

const notAvailable = "N/A"

// LoaderConfig controls degrade behavior of the loader.
type LoaderConfig struct {
	// FallbackOnError serves the synthetic wardrobe when the store fails instead of an empty one.
	FallbackOnError bool
}

// Loader normalizes raw closet records into Items.
type Loader struct {
	store    Store
	cfg      LoaderConfig
	validate *validator.Validate
	logger   *slog.Logger
}

// NewLoader wires a loader around a record store.
func NewLoader(store Store, cfg LoaderConfig, logger *slog.Logger) *Loader {
	return &Loader{
		store:    store,
		cfg:      cfg,
		validate: validator.New(),
		logger:   logger.With("component", "wardrobe.loader"),
	}
}

// Ready reports whether a backing store is configured.
func (l *Loader) Ready() bool {
	return l != nil && l.store != nil
}

// Load returns the user's normalized wardrobe. It never fails: an empty wardrobe yields
// FallbackItems, and a store failure yields an empty list (or the fallback when configured).
func (l *Loader) Load(ctx context.Context, userID string) []Item {
	if !l.Ready() {
		l.logger.Error("wardrobe store not configured", "user_id", userID)
		return nil
	}
	records, err := l.store.ListRecords(ctx, userID)
	if err != nil {
		l.logger.Error("wardrobe load failed", "user_id", userID, "error", err)
		if l.cfg.FallbackOnError {
			return FallbackItems()
		}
		return nil
	}

	items := make([]Item, 0, len(records))
	for _, rec := range records {
		if err := l.validate.Struct(rec); err != nil {
			l.logger.Warn("dropping invalid closet record", "user_id", userID, "error", err)
			continue
		}
		item, ok := Normalize(rec)
		if !ok {
			l.logger.Warn("dropping closet record with unknown slot", "user_id", userID, "slot", rec.Type)
			continue
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		l.logger.Warn("wardrobe empty, using fallback items", "user_id", userID)
		return FallbackItems()
	}
	l.logger.Info("wardrobe loaded", "user_id", userID, "items", len(items))
	return items
}

// Normalize converts an upstream record into an Item, swapping the type/category fields.
func Normalize(rec Record) (Item, bool) {
	slot, ok := ParseSlot(rec.Type)
	if !ok {
		return Item{}, false
	}
	item := Item{
		Slot:      slot,
		Type:      strings.TrimSpace(rec.Category),
		Color:     notAvailable,
		Material:  strings.TrimSpace(rec.Material),
		LengthFit: strings.TrimSpace(rec.LengthFit),
	}
	if len(rec.Colors) > 0 && strings.TrimSpace(rec.Colors[0]) != "" {
		item.Color = strings.TrimSpace(rec.Colors[0])
	}
	if item.LengthFit == "" {
		item.LengthFit = notAvailable
	}
	if url := strings.TrimSpace(rec.URL); url != "" {
		item.ImageRef = &url
	}
	return item, true
}

// FallbackItems is the synthetic wardrobe used when a user has no items: one per slot.
func FallbackItems() []Item {
	ref := func(s string) *string { return &s }
	return []Item{
		{Slot: SlotTop, Type: "sweater", Color: "Beige", Material: "knit", LengthFit: notAvailable, ImageRef: ref("SIMULATED_URL_TOP")},
		{Slot: SlotBottom, Type: "denim", Color: "Blue", Material: "denim", LengthFit: notAvailable, ImageRef: ref("SIMULATED_URL_BOTTOM")},
		{Slot: SlotOuterwear, Type: "blazer", Color: "Black", Material: "wool", LengthFit: notAvailable, ImageRef: ref("SIMULATED_URL_OUTER")},
	}
}
