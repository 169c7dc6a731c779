package wardrobe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildCatalogFiltersVocabulary(t *testing.T) {
	items := []Item{
		{Slot: SlotTop, Type: "sweater"},
		{Slot: SlotTop, Type: "longsleeve"},
		{Slot: SlotTop, Type: "sweater"},
		{Slot: SlotTop, Type: "tuxedo"},
		{Slot: SlotBottom, Type: "shorts"},
		{Slot: SlotBottom, Type: "coat"},
		{Slot: SlotOuterwear, Type: "coat"},
	}

	catalog := BuildCatalog(items)
	require.Equal(t, []string{"longsleeve", "sweater"}, catalog[SlotTop])
	require.Equal(t, []string{"shorts"}, catalog[SlotBottom])
	require.Equal(t, []string{"coat", "none"}, catalog[SlotOuterwear])
}

func TestBuildCatalogAlwaysOffersNoOuterwear(t *testing.T) {
	catalog := BuildCatalog(nil)
	require.Empty(t, catalog[SlotTop])
	require.Empty(t, catalog[SlotBottom])
	require.Equal(t, []string{NoOuterwear}, catalog[SlotOuterwear])
	require.True(t, catalog.Allows(SlotOuterwear, NoOuterwear))
	require.False(t, catalog.HasAny(SlotOuterwear, "coat", "longpedding"))
}

func TestParseSlot(t *testing.T) {
	cases := map[string]Slot{"Top": SlotTop, "하의": SlotBottom, " outer ": SlotOuterwear, "아우터": SlotOuterwear}
	for label, want := range cases {
		got, ok := ParseSlot(label)
		require.True(t, ok, label)
		require.Equal(t, want, got, label)
	}
	_, ok := ParseSlot("shoes")
	require.False(t, ok)
}
