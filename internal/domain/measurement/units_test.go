package measurement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_Families(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		quantity float64
		unit     string
		wantBase float64
		wantFam  Family
	}{
		{1, "cup", 236.588, FamilyVolume},
		{2, "tbsp", 29.5736, FamilyVolume},
		{1, "l", 1000, FamilyVolume},
		{1, "lb", 453.592, FamilyWeight},
		{500, "g", 500, FamilyWeight},
		{2, "", 2, FamilyCount},
		{1, "dozen", 12, FamilyCount},
		{3, "Cups", 709.764, FamilyVolume}, // case-insensitive alias
	}
	for _, tt := range tests {
		m := table.Convert(tt.quantity, tt.unit)
		assert.Equal(t, tt.wantFam, m.Family, "unit %q", tt.unit)
		assert.InDelta(t, tt.wantBase, m.BaseQuantity, 1e-3, "unit %q", tt.unit)
	}
}

func TestConvert_UnrecognizedUnitIsKeptVisible(t *testing.T) {
	table := DefaultTable()

	m := table.Convert(2, "handful")
	assert.Equal(t, FamilyUnconvertible, m.Family)
	assert.Equal(t, "handful", m.Unit)
	assert.Equal(t, 2.0, m.BaseQuantity)
}

func TestConvertRoundTrip(t *testing.T) {
	table := DefaultTable()
	units := []string{"tsp", "tbsp", "cup", "ml", "l", "fl oz", "g", "kg", "oz", "lb", "piece", "dozen"}

	for _, unit := range units {
		m := table.Convert(3.25, unit)
		require.NotEqual(t, FamilyUnconvertible, m.Family, "unit %q", unit)
		back, ok := table.ConvertBack(m.BaseQuantity, unit)
		require.True(t, ok, "unit %q", unit)
		assert.InDelta(t, 3.25, back, 1e-9, "unit %q", unit)
	}
}

func TestDisplay(t *testing.T) {
	table := DefaultTable()

	t.Run("PreferredUnitWinsWhenAtLeastOne", func(t *testing.T) {
		base := 4.5 * 236.588 // 4.5 cups
		value, unit := table.Display(base, FamilyVolume, "cup")
		assert.Equal(t, "cup", unit)
		assert.InDelta(t, 4.5, value, 1e-6)
	})

	t.Run("FallsToSmallerUnitBelowOne", func(t *testing.T) {
		base := 0.5 * 236.588 // half a cup
		value, unit := table.Display(base, FamilyVolume, "cup")
		assert.Equal(t, "tbsp", unit)
		assert.InDelta(t, 8, value, 1e-3)
	})

	t.Run("SmallestUnitFallback", func(t *testing.T) {
		value, unit := table.Display(0.5, FamilyVolume, "")
		assert.Equal(t, "ml", unit)
		assert.InDelta(t, 0.5, value, 1e-9)
	})

	t.Run("LargestUnitWithoutPreference", func(t *testing.T) {
		value, unit := table.Display(2000, FamilyWeight, "")
		assert.Equal(t, "kg", unit)
		assert.InDelta(t, 2, value, 1e-9)
	})
}

func TestExtend(t *testing.T) {
	table := DefaultTable().Extend(map[string]UnitDefinition{
		"stick": {Canonical: "stick", Family: FamilyWeight, ToBase: 113.398},
	})

	m := table.Convert(2, "stick")
	assert.Equal(t, FamilyWeight, m.Family)
	assert.InDelta(t, 226.796, m.BaseQuantity, 1e-3)
}
