// Package measurement contains unit-aware quantity arithmetic for
// ingredient consolidation. Conversion tables are injected configuration,
// never hard-coded at call sites, so locales or domain-specific units can
// be substituted without code changes.
package measurement

import (
	"sort"
	"strings"
)

// Family groups units convertible into one canonical base unit
type Family string

const (
	FamilyVolume Family = "volume" // base unit: milliliter
	FamilyWeight Family = "weight" // base unit: gram
	FamilyCount  Family = "count"  // base unit: piece

	// FamilyUnconvertible marks units absent from the table. The line is
	// kept and displayed as-is rather than dropped.
	FamilyUnconvertible Family = "unconvertible"
)

// UnitDefinition maps a canonical unit to its family and base-unit factor.
// NoDisplay units are recognized on input but never chosen for display.
type UnitDefinition struct {
	Canonical string
	Family    Family
	ToBase    float64
	NoDisplay bool
}

// Measurement is the result of converting a (quantity, unit) pair
type Measurement struct {
	BaseQuantity float64
	Family       Family
	Unit         string // canonical unit, or original text when unconvertible
}

// ConversionTable resolves unit aliases to definitions and selects
// human-friendly display units
type ConversionTable struct {
	units map[string]UnitDefinition
	// canonical units per family, ordered largest factor first
	displayOrder map[Family][]UnitDefinition
}

// NewConversionTable builds a table from alias definitions
func NewConversionTable(defs map[string]UnitDefinition) *ConversionTable {
	t := &ConversionTable{
		units:        make(map[string]UnitDefinition, len(defs)),
		displayOrder: make(map[Family][]UnitDefinition),
	}
	for alias, def := range defs {
		t.add(alias, def)
	}
	t.rebuildDisplayOrder()
	return t
}

// DefaultTable returns the standard cooking unit table
func DefaultTable() *ConversionTable {
	defs := map[string]UnitDefinition{
		// Volume, base milliliter
		"tsp":         {Canonical: "tsp", Family: FamilyVolume, ToBase: 4.92892},
		"teaspoon":    {Canonical: "tsp", Family: FamilyVolume, ToBase: 4.92892},
		"teaspoons":   {Canonical: "tsp", Family: FamilyVolume, ToBase: 4.92892},
		"tbsp":        {Canonical: "tbsp", Family: FamilyVolume, ToBase: 14.7868},
		"tablespoon":  {Canonical: "tbsp", Family: FamilyVolume, ToBase: 14.7868},
		"tablespoons": {Canonical: "tbsp", Family: FamilyVolume, ToBase: 14.7868},
		"cup":         {Canonical: "cup", Family: FamilyVolume, ToBase: 236.588},
		"cups":        {Canonical: "cup", Family: FamilyVolume, ToBase: 236.588},
		"ml":          {Canonical: "ml", Family: FamilyVolume, ToBase: 1},
		"milliliter":  {Canonical: "ml", Family: FamilyVolume, ToBase: 1},
		"milliliters": {Canonical: "ml", Family: FamilyVolume, ToBase: 1},
		"l":           {Canonical: "l", Family: FamilyVolume, ToBase: 1000},
		"liter":       {Canonical: "l", Family: FamilyVolume, ToBase: 1000},
		"liters":      {Canonical: "l", Family: FamilyVolume, ToBase: 1000},
		// Recipes rarely print fluid ounces; accept them on input only
		"fl oz":       {Canonical: "fl oz", Family: FamilyVolume, ToBase: 29.5735, NoDisplay: true},
		"fluid ounce": {Canonical: "fl oz", Family: FamilyVolume, ToBase: 29.5735, NoDisplay: true},

		// Weight, base gram
		"g":         {Canonical: "g", Family: FamilyWeight, ToBase: 1},
		"gram":      {Canonical: "g", Family: FamilyWeight, ToBase: 1},
		"grams":     {Canonical: "g", Family: FamilyWeight, ToBase: 1},
		"kg":        {Canonical: "kg", Family: FamilyWeight, ToBase: 1000},
		"kilogram":  {Canonical: "kg", Family: FamilyWeight, ToBase: 1000},
		"kilograms": {Canonical: "kg", Family: FamilyWeight, ToBase: 1000},
		"oz":        {Canonical: "oz", Family: FamilyWeight, ToBase: 28.3495},
		"ounce":     {Canonical: "oz", Family: FamilyWeight, ToBase: 28.3495},
		"ounces":    {Canonical: "oz", Family: FamilyWeight, ToBase: 28.3495},
		"lb":        {Canonical: "lb", Family: FamilyWeight, ToBase: 453.592},
		"lbs":       {Canonical: "lb", Family: FamilyWeight, ToBase: 453.592},
		"pound":     {Canonical: "lb", Family: FamilyWeight, ToBase: 453.592},
		"pounds":    {Canonical: "lb", Family: FamilyWeight, ToBase: 453.592},

		// Count, base piece. The empty unit covers lines like "2 eggs".
		"":       {Canonical: "piece", Family: FamilyCount, ToBase: 1},
		"piece":  {Canonical: "piece", Family: FamilyCount, ToBase: 1},
		"pieces": {Canonical: "piece", Family: FamilyCount, ToBase: 1},
		"whole":  {Canonical: "piece", Family: FamilyCount, ToBase: 1},
		"clove":  {Canonical: "clove", Family: FamilyCount, ToBase: 1},
		"cloves": {Canonical: "clove", Family: FamilyCount, ToBase: 1},
		"slice":  {Canonical: "slice", Family: FamilyCount, ToBase: 1},
		"slices": {Canonical: "slice", Family: FamilyCount, ToBase: 1},
		"can":    {Canonical: "can", Family: FamilyCount, ToBase: 1},
		"cans":   {Canonical: "can", Family: FamilyCount, ToBase: 1},
		"dozen":  {Canonical: "dozen", Family: FamilyCount, ToBase: 12},
	}
	return NewConversionTable(defs)
}

// Extend adds or overrides alias definitions, returning the table for chaining
func (t *ConversionTable) Extend(defs map[string]UnitDefinition) *ConversionTable {
	for alias, def := range defs {
		t.add(alias, def)
	}
	t.rebuildDisplayOrder()
	return t
}

func (t *ConversionTable) add(alias string, def UnitDefinition) {
	if def.Canonical == "" {
		def.Canonical = alias
	}
	t.units[normalizeUnit(alias)] = def
}

func (t *ConversionTable) rebuildDisplayOrder() {
	seen := make(map[string]bool)
	order := make(map[Family][]UnitDefinition)
	for _, def := range t.units {
		if def.NoDisplay {
			continue
		}
		key := string(def.Family) + "/" + def.Canonical
		if seen[key] {
			continue
		}
		seen[key] = true
		order[def.Family] = append(order[def.Family], def)
	}
	for family := range order {
		defs := order[family]
		sort.Slice(defs, func(i, j int) bool {
			if defs[i].ToBase != defs[j].ToBase {
				return defs[i].ToBase > defs[j].ToBase
			}
			return defs[i].Canonical < defs[j].Canonical
		})
		order[family] = defs
	}
	t.displayOrder = order
}

// Lookup resolves a unit alias, case-insensitively
func (t *ConversionTable) Lookup(unit string) (UnitDefinition, bool) {
	def, ok := t.units[normalizeUnit(unit)]
	return def, ok
}

// Convert converts a quantity in the given unit to its family base quantity.
// Unrecognized units are returned with FamilyUnconvertible and the original
// unit text preserved so the caller can still display the line.
func (t *ConversionTable) Convert(quantity float64, unit string) Measurement {
	def, ok := t.Lookup(unit)
	if !ok {
		return Measurement{
			BaseQuantity: quantity,
			Family:       FamilyUnconvertible,
			Unit:         strings.TrimSpace(unit),
		}
	}
	return Measurement{
		BaseQuantity: quantity * def.ToBase,
		Family:       def.Family,
		Unit:         def.Canonical,
	}
}

// ConvertBack expresses a base quantity in the given unit
func (t *ConversionTable) ConvertBack(baseQuantity float64, unit string) (float64, bool) {
	def, ok := t.Lookup(unit)
	if !ok {
		return 0, false
	}
	return baseQuantity / def.ToBase, true
}

// Display chooses a human-friendly unit for a base quantity. The preferred
// unit wins when the quantity expressed in it is at least 1; otherwise the
// largest unit in the family yielding a value of at least 1 is used, falling
// back to the smallest unit.
func (t *ConversionTable) Display(baseQuantity float64, family Family, preferred string) (float64, string) {
	if def, ok := t.Lookup(preferred); ok && def.Family == family {
		if v := baseQuantity / def.ToBase; v >= 1 {
			return v, def.Canonical
		}
	}

	order := t.displayOrder[family]
	if len(order) == 0 {
		return baseQuantity, preferred
	}
	for _, def := range order {
		if v := baseQuantity / def.ToBase; v >= 1 {
			return v, def.Canonical
		}
	}
	smallest := order[len(order)-1]
	return baseQuantity / smallest.ToBase, smallest.Canonical
}

func normalizeUnit(unit string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(unit), ".")))
}
