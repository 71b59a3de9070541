package ingredient

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/alchemorsel/mealcompose/internal/domain/measurement"
	"github.com/alchemorsel/mealcompose/pkg/errors"
)

// Contribution is one ingredient line after normalization and unit
// conversion, scaled by its recipe's serving multiplier during
// consolidation. A nil BaseQuantity marks a qualitative mention
// ("salt to taste") routed to the unmatched-notes path.
type Contribution struct {
	RecipeID     uuid.UUID
	Name         string // canonical name from the Normalizer
	BaseQuantity *float64
	Family       measurement.Family
	Unit         string // canonical unit, or original text when unconvertible
	Multiplier   float64
	Note         string // original raw line text, kept for unmatched notes
}

// ConsolidatedItem is one shopping-list entry merged across recipes.
// Every contributor shares the same unit family by construction.
type ConsolidatedItem struct {
	Name              string
	TotalBaseQuantity float64
	Family            measurement.Family
	DisplayQuantity   string
	DisplayUnit       string
	Category          string
	SourceRecipeIDs   []uuid.UUID
}

// UnmatchedNote is a qualitative ingredient mention, deduplicated by
// canonical name but never numerically summed
type UnmatchedNote struct {
	Name            string
	RawNotes        []string
	SourceRecipeIDs []uuid.UUID
}

// ShoppingList is the consolidated output of one meal
type ShoppingList struct {
	Items          []ConsolidatedItem
	UnmatchedNotes []UnmatchedNote
}

// AggregatorConfig carries the store-aisle category keyword table
type AggregatorConfig struct {
	Categories map[string][]string
}

// DefaultCategories returns the built-in aisle keyword table
func DefaultCategories() map[string][]string {
	return map[string][]string{
		"produce": {"onion", "garlic", "tomato", "potato", "carrot", "celery",
			"pepper", "lettuce", "spinach", "apple", "lemon", "lime", "herb",
			"basil", "parsley", "cilantro", "mushroom"},
		"dairy": {"milk", "butter", "cream", "cheese", "yogurt", "egg"},
		"meat":  {"chicken", "beef", "pork", "lamb", "turkey", "fish", "salmon", "shrimp", "bacon"},
		"pantry": {"flour", "sugar", "rice", "pasta", "oil", "vinegar",
			"stock", "broth", "bean", "lentil", "bread", "honey"},
		"spices": {"salt", "cinnamon", "cumin", "paprika", "oregano", "thyme",
			"nutmeg", "vanilla", "chili"},
	}
}

// Aggregator groups ingredient contributions across recipes into
// consolidated shopping items
type Aggregator struct {
	matcher    *Matcher
	table      *measurement.ConversionTable
	categories map[string][]string
}

// NewAggregator creates an aggregator using the given matcher and
// conversion table. A nil config falls back to the default aisle table.
func NewAggregator(matcher *Matcher, table *measurement.ConversionTable, cfg AggregatorConfig) *Aggregator {
	categories := cfg.Categories
	if categories == nil {
		categories = DefaultCategories()
	}
	return &Aggregator{
		matcher:    matcher,
		table:      table,
		categories: categories,
	}
}

// Consolidate partitions contributions by unit family, groups
// approximately-equal names within each family and sums the
// multiplier-scaled base quantities. Qualitative contributions become
// unmatched notes. Output ordering is deterministic regardless of input
// order.
func (a *Aggregator) Consolidate(contributions []Contribution) (*ShoppingList, error) {
	list := &ShoppingList{}

	partitions := make(map[string][]Contribution)
	var notes []Contribution
	for _, c := range contributions {
		if c.Multiplier <= 0 {
			c.Multiplier = 1
		}
		if c.BaseQuantity == nil {
			notes = append(notes, c)
			continue
		}
		key := string(c.Family)
		if c.Family == measurement.FamilyUnconvertible {
			// Unknown units only merge when the raw unit text agrees;
			// summing across unknown units would be a guess.
			key += "|" + strings.ToLower(c.Unit)
		}
		partitions[key] = append(partitions[key], c)
	}

	keys := make([]string, 0, len(partitions))
	for key := range partitions {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		items, err := a.consolidatePartition(partitions[key])
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, items...)
	}
	sort.Slice(list.Items, func(i, j int) bool {
		if list.Items[i].Name != list.Items[j].Name {
			return list.Items[i].Name < list.Items[j].Name
		}
		return list.Items[i].Family < list.Items[j].Family
	})

	list.UnmatchedNotes = a.consolidateNotes(notes)
	return list, nil
}

// consolidatePartition groups and merges contributions that already share
// one unit family
func (a *Aggregator) consolidatePartition(contributions []Contribution) ([]ConsolidatedItem, error) {
	names := make([]string, 0, len(contributions))
	for _, c := range contributions {
		names = append(names, c.Name)
	}

	byName := make(map[string][]Contribution)
	for _, c := range contributions {
		byName[c.Name] = append(byName[c.Name], c)
	}

	var items []ConsolidatedItem
	for _, group := range a.matcher.GroupNames(names) {
		var members []Contribution
		for _, name := range group {
			members = append(members, byName[name]...)
		}
		item, err := a.MergeGroup(members)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// MergeGroup sums one matched group into a single consolidated item. The
// group must not mix unit families; the partition step guarantees that, and
// a caller bypassing it gets an explicit error rather than a guess.
func (a *Aggregator) MergeGroup(members []Contribution) (ConsolidatedItem, error) {
	if len(members) == 0 {
		return ConsolidatedItem{}, errors.NewInvalidInputError("empty consolidation group")
	}

	family := members[0].Family
	for _, m := range members {
		if m.Family != family {
			return ConsolidatedItem{}, errors.NewMixedUnitFamiliesError(
				members[0].Name,
				[]string{string(family), string(m.Family)},
			)
		}
	}

	var total float64
	recipeIDs := make(map[uuid.UUID]struct{})
	for _, m := range members {
		if m.BaseQuantity != nil {
			total += *m.BaseQuantity * m.Multiplier
		}
		recipeIDs[m.RecipeID] = struct{}{}
	}

	name := representativeName(members)
	item := ConsolidatedItem{
		Name:              name,
		TotalBaseQuantity: total,
		Family:            family,
		Category:          a.categorize(name),
		SourceRecipeIDs:   sortedIDs(recipeIDs),
	}

	if family == measurement.FamilyUnconvertible {
		item.DisplayQuantity = measurement.FormatQuantity(total)
		item.DisplayUnit = members[0].Unit
		return item, nil
	}

	value, unit := a.table.Display(total, family, preferredUnit(members))
	item.DisplayQuantity = measurement.FormatQuantity(value)
	item.DisplayUnit = unit
	return item, nil
}

// consolidateNotes deduplicates qualitative mentions by canonical name
func (a *Aggregator) consolidateNotes(contributions []Contribution) []UnmatchedNote {
	byName := make(map[string]*UnmatchedNote)
	rawSeen := make(map[string]map[string]struct{})
	idSeen := make(map[string]map[uuid.UUID]struct{})

	for _, c := range contributions {
		note, ok := byName[c.Name]
		if !ok {
			note = &UnmatchedNote{Name: c.Name}
			byName[c.Name] = note
			rawSeen[c.Name] = make(map[string]struct{})
			idSeen[c.Name] = make(map[uuid.UUID]struct{})
		}
		raw := c.Note
		if raw == "" {
			raw = c.Name
		}
		if _, dup := rawSeen[c.Name][raw]; !dup {
			rawSeen[c.Name][raw] = struct{}{}
			note.RawNotes = append(note.RawNotes, raw)
		}
		idSeen[c.Name][c.RecipeID] = struct{}{}
	}

	notes := make([]UnmatchedNote, 0, len(byName))
	for name, note := range byName {
		sort.Strings(note.RawNotes)
		note.SourceRecipeIDs = sortedIDs(idSeen[name])
		notes = append(notes, *note)
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].Name < notes[j].Name })
	return notes
}

// categorize assigns a coarse store aisle by keyword containment
func (a *Aggregator) categorize(name string) string {
	categories := make([]string, 0, len(a.categories))
	for category := range a.categories {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		for _, keyword := range a.categories[category] {
			if strings.Contains(name, keyword) {
				return category
			}
		}
	}
	return ""
}

// representativeName picks the display name of a merged group: the most
// frequent member name, ties broken by shortest then lexicographic, so the
// choice is order independent
func representativeName(members []Contribution) string {
	counts := make(map[string]int)
	for _, m := range members {
		counts[m.Name]++
	}
	best := ""
	for name, count := range counts {
		if best == "" {
			best = name
			continue
		}
		switch {
		case count > counts[best]:
			best = name
		case count == counts[best] && len(name) < len(best):
			best = name
		case count == counts[best] && len(name) == len(best) && name < best:
			best = name
		}
	}
	return best
}

// preferredUnit picks the display unit voters' favorite: the most frequent
// canonical unit among contributors, ties broken lexicographically
func preferredUnit(members []Contribution) string {
	counts := make(map[string]int)
	for _, m := range members {
		if m.Unit != "" {
			counts[m.Unit]++
		}
	}
	best := ""
	for unit, count := range counts {
		if best == "" || count > counts[best] || (count == counts[best] && unit < best) {
			best = unit
		}
	}
	return best
}

func sortedIDs(set map[uuid.UUID]struct{}) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}
