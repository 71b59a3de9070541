package ingredient

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/alchemorsel/mealcompose/internal/domain/measurement"
	"github.com/alchemorsel/mealcompose/pkg/errors"
)

type AggregatorTestSuite struct {
	suite.Suite
	aggregator *Aggregator
	table      *measurement.ConversionTable
	recipe1    uuid.UUID
	recipe2    uuid.UUID
	recipe3    uuid.UUID
}

func (s *AggregatorTestSuite) SetupTest() {
	s.table = measurement.DefaultTable()
	s.aggregator = NewAggregator(NewMatcher(0.85), s.table, AggregatorConfig{})
	s.recipe1 = uuid.New()
	s.recipe2 = uuid.New()
	s.recipe3 = uuid.New()
}

func (s *AggregatorTestSuite) numeric(recipeID uuid.UUID, name string, qty float64, unit string, mult float64) Contribution {
	m := s.table.Convert(qty, unit)
	return Contribution{
		RecipeID:     recipeID,
		Name:         name,
		BaseQuantity: &m.BaseQuantity,
		Family:       m.Family,
		Unit:         m.Unit,
		Multiplier:   mult,
	}
}

func (s *AggregatorTestSuite) qualitative(recipeID uuid.UUID, name, note string) Contribution {
	return Contribution{RecipeID: recipeID, Name: name, Multiplier: 1, Note: note}
}

// TestMilkConsolidation covers the canonical cross-recipe merge: three
// milk lines in different units and multipliers become one item.
func (s *AggregatorTestSuite) TestMilkConsolidation() {
	list, err := s.aggregator.Consolidate([]Contribution{
		s.numeric(s.recipe1, "milk", 2, "cup", 1.0),
		s.numeric(s.recipe2, "milk", 1, "cup", 1.5),
		s.numeric(s.recipe3, "milk", 16, "tbsp", 1.0),
	})
	require.NoError(s.T(), err)
	require.Len(s.T(), list.Items, 1)

	item := list.Items[0]
	assert.Equal(s.T(), "milk", item.Name)
	assert.Equal(s.T(), measurement.FamilyVolume, item.Family)
	assert.Equal(s.T(), "4 1/2", item.DisplayQuantity)
	assert.Equal(s.T(), "cup", item.DisplayUnit)
	assert.Equal(s.T(), "dairy", item.Category)
	assert.ElementsMatch(s.T(),
		[]uuid.UUID{s.recipe1, s.recipe2, s.recipe3},
		item.SourceRecipeIDs,
	)
}

// TestFuzzyMerge verifies that near-identical canonical names merge while
// distinct ingredients stay separate
func (s *AggregatorTestSuite) TestFuzzyMerge() {
	list, err := s.aggregator.Consolidate([]Contribution{
		s.numeric(s.recipe1, "tomato", 2, "cup", 1),
		s.numeric(s.recipe2, "tomatoe", 1, "cup", 1),
		s.numeric(s.recipe3, "flour", 1, "cup", 1),
	})
	require.NoError(s.T(), err)
	require.Len(s.T(), list.Items, 2)

	names := []string{list.Items[0].Name, list.Items[1].Name}
	assert.Contains(s.T(), names, "tomato")
	assert.Contains(s.T(), names, "flour")
}

// TestSameNameDifferentFamilies keeps weight and volume entries apart even
// under identical names
func (s *AggregatorTestSuite) TestSameNameDifferentFamilies() {
	list, err := s.aggregator.Consolidate([]Contribution{
		s.numeric(s.recipe1, "butter", 4, "tbsp", 1),
		s.numeric(s.recipe2, "butter", 100, "g", 1),
	})
	require.NoError(s.T(), err)
	assert.Len(s.T(), list.Items, 2)
}

// TestQualitativeNoteDedup covers "salt and pepper to taste" across three
// recipes: one note, three sources, never summed
func (s *AggregatorTestSuite) TestQualitativeNoteDedup() {
	list, err := s.aggregator.Consolidate([]Contribution{
		s.qualitative(s.recipe1, "salt and pepper", "salt and pepper (to taste)"),
		s.qualitative(s.recipe2, "salt and pepper", "salt and pepper (to taste)"),
		s.qualitative(s.recipe3, "salt and pepper", "salt and pepper (to taste)"),
	})
	require.NoError(s.T(), err)
	assert.Empty(s.T(), list.Items)
	require.Len(s.T(), list.UnmatchedNotes, 1)

	note := list.UnmatchedNotes[0]
	assert.Equal(s.T(), "salt and pepper", note.Name)
	assert.Len(s.T(), note.SourceRecipeIDs, 3)
	assert.Equal(s.T(), []string{"salt and pepper (to taste)"}, note.RawNotes)
}

// TestUnconvertibleUnitsKeptVisible verifies unknown units are flagged and
// displayed as-is, merged only when the raw unit text agrees
func (s *AggregatorTestSuite) TestUnconvertibleUnitsKeptVisible() {
	list, err := s.aggregator.Consolidate([]Contribution{
		s.numeric(s.recipe1, "parsley", 1, "bunch", 1),
		s.numeric(s.recipe2, "parsley", 1, "bunch", 1),
		s.numeric(s.recipe3, "mint", 2, "sprig", 1),
	})
	require.NoError(s.T(), err)
	require.Len(s.T(), list.Items, 2)

	for _, item := range list.Items {
		assert.Equal(s.T(), measurement.FamilyUnconvertible, item.Family)
	}
	parsley := list.Items[1]
	assert.Equal(s.T(), "parsley", parsley.Name)
	assert.Equal(s.T(), "bunch", parsley.DisplayUnit)
	assert.Equal(s.T(), "2", parsley.DisplayQuantity)
}

// TestOrderIndependence verifies consolidation output is identical under
// input reordering
func (s *AggregatorTestSuite) TestOrderIndependence() {
	contributions := []Contribution{
		s.numeric(s.recipe1, "milk", 2, "cup", 1),
		s.numeric(s.recipe2, "milks", 1, "cup", 1.5),
		s.numeric(s.recipe3, "flour", 300, "g", 1),
		s.qualitative(s.recipe1, "salt", "salt (to taste)"),
	}
	reversed := make([]Contribution, len(contributions))
	for i, c := range contributions {
		reversed[len(contributions)-1-i] = c
	}

	forward, err := s.aggregator.Consolidate(contributions)
	require.NoError(s.T(), err)
	backward, err := s.aggregator.Consolidate(reversed)
	require.NoError(s.T(), err)

	assert.Equal(s.T(), forward, backward)
}

// TestMergeGroupMixedFamilies verifies the aggregator refuses to guess
// when the partition step is bypassed
func (s *AggregatorTestSuite) TestMergeGroupMixedFamilies() {
	_, err := s.aggregator.MergeGroup([]Contribution{
		s.numeric(s.recipe1, "butter", 4, "tbsp", 1),
		s.numeric(s.recipe2, "butter", 100, "g", 1),
	})
	require.Error(s.T(), err)
	assert.True(s.T(), errors.Is(err, errors.CodeMixedUnitFamilies))
}

func (s *AggregatorTestSuite) TestEmptyInput() {
	list, err := s.aggregator.Consolidate(nil)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), list.Items)
	assert.Empty(s.T(), list.UnmatchedNotes)
}

func TestAggregatorTestSuite(t *testing.T) {
	suite.Run(t, new(AggregatorTestSuite))
}
