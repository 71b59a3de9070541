package meal

import (
	"github.com/google/uuid"

	"github.com/alchemorsel/mealcompose/internal/domain/schedule"
)

// Value Objects - Immutable objects that describe aspects of the domain

// IngredientLine is one raw ingredient entry of a recipe. Quantity and
// Unit are free text as entered; the engine parses and converts them.
// An empty or purely descriptive Quantity ("to taste") marks a
// qualitative line.
type IngredientLine struct {
	Name     string
	Quantity string
	Unit     string
	Notes    string
}

// Validate validates the ingredient line
func (l IngredientLine) Validate() error {
	if l.Name == "" {
		return ErrIngredientNameRequired
	}
	return nil
}

// Raw returns the line as it would appear in the recipe text, used for
// unmatched-note display
func (l IngredientLine) Raw() string {
	s := l.Name
	if l.Notes != "" {
		s += " (" + l.Notes + ")"
	}
	return s
}

// Recipe is one recipe's contribution to a meal: its ingredient lines and
// its timing/equipment metadata
type Recipe struct {
	ID          uuid.UUID
	Name        string
	Ingredients []IngredientLine
	PrepMinutes int
	CookMinutes int
	RestMinutes int
	Equipment   []string
	Priority    schedule.Priority
	Servings    int
}

// Validate validates the recipe
func (r Recipe) Validate() error {
	if r.Name == "" {
		return ErrRecipeNameRequired
	}
	if r.PrepMinutes < 0 || r.CookMinutes < 0 || r.RestMinutes < 0 {
		return ErrNegativeTiming
	}
	if r.Servings < 0 {
		return ErrInvalidServings
	}
	for _, line := range r.Ingredients {
		if err := line.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// TimingProfile maps the recipe onto the scheduler's input
func (r Recipe) TimingProfile() schedule.TimingProfile {
	priority := r.Priority
	if priority == "" {
		priority = schedule.PriorityImportant
	}
	return schedule.TimingProfile{
		RecipeID:    r.ID,
		PrepMinutes: r.PrepMinutes,
		CookMinutes: r.CookMinutes,
		RestMinutes: r.RestMinutes,
		Equipment:   append([]string(nil), r.Equipment...),
		Priority:    priority,
	}
}
