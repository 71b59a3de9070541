// Package meal contains the core domain model for a composed meal.
// This follows Domain-Driven Design principles with rich domain models.
package meal

import (
	"time"

	"github.com/google/uuid"
)

// Meal is the aggregate root for one composition request: a set of recipes
// served together, with per-recipe serving multipliers and an optional
// serve-time anchor. The engine owns no state beyond one computation; a
// Meal is constructed from inputs, consumed and discarded.
type Meal struct {
	id          uuid.UUID
	name        string
	recipes     []Recipe
	multipliers map[uuid.UUID]float64
	serveTime   *time.Time
	createdAt   time.Time
}

// NewMeal creates a new Meal with validation. An empty recipe list is a
// hard failure, never masked by a default.
func NewMeal(name string, recipes []Recipe) (*Meal, error) {
	if len(recipes) == 0 {
		return nil, ErrNoRecipes
	}
	for _, r := range recipes {
		if err := r.Validate(); err != nil {
			return nil, err
		}
	}

	m := &Meal{
		id:          uuid.New(),
		name:        name,
		recipes:     append([]Recipe(nil), recipes...),
		multipliers: make(map[uuid.UUID]float64),
		createdAt:   time.Now(),
	}
	return m, nil
}

// ID returns the meal's unique identifier
func (m *Meal) ID() uuid.UUID {
	return m.id
}

// Name returns the meal's name
func (m *Meal) Name() string {
	return m.name
}

// Recipes returns the meal's recipes
func (m *Meal) Recipes() []Recipe {
	return m.recipes
}

// CreatedAt returns when the meal was assembled
func (m *Meal) CreatedAt() time.Time {
	return m.createdAt
}

// ServeTime returns the optional wall-clock serve anchor. Offsets are
// always relative to T=0; the anchor only lets callers render absolute
// times.
func (m *Meal) ServeTime() *time.Time {
	return m.serveTime
}

// SetServeTime sets the wall-clock serve anchor
func (m *Meal) SetServeTime(t time.Time) {
	m.serveTime = &t
}

// SetServingMultiplier scales a recipe's ingredient quantities
func (m *Meal) SetServingMultiplier(recipeID uuid.UUID, multiplier float64) error {
	if multiplier <= 0 {
		return ErrInvalidMultiplier
	}
	for _, r := range m.recipes {
		if r.ID == recipeID {
			m.multipliers[recipeID] = multiplier
			return nil
		}
	}
	return ErrRecipeNotInMeal
}

// MultiplierFor returns the serving multiplier for a recipe, defaulting
// to 1.0
func (m *Meal) MultiplierFor(recipeID uuid.UUID) float64 {
	if mult, ok := m.multipliers[recipeID]; ok {
		return mult
	}
	return 1.0
}
