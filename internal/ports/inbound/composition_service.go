// Package inbound defines the use-case interfaces exposed by the engine
package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/alchemorsel/mealcompose/internal/domain/ingredient"
	"github.com/alchemorsel/mealcompose/internal/domain/meal"
	"github.com/alchemorsel/mealcompose/internal/domain/measurement"
	"github.com/alchemorsel/mealcompose/internal/domain/schedule"
)

// ComposeMealCommand carries one composition request. Zero values select
// the engine defaults.
type ComposeMealCommand struct {
	Meal                *meal.Meal
	FuzzyMatchThreshold float64
	HorizonMinutes      int
	UnitOverrides       map[string]measurement.UnitDefinition
	ExtraStopwords      []string
}

// MealPlanDTO is the complete composition result
type MealPlanDTO struct {
	MealID       uuid.UUID
	MealName     string
	ServeTime    *time.Time
	ShoppingList ingredient.ShoppingList
	Timeline     schedule.Timeline
}

// CompositionService defines the meal composition use cases. The two
// pipelines share only the input meal; callers needing one output can
// invoke it alone.
type CompositionService interface {
	ComposeMeal(ctx context.Context, cmd ComposeMealCommand) (*MealPlanDTO, error)
	BuildShoppingList(ctx context.Context, cmd ComposeMealCommand) (*ingredient.ShoppingList, error)
	BuildTimeline(ctx context.Context, cmd ComposeMealCommand) (*schedule.Timeline, error)
}
