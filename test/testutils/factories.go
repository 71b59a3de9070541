// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/alchemorsel/mealcompose/internal/domain/meal"
	"github.com/alchemorsel/mealcompose/internal/domain/schedule"
)

// MealFactory provides methods to create test meals and recipes
type MealFactory struct {
	faker *gofakeit.Faker
}

// NewMealFactory creates a new meal factory with seeded faker
func NewMealFactory(seed int64) *MealFactory {
	return &MealFactory{
		faker: gofakeit.New(seed),
	}
}

// RandomRecipe creates a recipe with randomized but plausible data
func (f *MealFactory) RandomRecipe() meal.Recipe {
	lineCount := f.faker.Number(2, 6)
	lines := make([]meal.IngredientLine, 0, lineCount)
	for i := 0; i < lineCount; i++ {
		lines = append(lines, meal.IngredientLine{
			Name:     f.faker.Vegetable(),
			Quantity: fmt.Sprintf("%d", f.faker.Number(1, 4)),
			Unit:     f.faker.RandomString([]string{"cup", "tbsp", "tsp", "g", "oz", ""}),
		})
	}
	return meal.Recipe{
		ID:          uuid.New(),
		Name:        f.faker.Dinner(),
		Ingredients: lines,
		PrepMinutes: f.faker.Number(5, 30),
		CookMinutes: f.faker.Number(10, 90),
		Equipment:   []string{f.faker.RandomString([]string{"oven", "stovetop", "grill"})},
		Priority:    schedule.PriorityImportant,
		Servings:    4,
	}
}

// RandomMeal creates a meal of n random recipes
func (f *MealFactory) RandomMeal(n int) (*meal.Meal, error) {
	recipes := make([]meal.Recipe, 0, n)
	for i := 0; i < n; i++ {
		recipes = append(recipes, f.RandomRecipe())
	}
	return meal.NewMeal(f.faker.Dinner(), recipes)
}

// RecipeBuilder provides a fluent interface for building test recipes
type RecipeBuilder struct {
	recipe meal.Recipe
}

// NewRecipeBuilder creates a new recipe builder with default values
func NewRecipeBuilder() *RecipeBuilder {
	faker := gofakeit.New(time.Now().UnixNano())
	return &RecipeBuilder{
		recipe: meal.Recipe{
			ID:       uuid.New(),
			Name:     faker.Dinner(),
			Priority: schedule.PriorityImportant,
			Servings: 4,
		},
	}
}

// WithID sets the recipe ID
func (rb *RecipeBuilder) WithID(id uuid.UUID) *RecipeBuilder {
	rb.recipe.ID = id
	return rb
}

// WithName sets the recipe name
func (rb *RecipeBuilder) WithName(name string) *RecipeBuilder {
	rb.recipe.Name = name
	return rb
}

// WithIngredient appends an ingredient line
func (rb *RecipeBuilder) WithIngredient(name, quantity, unit string) *RecipeBuilder {
	rb.recipe.Ingredients = append(rb.recipe.Ingredients, meal.IngredientLine{
		Name:     name,
		Quantity: quantity,
		Unit:     unit,
	})
	return rb
}

// WithNote appends a qualitative ingredient line
func (rb *RecipeBuilder) WithNote(name, notes string) *RecipeBuilder {
	rb.recipe.Ingredients = append(rb.recipe.Ingredients, meal.IngredientLine{
		Name:  name,
		Notes: notes,
	})
	return rb
}

// WithTiming sets prep and cook minutes
func (rb *RecipeBuilder) WithTiming(prep, cook int) *RecipeBuilder {
	rb.recipe.PrepMinutes = prep
	rb.recipe.CookMinutes = cook
	return rb
}

// WithRest sets the rest phase duration
func (rb *RecipeBuilder) WithRest(minutes int) *RecipeBuilder {
	rb.recipe.RestMinutes = minutes
	return rb
}

// WithEquipment sets the equipment tags
func (rb *RecipeBuilder) WithEquipment(tags ...string) *RecipeBuilder {
	rb.recipe.Equipment = tags
	return rb
}

// WithPriority sets the recipe priority
func (rb *RecipeBuilder) WithPriority(p schedule.Priority) *RecipeBuilder {
	rb.recipe.Priority = p
	return rb
}

// Build returns the assembled recipe
func (rb *RecipeBuilder) Build() meal.Recipe {
	return rb.recipe
}
