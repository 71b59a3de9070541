// Package main provides a minimal demo of the meal composition engine
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alchemorsel/mealcompose/internal/application/composition"
	"github.com/alchemorsel/mealcompose/internal/domain/meal"
	"github.com/alchemorsel/mealcompose/internal/domain/schedule"
	"github.com/alchemorsel/mealcompose/internal/infrastructure/config"
	"github.com/alchemorsel/mealcompose/internal/ports/inbound"
	"github.com/alchemorsel/mealcompose/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Format:      "console",
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	service := composition.NewCompositionService(cfg.EngineOptions(), zapLogger)

	roast := meal.Recipe{
		ID:   uuid.New(),
		Name: "Roast Chicken",
		Ingredients: []meal.IngredientLine{
			{Name: "whole chicken", Quantity: "1", Unit: ""},
			{Name: "butter", Quantity: "4", Unit: "tbsp"},
			{Name: "fresh thyme", Quantity: "2", Unit: "tsp"},
			{Name: "salt and pepper", Quantity: "", Unit: "", Notes: "to taste"},
		},
		PrepMinutes: 20,
		CookMinutes: 60,
		RestMinutes: 10,
		Equipment:   []string{"oven"},
		Priority:    schedule.PriorityCritical,
		Servings:    4,
	}
	gratin := meal.Recipe{
		ID:   uuid.New(),
		Name: "Potato Gratin",
		Ingredients: []meal.IngredientLine{
			{Name: "potatoes", Quantity: "2", Unit: "lb"},
			{Name: "milk", Quantity: "2", Unit: "cups"},
			{Name: "fresh milk", Quantity: "1", Unit: "cup"},
			{Name: "butter", Quantity: "2", Unit: "tbsp"},
			{Name: "salt and pepper", Quantity: "", Unit: "", Notes: "to taste"},
		},
		PrepMinutes: 15,
		CookMinutes: 45,
		Equipment:   []string{"oven"},
		Priority:    schedule.PriorityImportant,
		Servings:    4,
	}
	salad := meal.Recipe{
		ID:   uuid.New(),
		Name: "Green Salad",
		Ingredients: []meal.IngredientLine{
			{Name: "lettuce", Quantity: "1", Unit: ""},
			{Name: "olive oil", Quantity: "3", Unit: "tbsp"},
			{Name: "salt and pepper", Quantity: "", Unit: "", Notes: "to taste"},
		},
		Priority: schedule.PriorityOptional,
		Servings: 4,
	}

	dinner, err := meal.NewMeal("Sunday Dinner", []meal.Recipe{roast, gratin, salad})
	if err != nil {
		zapLogger.Fatal("failed to assemble meal", zap.Error(err))
	}
	if err := dinner.SetServingMultiplier(gratin.ID, 1.5); err != nil {
		zapLogger.Fatal("failed to set multiplier", zap.Error(err))
	}

	plan, err := service.ComposeMeal(context.Background(), inbound.ComposeMealCommand{Meal: dinner})
	if err != nil {
		zapLogger.Fatal("failed to compose meal", zap.Error(err))
	}

	fmt.Printf("\nShopping list for %q:\n", plan.MealName)
	for _, item := range plan.ShoppingList.Items {
		fmt.Printf("  %-24s %s %s  (%d recipes)\n",
			item.Name, item.DisplayQuantity, item.DisplayUnit, len(item.SourceRecipeIDs))
	}
	for _, note := range plan.ShoppingList.UnmatchedNotes {
		fmt.Printf("  %-24s needed by %d recipes\n", note.Name, len(note.SourceRecipeIDs))
	}

	fmt.Printf("\nTimeline (total %d minutes):\n", plan.Timeline.TotalMinutes)
	for _, step := range plan.Timeline.Steps {
		fmt.Printf("  T%+5d  %-6s %-10s %s\n",
			step.StartOffset, step.Type, step.Status, step.ID)
	}
	for _, conflict := range plan.Timeline.Conflicts {
		fmt.Printf("\nConflict (%s): %s\n", conflict.Kind, conflict.Suggestion)
	}
	fmt.Printf("\nCritical path: %v\n", plan.Timeline.CriticalPath)
}
