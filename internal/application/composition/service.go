// Package composition provides the application layer for the meal
// composition engine. This implements the use cases defined in the
// inbound ports.
package composition

import (
	"context"

	"go.uber.org/zap"

	"github.com/alchemorsel/mealcompose/internal/domain/ingredient"
	"github.com/alchemorsel/mealcompose/internal/domain/meal"
	"github.com/alchemorsel/mealcompose/internal/domain/measurement"
	"github.com/alchemorsel/mealcompose/internal/domain/schedule"
	"github.com/alchemorsel/mealcompose/internal/ports/inbound"
	"github.com/alchemorsel/mealcompose/pkg/errors"
)

// Options are the engine-wide defaults; per-command overrides win over
// them. Zero values select the documented built-in defaults.
type Options struct {
	FuzzyMatchThreshold     float64
	HorizonMinutes          int
	ExtraUnits              map[string]measurement.UnitDefinition
	ExtraStopwords          []string
	ExtraSingularExceptions []string
	Categories              map[string][]string
}

// CompositionService implements the meal composition use cases. It holds
// no mutable state between invocations and is safe for concurrent use.
type CompositionService struct {
	opts   Options
	logger *zap.Logger
}

// NewCompositionService creates a new composition service
func NewCompositionService(opts Options, logger *zap.Logger) inbound.CompositionService {
	return &CompositionService{
		opts:   opts,
		logger: logger.Named("composition-service"),
	}
}

// ComposeMeal runs both pipelines for a meal and returns the full plan
func (s *CompositionService) ComposeMeal(ctx context.Context, cmd inbound.ComposeMealCommand) (*inbound.MealPlanDTO, error) {
	if cmd.Meal == nil {
		return nil, errors.NewInvalidInputError("meal is required")
	}

	s.logger.Info("Composing meal",
		zap.String("meal_id", cmd.Meal.ID().String()),
		zap.Int("recipes", len(cmd.Meal.Recipes())),
	)

	list, err := s.BuildShoppingList(ctx, cmd)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build shopping list")
	}

	timeline, err := s.BuildTimeline(ctx, cmd)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build timeline")
	}

	dto := &inbound.MealPlanDTO{
		MealID:       cmd.Meal.ID(),
		MealName:     cmd.Meal.Name(),
		ServeTime:    cmd.Meal.ServeTime(),
		ShoppingList: *list,
		Timeline:     *timeline,
	}

	s.logger.Info("Meal composed successfully",
		zap.String("meal_id", cmd.Meal.ID().String()),
		zap.Int("items", len(list.Items)),
		zap.Int("unmatched_notes", len(list.UnmatchedNotes)),
		zap.Int("conflicts", len(timeline.Conflicts)),
		zap.Int("total_minutes", timeline.TotalMinutes),
		zap.Bool("infeasible", timeline.Infeasible),
	)

	return dto, nil
}

// BuildShoppingList consolidates all recipes' ingredient lines into one
// shopping list with unit-aware arithmetic and approximate-name
// deduplication
func (s *CompositionService) BuildShoppingList(ctx context.Context, cmd inbound.ComposeMealCommand) (*ingredient.ShoppingList, error) {
	if cmd.Meal == nil {
		return nil, errors.NewInvalidInputError("meal is required")
	}

	table := measurement.DefaultTable()
	if len(s.opts.ExtraUnits) > 0 {
		table.Extend(s.opts.ExtraUnits)
	}
	if len(cmd.UnitOverrides) > 0 {
		table.Extend(cmd.UnitOverrides)
	}

	normalizer := ingredient.NewNormalizer(ingredient.NormalizerConfig{
		ExtraStopwords:          append(append([]string(nil), s.opts.ExtraStopwords...), cmd.ExtraStopwords...),
		ExtraSingularExceptions: s.opts.ExtraSingularExceptions,
	})

	threshold := cmd.FuzzyMatchThreshold
	if threshold <= 0 {
		threshold = s.opts.FuzzyMatchThreshold
	}
	matcher := ingredient.NewMatcher(threshold)

	aggregator := ingredient.NewAggregator(matcher, table, ingredient.AggregatorConfig{
		Categories: s.opts.Categories,
	})

	var contributions []ingredient.Contribution
	for _, recipe := range cmd.Meal.Recipes() {
		multiplier := cmd.Meal.MultiplierFor(recipe.ID)
		for _, line := range recipe.Ingredients {
			contributions = append(contributions, s.lineContribution(recipe, line, multiplier, normalizer, table))
		}
	}

	list, err := aggregator.Consolidate(contributions)
	if err != nil {
		s.logger.Error("Consolidation failed",
			zap.String("meal_id", cmd.Meal.ID().String()),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Debug("Shopping list built",
		zap.String("meal_id", cmd.Meal.ID().String()),
		zap.Int("items", len(list.Items)),
		zap.Int("unmatched_notes", len(list.UnmatchedNotes)),
	)
	return list, nil
}

// BuildTimeline schedules all recipes' steps backward from serve time
func (s *CompositionService) BuildTimeline(ctx context.Context, cmd inbound.ComposeMealCommand) (*schedule.Timeline, error) {
	if cmd.Meal == nil {
		return nil, errors.NewInvalidInputError("meal is required")
	}

	horizon := cmd.HorizonMinutes
	if horizon <= 0 {
		horizon = s.opts.HorizonMinutes
	}
	scheduler := schedule.NewScheduler(schedule.SchedulerConfig{HorizonMinutes: horizon})

	profiles := make([]schedule.TimingProfile, 0, len(cmd.Meal.Recipes()))
	for _, recipe := range cmd.Meal.Recipes() {
		profiles = append(profiles, recipe.TimingProfile())
	}

	timeline, err := scheduler.Schedule(profiles)
	if err != nil {
		s.logger.Error("Scheduling failed",
			zap.String("meal_id", cmd.Meal.ID().String()),
			zap.Error(err),
		)
		return nil, err
	}

	if timeline.Infeasible {
		s.logger.Warn("Timeline exceeds preparation horizon",
			zap.String("meal_id", cmd.Meal.ID().String()),
			zap.Int("total_minutes", timeline.TotalMinutes),
		)
	}
	return timeline, nil
}

// lineContribution converts one raw ingredient line into an aggregator
// contribution. Malformed or descriptive quantities become qualitative
// contributions rather than errors; nothing is silently dropped.
func (s *CompositionService) lineContribution(
	recipe meal.Recipe,
	line meal.IngredientLine,
	multiplier float64,
	normalizer *ingredient.Normalizer,
	table *measurement.ConversionTable,
) ingredient.Contribution {
	contribution := ingredient.Contribution{
		RecipeID:   recipe.ID,
		Name:       normalizer.Normalize(line.Name),
		Multiplier: multiplier,
		Note:       line.Raw(),
	}

	quantity := measurement.ParseQuantity(line.Quantity)
	if quantity == nil {
		return contribution
	}

	m := table.Convert(*quantity, line.Unit)
	contribution.BaseQuantity = &m.BaseQuantity
	contribution.Family = m.Family
	contribution.Unit = m.Unit
	return contribution
}
