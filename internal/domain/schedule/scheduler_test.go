package schedule_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alchemorsel/mealcompose/internal/domain/schedule"
	"github.com/alchemorsel/mealcompose/pkg/errors"
	"github.com/alchemorsel/mealcompose/test/testutils"
)

func profile(prep, cook, rest int, equipment ...string) schedule.TimingProfile {
	return schedule.TimingProfile{
		RecipeID:    uuid.New(),
		PrepMinutes: prep,
		CookMinutes: cook,
		RestMinutes: rest,
		Equipment:   equipment,
		Priority:    schedule.PriorityImportant,
	}
}

func findStep(t *testing.T, timeline *schedule.Timeline, recipeID uuid.UUID, stepType schedule.StepType) schedule.Step {
	t.Helper()
	for _, step := range timeline.Steps {
		if step.RecipeID == recipeID && step.Type == stepType {
			return step
		}
	}
	t.Fatalf("step %s for recipe %s not found", stepType, recipeID)
	return schedule.Step{}
}

func TestSchedule_BackwardPlacement(t *testing.T) {
	scheduler := schedule.NewScheduler(schedule.SchedulerConfig{})
	roast := profile(20, 60, 10, "oven")

	timeline, err := scheduler.Schedule([]schedule.TimingProfile{roast})
	require.NoError(t, err)

	rest := findStep(t, timeline, roast.RecipeID, schedule.StepRest)
	cook := findStep(t, timeline, roast.RecipeID, schedule.StepCook)
	prep := findStep(t, timeline, roast.RecipeID, schedule.StepPrep)

	// rest ends at serve, cook ends where rest begins, prep precedes cook
	assert.Equal(t, 0, rest.EndOffset())
	assert.Equal(t, rest.StartOffset, cook.EndOffset())
	assert.Equal(t, cook.StartOffset, prep.EndOffset())
	assert.Equal(t, -90, prep.StartOffset)
	assert.Equal(t, 90, timeline.TotalMinutes)

	asserts := testutils.NewTimelineAssertions(t)
	asserts.AssertStepInvariants(timeline)
	asserts.AssertCriticalPathConsistent(timeline)
}

// TestSchedule_OvenContention is the canonical equipment conflict: two
// recipes both ending at serve time on the same oven produce exactly one
// conflict referencing both cook steps.
func TestSchedule_OvenContention(t *testing.T) {
	scheduler := schedule.NewScheduler(schedule.SchedulerConfig{})
	a := profile(0, 60, 0, "oven")
	b := profile(0, 45, 0, "oven")

	timeline, err := scheduler.Schedule([]schedule.TimingProfile{a, b})
	require.NoError(t, err)

	require.Len(t, timeline.Conflicts, 1)
	conflict := timeline.Conflicts[0]
	assert.Equal(t, schedule.ConflictEquipment, conflict.Kind)
	assert.ElementsMatch(t, []string{
		findStep(t, timeline, a.RecipeID, schedule.StepCook).ID,
		findStep(t, timeline, b.RecipeID, schedule.StepCook).ID,
	}, conflict.StepIDs)
	assert.NotEmpty(t, conflict.Suggestion)
	assert.Contains(t, conflict.Suggestion, "oven")
	assert.Contains(t, conflict.Suggestion, "45") // minimal stagger

	// The conflicted step keeps its natural time, it is not rescheduled
	bCook := findStep(t, timeline, b.RecipeID, schedule.StepCook)
	assert.Equal(t, -45, bCook.StartOffset)
	assert.Equal(t, schedule.StatusConflicted, bCook.Status)
	assert.False(t, bCook.CanParallelize)

	testutils.NewTimelineAssertions(t).AssertConflictSoundness(timeline)
}

func TestSchedule_NoConflictOnDifferentEquipment(t *testing.T) {
	scheduler := schedule.NewScheduler(schedule.SchedulerConfig{})
	a := profile(10, 60, 0, "oven")
	b := profile(10, 45, 0, "stovetop")

	timeline, err := scheduler.Schedule([]schedule.TimingProfile{a, b})
	require.NoError(t, err)

	assert.Empty(t, timeline.Conflicts)
	bCook := findStep(t, timeline, b.RecipeID, schedule.StepCook)
	assert.Equal(t, schedule.StatusBooked, bCook.Status)
	assert.True(t, bCook.CanParallelize)
}

// TestSchedule_MissingTimingPlaceholder verifies a recipe without timing
// data stays visible as a zero-duration prep step
func TestSchedule_MissingTimingPlaceholder(t *testing.T) {
	scheduler := schedule.NewScheduler(schedule.SchedulerConfig{})
	salad := profile(0, 0, 0)
	roast := profile(10, 30, 0, "oven")

	timeline, err := scheduler.Schedule([]schedule.TimingProfile{salad, roast})
	require.NoError(t, err)

	placeholder := findStep(t, timeline, salad.RecipeID, schedule.StepPrep)
	assert.Equal(t, 0, placeholder.StartOffset)
	assert.Equal(t, 0, placeholder.Duration)
	assert.Equal(t, schedule.StatusBooked, placeholder.Status)
}

func TestSchedule_CriticalPath(t *testing.T) {
	scheduler := schedule.NewScheduler(schedule.SchedulerConfig{})
	long := profile(20, 60, 10, "oven")
	short := profile(15, 45, 0, "stovetop")

	timeline, err := scheduler.Schedule([]schedule.TimingProfile{short, long})
	require.NoError(t, err)

	require.Len(t, timeline.CriticalPath, 4)
	assert.Equal(t, findStep(t, timeline, long.RecipeID, schedule.StepPrep).ID, timeline.CriticalPath[0])
	assert.Equal(t, findStep(t, timeline, long.RecipeID, schedule.StepCook).ID, timeline.CriticalPath[1])
	assert.Equal(t, findStep(t, timeline, long.RecipeID, schedule.StepRest).ID, timeline.CriticalPath[2])
	assert.Equal(t, schedule.ServeStepID, timeline.CriticalPath[3])
	assert.Equal(t, 90, timeline.TotalMinutes)
}

func TestSchedule_StartAndServeMarkers(t *testing.T) {
	scheduler := schedule.NewScheduler(schedule.SchedulerConfig{})
	timeline, err := scheduler.Schedule([]schedule.TimingProfile{profile(10, 30, 0)})
	require.NoError(t, err)

	first, last := timeline.Steps[0], timeline.Steps[len(timeline.Steps)-1]
	assert.Equal(t, schedule.StepStart, first.Type)
	assert.Equal(t, -40, first.StartOffset)
	assert.Equal(t, schedule.StepServe, last.Type)
	assert.Equal(t, 0, last.StartOffset)
}

// TestSchedule_HorizonWarning verifies an over-horizon meal is flagged but
// still fully scheduled
func TestSchedule_HorizonWarning(t *testing.T) {
	scheduler := schedule.NewScheduler(schedule.SchedulerConfig{HorizonMinutes: 120})
	timeline, err := scheduler.Schedule([]schedule.TimingProfile{profile(30, 150, 0, "oven")})
	require.NoError(t, err)

	assert.True(t, timeline.Infeasible)
	assert.NotEmpty(t, timeline.Warnings)
	assert.Equal(t, 180, timeline.TotalMinutes)
	assert.NotEmpty(t, timeline.Steps)
}

func TestSchedule_EmptyProfiles(t *testing.T) {
	scheduler := schedule.NewScheduler(schedule.SchedulerConfig{})
	_, err := scheduler.Schedule(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeEmptyMeal))
}

func TestSchedule_RandomizedInvariants(t *testing.T) {
	factory := testutils.NewMealFactory(42)
	scheduler := schedule.NewScheduler(schedule.SchedulerConfig{})
	asserts := testutils.NewTimelineAssertions(t)

	for i := 0; i < 10; i++ {
		m, err := factory.RandomMeal(4)
		require.NoError(t, err)

		profiles := make([]schedule.TimingProfile, 0, len(m.Recipes()))
		for _, r := range m.Recipes() {
			profiles = append(profiles, r.TimingProfile())
		}

		timeline, err := scheduler.Schedule(profiles)
		require.NoError(t, err)

		asserts.AssertStepInvariants(timeline)
		asserts.AssertConflictSoundness(timeline)
		asserts.AssertCriticalPathConsistent(timeline)
	}
}
