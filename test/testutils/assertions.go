package testutils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alchemorsel/mealcompose/internal/domain/schedule"
)

// TimelineAssertions provides reusable invariant checks for timelines
type TimelineAssertions struct {
	t *testing.T
}

// NewTimelineAssertions creates timeline assertions bound to a test
func NewTimelineAssertions(t *testing.T) *TimelineAssertions {
	return &TimelineAssertions{t: t}
}

// AssertStepInvariants verifies that every step except serve ends at or
// before serve time, and that the serve step's offset is exactly 0
func (a *TimelineAssertions) AssertStepInvariants(timeline *schedule.Timeline) {
	serveCount := 0
	for _, step := range timeline.Steps {
		if step.Type == schedule.StepServe {
			serveCount++
			assert.Equal(a.t, 0, step.StartOffset, "serve step offset must be 0")
			continue
		}
		assert.LessOrEqual(a.t, step.EndOffset(), 0,
			"step %s must end at or before serve time", step.ID)
	}
	assert.Equal(a.t, 1, serveCount, "timeline must contain exactly one serve step")
}

// AssertConflictSoundness verifies that no two steps of different recipes
// share an equipment tag over an overlapping interval without a conflict
// entry referencing both
func (a *TimelineAssertions) AssertConflictSoundness(timeline *schedule.Timeline) {
	flagged := make(map[string]bool)
	for _, conflict := range timeline.Conflicts {
		for _, x := range conflict.StepIDs {
			for _, y := range conflict.StepIDs {
				if x != y {
					flagged[x+"|"+y] = true
				}
			}
		}
	}

	for i, x := range timeline.Steps {
		for _, y := range timeline.Steps[i+1:] {
			if x.RecipeID == y.RecipeID || !sharesEquipment(x, y) {
				continue
			}
			overlap := min(x.EndOffset(), y.EndOffset()) - max(x.StartOffset, y.StartOffset)
			if overlap > 0 {
				assert.True(a.t, flagged[x.ID+"|"+y.ID],
					"overlapping steps %s and %s must be flagged as a conflict", x.ID, y.ID)
			}
		}
	}
}

// AssertCriticalPathConsistent verifies the total duration equals the
// negated earliest offset and that the critical path ends at serve
func (a *TimelineAssertions) AssertCriticalPathConsistent(timeline *schedule.Timeline) {
	earliest := 0
	for _, step := range timeline.Steps {
		if step.StartOffset < earliest {
			earliest = step.StartOffset
		}
	}
	assert.Equal(a.t, -earliest, timeline.TotalMinutes)

	if assert.NotEmpty(a.t, timeline.CriticalPath) {
		assert.Equal(a.t, schedule.ServeStepID,
			timeline.CriticalPath[len(timeline.CriticalPath)-1])
	}
}

func sharesEquipment(x, y schedule.Step) bool {
	for _, a := range x.Equipment {
		for _, b := range y.Equipment {
			if a == b {
				return true
			}
		}
	}
	return false
}
