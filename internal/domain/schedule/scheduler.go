package schedule

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/alchemorsel/mealcompose/pkg/errors"
)

// DefaultHorizonMinutes is the reasonable preparation horizon beyond which
// a timeline is flagged infeasible (6 hours)
const DefaultHorizonMinutes = 360

// ServeStepID identifies the single serve step of a timeline
const ServeStepID = "serve"

// StartStepID identifies the meal-level start marker
const StartStepID = "start"

// SchedulerConfig carries scheduler tunables
type SchedulerConfig struct {
	HorizonMinutes int
}

// Scheduler performs backward greedy placement of all recipes' steps.
// This is a heuristic, not an RCPSP solver: for the handful of recipes in
// a typical meal the greedy placement is an intentional simplification.
type Scheduler struct {
	horizon int
}

// NewScheduler creates a scheduler. A non-positive horizon selects
// DefaultHorizonMinutes.
func NewScheduler(cfg SchedulerConfig) *Scheduler {
	horizon := cfg.HorizonMinutes
	if horizon <= 0 {
		horizon = DefaultHorizonMinutes
	}
	return &Scheduler{horizon: horizon}
}

// booking is one occupied interval on a piece of equipment. Occupancy is
// local to one Schedule call, never shared state.
type booking struct {
	start, end int
	stepID     string
	recipeID   uuid.UUID
}

// Schedule places every recipe's steps on the shared timeline and returns
// the complete result. Equipment conflicts are reported as data; the only
// hard failure is an empty profile list.
func (s *Scheduler) Schedule(profiles []TimingProfile) (*Timeline, error) {
	if len(profiles) == 0 {
		return nil, errors.NewEmptyMealError()
	}

	// Longest recipes are placed first so they anchor the timeline
	sorted := append([]TimingProfile(nil), profiles...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].TotalMinutes() != sorted[j].TotalMinutes() {
			return sorted[i].TotalMinutes() > sorted[j].TotalMinutes()
		}
		return sorted[i].RecipeID.String() < sorted[j].RecipeID.String()
	})

	timeline := &Timeline{}
	occupancy := make(map[string][]booking)
	conflictSeen := make(map[string]struct{})
	chains := make([][]Step, 0, len(sorted))

	for _, profile := range sorted {
		chain := BuildSteps(profile)
		for i := range chain {
			s.placeStep(&chain[i], occupancy, timeline, conflictSeen)
		}
		chains = append(chains, chain)
		timeline.Steps = append(timeline.Steps, chain...)
	}

	earliest := 0
	for _, step := range timeline.Steps {
		if step.StartOffset < earliest {
			earliest = step.StartOffset
		}
	}

	timeline.Steps = append(timeline.Steps, Step{
		ID:          ServeStepID,
		Type:        StepServe,
		StartOffset: 0,
		Duration:    0,
		Priority:    PriorityCritical,
		Status:      StatusBooked,
	})
	if earliest < 0 {
		timeline.Steps = append(timeline.Steps, Step{
			ID:          StartStepID,
			Type:        StepStart,
			StartOffset: earliest,
			Duration:    0,
			Priority:    PriorityCritical,
			Status:      StatusBooked,
		})
	}

	sortSteps(timeline.Steps)

	timeline.CriticalPath = criticalPath(chains, earliest)
	timeline.TotalMinutes = -earliest

	if timeline.TotalMinutes > s.horizon {
		timeline.Infeasible = true
		timeline.Warnings = append(timeline.Warnings, fmt.Sprintf(
			"preparation requires %d minutes, exceeding the %d minute horizon",
			timeline.TotalMinutes, s.horizon,
		))
	}

	return timeline, nil
}

// placeStep books the step's equipment intervals and flags overlaps with
// other recipes. The step keeps its natural time either way; overlap is
// surfaced as a conflict, never silently rescheduled.
func (s *Scheduler) placeStep(step *Step, occupancy map[string][]booking, timeline *Timeline, seen map[string]struct{}) {
	conflicted := false

	for _, tag := range step.Equipment {
		for _, b := range occupancy[tag] {
			if b.recipeID == step.RecipeID {
				continue
			}
			overlap := minInt(step.EndOffset(), b.end) - maxInt(step.StartOffset, b.start)
			if overlap <= 0 {
				continue
			}
			conflicted = true
			key := conflictKey(step.ID, b.stepID)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			timeline.Conflicts = append(timeline.Conflicts, Conflict{
				Kind:    ConflictEquipment,
				StepIDs: []string{b.stepID, step.ID},
				Suggestion: fmt.Sprintf(
					"%s needed by both - consider staggering by %d minutes or using an alternate %s",
					tag, overlap, tag,
				),
			})
		}

		occupancy[tag] = append(occupancy[tag], booking{
			start:    step.StartOffset,
			end:      step.EndOffset(),
			stepID:   step.ID,
			recipeID: step.RecipeID,
		})
		sort.Slice(occupancy[tag], func(i, j int) bool {
			return occupancy[tag][i].start < occupancy[tag][j].start
		})
	}

	if conflicted {
		step.Status = StatusConflicted
		step.CanParallelize = false
	} else {
		step.Status = StatusBooked
		step.CanParallelize = true
	}
}

// criticalPath returns the zero-slack chain determining the overall start
// time. Each recipe chain is contiguous and ends at serve time, so the
// chain beginning at the earliest offset has zero slack throughout.
func criticalPath(chains [][]Step, earliest int) []string {
	if earliest == 0 {
		return []string{ServeStepID}
	}
	for _, chain := range chains {
		if len(chain) == 0 || chain[0].StartOffset != earliest {
			continue
		}
		path := make([]string, 0, len(chain)+1)
		for _, step := range chain {
			path = append(path, step.ID)
		}
		return append(path, ServeStepID)
	}
	return []string{ServeStepID}
}

// sortSteps orders steps chronologically with the start marker first and
// serve last among equal offsets
func sortSteps(steps []Step) {
	rank := func(t StepType) int {
		switch t {
		case StepStart:
			return 0
		case StepServe:
			return 2
		default:
			return 1
		}
	}
	sort.SliceStable(steps, func(i, j int) bool {
		if steps[i].StartOffset != steps[j].StartOffset {
			return steps[i].StartOffset < steps[j].StartOffset
		}
		if rank(steps[i].Type) != rank(steps[j].Type) {
			return rank(steps[i].Type) < rank(steps[j].Type)
		}
		return steps[i].ID < steps[j].ID
	})
}

func conflictKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
