// Package schedule places all recipes of a meal on a shared backward
// timeline anchored at serve time T=0, tracks equipment occupancy,
// computes the critical path and reports conflicts.
package schedule

import "github.com/google/uuid"

// Priority ranks how important a recipe's timing is to the meal
type Priority string

const (
	PriorityCritical  Priority = "critical"
	PriorityImportant Priority = "important"
	PriorityOptional  Priority = "optional"
)

// StepType classifies a timeline step
type StepType string

const (
	StepStart StepType = "start" // meal-level marker at the earliest offset
	StepPrep  StepType = "prep"
	StepCook  StepType = "cook"
	StepRest  StepType = "rest"
	StepServe StepType = "serve" // offset exactly 0
)

// StepStatus is the terminal placement state of a step. Placement is
// deterministic and total, so every step reaches booked or conflicted in
// one pass; there is no retry state.
type StepStatus string

const (
	StatusBooked     StepStatus = "booked"
	StatusConflicted StepStatus = "conflicted"
)

// TimingProfile is the scheduling input for one recipe
type TimingProfile struct {
	RecipeID    uuid.UUID
	PrepMinutes int
	CookMinutes int
	RestMinutes int
	Equipment   []string
	Priority    Priority
}

// TotalMinutes is the recipe's total active time
func (p TimingProfile) TotalMinutes() int {
	return p.PrepMinutes + p.CookMinutes + p.RestMinutes
}

// Step is one placed interval on the shared timeline. For every step
// except serve, StartOffset+Duration <= 0; serve's offset is exactly 0.
type Step struct {
	ID             string
	RecipeID       uuid.UUID
	Type           StepType
	StartOffset    int // minutes relative to serve time, <= 0
	Duration       int // minutes
	Equipment      []string
	CanParallelize bool
	Priority       Priority
	Status         StepStatus
}

// EndOffset is the step's end relative to serve time
func (s Step) EndOffset() int {
	return s.StartOffset + s.Duration
}

// ConflictKind classifies a scheduling conflict
type ConflictKind string

const (
	ConflictEquipment ConflictKind = "equipment"
	ConflictTiming    ConflictKind = "timing"
)

// Conflict reports two steps contending for the same exclusive resource
// over overlapping intervals. Conflicts are data, not exceptions:
// scheduling continues and the caller decides how to act.
type Conflict struct {
	Kind       ConflictKind
	StepIDs    []string
	Suggestion string
}

// Timeline is the complete scheduling output for one meal
type Timeline struct {
	Steps        []Step
	Conflicts    []Conflict
	CriticalPath []string // step IDs, earliest first, ending at serve
	TotalMinutes int
	Infeasible   bool // earliest start exceeds the configured horizon
	Warnings     []string
}
