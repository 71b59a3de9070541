package schedule

import "fmt"

// BuildSteps turns one recipe's timing profile into its backward-anchored
// step chain ending at serve time. Rest, when present, occupies the
// interval immediately before serve; cook finishes where rest begins; prep
// immediately precedes cook. Steps within a recipe are strictly
// sequential. A recipe with no timing data gets an explicit zero-duration
// prep placeholder at offset 0 so it stays visible in the timeline.
func BuildSteps(p TimingProfile) []Step {
	if p.TotalMinutes() == 0 {
		return []Step{{
			ID:             stepID(p, StepPrep),
			RecipeID:       p.RecipeID,
			Type:           StepPrep,
			StartOffset:    0,
			Duration:       0,
			CanParallelize: true,
			Priority:       p.Priority,
			Status:         StatusBooked,
		}}
	}

	var steps []Step
	end := 0

	if p.RestMinutes > 0 {
		steps = append(steps, Step{
			ID:          stepID(p, StepRest),
			RecipeID:    p.RecipeID,
			Type:        StepRest,
			StartOffset: end - p.RestMinutes,
			Duration:    p.RestMinutes,
			Priority:    p.Priority,
		})
		end -= p.RestMinutes
	}
	if p.CookMinutes > 0 {
		steps = append(steps, Step{
			ID:          stepID(p, StepCook),
			RecipeID:    p.RecipeID,
			Type:        StepCook,
			StartOffset: end - p.CookMinutes,
			Duration:    p.CookMinutes,
			Equipment:   append([]string(nil), p.Equipment...),
			Priority:    p.Priority,
		})
		end -= p.CookMinutes
	}
	if p.PrepMinutes > 0 {
		steps = append(steps, Step{
			ID:          stepID(p, StepPrep),
			RecipeID:    p.RecipeID,
			Type:        StepPrep,
			StartOffset: end - p.PrepMinutes,
			Duration:    p.PrepMinutes,
			Priority:    p.Priority,
		})
		end -= p.PrepMinutes
	}

	// Reverse into chronological order: prep, cook, rest
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return steps
}

func stepID(p TimingProfile, t StepType) string {
	return fmt.Sprintf("%s-%s", p.RecipeID, t)
}
