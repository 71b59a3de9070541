package meal

import "errors"

// Domain errors for meal composition input

var (
	ErrNoRecipes            = errors.New("meal must contain at least one recipe")
	ErrRecipeNameRequired   = errors.New("recipe name is required")
	ErrIngredientNameRequired = errors.New("ingredient name is required")
	ErrNegativeTiming       = errors.New("timing values cannot be negative")
	ErrInvalidServings      = errors.New("servings cannot be negative")
	ErrInvalidMultiplier    = errors.New("serving multiplier must be greater than 0")
	ErrRecipeNotInMeal      = errors.New("recipe is not part of this meal")
)
