package validation

import (
	"fmt"
	"strings"
)

const (
	MaxRecipeEntries = 20

	titleMin       = 3
	titleMax       = 100
	cookTimeMax    = 50
	servingsMin    = 1
	servingsMax    = 50
	ingredientMin  = 2
	ingredientMax  = 200
	instructionMin = 5
	instructionMax = 1000
)

// RecipeCategories are the categories offered by the recipe form
var RecipeCategories = []string{"italian", "indian", "mexican", "mediterranean", "salads", "desserts"}

// Difficulties are the difficulty levels offered by the recipe form
var Difficulties = []string{"Easy", "Medium", "Hard"}

// RecipeForm is the state of the add-recipe form
type RecipeForm struct {
	Title        string
	Category     string
	Difficulty   string
	CookTime     string
	Servings     int
	Ingredients  []string
	Instructions []string
	ImageName    string
	Image        []byte
}

// DefaultRecipeForm returns the form as shown after a reset
func DefaultRecipeForm() RecipeForm {
	return RecipeForm{
		Category:     "italian",
		Difficulty:   "Easy",
		Servings:     1,
		Ingredients:  []string{""},
		Instructions: []string{""},
	}
}

// RecipeErrors holds one message per recipe form field
type RecipeErrors struct {
	Title        string
	Category     string
	Difficulty   string
	CookTime     string
	Servings     string
	Ingredients  string
	Instructions string
}

func (e RecipeErrors) First() string {
	return firstOf(e.Title, e.Category, e.Difficulty, e.CookTime, e.Servings, e.Ingredients, e.Instructions)
}

func (e RecipeErrors) Valid() bool {
	return e.First() == ""
}

// ValidateRecipe checks every recipe form field
func ValidateRecipe(f RecipeForm) RecipeErrors {
	var e RecipeErrors
	e.Title = RecipeTitle(f.Title)
	if f.Category == "" {
		e.Category = "Please select a category"
	}
	if f.Difficulty == "" {
		e.Difficulty = "Please select a difficulty level"
	}
	e.CookTime = CookTime(f.CookTime)
	e.Servings = Servings(f.Servings)
	e.Ingredients = Ingredients(f.Ingredients)
	e.Instructions = Instructions(f.Instructions)
	return e
}

func RecipeTitle(title string) string {
	t := strings.TrimSpace(title)
	switch {
	case t == "":
		return "Recipe title is required"
	case length(t) < titleMin:
		return "Recipe title must be at least 3 characters long"
	case length(t) > titleMax:
		return "Recipe title must be less than 100 characters"
	}
	return ""
}

func CookTime(cookTime string) string {
	t := strings.TrimSpace(cookTime)
	switch {
	case t == "":
		return "Cook time is required"
	case length(t) > cookTimeMax:
		return "Cook time description is too long"
	}
	return ""
}

func Servings(n int) string {
	switch {
	case n < servingsMin:
		return "Servings must be at least 1"
	case n > servingsMax:
		return "Servings cannot exceed 50"
	}
	return ""
}

// Ingredients checks the non-blank entries of the ingredient list.
// Entry numbers in messages count non-blank entries only.
func Ingredients(entries []string) string {
	valid := NonBlank(entries)
	if len(valid) == 0 {
		return "At least one ingredient is required"
	}
	if len(valid) > MaxRecipeEntries {
		return fmt.Sprintf("Maximum %d ingredients allowed", MaxRecipeEntries)
	}
	for i, ing := range valid {
		if length(ing) < ingredientMin {
			return fmt.Sprintf("Ingredient %d is too short", i+1)
		}
		if length(ing) > ingredientMax {
			return fmt.Sprintf("Ingredient %d is too long", i+1)
		}
	}
	seen := make(map[string]struct{}, len(valid))
	for _, ing := range valid {
		key := strings.ToLower(ing)
		if _, ok := seen[key]; ok {
			return "Duplicate ingredients found"
		}
		seen[key] = struct{}{}
	}
	return ""
}

func Instructions(entries []string) string {
	valid := NonBlank(entries)
	if len(valid) == 0 {
		return "At least one instruction step is required"
	}
	if len(valid) > MaxRecipeEntries {
		return fmt.Sprintf("Maximum %d instructions allowed", MaxRecipeEntries)
	}
	for i, step := range valid {
		if length(step) < instructionMin {
			return fmt.Sprintf("Instruction step %d is too short (minimum 5 characters)", i+1)
		}
		if length(step) > instructionMax {
			return fmt.Sprintf("Instruction step %d is too long (maximum 1000 characters)", i+1)
		}
	}
	return ""
}
