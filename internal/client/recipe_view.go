package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/pageza/tomato/backend/internal/model"
	"github.com/pageza/tomato/backend/internal/validation"
)

// ListField names one of the repeated recipe form fields
type ListField string

const (
	FieldIngredients  ListField = "ingredients"
	FieldInstructions ListField = "instructions"
)

// RecipeView is the state of the recipe page: the add-recipe form and the
// loaded recipe list
type RecipeView struct {
	api    *Client
	notes  *Notifier
	submit inFlight

	mu      sync.Mutex
	form    validation.RecipeForm
	errors  validation.RecipeErrors
	recipes []model.Recipe
}

func NewRecipeView(api *Client, notes *Notifier) *RecipeView {
	return &RecipeView{api: api, notes: notes, form: validation.DefaultRecipeForm()}
}

func (v *RecipeView) Form() validation.RecipeForm {
	v.mu.Lock()
	defer v.mu.Unlock()
	return copyRecipeForm(v.form)
}

// SetForm replaces the form values
func (v *RecipeView) SetForm(f validation.RecipeForm) {
	v.mu.Lock()
	v.form = copyRecipeForm(f)
	v.mu.Unlock()
}

func (v *RecipeView) Errors() validation.RecipeErrors {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errors
}

func (v *RecipeView) Recipes() []model.Recipe {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]model.Recipe, len(v.recipes))
	copy(out, v.recipes)
	return out
}

// InFlight reports whether a submit is running
func (v *RecipeView) InFlight() bool {
	return v.submit.active()
}

// AddEntry appends an empty ingredient or instruction row, up to the maximum
func (v *RecipeView) AddEntry(field ListField) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	list := v.list(field)
	if len(*list) >= validation.MaxRecipeEntries {
		v.notes.Push(KindWarning, fmt.Sprintf("Maximum %d %s allowed", validation.MaxRecipeEntries, field))
		return false
	}
	*list = append(*list, "")
	return true
}

// RemoveEntry removes row i. The last remaining row cannot be removed.
func (v *RecipeView) RemoveEntry(field ListField, i int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	list := v.list(field)
	if len(*list) <= 1 {
		v.notes.Push(KindWarning, fmt.Sprintf("At least one %s is required", string(field)[:len(field)-1]))
		return false
	}
	if i < 0 || i >= len(*list) {
		return false
	}
	*list = append((*list)[:i], (*list)[i+1:]...)
	return true
}

func (v *RecipeView) list(field ListField) *[]string {
	if field == FieldInstructions {
		return &v.form.Instructions
	}
	return &v.form.Ingredients
}

// Load fetches the recipe list
func (v *RecipeView) Load(ctx context.Context) error {
	recipes, err := v.api.ListRecipes(ctx)
	if err != nil {
		v.notes.Push(KindError, "Failed to load recipes. Please check if the server is running.")
		return err
	}
	v.mu.Lock()
	v.recipes = recipes
	v.mu.Unlock()
	return nil
}

// Submit validates the form and creates the recipe. On success the recipe is
// listed first and the form is reset; on failure the form is kept.
func (v *RecipeView) Submit(ctx context.Context) (*model.Recipe, error) {
	v.mu.Lock()
	form := copyRecipeForm(v.form)
	errs := validation.ValidateRecipe(form)
	v.errors = errs
	v.mu.Unlock()

	if !errs.Valid() {
		v.notes.Push(KindError, errs.First())
		return nil, invalidForm(errs.First())
	}
	if !v.submit.acquire() {
		return nil, ErrSubmitInFlight
	}
	defer v.submit.release()

	recipe, err := v.api.CreateRecipe(ctx, form)
	if err != nil {
		v.notes.Push(KindError, recipeFailure(err, "Failed to add recipe."))
		return nil, err
	}

	v.mu.Lock()
	v.recipes = append([]model.Recipe{*recipe}, v.recipes...)
	v.form = validation.DefaultRecipeForm()
	v.errors = validation.RecipeErrors{}
	v.mu.Unlock()

	v.notes.Push(KindSuccess, "Recipe added successfully!")
	return recipe, nil
}

// Delete removes a recipe and drops it from the list
func (v *RecipeView) Delete(ctx context.Context, id string) error {
	if err := v.api.DeleteRecipe(ctx, id); err != nil {
		v.notes.Push(KindError, recipeFailure(err, "Failed to delete recipe."))
		return err
	}

	v.mu.Lock()
	kept := v.recipes[:0]
	for _, r := range v.recipes {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	v.recipes = kept
	v.mu.Unlock()

	v.notes.Push(KindSuccess, "Recipe deleted successfully!")
	return nil
}

// recipeFailure distinguishes server rejections from transport failures
func recipeFailure(err error, fallback string) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return "Network error. Please check your connection."
	}
	return failureMessage(err, fallback)
}

func copyRecipeForm(f validation.RecipeForm) validation.RecipeForm {
	f.Ingredients = append([]string(nil), f.Ingredients...)
	f.Instructions = append([]string(nil), f.Instructions...)
	f.Image = append([]byte(nil), f.Image...)
	return f
}
