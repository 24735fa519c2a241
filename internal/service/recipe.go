package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/pageza/tomato/backend/internal/metrics"
	"github.com/pageza/tomato/backend/internal/model"
)

// RecipeInput is the submitted recipe form
type RecipeInput struct {
	Title        string   `json:"title" form:"title" yaml:"title"`
	Category     string   `json:"category" form:"category" yaml:"category"`
	Difficulty   string   `json:"difficulty" form:"difficulty" yaml:"difficulty"`
	CookTime     string   `json:"cookTime" form:"cookTime" yaml:"cookTime"`
	Servings     int      `json:"servings" form:"servings" yaml:"servings"`
	Ingredients  []string `json:"ingredients" form:"ingredients" yaml:"ingredients"`
	Instructions []string `json:"instructions" form:"instructions" yaml:"instructions"`
}

// RecipeService handles recipe operations
type RecipeService struct {
	db      *gorm.DB
	images  ImageStore
	log     *logrus.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewRecipeService creates a new RecipeService instance. images may be nil
// when uploads are disabled.
func NewRecipeService(db *gorm.DB, images ImageStore, log *logrus.Logger, m *metrics.Metrics) *RecipeService {
	return &RecipeService{
		db:      db,
		images:  images,
		log:     log,
		metrics: m,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the time source used for dateAdded
func (s *RecipeService) SetClock(now func() time.Time) {
	s.now = now
}

// List returns every recipe, newest first
func (s *RecipeService) List(ctx context.Context) ([]model.Recipe, error) {
	recipes := []model.Recipe{}
	if err := s.db.WithContext(ctx).Order("date_added DESC").Find(&recipes).Error; err != nil {
		s.log.WithError(err).Error("Failed to list recipes")
		return nil, storageErr("list recipes", err)
	}
	return recipes, nil
}

// Create validates and persists a recipe. The image, if any, is stored only
// after validation passes and is removed again if the insert fails.
func (s *RecipeService) Create(ctx context.Context, input RecipeInput, image *ImageUpload) (recipe *model.Recipe, err error) {
	defer func() { s.metrics.RecipeOp("create", err) }()

	recipe = &model.Recipe{
		Title:        strings.TrimSpace(input.Title),
		Category:     strings.TrimSpace(input.Category),
		Difficulty:   strings.TrimSpace(input.Difficulty),
		CookTime:     strings.TrimSpace(input.CookTime),
		Servings:     input.Servings,
		Ingredients:  compact(input.Ingredients),
		Instructions: compact(input.Instructions),
		DateAdded:    s.now(),
	}
	if err := model.Check(recipe); err != nil {
		return nil, err
	}

	if image != nil && s.images != nil {
		ref, err := s.images.Save(ctx, image.Filename, image.ContentType, image.Body)
		if err != nil {
			s.log.WithError(err).Error("Failed to store recipe image")
			return nil, storageErr("store recipe image", err)
		}
		recipe.Image = ref
	}

	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		if recipe.Image != "" {
			if rmErr := s.images.Remove(ctx, recipe.Image); rmErr != nil {
				s.log.WithError(rmErr).WithField("image", recipe.Image).Warn("Failed to remove orphaned image")
			}
		}
		s.log.WithError(err).Error("Failed to create recipe")
		return nil, storageErr("create recipe", err)
	}

	s.log.WithFields(logrus.Fields{"recipe_id": recipe.ID, "title": recipe.Title}).Info("Recipe created")
	return recipe, nil
}

// Delete removes a recipe. Unknown ids succeed without effect.
func (s *RecipeService) Delete(ctx context.Context, id string) (err error) {
	defer func() { s.metrics.RecipeOp("delete", err) }()

	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return storageErr("delete recipe", err)
	}

	if err := s.db.WithContext(ctx).Delete(&model.Recipe{}, "id = ?", id).Error; err != nil {
		s.log.WithError(err).WithField("recipe_id", id).Error("Failed to delete recipe")
		return storageErr("delete recipe", err)
	}

	if recipe.Image != "" && s.images != nil {
		if err := s.images.Remove(ctx, recipe.Image); err != nil {
			s.log.WithError(err).WithField("image", recipe.Image).Warn("Failed to remove recipe image")
		}
	}

	s.log.WithField("recipe_id", id).Info("Recipe deleted")
	return nil
}

// compact trims entries and drops blank ones, keeping order
func compact(entries []string) model.StringArray {
	out := make(model.StringArray, 0, len(entries))
	for _, e := range entries {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}
