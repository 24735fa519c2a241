package testhelpers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/tomato/backend/internal/model"
)

func TestSetupSQLite(t *testing.T) {
	db := SetupSQLite(t)

	recipe := &model.Recipe{
		Title:        "Tomato Soup",
		Category:     "soups",
		Difficulty:   "Easy",
		CookTime:     "30 min",
		Servings:     2,
		Ingredients:  model.StringArray{"tomatoes"},
		Instructions: model.StringArray{"Simmer the tomatoes"},
	}
	require.NoError(t, db.Create(recipe).Error)
	assert.NotEmpty(t, recipe.ID)

	var got model.Recipe
	require.NoError(t, db.First(&got, "id = ?", recipe.ID).Error)
	assert.Equal(t, model.StringArray{"tomatoes"}, got.Ingredients)
}

func TestSetupTestDatabase(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	db := SetupTestDatabase(t)

	review := &model.Review{Name: "Alice", Rating: 5, Comment: "Great food, fast delivery", CreatedAt: time.Now()}
	require.NoError(t, db.Create(review).Error)
	assert.Equal(t, "general", review.Category)

	// The CHECK constraint holds even when hooks are skipped
	err := db.Session(&gorm.Session{SkipHooks: true}).
		Create(&model.Review{ID: "bad", Name: "Bob", Rating: 9, Comment: "too many stars", Category: "general", CreatedAt: time.Now()}).Error
	assert.Error(t, err)
}

func TestSetupTestRedis(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	client := SetupTestRedis(t)

	ctx := context.Background()
	require.NoError(t, client.Set(ctx, "k", "v", time.Minute).Err())
	v, err := client.Get(ctx, "k").Result()
	require.NoError(t, err)
	assert.Equal(t, "v", v)
}
