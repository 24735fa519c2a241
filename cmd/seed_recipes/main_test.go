package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaultRecipes(t *testing.T) {
	recipes, err := parseRecipes(defaultRecipes)
	require.NoError(t, err)
	require.Len(t, recipes, 5)

	first := recipes[0]
	assert.Equal(t, "Margherita Pizza", first.Title)
	assert.Equal(t, "45 minutes", first.CookTime)
	assert.Equal(t, 4, first.Servings)
	assert.Len(t, first.Ingredients, 5)
	assert.NotEmpty(t, first.Instructions)
}

func TestParseRecipesErrors(t *testing.T) {
	_, err := parseRecipes([]byte("[]"))
	assert.Error(t, err)

	_, err = parseRecipes([]byte("title: [unterminated"))
	assert.Error(t, err)
}
