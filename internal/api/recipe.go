package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/tomato/backend/internal/service"
)

type RecipeHandler struct {
	recipes service.IRecipeService
	log     *logrus.Logger
}

func NewRecipeHandler(recipes service.IRecipeService, log *logrus.Logger) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, log: log}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.POST("", h.CreateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipes.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch recipes")
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// CreateRecipe accepts a multipart form with an optional "image" file, or a
// JSON body without an image
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var (
		input service.RecipeInput
		image *service.ImageUpload
	)

	if strings.HasPrefix(c.ContentType(), "application/json") {
		if err := c.ShouldBindJSON(&input); err != nil {
			badRequest(c, "Invalid request body")
			return
		}
	} else {
		var ok bool
		if input, ok = h.bindRecipeForm(c); !ok {
			return
		}

		file, err := c.FormFile("image")
		switch {
		case err == nil:
			f, err := file.Open()
			if err != nil {
				respondError(c, h.log, err, "Failed to add recipe")
				return
			}
			defer f.Close()
			image = &service.ImageUpload{
				Filename:    file.Filename,
				ContentType: file.Header.Get("Content-Type"),
				Body:        f,
			}
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		default:
			badRequest(c, "Invalid image upload")
			return
		}
	}

	recipe, err := h.recipes.Create(c.Request.Context(), input, image)
	if err != nil {
		respondError(c, h.log, err, "Failed to add recipe")
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) bindRecipeForm(c *gin.Context) (service.RecipeInput, bool) {
	input := service.RecipeInput{
		Title:        c.PostForm("title"),
		Category:     c.PostForm("category"),
		Difficulty:   c.PostForm("difficulty"),
		CookTime:     c.PostForm("cookTime"),
		Ingredients:  formList(c, "ingredients"),
		Instructions: formList(c, "instructions"),
	}

	if s := strings.TrimSpace(c.PostForm("servings")); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "servings must be a number",
				"field":   "servings",
				"message": "servings must be a number",
			})
			return input, false
		}
		input.Servings = n
	}
	return input, true
}

// formList reads a repeated field sent either as name[] or name
func formList(c *gin.Context, name string) []string {
	return append(c.PostFormArray(name+"[]"), c.PostFormArray(name)...)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	if err := h.recipes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err, "Failed to delete recipe")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted successfully"})
}
