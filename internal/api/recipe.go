package api

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/forkful/forkful-backend/internal/service"
)

type RecipeHandler struct {
	recipes     *service.RecipeService
	suggestions *service.SuggestionService
	uploads     *service.UploadService
}

func NewRecipeHandler(recipes *service.RecipeService, suggestions *service.SuggestionService, uploads *service.UploadService) *RecipeHandler {
	return &RecipeHandler{
		recipes:     recipes,
		suggestions: suggestions,
		uploads:     uploads,
	}
}

func filtersFromQuery(c *gin.Context) service.RecipeFilters {
	filters := service.RecipeFilters{
		Difficulty: c.Query("difficulty"),
		Cuisine:    c.Query("cuisine"),
		Search:     c.Query("search"),
	}
	if raw := c.Query("cookingTime"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			filters.CookingTime = v
		}
	}
	return filters
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipes.List(c.Request.Context(), nil, filtersFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) ListMyRecipes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	recipes, err := h.recipes.List(c.Request.Context(), &userID, filtersFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) SearchByIngredients(c *gin.Context) {
	raw := c.Query("ingredients")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ingredients query parameter is required"})
		return
	}

	names := strings.Split(raw, ",")
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
	}

	recipes, err := h.recipes.FindByIngredients(c.Request.Context(), names)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) Suggestions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	suggestions, err := h.suggestions.Suggest(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, suggestions)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	recipe, err := h.recipes.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input service.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipes.Create(c.Request.Context(), &input, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.suggestions.Invalidate(c.Request.Context(), userID)
	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var patch service.RecipeUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipes.Update(c.Request.Context(), id, &patch, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.suggestions.Invalidate(c.Request.Context(), userID)
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.recipes.Delete(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}

	h.suggestions.Invalidate(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{"message": "recipe deleted"})
}

func (h *RecipeHandler) IncrementViews(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.recipes.IncrementViews(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "view recorded"})
}

func (h *RecipeHandler) IncrementLikes(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.recipes.IncrementLikes(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "like recorded"})
}

// UploadImage stores a recipe image and patches the recipe's image field.
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(c, err)
		return
	}

	url, err := h.uploads.SaveRecipeImage(header.Filename, data)
	if err != nil {
		respondError(c, err)
		return
	}

	recipe, err := h.recipes.Update(c.Request.Context(), id, &service.RecipeUpdate{Image: &url}, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}
