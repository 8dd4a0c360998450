package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forkful/forkful-backend/internal/service"
)

type FridgeHandler struct {
	fridge      *service.FridgeService
	suggestions *service.SuggestionService
}

func NewFridgeHandler(fridge *service.FridgeService, suggestions *service.SuggestionService) *FridgeHandler {
	return &FridgeHandler{fridge: fridge, suggestions: suggestions}
}

func (h *FridgeHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input service.FridgeIngredientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingredient, err := h.fridge.Create(c.Request.Context(), &input, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.suggestions.Invalidate(c.Request.Context(), userID)
	c.JSON(http.StatusCreated, ingredient)
}

func (h *FridgeHandler) AddMultiple(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var inputs []service.FridgeIngredientInput
	if err := c.ShouldBindJSON(&inputs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingredients, err := h.fridge.AddMultiple(c.Request.Context(), inputs, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.suggestions.Invalidate(c.Request.Context(), userID)
	c.JSON(http.StatusCreated, ingredients)
}

func (h *FridgeHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	ingredients, err := h.fridge.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredients)
}

func (h *FridgeHandler) ListExpired(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	ingredients, err := h.fridge.CheckExpired(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredients)
}

func (h *FridgeHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ingredient, err := h.fridge.Get(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

func (h *FridgeHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var patch service.FridgeIngredientUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingredient, err := h.fridge.Update(c.Request.Context(), id, &patch, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.suggestions.Invalidate(c.Request.Context(), userID)
	c.JSON(http.StatusOK, ingredient)
}

func (h *FridgeHandler) MarkAsExpired(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ingredient, err := h.fridge.MarkAsExpired(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.suggestions.Invalidate(c.Request.Context(), userID)
	c.JSON(http.StatusOK, ingredient)
}

func (h *FridgeHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.fridge.Delete(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}

	h.suggestions.Invalidate(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{"message": "ingredient deleted"})
}
