package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SergioSanchezIglesias/retiros-backend/internal/apperrors"
	"github.com/SergioSanchezIglesias/retiros-backend/internal/models"
	"github.com/SergioSanchezIglesias/retiros-backend/internal/services"
)

// CategoryHandler handles category-related requests
type CategoryHandler struct {
	categories services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categories services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// CreateCategoryRequest represents the request payload for creating a category
type CreateCategoryRequest struct {
	Name  string              `json:"name" binding:"required,max=100"`
	Kind  models.CategoryKind `json:"kind" binding:"required,category_kind"`
	Color string              `json:"color" binding:"required,hex_color"`
}

// UpdateCategoryRequest represents the request payload for updating a category
type UpdateCategoryRequest struct {
	Name  string              `json:"name" binding:"required,max=100"`
	Kind  models.CategoryKind `json:"kind" binding:"required,category_kind"`
	Color string              `json:"color" binding:"required,hex_color"`
}

// CreateCategory handles the creation of a new category
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categories.CreateCategory(req.Name, req.Kind, req.Color)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// GetCategories handles the retrieval of all categories, optionally
// filtered by kind.
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	var categories []models.Category
	var err error

	if kind := c.Query("kind"); kind != "" {
		categories, err = h.categories.GetCategoriesByKind(models.CategoryKind(kind))
	} else {
		categories, err = h.categories.GetCategories()
	}
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetCategoryByID handles the retrieval of a specific category
func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categories.GetCategoryByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// UpdateCategory handles updating a category
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categories.UpdateCategory(id, req.Name, req.Kind, req.Color)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// DeleteCategory handles deleting a category. The delete is refused with a
// conflict while transactions still reference it.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.categories.DeleteCategory(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
