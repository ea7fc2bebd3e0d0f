// internal/handlers/category.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/shopnest/shopnest-backend/internal/services"
	"github.com/shopnest/shopnest-backend/internal/utils"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// GET /categories
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	categories, total, err := h.categoryService.ListCategories(utils.GetActor(c), params)
	if err != nil {
		respondServiceError(c, err, "category")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePage(c, categories, total, params))
}

// GET /categories/:id
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	category, err := h.categoryService.GetCategory(utils.GetActor(c), id)
	if err != nil {
		respondServiceError(c, err, "category")
		return
	}

	utils.SuccessResponse(c, gin.H{"category": category})
}

// POST /categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req services.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	category, err := h.categoryService.CreateCategory(utils.GetActor(c), &req)
	if err != nil {
		respondServiceError(c, err, "category")
		return
	}

	utils.CreatedResponse(c, gin.H{"category": category})
}

// PUT /categories/:id
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req services.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	category, err := h.categoryService.UpdateCategory(utils.GetActor(c), id, &req)
	if err != nil {
		respondServiceError(c, err, "category")
		return
	}

	utils.SuccessResponse(c, gin.H{"category": category})
}

// DELETE /categories/:id
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(utils.GetActor(c), id); err != nil {
		respondServiceError(c, err, "category")
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Category deleted"})
}
