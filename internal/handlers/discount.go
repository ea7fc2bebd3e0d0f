// internal/handlers/discount.go
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shopnest/shopnest-backend/internal/services"
	"github.com/shopnest/shopnest-backend/internal/utils"
)

type DiscountHandler struct {
	discountService *services.DiscountService
}

func NewDiscountHandler(discountService *services.DiscountService) *DiscountHandler {
	return &DiscountHandler{discountService: discountService}
}

// GET /discounts
// Example: /discounts?included_date=2024-11-01
func (h *DiscountHandler) GetDiscounts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	searchParams := services.DiscountSearchParams{
		PaginationParams: params,
	}

	if dateStr := c.Query("included_date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			utils.BadRequestResponse(c, "included_date must be YYYY-MM-DD", nil)
			return
		}
		searchParams.IncludedDate = &date
	}

	discounts, total, err := h.discountService.ListDiscounts(utils.GetActor(c), searchParams)
	if err != nil {
		respondServiceError(c, err, "discount")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePage(c, discounts, total, params))
}

// GET /discounts/:id
func (h *DiscountHandler) GetDiscount(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	discount, err := h.discountService.GetDiscount(utils.GetActor(c), id)
	if err != nil {
		respondServiceError(c, err, "discount")
		return
	}

	utils.SuccessResponse(c, gin.H{"discount": discount})
}

// POST /discounts
func (h *DiscountHandler) CreateDiscount(c *gin.Context) {
	var req services.DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	discount, err := h.discountService.CreateDiscount(utils.GetActor(c), &req)
	if err != nil {
		respondServiceError(c, err, "discount")
		return
	}

	utils.CreatedResponse(c, gin.H{"discount": discount})
}

// PUT /discounts/:id
func (h *DiscountHandler) UpdateDiscount(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req services.DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	discount, err := h.discountService.UpdateDiscount(utils.GetActor(c), id, &req)
	if err != nil {
		respondServiceError(c, err, "discount")
		return
	}

	utils.SuccessResponse(c, gin.H{"discount": discount})
}

// DELETE /discounts/:id
func (h *DiscountHandler) DeleteDiscount(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.discountService.DeleteDiscount(utils.GetActor(c), id); err != nil {
		respondServiceError(c, err, "discount")
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Discount deleted"})
}
