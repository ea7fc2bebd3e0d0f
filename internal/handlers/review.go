// internal/handlers/review.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shopnest/shopnest-backend/internal/services"
	"github.com/shopnest/shopnest-backend/internal/utils"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// GET /reviews
func (h *ReviewHandler) GetReviews(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	searchParams := services.ReviewSearchParams{
		PaginationParams: params,
	}

	if productStr := c.Query("product"); productStr != "" {
		if productID, err := uuid.Parse(productStr); err == nil {
			searchParams.ProductID = &productID
		}
	}

	reviews, total, err := h.reviewService.ListReviews(utils.GetActor(c), searchParams)
	if err != nil {
		respondServiceError(c, err, "review")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePage(c, reviews, total, params))
}

// GET /reviews/:id
func (h *ReviewHandler) GetReview(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	review, err := h.reviewService.GetReview(utils.GetActor(c), id)
	if err != nil {
		respondServiceError(c, err, "review")
		return
	}

	utils.SuccessResponse(c, gin.H{"review": review})
}

// POST /reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req services.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	review, err := h.reviewService.CreateReview(utils.GetActor(c), &req)
	if err != nil {
		respondServiceError(c, err, "product")
		return
	}

	utils.CreatedResponse(c, gin.H{"review": review})
}

// PUT /reviews/:id
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req services.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	review, err := h.reviewService.UpdateReview(utils.GetActor(c), id, &req)
	if err != nil {
		respondServiceError(c, err, "review")
		return
	}

	utils.SuccessResponse(c, gin.H{"review": review})
}

// DELETE /reviews/:id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.reviewService.DeleteReview(utils.GetActor(c), id); err != nil {
		respondServiceError(c, err, "review")
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Review deleted"})
}
