// internal/handlers/wishlist.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/shopnest/shopnest-backend/internal/services"
	"github.com/shopnest/shopnest-backend/internal/utils"
)

type WishlistHandler struct {
	wishlistService *services.WishlistService
}

func NewWishlistHandler(wishlistService *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

// GET /wishlists
func (h *WishlistHandler) GetWishlists(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	wishlists, total, err := h.wishlistService.ListWishlists(utils.GetActor(c), params)
	if err != nil {
		respondServiceError(c, err, "wishlist")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePage(c, wishlists, total, params))
}

// GET /wishlists/:id
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	wishlist, err := h.wishlistService.GetWishlist(utils.GetActor(c), id)
	if err != nil {
		respondServiceError(c, err, "wishlist")
		return
	}

	utils.SuccessResponse(c, gin.H{"wishlist": wishlist})
}

// POST /wishlists
func (h *WishlistHandler) CreateWishlist(c *gin.Context) {
	var req services.CreateWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	wishlist, err := h.wishlistService.CreateWishlist(utils.GetActor(c), &req)
	if err != nil {
		respondServiceError(c, err, "wishlist")
		return
	}

	utils.CreatedResponse(c, gin.H{"wishlist": wishlist})
}

// PUT /wishlists/:id
func (h *WishlistHandler) UpdateWishlist(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req services.UpdateWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	wishlist, err := h.wishlistService.UpdateWishlist(utils.GetActor(c), id, &req)
	if err != nil {
		respondServiceError(c, err, "wishlist")
		return
	}

	utils.SuccessResponse(c, gin.H{"wishlist": wishlist})
}

// DELETE /wishlists/:id
func (h *WishlistHandler) DeleteWishlist(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.wishlistService.DeleteWishlist(utils.GetActor(c), id); err != nil {
		respondServiceError(c, err, "wishlist")
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Wishlist deleted"})
}
