// internal/handlers/product.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shopnest/shopnest-backend/internal/services"
	"github.com/shopnest/shopnest-backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// GET /products
// Example: /products?search=lamp&category=<id>&price_min=10&price_max=100&in_stock=true&page=2&page_size=10
func (h *ProductHandler) GetProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	searchParams := services.ProductSearchParams{
		PaginationParams: params,
	}

	if categoryStr := c.Query("category"); categoryStr != "" {
		if categoryID, err := uuid.Parse(categoryStr); err == nil {
			searchParams.CategoryID = &categoryID
		}
	}

	if priceMinStr := c.Query("price_min"); priceMinStr != "" {
		if priceMin, err := strconv.ParseFloat(priceMinStr, 64); err == nil {
			searchParams.PriceMin = &priceMin
		}
	}

	if priceMaxStr := c.Query("price_max"); priceMaxStr != "" {
		if priceMax, err := strconv.ParseFloat(priceMaxStr, 64); err == nil {
			searchParams.PriceMax = &priceMax
		}
	}

	if inStockStr := c.Query("in_stock"); inStockStr != "" {
		if inStock, err := strconv.ParseBool(inStockStr); err == nil {
			searchParams.InStock = &inStock
		}
	}

	products, total, err := h.productService.SearchProducts(utils.GetActor(c), searchParams)
	if err != nil {
		respondServiceError(c, err, "product")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePage(c, products, total, params))
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(utils.GetActor(c), id)
	if err != nil {
		respondServiceError(c, err, "product")
		return
	}

	utils.SuccessResponse(c, gin.H{"product": product})
}

// POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	product, err := h.productService.CreateProduct(utils.GetActor(c), &req)
	if err != nil {
		respondServiceError(c, err, "product")
		return
	}

	utils.CreatedResponse(c, gin.H{"product": product})
}

// PUT /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(utils.GetActor(c), id, &req)
	if err != nil {
		respondServiceError(c, err, "product")
		return
	}

	utils.SuccessResponse(c, gin.H{"product": product})
}

// DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(utils.GetActor(c), id); err != nil {
		respondServiceError(c, err, "product")
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Product deleted"})
}

// POST /products/:id/images
func (h *ProductHandler) UploadImages(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, "Invalid multipart form", err.Error())
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		utils.BadRequestResponse(c, "No images provided", nil)
		return
	}

	images, err := h.productService.UploadImages(utils.GetActor(c), id, files)
	if err != nil {
		respondServiceError(c, err, "product")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": "Images uploaded successfully",
		"images":  images,
	})
}

// DELETE /products/:id/images
func (h *ProductHandler) DeleteAllImages(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	deleted, err := h.productService.DeleteAllImages(utils.GetActor(c), id)
	if err != nil {
		respondServiceError(c, err, "product")
		return
	}

	if deleted == 0 {
		utils.NotFoundResponse(c, "image")
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Images deleted", "deleted": deleted})
}

// DELETE /products/:id/images/selected
func (h *ProductHandler) DeleteImages(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		ImageIDs []uuid.UUID `json:"image_ids" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "No image IDs provided", err.Error())
		return
	}

	deleted, err := h.productService.DeleteImages(utils.GetActor(c), id, req.ImageIDs)
	if err != nil {
		respondServiceError(c, err, "image")
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Images deleted", "deleted": deleted})
}
