// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/shopnest/shopnest-backend/internal/authz"
	"github.com/shopnest/shopnest-backend/internal/models"
	"github.com/shopnest/shopnest-backend/internal/utils"
)

type ProductService struct {
	db             *gorm.DB
	storageService *StorageService
}

type CreateProductRequest struct {
	Name          string    `json:"name" validate:"required,min=1,max=255"`
	Description   string    `json:"description"`
	Price         float64   `json:"price" validate:"required,gt=0"`
	StockQuantity int       `json:"stock_quantity" validate:"gte=0"`
	CategoryID    uuid.UUID `json:"category" validate:"required"`
}

type UpdateProductRequest struct {
	Name          *string    `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description   *string    `json:"description,omitempty"`
	Price         *float64   `json:"price,omitempty" validate:"omitempty,gt=0"`
	StockQuantity *int       `json:"stock_quantity,omitempty" validate:"omitempty,gte=0"`
	CategoryID    *uuid.UUID `json:"category,omitempty"`
}

type ProductSearchParams struct {
	utils.PaginationParams
	CategoryID *uuid.UUID
	PriceMin   *float64
	PriceMax   *float64
	InStock    *bool
}

func NewProductService(db *gorm.DB, storageService *StorageService) *ProductService {
	return &ProductService{
		db:             db,
		storageService: storageService,
	}
}

func (s *ProductService) CreateProduct(actor *authz.Actor, req *CreateProductRequest) (*models.Product, error) {
	if err := authz.Authorize(actor, authz.ActionCreate, models.ResourceProduct); err != nil {
		return nil, err
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	var category models.Category
	if err := s.db.First(&category, "id = ?", req.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, internalErrorf("database error: %w", err)
	}

	product := &models.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		CategoryID:    req.CategoryID,
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, internalErrorf("failed to create product: %w", err)
	}

	return product, nil
}

func (s *ProductService) SearchProducts(actor *authz.Actor, params ProductSearchParams) ([]models.Product, int64, error) {
	if err := authz.Authorize(actor, authz.ActionRead, models.ResourceProduct); err != nil {
		return nil, 0, err
	}

	query := s.db.Model(&models.Product{}).Preload("Images")

	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}

	if params.Search != "" {
		// Case-insensitive partial match on name
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ?", searchTerm)
	}

	if params.PriceMin != nil {
		query = query.Where("price >= ?", *params.PriceMin)
	}

	if params.PriceMax != nil {
		query = query.Where("price <= ?", *params.PriceMax)
	}

	if params.InStock != nil && *params.InStock {
		query = query.Where("stock_quantity > 0")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, internalErrorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "name", "price", "stock_quantity"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)

	var products []models.Product
	if err := utils.ApplyPagination(query, params.PaginationParams).Find(&products).Error; err != nil {
		return nil, 0, internalErrorf("failed to search products: %w", err)
	}

	return products, total, nil
}

func (s *ProductService) GetProduct(actor *authz.Actor, id uuid.UUID) (*models.Product, error) {
	if err := authz.Authorize(actor, authz.ActionRead, models.ResourceProduct); err != nil {
		return nil, err
	}

	var product models.Product
	if err := s.db.Preload("Images").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, internalErrorf("database error: %w", err)
	}

	return &product, nil
}

func (s *ProductService) UpdateProduct(actor *authz.Actor, id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := authz.Authorize(actor, authz.ActionUpdate, models.ResourceProduct); err != nil {
		return nil, err
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, internalErrorf("database error: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.StockQuantity != nil {
		updates["stock_quantity"] = *req.StockQuantity
	}
	if req.CategoryID != nil {
		var category models.Category
		if err := s.db.First(&category, "id = ?", *req.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, internalErrorf("database error: %w", err)
		}
		updates["category_id"] = *req.CategoryID
	}

	if len(updates) > 0 {
		if err := s.db.Model(&product).Updates(updates).Error; err != nil {
			return nil, internalErrorf("failed to update product: %w", err)
		}
	}

	if err := s.db.Preload("Images").First(&product, "id = ?", id).Error; err != nil {
		return nil, internalErrorf("failed to reload product: %w", err)
	}
	return &product, nil
}

func (s *ProductService) DeleteProduct(actor *authz.Actor, id uuid.UUID) error {
	if err := authz.Authorize(actor, authz.ActionDelete, models.ResourceProduct); err != nil {
		return err
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return internalErrorf("database error: %w", err)
	}

	if err := s.db.Delete(&product).Error; err != nil {
		return internalErrorf("failed to delete product: %w", err)
	}

	return nil
}

// UploadImages stores each uploaded file and records an Image row per file.
// Image management rides on the product capabilities: uploads require
// product.add, deletions product.delete.
func (s *ProductService) UploadImages(actor *authz.Actor, productID uuid.UUID, files []*multipart.FileHeader) ([]models.Image, error) {
	if err := authz.Authorize(actor, authz.ActionCreate, models.ResourceProduct); err != nil {
		return nil, err
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, internalErrorf("database error: %w", err)
	}

	uploaded := make([]models.Image, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			return nil, internalErrorf("failed to open upload %s: %w", header.Filename, err)
		}

		result, err := s.storageService.UploadFile(file, header, UploadOptions{
			Folder:       "product_images/" + productID.String(),
			MaxSize:      10 << 20, // 10 MB
			AllowedTypes: []string{".jpg", ".jpeg", ".png", ".gif", ".webp"},
			IsPublic:     true,
		})
		file.Close()
		if err != nil {
			// Storage faults carry their own internal marker; size and
			// type rejections stay client errors.
			return nil, fmt.Errorf("failed to store %s: %w", header.Filename, err)
		}

		image := models.Image{
			ProductID: productID,
			URL:       result.URL,
			Key:       result.Key,
		}
		if err := s.db.Create(&image).Error; err != nil {
			return nil, internalErrorf("failed to record image: %w", err)
		}
		uploaded = append(uploaded, image)
	}

	return uploaded, nil
}

// DeleteAllImages removes every image attached to the product and returns how
// many rows were deleted.
func (s *ProductService) DeleteAllImages(actor *authz.Actor, productID uuid.UUID) (int64, error) {
	if err := authz.Authorize(actor, authz.ActionDelete, models.ResourceProduct); err != nil {
		return 0, err
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, internalErrorf("database error: %w", err)
	}

	var images []models.Image
	if err := s.db.Where("product_id = ?", productID).Find(&images).Error; err != nil {
		return 0, internalErrorf("database error: %w", err)
	}

	result := s.db.Where("product_id = ?", productID).Delete(&models.Image{})
	if result.Error != nil {
		return 0, internalErrorf("failed to delete images: %w", result.Error)
	}

	s.removeStoredFiles(images)
	return result.RowsAffected, nil
}

// DeleteImages removes the named images when they belong to the product.
func (s *ProductService) DeleteImages(actor *authz.Actor, productID uuid.UUID, imageIDs []uuid.UUID) (int64, error) {
	if err := authz.Authorize(actor, authz.ActionDelete, models.ResourceProduct); err != nil {
		return 0, err
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, internalErrorf("database error: %w", err)
	}

	var images []models.Image
	if err := s.db.Where("product_id = ? AND id IN ?", productID, imageIDs).Find(&images).Error; err != nil {
		return 0, internalErrorf("database error: %w", err)
	}

	result := s.db.Where("product_id = ? AND id IN ?", productID, imageIDs).Delete(&models.Image{})
	if result.Error != nil {
		return 0, internalErrorf("failed to delete images: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return 0, ErrNotFound
	}

	s.removeStoredFiles(images)
	return result.RowsAffected, nil
}

// removeStoredFiles deletes the backing objects for image rows that are
// already gone from the database. Storage failures leave an orphaned object
// at worst, so they are logged rather than failing the request.
func (s *ProductService) removeStoredFiles(images []models.Image) {
	for _, image := range images {
		if image.Key == "" {
			continue
		}
		if err := s.storageService.DeleteFile(image.Key); err != nil {
			logrus.WithError(err).WithField("key", image.Key).Warn("Failed to delete stored image")
		}
	}
}
