// internal/services/category_service.go
package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopnest/shopnest-backend/internal/authz"
	"github.com/shopnest/shopnest-backend/internal/models"
	"github.com/shopnest/shopnest-backend/internal/utils"
)

type CategoryService struct {
	db *gorm.DB
}

type CategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) CreateCategory(actor *authz.Actor, req *CategoryRequest) (*models.Category, error) {
	if err := authz.Authorize(actor, authz.ActionCreate, models.ResourceCategory); err != nil {
		return nil, err
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	category := &models.Category{Name: req.Name}
	if err := s.db.Create(category).Error; err != nil {
		return nil, internalErrorf("failed to create category: %w", err)
	}

	return category, nil
}

func (s *CategoryService) ListCategories(actor *authz.Actor, params utils.PaginationParams) ([]models.Category, int64, error) {
	if err := authz.Authorize(actor, authz.ActionRead, models.ResourceCategory); err != nil {
		return nil, 0, err
	}

	query := s.db.Model(&models.Category{})
	if params.Search != "" {
		query = query.Where("name ILIKE ?", "%"+params.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, internalErrorf("failed to count categories: %w", err)
	}

	var categories []models.Category
	query = utils.ApplySort(query, params, []string{"created_at", "name"})
	if err := utils.ApplyPagination(query, params).Find(&categories).Error; err != nil {
		return nil, 0, internalErrorf("failed to list categories: %w", err)
	}

	return categories, total, nil
}

func (s *CategoryService) GetCategory(actor *authz.Actor, id uuid.UUID) (*models.Category, error) {
	if err := authz.Authorize(actor, authz.ActionRead, models.ResourceCategory); err != nil {
		return nil, err
	}

	var category models.Category
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, internalErrorf("database error: %w", err)
	}

	return &category, nil
}

func (s *CategoryService) UpdateCategory(actor *authz.Actor, id uuid.UUID, req *CategoryRequest) (*models.Category, error) {
	if err := authz.Authorize(actor, authz.ActionUpdate, models.ResourceCategory); err != nil {
		return nil, err
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	var category models.Category
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, internalErrorf("database error: %w", err)
	}

	if err := s.db.Model(&category).Update("name", req.Name).Error; err != nil {
		return nil, internalErrorf("failed to update category: %w", err)
	}

	return &category, nil
}

// DeleteCategory removes the category and, through the FK constraint, every
// product that references it.
func (s *CategoryService) DeleteCategory(actor *authz.Actor, id uuid.UUID) error {
	if err := authz.Authorize(actor, authz.ActionDelete, models.ResourceCategory); err != nil {
		return err
	}

	var category models.Category
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return internalErrorf("database error: %w", err)
	}

	if err := s.db.Delete(&category).Error; err != nil {
		return internalErrorf("failed to delete category: %w", err)
	}

	return nil
}
