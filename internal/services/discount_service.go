// internal/services/discount_service.go
package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopnest/shopnest-backend/internal/authz"
	"github.com/shopnest/shopnest-backend/internal/models"
	"github.com/shopnest/shopnest-backend/internal/utils"
)

type DiscountService struct {
	db *gorm.DB
}

type DiscountRequest struct {
	Name      string      `json:"name" validate:"required,min=1,max=255"`
	Amount    float64     `json:"amount" validate:"required,gt=0"`
	StartDate time.Time   `json:"start_date" validate:"required"`
	EndDate   time.Time   `json:"end_date" validate:"required"`
	Products  []uuid.UUID `json:"products,omitempty"`
}

type DiscountSearchParams struct {
	utils.PaginationParams
	// IncludedDate filters discounts whose range contains the date.
	IncludedDate *time.Time
}

func NewDiscountService(db *gorm.DB) *DiscountService {
	return &DiscountService{db: db}
}

func (s *DiscountService) CreateDiscount(actor *authz.Actor, req *DiscountRequest) (*models.Discount, error) {
	if err := authz.Authorize(actor, authz.ActionCreate, models.ResourceDiscount); err != nil {
		return nil, err
	}

	if err := s.validate(req); err != nil {
		return nil, err
	}

	discount := &models.Discount{
		Name:      req.Name,
		Amount:    req.Amount,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(discount).Error; err != nil {
			return internalErrorf("failed to create discount: %w", err)
		}
		return s.associateProducts(tx, discount, req.Products)
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Products").First(discount, "id = ?", discount.ID).Error; err != nil {
		return nil, internalErrorf("failed to reload discount: %w", err)
	}
	return discount, nil
}

func (s *DiscountService) ListDiscounts(actor *authz.Actor, params DiscountSearchParams) ([]models.Discount, int64, error) {
	if err := authz.Authorize(actor, authz.ActionRead, models.ResourceDiscount); err != nil {
		return nil, 0, err
	}

	query := s.db.Model(&models.Discount{}).Preload("Products")

	if params.IncludedDate != nil {
		query = query.Where("start_date <= ? AND end_date >= ?", *params.IncludedDate, *params.IncludedDate)
	}

	if params.Search != "" {
		query = query.Where("name ILIKE ?", "%"+params.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, internalErrorf("failed to count discounts: %w", err)
	}

	var discounts []models.Discount
	query = utils.ApplySort(query, params.PaginationParams, []string{"created_at", "name", "start_date", "end_date", "amount"})
	if err := utils.ApplyPagination(query, params.PaginationParams).Find(&discounts).Error; err != nil {
		return nil, 0, internalErrorf("failed to list discounts: %w", err)
	}

	return discounts, total, nil
}

func (s *DiscountService) GetDiscount(actor *authz.Actor, id uuid.UUID) (*models.Discount, error) {
	if err := authz.Authorize(actor, authz.ActionRead, models.ResourceDiscount); err != nil {
		return nil, err
	}

	var discount models.Discount
	if err := s.db.Preload("Products").First(&discount, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, internalErrorf("database error: %w", err)
	}

	return &discount, nil
}

func (s *DiscountService) UpdateDiscount(actor *authz.Actor, id uuid.UUID, req *DiscountRequest) (*models.Discount, error) {
	if err := authz.Authorize(actor, authz.ActionUpdate, models.ResourceDiscount); err != nil {
		return nil, err
	}

	if err := s.validate(req); err != nil {
		return nil, err
	}

	var discount models.Discount
	if err := s.db.First(&discount, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, internalErrorf("database error: %w", err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"name":       req.Name,
			"amount":     req.Amount,
			"start_date": req.StartDate,
			"end_date":   req.EndDate,
		}
		if err := tx.Model(&discount).Updates(updates).Error; err != nil {
			return internalErrorf("failed to update discount: %w", err)
		}
		if req.Products != nil {
			if err := tx.Model(&discount).Association("Products").Clear(); err != nil {
				return internalErrorf("failed to clear product associations: %w", err)
			}
			return s.associateProducts(tx, &discount, req.Products)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Products").First(&discount, "id = ?", id).Error; err != nil {
		return nil, internalErrorf("failed to reload discount: %w", err)
	}
	return &discount, nil
}

func (s *DiscountService) DeleteDiscount(actor *authz.Actor, id uuid.UUID) error {
	if err := authz.Authorize(actor, authz.ActionDelete, models.ResourceDiscount); err != nil {
		return err
	}

	var discount models.Discount
	if err := s.db.First(&discount, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return internalErrorf("database error: %w", err)
	}

	if err := s.db.Select("Products").Delete(&discount).Error; err != nil {
		return internalErrorf("failed to delete discount: %w", err)
	}

	return nil
}

func (s *DiscountService) validate(req *DiscountRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}
	if req.EndDate.Before(req.StartDate) {
		return errors.New("start_date must not be after end_date")
	}
	return nil
}

func (s *DiscountService) associateProducts(tx *gorm.DB, discount *models.Discount, productIDs []uuid.UUID) error {
	if len(productIDs) == 0 {
		return nil
	}

	var products []models.Product
	if err := tx.Where("id IN ?", productIDs).Find(&products).Error; err != nil {
		return internalErrorf("database error: %w", err)
	}
	if len(products) != len(productIDs) {
		return ErrNotFound
	}

	if err := tx.Model(discount).Association("Products").Append(&products); err != nil {
		return internalErrorf("failed to associate products: %w", err)
	}
	return nil
}
