// internal/services/wishlist_service.go
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

type WishlistService struct {
	db *gorm.DB
}

type CreateWishlistRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
	// An omitted owner defaults to the actor; naming another user is a
	// validation error, not a silent override.
	UserID   *uuid.UUID  `json:"user,omitempty"`
	Products []uuid.UUID `json:"products,omitempty"`
}

type UpdateWishlistRequest struct {
	Name     *string     `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Products []uuid.UUID `json:"products,omitempty"`
}

func NewWishlistService(db *gorm.DB) *WishlistService {
	return &WishlistService{db: db}
}

func (s *WishlistService) CreateWishlist(actor *authz.Actor, req *CreateWishlistRequest) (*models.Wishlist, error) {
	if err := authz.Authorize(actor, authz.ActionCreate, models.ResourceWishlist); err != nil {
		return nil, err
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	owner, err := authz.ResolveOwner(actor, req.UserID)
	if err != nil {
		return nil, err
	}

	wishlist := &models.Wishlist{
		UserID:      owner,
		Name:        req.Name,
		CreatedDate: time.Now(),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(wishlist).Error; err != nil {
			return internalErrorf("failed to create wishlist: %w", err)
		}
		return s.associateProducts(tx, wishlist, req.Products)
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Products").First(wishlist, "id = ?", wishlist.ID).Error; err != nil {
		return nil, internalErrorf("failed to reload wishlist: %w", err)
	}
	return wishlist, nil
}

func (s *WishlistService) ListWishlists(actor *authz.Actor, params utils.PaginationParams) ([]models.Wishlist, int64, error) {
	if err := authz.Authorize(actor, authz.ActionRead, models.ResourceWishlist); err != nil {
		return nil, 0, err
	}

	query := s.db.Model(&models.Wishlist{}).Preload("Products")
	query = authz.Scope(actor, models.ResourceWishlist, query)

	if params.Search != "" {
		query = query.Where("name ILIKE ?", "%"+params.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, internalErrorf("failed to count wishlists: %w", err)
	}

	var wishlists []models.Wishlist
	query = utils.ApplySort(query, params, []string{"created_at", "created_date", "name"})
	if err := utils.ApplyPagination(query, params).Find(&wishlists).Error; err != nil {
		return nil, 0, internalErrorf("failed to list wishlists: %w", err)
	}

	return wishlists, total, nil
}

func (s *WishlistService) GetWishlist(actor *authz.Actor, id uuid.UUID) (*models.Wishlist, error) {
	if err := authz.Authorize(actor, authz.ActionRead, models.ResourceWishlist); err != nil {
		return nil, err
	}

	var wishlist models.Wishlist
	if err := s.db.Preload("Products").First(&wishlist, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, internalErrorf("database error: %w", err)
	}

	if err := authz.AuthorizeObject(actor, authz.ActionRead, models.ResourceWishlist, wishlist.UserID); err != nil {
		return nil, err
	}

	return &wishlist, nil
}

func (s *WishlistService) UpdateWishlist(actor *authz.Actor, id uuid.UUID, req *UpdateWishlistRequest) (*models.Wishlist, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	var wishlist models.Wishlist
	if err := s.db.First(&wishlist, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, internalErrorf("database error: %w", err)
	}

	if err := authz.AuthorizeObject(actor, authz.ActionUpdate, models.ResourceWishlist, wishlist.UserID); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if req.Name != nil {
			if err := tx.Model(&wishlist).Update("name", *req.Name).Error; err != nil {
				return internalErrorf("failed to update wishlist: %w", err)
			}
		}
		if req.Products != nil {
			if err := tx.Model(&wishlist).Association("Products").Clear(); err != nil {
				return internalErrorf("failed to clear product associations: %w", err)
			}
			return s.associateProducts(tx, &wishlist, req.Products)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Products").First(&wishlist, "id = ?", id).Error; err != nil {
		return nil, internalErrorf("failed to reload wishlist: %w", err)
	}
	return &wishlist, nil
}

func (s *WishlistService) DeleteWishlist(actor *authz.Actor, id uuid.UUID) error {
	var wishlist models.Wishlist
	if err := s.db.First(&wishlist, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return internalErrorf("database error: %w", err)
	}

	if err := authz.AuthorizeObject(actor, authz.ActionDelete, models.ResourceWishlist, wishlist.UserID); err != nil {
		return err
	}

	if err := s.db.Select("Products").Delete(&wishlist).Error; err != nil {
		return internalErrorf("failed to delete wishlist: %w", err)
	}

	return nil
}

func (s *WishlistService) associateProducts(tx *gorm.DB, wishlist *models.Wishlist, productIDs []uuid.UUID) error {
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

	if err := tx.Model(wishlist).Association("Products").Append(&products); err != nil {
		return internalErrorf("failed to associate products: %w", err)
	}
	return nil
}
