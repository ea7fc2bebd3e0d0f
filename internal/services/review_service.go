// internal/services/review_service.go
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

type ReviewService struct {
	db *gorm.DB
}

type CreateReviewRequest struct {
	ProductID uuid.UUID `json:"product" validate:"required"`
	Rating    int       `json:"rating" validate:"required,gte=1,lte=5"`
	Comment   string    `json:"comment"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	Comment *string `json:"comment,omitempty"`
}

type ReviewSearchParams struct {
	utils.PaginationParams
	ProductID *uuid.UUID
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// CreateReview fixes the owner to the requesting actor.
func (s *ReviewService) CreateReview(actor *authz.Actor, req *CreateReviewRequest) (*models.Review, error) {
	if err := authz.Authorize(actor, authz.ActionCreate, models.ResourceReview); err != nil {
		return nil, err
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, internalErrorf("database error: %w", err)
	}

	review := &models.Review{
		UserID:      actor.ID,
		ProductID:   req.ProductID,
		Rating:      req.Rating,
		Comment:     req.Comment,
		CreatedDate: time.Now(),
	}

	if err := s.db.Create(review).Error; err != nil {
		return nil, internalErrorf("failed to create review: %w", err)
	}

	return review, nil
}

func (s *ReviewService) ListReviews(actor *authz.Actor, params ReviewSearchParams) ([]models.Review, int64, error) {
	if err := authz.Authorize(actor, authz.ActionRead, models.ResourceReview); err != nil {
		return nil, 0, err
	}

	query := s.db.Model(&models.Review{})

	if params.ProductID != nil {
		query = query.Where("product_id = ?", *params.ProductID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, internalErrorf("failed to count reviews: %w", err)
	}

	var reviews []models.Review
	query = utils.ApplySort(query, params.PaginationParams, []string{"created_at", "created_date", "rating"})
	if err := utils.ApplyPagination(query, params.PaginationParams).Find(&reviews).Error; err != nil {
		return nil, 0, internalErrorf("failed to list reviews: %w", err)
	}

	return reviews, total, nil
}

func (s *ReviewService) GetReview(actor *authz.Actor, id uuid.UUID) (*models.Review, error) {
	if err := authz.Authorize(actor, authz.ActionRead, models.ResourceReview); err != nil {
		return nil, err
	}

	var review models.Review
	if err := s.db.First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, internalErrorf("database error: %w", err)
	}

	return &review, nil
}

func (s *ReviewService) UpdateReview(actor *authz.Actor, id uuid.UUID, req *UpdateReviewRequest) (*models.Review, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	var review models.Review
	if err := s.db.First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, internalErrorf("database error: %w", err)
	}

	if err := authz.AuthorizeObject(actor, authz.ActionUpdate, models.ResourceReview, review.UserID); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Rating != nil {
		updates["rating"] = *req.Rating
	}
	if req.Comment != nil {
		updates["comment"] = *req.Comment
	}

	if len(updates) > 0 {
		if err := s.db.Model(&review).Updates(updates).Error; err != nil {
			return nil, internalErrorf("failed to update review: %w", err)
		}
	}

	return &review, nil
}

func (s *ReviewService) DeleteReview(actor *authz.Actor, id uuid.UUID) error {
	var review models.Review
	if err := s.db.First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return internalErrorf("database error: %w", err)
	}

	if err := authz.AuthorizeObject(actor, authz.ActionDelete, models.ResourceReview, review.UserID); err != nil {
		return err
	}

	if err := s.db.Delete(&review).Error; err != nil {
		return internalErrorf("failed to delete review: %w", err)
	}

	return nil
}
