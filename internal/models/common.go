// internal/models/common.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ResourceKind names an API resource for authorization purposes.
type ResourceKind string

const (
	ResourceUser     ResourceKind = "user"
	ResourceCategory ResourceKind = "category"
	ResourceProduct  ResourceKind = "product"
	ResourceDiscount ResourceKind = "discount"
	ResourceOrder    ResourceKind = "order"
	ResourceReview   ResourceKind = "review"
	ResourceWishlist ResourceKind = "wishlist"
)
