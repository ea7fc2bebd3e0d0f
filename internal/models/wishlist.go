// internal/models/wishlist.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Wishlist struct {
	BaseModel
	UserID      uuid.UUID `json:"user" gorm:"type:uuid;not null;index"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	CreatedDate time.Time `json:"created_date" gorm:"not null;<-:create"`

	// Relationships
	Owner    User      `json:"-" gorm:"foreignKey:UserID"`
	Products []Product `json:"products,omitempty" gorm:"many2many:wishlist_products;constraint:OnDelete:CASCADE"`
}
