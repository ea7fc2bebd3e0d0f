// internal/models/review.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	BaseModel
	UserID      uuid.UUID `json:"user" gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `json:"product" gorm:"type:uuid;not null;index"`
	Rating      int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment     string    `json:"comment" gorm:"type:text"`
	CreatedDate time.Time `json:"created_date" gorm:"not null;<-:create"`

	// Relationships
	Owner      User    `json:"-" gorm:"foreignKey:UserID"`
	ProductRef Product `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}
