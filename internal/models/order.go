// internal/models/order.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	BaseModel
	UserID    uuid.UUID `json:"user" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `json:"product" gorm:"type:uuid;not null;index"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	OrderDate time.Time `json:"order_date" gorm:"not null;<-:create"`

	// Relationships
	Owner      User    `json:"-" gorm:"foreignKey:UserID"`
	ProductRef Product `json:"-" gorm:"foreignKey:ProductID"`
}
