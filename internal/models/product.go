// internal/models/product.go
package models

import (
	"github.com/google/uuid"
)

type Product struct {
	BaseModel
	Name          string    `json:"name" gorm:"size:255;not null;index"`
	Description   string    `json:"description" gorm:"type:text"`
	Price         float64   `json:"price" gorm:"type:decimal(11,2);not null"`
	StockQuantity int       `json:"stock_quantity" gorm:"not null;default:0;check:stock_quantity >= 0"`
	CategoryID    uuid.UUID `json:"category" gorm:"type:uuid;not null;index"`

	// Relationships
	CategoryRef Category `json:"-" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	Images      []Image  `json:"images" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

type Image struct {
	BaseModel
	ProductID uuid.UUID `json:"product" gorm:"type:uuid;not null;index"`
	URL       string    `json:"url" gorm:"size:1024;not null"`
	Key       string    `json:"-" gorm:"size:512"`
}
