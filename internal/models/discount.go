// internal/models/discount.go
package models

import "time"

type Discount struct {
	BaseModel
	Name      string    `json:"name" gorm:"size:255;not null"`
	Amount    float64   `json:"amount" gorm:"type:decimal(11,2);not null"`
	StartDate time.Time `json:"start_date" gorm:"not null;index"`
	EndDate   time.Time `json:"end_date" gorm:"not null;index"`

	Products []Product `json:"products,omitempty" gorm:"many2many:discount_products;constraint:OnDelete:CASCADE"`
}
