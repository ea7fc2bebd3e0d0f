// internal/models/category.go
package models

type Category struct {
	BaseModel
	Name string `json:"name" gorm:"size:255;not null;uniqueIndex"`

	// Deleting a category removes its products via the FK constraint.
	Products []Product `json:"products,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}
