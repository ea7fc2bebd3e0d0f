// internal/models/user.go
package models

import (
	"time"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Username     string         `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Email        string         `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string         `json:"-" gorm:"size:255;not null"`
	IsStaff      bool           `json:"is_staff" gorm:"default:false"`
	IsSuperuser  bool           `json:"is_superuser" gorm:"default:false"`
	IsActive     bool           `json:"is_active" gorm:"default:true"`
	Capabilities pq.StringArray `json:"capabilities" gorm:"type:text[]"`
	LastLoginAt  *time.Time     `json:"last_login_at"`

	// Relationships
	Orders    []Order    `json:"orders,omitempty" gorm:"foreignKey:UserID"`
	Reviews   []Review   `json:"reviews,omitempty" gorm:"foreignKey:UserID"`
	Wishlists []Wishlist `json:"wishlists,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// HasCapability reports whether the user holds a capability grant such as
// "product.add" or "category.delete". Superusers implicitly hold every grant.
func (u *User) HasCapability(capability string) bool {
	if u.IsSuperuser {
		return true
	}
	for _, c := range u.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}
