// internal/authz/scope.go
package authz

import (
	"gorm.io/gorm"

	"github.com/shopnest/shopnest-backend/internal/models"
)

// Scope narrows a collection query to the rows visible to the actor. It must
// be applied before counting and pagination so that counts and page links
// reflect only the visible subset.
//
// Catalog collections (category, product, discount, review) are unfiltered.
// For user, order and wishlist collections, staff and superusers see all
// rows; everyone else sees only their own.
func Scope(actor *Actor, kind models.ResourceKind, db *gorm.DB) *gorm.DB {
	r, ok := policy[kind]
	if !ok || !r.staffReadAll {
		return db
	}
	if actor.IsStaff || actor.IsSuperuser {
		return db
	}
	if kind == models.ResourceUser {
		return db.Where("id = ?", actor.ID)
	}
	return db.Where("user_id = ?", actor.ID)
}
