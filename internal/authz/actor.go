// internal/authz/actor.go
package authz

import (
	"github.com/google/uuid"

	"github.com/shopnest/shopnest-backend/internal/models"
)

// Actor is the identity performing a request. It is passed explicitly into
// every policy function; nothing in this package reads ambient request state.
type Actor struct {
	ID            uuid.UUID
	Username      string
	Authenticated bool
	IsStaff       bool
	IsSuperuser   bool
	Capabilities  []string
}

// Anonymous returns the actor for an unauthenticated request.
func Anonymous() *Actor {
	return &Actor{}
}

// ActorFromUser builds an authenticated actor from a user row.
func ActorFromUser(u *models.User) *Actor {
	return &Actor{
		ID:            u.ID,
		Username:      u.Username,
		Authenticated: true,
		IsStaff:       u.IsStaff,
		IsSuperuser:   u.IsSuperuser,
		Capabilities:  u.Capabilities,
	}
}

// HasCapability reports whether the actor holds a grant such as "product.add".
// Superusers implicitly hold every grant.
func (a *Actor) HasCapability(capability string) bool {
	if a.IsSuperuser {
		return true
	}
	for _, c := range a.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}
