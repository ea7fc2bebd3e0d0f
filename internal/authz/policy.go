// internal/authz/policy.go
package authz

import (
	"errors"

	"github.com/google/uuid"

	"github.com/shopnest/shopnest-backend/internal/models"
)

// Deny reasons. The distinction between the two matters to callers: an
// unauthenticated deny maps to 401, an authenticated one to 403.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("permission denied")
)

type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// rule describes the access shape of one resource kind. Adding a resource is
// a table entry, not a new permission type.
type rule struct {
	// publicRead allows list/retrieve without authentication.
	publicRead bool
	// openCreate allows create without authentication (user self-registration).
	openCreate bool
	// capabilities gates create/update/delete on "<resource>.add|change|delete"
	// grants (superusers bypass).
	capabilities bool
	// owned applies object-level ownership checks and collection scoping.
	owned bool
	// staffReadAll lets staff and superusers read rows they do not own.
	staffReadAll bool
}

var policy = map[models.ResourceKind]rule{
	models.ResourceCategory: {publicRead: true, capabilities: true},
	models.ResourceProduct:  {publicRead: true, capabilities: true},
	models.ResourceDiscount: {publicRead: true, capabilities: true},
	models.ResourceReview:   {publicRead: true, owned: true},
	models.ResourceOrder:    {owned: true, staffReadAll: true},
	models.ResourceWishlist: {owned: true, staffReadAll: true},
	models.ResourceUser:     {openCreate: true, owned: true, staffReadAll: true},
}

func capabilityFor(kind models.ResourceKind, action Action) string {
	switch action {
	case ActionCreate:
		return string(kind) + ".add"
	case ActionUpdate:
		return string(kind) + ".change"
	case ActionDelete:
		return string(kind) + ".delete"
	}
	return ""
}

// Authorize gates a request before any row is touched. Object-level ownership
// is checked separately by AuthorizeObject once the target row is known.
func Authorize(actor *Actor, action Action, kind models.ResourceKind) error {
	r, ok := policy[kind]
	if !ok {
		return ErrForbidden
	}

	switch action {
	case ActionRead:
		if r.publicRead {
			return nil
		}
	case ActionCreate:
		if r.openCreate {
			return nil
		}
	}

	if !actor.Authenticated {
		return ErrUnauthenticated
	}

	if action != ActionRead && r.capabilities {
		if !actor.HasCapability(capabilityFor(kind, action)) {
			return ErrForbidden
		}
	}

	return nil
}

// AuthorizeObject applies the ownership rules of personal resources to a
// specific row. ownerID is the owning user's id (for user rows, the row id).
func AuthorizeObject(actor *Actor, action Action, kind models.ResourceKind, ownerID uuid.UUID) error {
	if err := Authorize(actor, action, kind); err != nil {
		return err
	}

	r := policy[kind]
	if !r.owned {
		return nil
	}
	if action == ActionRead && r.publicRead {
		return nil
	}
	if actor.ID == ownerID || actor.IsSuperuser {
		return nil
	}
	if action == ActionRead && r.staffReadAll && actor.IsStaff {
		return nil
	}
	return ErrForbidden
}
