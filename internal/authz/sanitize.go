// internal/authz/sanitize.go
package authz

import (
	"errors"

	"github.com/google/uuid"
)

// ErrOwnerMismatch rejects a personal-resource payload that names an owner
// other than the requesting actor.
var ErrOwnerMismatch = errors.New("cannot assign resource to another user")

// CanSetPrivileges reports whether the actor may set is_staff, is_superuser
// or capability grants on a user payload. Non-superuser writes have those
// fields stripped and forced to their zero values.
func CanSetPrivileges(actor *Actor) bool {
	return actor.IsSuperuser
}

// ResolveOwner fixes the owner of a personal resource at creation. An omitted
// owner defaults to the actor; an explicit owner that is not the actor is
// rejected rather than silently overridden.
func ResolveOwner(actor *Actor, requested *uuid.UUID) (uuid.UUID, error) {
	if requested == nil || *requested == uuid.Nil {
		return actor.ID, nil
	}
	if *requested != actor.ID {
		return uuid.Nil, ErrOwnerMismatch
	}
	return actor.ID, nil
}
