// internal/authz/policy_test.go
package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/shopnest/shopnest-backend/internal/models"
)

func TestAuthorize_AnonymousAccess(t *testing.T) {
	anon := Anonymous()

	tests := []struct {
		name    string
		action  Action
		kind    models.ResourceKind
		wantErr error
	}{
		{"read categories", ActionRead, models.ResourceCategory, nil},
		{"read products", ActionRead, models.ResourceProduct, nil},
		{"read discounts", ActionRead, models.ResourceDiscount, nil},
		{"read reviews", ActionRead, models.ResourceReview, nil},
		{"register user", ActionCreate, models.ResourceUser, nil},
		{"read orders", ActionRead, models.ResourceOrder, ErrUnauthenticated},
		{"read wishlists", ActionRead, models.ResourceWishlist, ErrUnauthenticated},
		{"read users", ActionRead, models.ResourceUser, ErrUnauthenticated},
		{"create product", ActionCreate, models.ResourceProduct, ErrUnauthenticated},
		{"create review", ActionCreate, models.ResourceReview, ErrUnauthenticated},
		{"create order", ActionCreate, models.ResourceOrder, ErrUnauthenticated},
		{"delete category", ActionDelete, models.ResourceCategory, ErrUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(anon, tt.action, tt.kind)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthorize_Capabilities(t *testing.T) {
	customer := &Actor{ID: uuid.New(), Authenticated: true}
	clerk := &Actor{
		ID:            uuid.New(),
		Authenticated: true,
		IsStaff:       true,
		Capabilities:  []string{"product.add", "product.change"},
	}
	super := &Actor{ID: uuid.New(), Authenticated: true, IsSuperuser: true}

	tests := []struct {
		name    string
		actor   *Actor
		action  Action
		kind    models.ResourceKind
		wantErr error
	}{
		{"customer cannot create product", customer, ActionCreate, models.ResourceProduct, ErrForbidden},
		{"customer cannot delete category", customer, ActionDelete, models.ResourceCategory, ErrForbidden},
		{"customer can create review", customer, ActionCreate, models.ResourceReview, nil},
		{"customer can create order", customer, ActionCreate, models.ResourceOrder, nil},
		{"customer can create wishlist", customer, ActionCreate, models.ResourceWishlist, nil},
		{"clerk can create product", clerk, ActionCreate, models.ResourceProduct, nil},
		{"clerk can update product", clerk, ActionUpdate, models.ResourceProduct, nil},
		{"clerk cannot delete product", clerk, ActionDelete, models.ResourceProduct, ErrForbidden},
		{"staff flag alone grants nothing", clerk, ActionCreate, models.ResourceCategory, ErrForbidden},
		{"superuser bypasses grants", super, ActionDelete, models.ResourceCategory, nil},
		{"superuser bypasses grants on discounts", super, ActionCreate, models.ResourceDiscount, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.actor, tt.action, tt.kind)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthorizeObject_Ownership(t *testing.T) {
	ownerID := uuid.New()
	strangerID := uuid.New()

	owner := &Actor{ID: ownerID, Authenticated: true}
	stranger := &Actor{ID: strangerID, Authenticated: true}
	staff := &Actor{ID: uuid.New(), Authenticated: true, IsStaff: true}
	super := &Actor{ID: uuid.New(), Authenticated: true, IsSuperuser: true}

	tests := []struct {
		name    string
		actor   *Actor
		action  Action
		kind    models.ResourceKind
		wantErr error
	}{
		{"owner reads own order", owner, ActionRead, models.ResourceOrder, nil},
		{"owner updates own order", owner, ActionUpdate, models.ResourceOrder, nil},
		{"owner deletes own wishlist", owner, ActionDelete, models.ResourceWishlist, nil},
		{"stranger cannot read order", stranger, ActionRead, models.ResourceOrder, ErrForbidden},
		{"stranger cannot update order", stranger, ActionUpdate, models.ResourceOrder, ErrForbidden},
		{"stranger cannot update wishlist", stranger, ActionUpdate, models.ResourceWishlist, ErrForbidden},
		{"staff reads any order", staff, ActionRead, models.ResourceOrder, nil},
		{"staff reads any wishlist", staff, ActionRead, models.ResourceWishlist, nil},
		{"staff reads any user", staff, ActionRead, models.ResourceUser, nil},
		{"staff cannot update another user's order", staff, ActionUpdate, models.ResourceOrder, ErrForbidden},
		{"staff cannot delete another user", staff, ActionDelete, models.ResourceUser, ErrForbidden},
		{"superuser updates any order", super, ActionUpdate, models.ResourceOrder, nil},
		{"superuser deletes any user", super, ActionDelete, models.ResourceUser, nil},
		{"stranger cannot update review", stranger, ActionUpdate, models.ResourceReview, ErrForbidden},
		{"owner updates own review", owner, ActionUpdate, models.ResourceReview, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AuthorizeObject(tt.actor, tt.action, tt.kind, ownerID)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthorizeObject_PublicReadStaysPublic(t *testing.T) {
	// Review rows are owned, but reading them never requires credentials.
	err := AuthorizeObject(Anonymous(), ActionRead, models.ResourceReview, uuid.New())
	assert.NoError(t, err)

	// Writing one still does.
	err = AuthorizeObject(Anonymous(), ActionUpdate, models.ResourceReview, uuid.New())
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestResolveOwner(t *testing.T) {
	actor := &Actor{ID: uuid.New(), Authenticated: true}
	other := uuid.New()

	id, err := ResolveOwner(actor, nil)
	assert.NoError(t, err)
	assert.Equal(t, actor.ID, id)

	zero := uuid.Nil
	id, err = ResolveOwner(actor, &zero)
	assert.NoError(t, err)
	assert.Equal(t, actor.ID, id)

	self := actor.ID
	id, err = ResolveOwner(actor, &self)
	assert.NoError(t, err)
	assert.Equal(t, actor.ID, id)

	_, err = ResolveOwner(actor, &other)
	assert.ErrorIs(t, err, ErrOwnerMismatch)
}

func TestCanSetPrivileges(t *testing.T) {
	assert.False(t, CanSetPrivileges(&Actor{Authenticated: true}))
	assert.False(t, CanSetPrivileges(&Actor{Authenticated: true, IsStaff: true}))
	assert.True(t, CanSetPrivileges(&Actor{Authenticated: true, IsSuperuser: true}))
}

func TestHasCapability(t *testing.T) {
	actor := &Actor{Authenticated: true, Capabilities: []string{"product.add"}}
	assert.True(t, actor.HasCapability("product.add"))
	assert.False(t, actor.HasCapability("product.delete"))

	super := &Actor{Authenticated: true, IsSuperuser: true}
	assert.True(t, super.HasCapability("anything.at.all"))
}
