// internal/services/discount_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/shopnest/shopnest-backend/internal/authz"
)

func TestCreateDiscount_RequiresCapability(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewDiscountService(db)

	customer := &authz.Actor{ID: uuid.New(), Authenticated: true}
	req := &DiscountRequest{
		Name:      "summer sale",
		Amount:    10,
		StartDate: time.Now(),
		EndDate:   time.Now().AddDate(0, 1, 0),
	}

	_, err := svc.CreateDiscount(customer, req)
	assert.ErrorIs(t, err, authz.ErrForbidden)

	grantee := &authz.Actor{
		ID:            uuid.New(),
		Authenticated: true,
		Capabilities:  []string{"discount.add"},
	}
	// With the grant, the request proceeds past authorization and validation
	// and fails only because the mock has no INSERT queued.
	_, err = svc.CreateDiscount(grantee, req)
	assert.NotErrorIs(t, err, authz.ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDiscount_RejectsInvertedDateRange(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewDiscountService(db)

	admin := &authz.Actor{ID: uuid.New(), Authenticated: true, IsSuperuser: true}
	_, err := svc.CreateDiscount(admin, &DiscountRequest{
		Name:      "backwards",
		Amount:    5,
		StartDate: time.Now(),
		EndDate:   time.Now().AddDate(0, 0, -7),
	})
	assert.EqualError(t, err, "start_date must not be after end_date")
	assert.NoError(t, mock.ExpectationsWereMet())
}
