// internal/services/product_service_test.go
package services

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopnest/shopnest-backend/internal/authz"
	"github.com/shopnest/shopnest-backend/internal/config"
)

func newProductService(t *testing.T) (*ProductService, sqlmock.Sqlmock) {
	t.Helper()

	db, mock := newTestDB(t)
	storage, err := NewStorageService(&config.Config{})
	require.NoError(t, err)
	return NewProductService(db, storage), mock
}

func imageRows(productID uuid.UUID, keys ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "product_id", "url", "key"})
	for _, key := range keys {
		rows.AddRow(uuid.New(), productID, "https://cdn.example.com/"+key, key)
	}
	return rows
}

func catalogClerk() *authz.Actor {
	return &authz.Actor{
		ID:            uuid.New(),
		Username:      "clerk",
		Authenticated: true,
		Capabilities:  []string{"product.add", "product.change", "product.delete"},
	}
}

func TestDeleteAllImages_CollectsKeysBeforeDeletingRows(t *testing.T) {
	svc, mock := newProductService(t)

	productID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
		WillReturnRows(productRows(productID, 3))
	// Keys must be read before the rows go away, or the stored objects
	// can never be cleaned up.
	mock.ExpectQuery(`SELECT \* FROM "images" WHERE product_id = \$1`).
		WillReturnRows(imageRows(productID, "product_images/a.jpg", "product_images/b.jpg"))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "images" WHERE product_id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	deleted, err := svc.DeleteAllImages(catalogClerk(), productID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteImages_CollectsKeysBeforeDeletingRows(t *testing.T) {
	svc, mock := newProductService(t)

	productID := uuid.New()
	imageID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
		WillReturnRows(productRows(productID, 3))
	mock.ExpectQuery(`SELECT \* FROM "images" WHERE product_id = \$1 AND id IN`).
		WillReturnRows(imageRows(productID, "product_images/a.jpg"))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "images" WHERE product_id = \$1 AND id IN`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	deleted, err := svc.DeleteImages(catalogClerk(), productID, []uuid.UUID{imageID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteImages_NoMatchingRows(t *testing.T) {
	svc, mock := newProductService(t)

	productID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
		WillReturnRows(productRows(productID, 3))
	mock.ExpectQuery(`SELECT \* FROM "images" WHERE product_id = \$1 AND id IN`).
		WillReturnRows(imageRows(productID))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "images" WHERE product_id = \$1 AND id IN`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	_, err := svc.DeleteImages(catalogClerk(), productID, []uuid.UUID{uuid.New()})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProduct_ReloadFaultSurfaces(t *testing.T) {
	svc, mock := newProductService(t)

	productID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
		WillReturnRows(productRows(productID, 3))
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
		WillReturnError(errors.New("pq: connection refused"))

	_, err := svc.UpdateProduct(catalogClerk(), productID, &UpdateProductRequest{})

	var internalErr *InternalError
	require.ErrorAs(t, err, &internalErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}
