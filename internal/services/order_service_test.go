// internal/services/order_service_test.go
package services

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shopnest/shopnest-backend/internal/authz"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func testActor() *authz.Actor {
	return &authz.Actor{ID: uuid.New(), Username: "alice", Authenticated: true}
}

func productRows(id uuid.UUID, stock int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "price", "stock_quantity"}).
		AddRow(id, "widget", "9.99", stock)
}

func orderRows(id, userID, productID uuid.UUID, quantity int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "product_id", "quantity"}).
		AddRow(id, userID, productID, quantity)
}

func TestPlaceOrder_Success(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewOrderService(db)

	actor := testActor()
	productID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 .* FOR UPDATE`).
		WillReturnRows(productRows(productID, 5))
	mock.ExpectExec(`UPDATE "products" SET "stock_quantity"=stock_quantity - \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
	mock.ExpectCommit()

	order, err := svc.PlaceOrder(actor, &CreateOrderRequest{ProductID: productID, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, actor.ID, order.UserID)
	assert.Equal(t, productID, order.ProductID)
	assert.Equal(t, 3, order.Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrder_StockToZero(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewOrderService(db)

	productID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 .* FOR UPDATE`).
		WillReturnRows(productRows(productID, 4))
	mock.ExpectExec(`UPDATE "products" SET "stock_quantity"=stock_quantity - \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
	mock.ExpectCommit()

	// Ordering exactly the remaining stock succeeds.
	_, err := svc.PlaceOrder(testActor(), &CreateOrderRequest{ProductID: productID, Quantity: 4})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrder_InsufficientStock(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewOrderService(db)

	productID := uuid.New()

	// No UPDATE and no INSERT may follow; the transaction rolls back with
	// the stock untouched.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 .* FOR UPDATE`).
		WillReturnRows(productRows(productID, 2))
	mock.ExpectRollback()

	_, err := svc.PlaceOrder(testActor(), &CreateOrderRequest{ProductID: productID, Quantity: 5})

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 5, stockErr.Requested)
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, "ordered quantity (5) exceeds available stock (2)", stockErr.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrder_ProductNotFound(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewOrderService(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 .* FOR UPDATE`).
		WillReturnError(gorm.ErrRecordNotFound)
	mock.ExpectRollback()

	_, err := svc.PlaceOrder(testActor(), &CreateOrderRequest{ProductID: uuid.New(), Quantity: 1})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrder_IgnoresPayloadOwner(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewOrderService(db)

	actor := testActor()
	productID := uuid.New()
	someoneElse := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 .* FOR UPDATE`).
		WillReturnRows(productRows(productID, 10))
	mock.ExpectExec(`UPDATE "products" SET "stock_quantity"=stock_quantity - \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
	mock.ExpectCommit()

	order, err := svc.PlaceOrder(actor, &CreateOrderRequest{
		ProductID: productID,
		Quantity:  1,
		UserID:    &someoneElse,
	})
	require.NoError(t, err)
	assert.Equal(t, actor.ID, order.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrder_Unauthenticated(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewOrderService(db)

	_, err := svc.PlaceOrder(authz.Anonymous(), &CreateOrderRequest{ProductID: uuid.New(), Quantity: 1})
	assert.ErrorIs(t, err, authz.ErrUnauthenticated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrder_ValidatesAgainstStockPlusReservation(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewOrderService(db)

	actor := testActor()
	orderID := uuid.New()
	productID := uuid.New()

	// Stock is 2, but the order already holds 3, so raising to 5 is allowed.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1 .* FOR UPDATE`).
		WillReturnRows(orderRows(orderID, actor.ID, productID, 3))
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 .* FOR UPDATE`).
		WillReturnRows(productRows(productID, 2))
	mock.ExpectExec(`UPDATE "products" SET "stock_quantity"=stock_quantity - \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "orders" SET "quantity"=\$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	order, err := svc.UpdateOrder(actor, orderID, &UpdateOrderRequest{Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, order.Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrder_InsufficientStock(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewOrderService(db)

	actor := testActor()
	orderID := uuid.New()
	productID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1 .* FOR UPDATE`).
		WillReturnRows(orderRows(orderID, actor.ID, productID, 3))
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 .* FOR UPDATE`).
		WillReturnRows(productRows(productID, 2))
	mock.ExpectRollback()

	_, err := svc.UpdateOrder(actor, orderID, &UpdateOrderRequest{Quantity: 6})

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 6, stockErr.Requested)
	assert.Equal(t, 5, stockErr.Available)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrder_ForbiddenForNonOwner(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewOrderService(db)

	orderID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1 .* FOR UPDATE`).
		WillReturnRows(orderRows(orderID, uuid.New(), uuid.New(), 3))
	mock.ExpectRollback()

	_, err := svc.UpdateOrder(testActor(), orderID, &UpdateOrderRequest{Quantity: 1})
	assert.ErrorIs(t, err, authz.ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteOrder_RestoresStock(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewOrderService(db)

	actor := testActor()
	orderID := uuid.New()
	productID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1 .* FOR UPDATE`).
		WillReturnRows(orderRows(orderID, actor.ID, productID, 3))
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 .* FOR UPDATE`).
		WillReturnRows(productRows(productID, 2))
	mock.ExpectExec(`UPDATE "products" SET "stock_quantity"=stock_quantity \+ \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "orders"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := svc.DeleteOrder(actor, orderID)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrder_DatabaseFaultIsInternal(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewOrderService(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 .* FOR UPDATE`).
		WillReturnError(errors.New("pq: connection refused at 10.0.0.5:5432"))
	mock.ExpectRollback()

	_, err := svc.PlaceOrder(testActor(), &CreateOrderRequest{ProductID: uuid.New(), Quantity: 1})

	var internalErr *InternalError
	require.ErrorAs(t, err, &internalErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrder_ForbiddenForNonOwner(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewOrderService(db)

	orderID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1`).
		WillReturnRows(orderRows(orderID, uuid.New(), uuid.New(), 1))

	_, err := svc.GetOrder(testActor(), orderID)
	assert.ErrorIs(t, err, authz.ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrder_StaffReadsAnyOrder(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewOrderService(db)

	staff := &authz.Actor{ID: uuid.New(), Username: "staff", Authenticated: true, IsStaff: true}
	orderID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1`).
		WillReturnRows(orderRows(orderID, uuid.New(), uuid.New(), 1))

	order, err := svc.GetOrder(staff, orderID)
	require.NoError(t, err)
	assert.Equal(t, orderID, order.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
