// internal/services/order_service.go
package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopnest/shopnest-backend/internal/authz"
	"github.com/shopnest/shopnest-backend/internal/models"
	"github.com/shopnest/shopnest-backend/internal/utils"
)

type OrderService struct {
	db *gorm.DB
}

type CreateOrderRequest struct {
	ProductID uuid.UUID `json:"product" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
	// An owner supplied in the payload is ignored; orders always belong to
	// the requesting actor.
	UserID *uuid.UUID `json:"user,omitempty"`
}

type UpdateOrderRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// PlaceOrder validates stock and creates the order. The stock check, the
// decrement and the order insert run in one transaction with the product row
// locked, so concurrent placements on the same product serialize and
// stock_quantity can never go negative.
func (s *OrderService) PlaceOrder(actor *authz.Actor, req *CreateOrderRequest) (*models.Order, error) {
	if err := authz.Authorize(actor, authz.ActionCreate, models.ResourceOrder); err != nil {
		return nil, err
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	var order *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, "id = ?", req.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return internalErrorf("database error: %w", err)
		}

		if req.Quantity > product.StockQuantity {
			return &InsufficientStockError{
				Requested: req.Quantity,
				Available: product.StockQuantity,
			}
		}

		if err := tx.Model(&product).
			Update("stock_quantity", gorm.Expr("stock_quantity - ?", req.Quantity)).Error; err != nil {
			return internalErrorf("failed to decrement stock: %w", err)
		}

		order = &models.Order{
			UserID:    actor.ID,
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
			OrderDate: time.Now(),
		}
		if err := tx.Create(order).Error; err != nil {
			return internalErrorf("failed to create order: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// UpdateOrder changes the reserved quantity. The new quantity is validated
// against the current stock plus the order's previously reserved quantity,
// and only the delta is applied to the product.
func (s *OrderService) UpdateOrder(actor *authz.Actor, id uuid.UUID, req *UpdateOrderRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// The order row is locked too; a concurrent update of the same
		// order must not compute its delta from a stale quantity.
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return internalErrorf("database error: %w", err)
		}

		if err := authz.AuthorizeObject(actor, authz.ActionUpdate, models.ResourceOrder, order.UserID); err != nil {
			return err
		}

		var product models.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, "id = ?", order.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return internalErrorf("database error: %w", err)
		}

		// The order's own reservation counts as available for its update.
		available := product.StockQuantity + order.Quantity
		if req.Quantity > available {
			return &InsufficientStockError{
				Requested: req.Quantity,
				Available: available,
			}
		}

		delta := req.Quantity - order.Quantity
		if delta != 0 {
			if err := tx.Model(&product).
				Update("stock_quantity", gorm.Expr("stock_quantity - ?", delta)).Error; err != nil {
				return internalErrorf("failed to adjust stock: %w", err)
			}
		}

		if err := tx.Model(&order).Update("quantity", req.Quantity).Error; err != nil {
			return internalErrorf("failed to update order: %w", err)
		}
		order.Quantity = req.Quantity

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (s *OrderService) ListOrders(actor *authz.Actor, params utils.PaginationParams) ([]models.Order, int64, error) {
	if err := authz.Authorize(actor, authz.ActionRead, models.ResourceOrder); err != nil {
		return nil, 0, err
	}

	query := s.db.Model(&models.Order{})
	query = authz.Scope(actor, models.ResourceOrder, query)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, internalErrorf("failed to count orders: %w", err)
	}

	var orders []models.Order
	query = utils.ApplySort(query, params, []string{"created_at", "order_date", "quantity"})
	if err := utils.ApplyPagination(query, params).Find(&orders).Error; err != nil {
		return nil, 0, internalErrorf("failed to list orders: %w", err)
	}

	return orders, total, nil
}

func (s *OrderService) GetOrder(actor *authz.Actor, id uuid.UUID) (*models.Order, error) {
	if err := authz.Authorize(actor, authz.ActionRead, models.ResourceOrder); err != nil {
		return nil, err
	}

	var order models.Order
	if err := s.db.First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, internalErrorf("database error: %w", err)
	}

	if err := authz.AuthorizeObject(actor, authz.ActionRead, models.ResourceOrder, order.UserID); err != nil {
		return nil, err
	}

	return &order, nil
}

// DeleteOrder cancels the order and returns its reserved quantity to stock in
// the same transaction.
func (s *OrderService) DeleteOrder(actor *authz.Actor, id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return internalErrorf("database error: %w", err)
		}

		if err := authz.AuthorizeObject(actor, authz.ActionDelete, models.ResourceOrder, order.UserID); err != nil {
			return err
		}

		var product models.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, "id = ?", order.ProductID).Error; err == nil {
			if err := tx.Model(&product).
				Update("stock_quantity", gorm.Expr("stock_quantity + ?", order.Quantity)).Error; err != nil {
				return internalErrorf("failed to restore stock: %w", err)
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return internalErrorf("database error: %w", err)
		}

		if err := tx.Delete(&order).Error; err != nil {
			return internalErrorf("failed to delete order: %w", err)
		}

		return nil
	})
}
