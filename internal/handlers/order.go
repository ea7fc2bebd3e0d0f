// internal/handlers/order.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/shopnest/shopnest-backend/internal/services"
	"github.com/shopnest/shopnest-backend/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// GET /orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	orders, total, err := h.orderService.ListOrders(utils.GetActor(c), params)
	if err != nil {
		respondServiceError(c, err, "order")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePage(c, orders, total, params))
}

// GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(utils.GetActor(c), id)
	if err != nil {
		respondServiceError(c, err, "order")
		return
	}

	utils.SuccessResponse(c, gin.H{"order": order})
}

// POST /orders
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	order, err := h.orderService.PlaceOrder(utils.GetActor(c), &req)
	if err != nil {
		respondServiceError(c, err, "product")
		return
	}

	utils.CreatedResponse(c, gin.H{"order": order})
}

// PUT /orders/:id
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req services.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	order, err := h.orderService.UpdateOrder(utils.GetActor(c), id, &req)
	if err != nil {
		respondServiceError(c, err, "order")
		return
	}

	utils.SuccessResponse(c, gin.H{"order": order})
}

// DELETE /orders/:id
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.orderService.DeleteOrder(utils.GetActor(c), id); err != nil {
		respondServiceError(c, err, "order")
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Order cancelled"})
}
