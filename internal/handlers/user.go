// internal/handlers/user.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/shopnest/shopnest-backend/internal/services"
	"github.com/shopnest/shopnest-backend/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GET /users
func (h *UserHandler) GetUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.userService.ListUsers(utils.GetActor(c), params)
	if err != nil {
		respondServiceError(c, err, "user")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePage(c, users, total, params))
}

// GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(utils.GetActor(c), id)
	if err != nil {
		respondServiceError(c, err, "user")
		return
	}

	utils.SuccessResponse(c, gin.H{"user": user})
}

// POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req services.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	user, err := h.userService.CreateUser(utils.GetActor(c), &req)
	if err != nil {
		respondServiceError(c, err, "user")
		return
	}

	utils.CreatedResponse(c, gin.H{"user": user})
}

// PUT /users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req services.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	user, err := h.userService.UpdateUser(utils.GetActor(c), id, &req)
	if err != nil {
		respondServiceError(c, err, "user")
		return
	}

	utils.SuccessResponse(c, gin.H{"user": user})
}

// DELETE /users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(utils.GetActor(c), id); err != nil {
		respondServiceError(c, err, "user")
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "User deleted"})
}
