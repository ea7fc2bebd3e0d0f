// internal/handlers/auth.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/shopnest/shopnest-backend/internal/services"
	"github.com/shopnest/shopnest-backend/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
	userService *services.UserService
}

func NewAuthHandler(authService *services.AuthService, userService *services.UserService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
	}
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	// Registration runs with the request actor so that a logged-in superuser
	// can provision privileged accounts through the same endpoint.
	user, err := h.userService.CreateUser(utils.GetActor(c), &req)
	if err != nil {
		respondServiceError(c, err, "user")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": "Account created",
		"user":    user,
	})
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		var internalErr *services.InternalError
		if errors.As(err, &internalErr) {
			utils.InternalErrorResponse(c, "")
			return
		}
		utils.UnauthorizedResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, resp)
}

// POST /auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	resp, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		var internalErr *services.InternalError
		if errors.As(err, &internalErr) {
			utils.InternalErrorResponse(c, "")
			return
		}
		utils.UnauthorizedResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, resp)
}

// GET /auth/me
func (h *AuthHandler) GetProfile(c *gin.Context) {
	actor := utils.GetActor(c)
	if !actor.Authenticated {
		utils.UnauthorizedResponse(c, "")
		return
	}

	user, err := h.userService.GetUser(actor, actor.ID)
	if err != nil {
		respondServiceError(c, err, "user")
		return
	}

	utils.SuccessResponse(c, gin.H{"user": user})
}
