// internal/middleware/auth.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopnest/shopnest-backend/internal/authz"
	"github.com/shopnest/shopnest-backend/internal/models"
	"github.com/shopnest/shopnest-backend/internal/utils"
)

// resolveActor turns a bearer token into an Actor backed by the current user
// row. Flags and capability grants are read from the database on every
// request so that revocations take effect immediately.
func resolveActor(c *gin.Context, db *gorm.DB) (*authz.Actor, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := utils.ValidateJWT(parts[1])
	if err != nil {
		return nil, false
	}

	var user models.User
	if err := db.First(&user, "id = ?", claims.UserID).Error; err != nil {
		return nil, false
	}
	if !user.IsActive {
		return nil, false
	}

	return authz.ActorFromUser(&user), true
}

func AuthRequired(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := resolveActor(c, db)
		if !ok {
			utils.UnauthorizedResponse(c, "")
			c.Abort()
			return
		}

		utils.SetActor(c, actor)
		c.Next()
	}
}

// OptionalAuth resolves the actor when credentials are present but lets
// anonymous requests through; public catalog reads use this.
func OptionalAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if actor, ok := resolveActor(c, db); ok {
			utils.SetActor(c, actor)
		}
		c.Next()
	}
}
