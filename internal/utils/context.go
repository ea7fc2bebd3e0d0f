// internal/utils/context.go
package utils

import (
	"github.com/gin-gonic/gin"

	"github.com/shopnest/shopnest-backend/internal/authz"
)

const actorContextKey = "actor"

// SetActor attaches the resolved request actor to the gin context.
func SetActor(c *gin.Context, actor *authz.Actor) {
	c.Set(actorContextKey, actor)
}

// GetActor returns the request actor, or the anonymous actor when the request
// carried no valid credentials.
func GetActor(c *gin.Context) *authz.Actor {
	if v, exists := c.Get(actorContextKey); exists {
		if actor, ok := v.(*authz.Actor); ok {
			return actor
		}
	}
	return authz.Anonymous()
}
