// Package identity resolves the authenticated caller from the bearer
// token on the request.
package identity

import (
	"net/http"
	"strings"

	"github.com/givehub/backend/internal/models"
	"github.com/gin-gonic/gin"
)

const contextUserKey = "givehub-current-user"

type authError struct {
	Error string `json:"error" example:"you must authenticate with a bearer token"`
}

// Middleware looks up the user for the Authorization header and stores
// it on the request context. Requests without a valid token are
// rejected with 401.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, authError{Error: "you must authenticate with a bearer token"})
			return
		}

		var user models.User
		err := models.DB.First(&user, "api_token = ?", strings.TrimSpace(token)).Error
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, authError{Error: "the bearer token is not valid"})
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// RequireAdmin rejects requests from callers without the admin role.
// It must run after Middleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || user.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, authError{Error: "this action requires an administrator"})
			return
		}

		c.Next()
	}
}

// CurrentUser returns the authenticated user for the request.
func CurrentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(contextUserKey)
	if !exists {
		return models.User{}, false
	}

	user, ok := value.(models.User)
	return user, ok
}
