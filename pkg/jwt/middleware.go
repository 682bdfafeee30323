package jwt

import (
	"strings"

	"pulse-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	// ContextUserIDKey is the gin.Context key for the authenticated user id.
	ContextUserIDKey = "user_id"
	// ContextUsernameKey is the gin.Context key for the username.
	ContextUsernameKey = "username"
)

// AuthMiddleware extracts "Authorization: Bearer <token>", validates it and
// stores the caller's identity in the gin context. Refresh tokens are not
// accepted here.
func (s *JWTService) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing Authorization header")
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Unauthorized(c, "Authorization header must be Bearer <token>")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := s.ValidateToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "token invalid or expired")
			c.Abort()
			return
		}
		if claims.TokenType == TokenTypeRefresh {
			response.Unauthorized(c, "refresh token not accepted here")
			c.Abort()
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			response.Unauthorized(c, "token invalid or expired")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Set(ContextUsernameKey, claims.Username)

		c.Next()
	}
}

// GetUserID returns the authenticated user id from the gin context, or 0.
func GetUserID(c *gin.Context) uint {
	if userID, exists := c.Get(ContextUserIDKey); exists {
		if id, ok := userID.(uint); ok {
			return id
		}
	}
	return 0
}

// GetUsername returns the authenticated username from the gin context.
func GetUsername(c *gin.Context) string {
	if username, exists := c.Get(ContextUsernameKey); exists {
		if name, ok := username.(string); ok {
			return name
		}
	}
	return ""
}
