package middleware

import (
	"net/http"
	"strings"

	"voxshop_backend/internal/auth"
	"voxshop_backend/internal/logger"
	"voxshop_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey    = "user_id"
	userRoleKey  = "user_role"
	anonymousKey = "user_anonymous"
)

// AuthMiddleware validates the bearer token and stores the claims in the
// gin context. Anonymous tokens pass; they are real users.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			abortUnauthorized(c, "Missing bearer token")
			return
		}

		claims, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(userRoleKey, claims.Role)
		c.Set(anonymousKey, claims.Anonymous)

		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireRoles gates a route group to the listed roles.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(userRoleKey)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, apperrors.ErrorResponse{
			Error: apperrors.NewForbiddenError("Insufficient permissions"),
		})
	}
}

// RequireRegistered blocks anonymous sessions from routes that need a
// durable account.
func RequireRegistered() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetBool(anonymousKey) {
			c.AbortWithStatusJSON(http.StatusForbidden, apperrors.ErrorResponse{
				Error: apperrors.NewForbiddenError("Account registration required"),
			})
			return
		}
		c.Next()
	}
}

// GetUserID returns the authenticated user id set by AuthMiddleware.
func GetUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(userIDKey)
	return userID, userID != ""
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, apperrors.ErrorResponse{
		Error: apperrors.NewUnauthorizedError(message),
	})
}
