package middleware

import (
	"errors"
	"strings"

	"bloodlink_backend/internal/auth"
	"bloodlink_backend/internal/logger"
	"bloodlink_backend/internal/models"
	"bloodlink_backend/internal/repositories"
	"bloodlink_backend/pkg/apperrors"
	"bloodlink_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// Auth validates the Bearer token and places the user's ID and role into
// both the gin context and the request context.
func Auth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abort(c, apperrors.NewUnauthorizedError("Authorization header missing"))
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abort(c, apperrors.NewUnauthorizedError("Invalid authorization header format"))
			return
		}

		claims, err := tokens.ParseToken(parts[1])
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				abort(c, apperrors.ErrTokenExpired)
			} else {
				abort(c, apperrors.ErrInvalidToken)
			}
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userRole", string(claims.Role))

		ctx := c.Request.Context()
		ctx = logger.WithUserID(ctx, claims.UserID)
		ctx = contextkeys.WithUserID(ctx, claims.UserID)
		ctx = contextkeys.WithUserRole(ctx, string(claims.Role))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRoles rejects the request unless the authenticated role is listed.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get("userRole")
		if !exists {
			abort(c, apperrors.NewUnauthorizedError("User not authenticated"))
			return
		}
		role, _ := roleVal.(string)
		for _, allowed := range roles {
			if role == string(allowed) {
				c.Next()
				return
			}
		}
		logger.CtxWarn(c.Request.Context(), "role check failed",
			"role", role, "path", c.Request.URL.Path)
		abort(c, apperrors.NewForbiddenError("Insufficient permissions"))
	}
}

// ProfileCheck gates routes that require a complete and verified profile.
// Both flags must hold; either missing reads as not-yet-onboarded, 401.
func ProfileCheck(users repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("userID")
		if !exists {
			abort(c, apperrors.NewUnauthorizedError("User not authenticated"))
			return
		}
		userID, _ := userIDVal.(string)

		user, err := users.FindByID(userID)
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				abort(c, apperrors.NewUnauthorizedError("User not found"))
			} else {
				abort(c, apperrors.InternalError(err))
			}
			return
		}

		if user.IsAccountSuspended {
			abort(c, apperrors.ErrAccountSuspended)
			return
		}
		if !user.IsProfileComplete {
			abort(c, apperrors.ErrProfileIncomplete)
			return
		}
		if !user.IsProfileVerified {
			abort(c, apperrors.ErrProfileUnverified)
			return
		}

		c.Next()
	}
}

func abort(c *gin.Context, err error) {
	apperrors.HandleError(c, err)
	c.Abort()
}
