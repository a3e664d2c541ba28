package contextkeys

import "context"

// Custom key type avoids collisions with other packages' context values.
type contextKey string

// UserIDContextKey holds the authenticated user's ID in gin's context.
const UserIDContextKey = contextKey("userID")

// UserRoleContextKey holds the authenticated user's role in gin's context.
const UserRoleContextKey = contextKey("role")

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDContextKey, userID)
}

func WithUserRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, UserRoleContextKey, role)
}

func UserID(ctx context.Context) string {
	if v, ok := ctx.Value(UserIDContextKey).(string); ok {
		return v
	}
	return ""
}

func UserRole(ctx context.Context) string {
	if v, ok := ctx.Value(UserRoleContextKey).(string); ok {
		return v
	}
	return ""
}
