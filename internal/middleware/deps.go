package middleware

import (
	"bloodlink_backend/internal/auth"
	"bloodlink_backend/internal/repositories"
)

// Deps bundles the dependencies route-level middleware needs so handlers
// can attach guards without reaching into the container.
type Deps struct {
	Tokens *auth.TokenManager
	Users  repositories.UserRepository
}
