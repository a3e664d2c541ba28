package services

import (
	"bloodlink_backend/internal/auth"
	"bloodlink_backend/internal/pkg/email"
	"bloodlink_backend/internal/repositories"
)

// ServiceContainer holds every application service.
type ServiceContainer struct {
	AuthService         AuthService
	UserService         UserService
	RequestService      RequestService
	VerificationService VerificationService
	NotificationService NotificationService
}

func NewServiceContainer(
	users repositories.UserRepository,
	requests repositories.RequestRepository,
	tokens *auth.TokenManager,
	mailer email.Sender,
) *ServiceContainer {
	notifications := NewNotificationService(mailer)
	return &ServiceContainer{
		AuthService:         NewAuthService(users, tokens, notifications),
		UserService:         NewUserService(users),
		RequestService:      NewRequestService(requests, users, notifications),
		VerificationService: NewVerificationService(users, notifications),
		NotificationService: notifications,
	}
}
