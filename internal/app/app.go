package app

import (
	"errors"
	"fmt"

	"bloodlink_backend/database"
	"bloodlink_backend/internal/auth"
	"bloodlink_backend/internal/config"
	"bloodlink_backend/internal/handlers"
	"bloodlink_backend/internal/logger"
	"bloodlink_backend/internal/middleware"
	"bloodlink_backend/internal/models"
	"bloodlink_backend/internal/pkg/email"
	"bloodlink_backend/internal/repositories"
	"bloodlink_backend/internal/routes"
	"bloodlink_backend/internal/services"
	"bloodlink_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("development")
		logger.Fatal("Failed to load configuration", "error", err)
	}

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	router := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := router.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	mailer, err := email.NewSMTPSender(email.Config{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		Username:     cfg.Email.SMTPUsername,
		Password:     cfg.Email.SMTPPassword,
		FromEmail:    cfg.Email.FromEmail,
		FromName:     cfg.Email.FromName,
		TemplatePath: cfg.Email.TemplatesDir,
		BaseURL:      cfg.Email.BaseURL,
		LogoURL:      cfg.Email.LogoURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize email sender", "error", err)
	}

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.TokenTTL())

	userRepo := repositories.NewUserRepository(gormDB)
	requestRepo := repositories.NewRequestRepository(gormDB)

	serviceContainer := services.NewServiceContainer(userRepo, requestRepo, tokens, mailer)

	deps := &middleware.Deps{Tokens: tokens, Users: userRepo}
	appHandlers := initializeHandlers(serviceContainer, deps)

	router := initializeGinRouter(cfg)
	routes.Setup(router, appHandlers)
	return router
}

func initializeHandlers(sc *services.ServiceContainer, deps *middleware.Deps) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:     handlers.NewAuthHandler(baseHandler, sc.AuthService, deps),
		FacilityHandler: handlers.NewFacilityHandler(baseHandler, sc.UserService, sc.RequestService, deps),
		DonorHandler:    handlers.NewDonorHandler(baseHandler, sc.RequestService, deps),
		AdminHandler:    handlers.NewAdminHandler(baseHandler, sc.AuthService, sc.VerificationService, deps),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}

// seedFirstAdmin guarantees one administrator account exists. Admins are
// never created through the public registration routes.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		result := tx.Where("email = ?", adminEmail).First(&existing)
		if result.Error == nil {
			logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
			return nil
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check for admin user: %w", result.Error)
		}

		hash, err := auth.HashPassword(adminPassword)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}

		admin := &models.User{
			Email:             adminEmail,
			PasswordHash:      hash,
			Role:              models.UserRoleAdmin,
			IsEmailVerified:   true,
			IsProfileVerified: true,
			IsProfileComplete: true,
		}
		if err := tx.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		logger.Info("Created first admin user", "email", adminEmail)
		return nil
	})
}
