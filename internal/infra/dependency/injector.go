// Package dependency provides dependency injection for the application.
package dependency

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yosan-kanri/backend/config"
	"github.com/yosan-kanri/backend/internal/application/adapter"
	"github.com/yosan-kanri/backend/internal/application/usecase/auth"
	"github.com/yosan-kanri/backend/internal/application/usecase/classification"
	"github.com/yosan-kanri/backend/internal/application/usecase/payment"
	"github.com/yosan-kanri/backend/internal/application/usecase/project"
	"github.com/yosan-kanri/backend/internal/application/usecase/user"
	"github.com/yosan-kanri/backend/internal/application/usecase/workitem"
	"github.com/yosan-kanri/backend/internal/infra/server/router"
	"github.com/yosan-kanri/backend/internal/integration/adapters"
	"github.com/yosan-kanri/backend/internal/integration/email"
	"github.com/yosan-kanri/backend/internal/integration/email/templates"
	"github.com/yosan-kanri/backend/internal/integration/entrypoint/controller"
	"github.com/yosan-kanri/backend/internal/integration/entrypoint/middleware"
	"github.com/yosan-kanri/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Router      *router.Router
	EmailWorker *email.Worker
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB) (*Injector, error) {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	projectRepo := persistence.NewProjectRepository(db)
	workItemRepo := persistence.NewWorkItemRepository(db)
	paymentRepo := persistence.NewPaymentRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, tokenRepo)
	resetTokenService := adapters.NewPasswordResetTokenService(tokenRepo)
	classifierService := adapters.NewGeminiService(cfg.AI.GeminiAPIKey)
	emailService := email.NewService(emailQueueRepo, cfg.Email.AppBaseURL)

	// Create email worker
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, err
	}
	var sender adapter.EmailSender
	if cfg.Email.ResendAPIKey != "" {
		sender = email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	} else {
		slog.Warn("RESEND_API_KEY not set, emails will be logged instead of sent")
		sender = email.NewMockEmailSender()
	}
	emailWorker := email.NewWorker(emailQueueRepo, sender, renderer, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
	})

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	forgotPasswordUseCase := auth.NewForgotPasswordUseCase(userRepo, resetTokenService, emailService, cfg.Email.AppBaseURL)
	resetPasswordUseCase := auth.NewResetPasswordUseCase(userRepo, passwordService, resetTokenService)

	// Create user use cases
	listUsersUseCase := user.NewListUsersUseCase(userRepo)
	getUserUseCase := user.NewGetUserUseCase(userRepo)
	updateUserUseCase := user.NewUpdateUserUseCase(userRepo, passwordService)
	deleteUserUseCase := user.NewDeleteUserUseCase(userRepo, tokenService)

	// Create project use cases
	createProjectUseCase := project.NewCreateProjectUseCase(projectRepo)
	listProjectsUseCase := project.NewListProjectsUseCase(projectRepo)
	getProjectUseCase := project.NewGetProjectUseCase(projectRepo, workItemRepo, paymentRepo)
	updateProjectUseCase := project.NewUpdateProjectUseCase(projectRepo)
	deleteProjectUseCase := project.NewDeleteProjectUseCase(projectRepo)
	rollupUseCase := project.NewGetRollupUseCase(projectRepo, workItemRepo, paymentRepo)
	managementCostUseCase := project.NewGetManagementCostUseCase(projectRepo)

	// Create work item use cases
	createWorkItemUseCase := workitem.NewCreateWorkItemUseCase(workItemRepo, projectRepo)
	listWorkItemsUseCase := workitem.NewListWorkItemsUseCase(workItemRepo, projectRepo)
	getWorkItemUseCase := workitem.NewGetWorkItemUseCase(workItemRepo, projectRepo, paymentRepo)
	updateWorkItemUseCase := workitem.NewUpdateWorkItemUseCase(workItemRepo, projectRepo)
	deleteWorkItemUseCase := workitem.NewDeleteWorkItemUseCase(workItemRepo, projectRepo)

	// Create payment use cases
	recordPaymentUseCase := payment.NewRecordPaymentUseCase(paymentRepo, workItemRepo, projectRepo)
	listPaymentsUseCase := payment.NewListPaymentsUseCase(paymentRepo, workItemRepo, projectRepo)
	updatePaymentUseCase := payment.NewUpdatePaymentUseCase(paymentRepo, workItemRepo, projectRepo)
	deletePaymentUseCase := payment.NewDeletePaymentUseCase(paymentRepo, workItemRepo, projectRepo)

	// Create classification use cases
	suggestWorkCodeUseCase := classification.NewSuggestWorkCodeUseCase(classifierService)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
		forgotPasswordUseCase,
		resetPasswordUseCase,
	)

	userController := controller.NewUserController(
		listUsersUseCase,
		getUserUseCase,
		updateUserUseCase,
		deleteUserUseCase,
	)

	projectController := controller.NewProjectController(
		createProjectUseCase,
		listProjectsUseCase,
		getProjectUseCase,
		updateProjectUseCase,
		deleteProjectUseCase,
		rollupUseCase,
		managementCostUseCase,
	)

	workItemController := controller.NewWorkItemController(
		createWorkItemUseCase,
		listWorkItemsUseCase,
		getWorkItemUseCase,
		updateWorkItemUseCase,
		deleteWorkItemUseCase,
	)

	paymentController := controller.NewPaymentController(
		recordPaymentUseCase,
		listPaymentsUseCase,
		updatePaymentUseCase,
		deletePaymentUseCase,
	)

	classifierController := controller.NewClassifierController(suggestWorkCodeUseCase)

	// Create middleware
	loginRateLimiter := newLoginRateLimiter(cfg)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		userController,
		projectController,
		workItemController,
		paymentController,
		classifierController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:      cfg,
		DB:          db,
		Router:      r,
		EmailWorker: emailWorker,
	}, nil
}

// newLoginRateLimiter selects the rate limiter backend. A configured Redis
// URL enables the shared store; otherwise attempts are counted in-process.
// Use higher rate limits for E2E/test environments to prevent flaky tests.
func newLoginRateLimiter(cfg *config.Config) *middleware.RateLimiter {
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		return middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	}

	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			slog.Warn("Invalid REDIS_URL, falling back to in-memory rate limiter", "error", err)
			return middleware.NewRateLimiter()
		}
		if cfg.Redis.Password != "" {
			opts.Password = cfg.Redis.Password
		}
		opts.DB = cfg.Redis.DB
		return middleware.NewRedisRateLimiter(redis.NewClient(opts), 5, 1*time.Minute)
	}

	return middleware.NewRateLimiter()
}
