// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yosan-kanri/backend/internal/integration/entrypoint/controller"
	"github.com/yosan-kanri/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine               *gin.Engine
	healthController     *controller.HealthController
	authController       *controller.AuthController
	userController       *controller.UserController
	projectController    *controller.ProjectController
	workItemController   *controller.WorkItemController
	paymentController    *controller.PaymentController
	classifierController *controller.ClassifierController
	loginRateLimiter     *middleware.RateLimiter
	authMiddleware       *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	userController *controller.UserController,
	projectController *controller.ProjectController,
	workItemController *controller.WorkItemController,
	paymentController *controller.PaymentController,
	classifierController *controller.ClassifierController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:     healthController,
		authController:       authController,
		userController:       userController,
		projectController:    projectController,
		workItemController:   workItemController,
		paymentController:    paymentController,
		classifierController: classifierController,
		loginRateLimiter:     loginRateLimiter,
		authMiddleware:       authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Auth routes (only setup if auth controller is available)
		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/register", r.authController.Register)
				auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
				auth.POST("/refresh", r.authController.RefreshToken)
				auth.POST("/logout", r.authController.Logout)
				auth.POST("/forgot-password", r.authController.ForgotPassword)
				auth.POST("/reset-password", r.authController.ResetPassword)
			}
		}

		// User management routes (require authentication)
		if r.userController != nil && r.authMiddleware != nil {
			users := v1.Group("/users")
			users.Use(r.authMiddleware.Authenticate())
			{
				users.GET("", r.userController.List)
				users.GET("/:id", r.userController.Get)
				users.PUT("/:id", r.userController.Update)
				users.DELETE("/:id", r.userController.Delete)
			}
		}

		// Project routes (require authentication)
		if r.projectController != nil && r.authMiddleware != nil {
			projects := v1.Group("/projects")
			projects.Use(r.authMiddleware.Authenticate())
			{
				projects.GET("", r.projectController.List)
				projects.POST("", r.projectController.Create)
				projects.GET("/:id", r.projectController.Get)
				projects.PUT("/:id", r.projectController.Update)
				projects.DELETE("/:id", r.projectController.Delete)
				projects.GET("/:id/rollup", r.projectController.Rollup)
				projects.GET("/:id/management-cost", r.projectController.ManagementCost)

				// Work item collection routes (nested under projects)
				if r.workItemController != nil {
					projects.GET("/:id/work-items", r.workItemController.List)
					projects.POST("/:id/work-items", r.workItemController.Create)
				}
			}
		}

		// Work item routes (require authentication)
		if r.workItemController != nil && r.authMiddleware != nil {
			workItems := v1.Group("/work-items")
			workItems.Use(r.authMiddleware.Authenticate())
			{
				workItems.GET("/:id", r.workItemController.Get)
				workItems.PUT("/:id", r.workItemController.Update)
				workItems.DELETE("/:id", r.workItemController.Delete)

				// Payment collection routes (nested under work items)
				if r.paymentController != nil {
					workItems.GET("/:id/payments", r.paymentController.List)
					workItems.POST("/:id/payments", r.paymentController.Record)
				}
			}

			// Construction-type catalog (require authentication)
			catalog := v1.Group("/construction-types")
			catalog.Use(r.authMiddleware.Authenticate())
			{
				catalog.GET("", r.workItemController.ConstructionTypes)
			}
		}

		// Payment routes (require authentication)
		if r.paymentController != nil && r.authMiddleware != nil {
			payments := v1.Group("/payments")
			payments.Use(r.authMiddleware.Authenticate())
			{
				payments.PUT("/:id", r.paymentController.Update)
				payments.DELETE("/:id", r.paymentController.Delete)
			}
		}

		// Work-code classifier routes (require authentication)
		if r.classifierController != nil && r.authMiddleware != nil {
			classifier := v1.Group("/classifier")
			classifier.Use(r.authMiddleware.Authenticate())
			{
				classifier.POST("/work-code", r.classifierController.Suggest)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
