// Package router sets up the HTTP routing for the application.
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/budget-api/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/budget-api/internal/integration/entrypoint/middleware"
)

// MetricsExporter observes requests and serves the collected metrics.
type MetricsExporter interface {
	middleware.RequestObserver
	Handler() http.Handler
}

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine            *gin.Engine
	healthController  *controller.HealthController
	authController    *controller.AuthController
	budgetController  *controller.BudgetController
	expenseController *controller.ExpenseController
	authRateLimiter   *middleware.RateLimiter
	authMiddleware    *middleware.AuthMiddleware
	metrics           MetricsExporter
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	budgetController *controller.BudgetController,
	expenseController *controller.ExpenseController,
	authRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
	metrics MetricsExporter,
) *Router {
	return &Router{
		healthController:  healthController,
		authController:    authController,
		budgetController:  budgetController,
		expenseController: expenseController,
		authRateLimiter:   authRateLimiter,
		authMiddleware:    authMiddleware,
		metrics:           metrics,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string, corsOrigins []string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.New()
	r.engine.Use(gin.Recovery())
	r.engine.Use(requestid.New())
	r.engine.Use(middleware.RequestLogger())
	if r.metrics != nil {
		r.engine.Use(middleware.Metrics(r.metrics))
	}
	if len(corsOrigins) > 0 {
		r.engine.Use(cors.New(cors.Config{
			AllowOrigins:     corsOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{"Location", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.setupOpsRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupOpsRoutes configures health check and metrics endpoints.
func (r *Router) setupOpsRoutes() {
	r.engine.GET("/health", r.healthController.Check)
	if r.metrics != nil {
		r.engine.GET("/metrics", gin.WrapH(r.metrics.Handler()))
	}
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authRateLimiter.Middleware(), r.authController.Register)
			auth.POST("/login", r.authRateLimiter.Middleware(), r.authController.Login)
			auth.POST("/refresh", r.authController.RefreshToken)
			auth.POST("/logout", r.authController.Logout)
		}

		budgets := v1.Group("/budgets")
		budgets.Use(r.authMiddleware.Authenticate())
		{
			budgets.GET("", r.budgetController.List)
			budgets.POST("", r.budgetController.Register)
			budgets.GET("/status/:budgetId", r.budgetController.Status)
			budgets.GET("/:budgetId", r.budgetController.Get)
			budgets.GET("/:budgetId/status", r.budgetController.Status)
			budgets.PUT("/:budgetId", r.budgetController.Update)
			budgets.PATCH("/:budgetId", r.budgetController.Patch)
			budgets.DELETE("/:budgetId", r.budgetController.Delete)

			budgets.GET("/:budgetId/expenses", r.expenseController.List)
			budgets.POST("/:budgetId/expenses", r.expenseController.Record)
			budgets.DELETE("/:budgetId/expenses/:expenseId", r.expenseController.Delete)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
