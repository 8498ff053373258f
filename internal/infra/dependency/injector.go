// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/finance-tracker/budget-api/config"
	"github.com/finance-tracker/budget-api/internal/application/adapter"
	"github.com/finance-tracker/budget-api/internal/application/usecase/auth"
	"github.com/finance-tracker/budget-api/internal/application/usecase/budget"
	"github.com/finance-tracker/budget-api/internal/application/usecase/expense"
	"github.com/finance-tracker/budget-api/internal/infra/server/router"
	"github.com/finance-tracker/budget-api/internal/integration/adapters"
	"github.com/finance-tracker/budget-api/internal/integration/email"
	"github.com/finance-tracker/budget-api/internal/integration/email/templates"
	"github.com/finance-tracker/budget-api/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/budget-api/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/budget-api/internal/integration/messaging"
	"github.com/finance-tracker/budget-api/internal/integration/metrics"
	"github.com/finance-tracker/budget-api/internal/integration/persistence"
)

// Externals are the resources the injector does not create itself. Nil
// fields get production defaults.
type Externals struct {
	Clock       adapter.Clock
	Publisher   adapter.EventPublisher
	EmailSender adapter.EmailSender
	Passwords   adapter.PasswordHasher
	Redis       redis.UniversalClient
	Registry    *prometheus.Registry
}

// Injector holds all application dependencies.
type Injector struct {
	Config         *config.Config
	DB             *gorm.DB
	Router         *router.Router
	BudgetService  *budget.Service
	ExpenseService *expense.Service
	EmailWorker    *email.Worker
	// MemoryRateLimits is set when rate limits are kept in process memory.
	MemoryRateLimits *middleware.MemoryRateLimitStore
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, ext Externals) (*Injector, error) {
	if ext.Clock == nil {
		ext.Clock = adapters.NewSystemClock()
	}
	if ext.Publisher == nil {
		ext.Publisher = messaging.NoopPublisher{}
	}
	if ext.EmailSender == nil {
		ext.EmailSender = newEmailSender(cfg.Email)
	}
	if ext.Passwords == nil {
		ext.Passwords = adapters.NewBcryptHasher(adapters.DefaultBcryptCost)
	}
	if ext.Registry == nil {
		ext.Registry = prometheus.NewRegistry()
	}

	appMetrics, err := metrics.New(ext.Registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}

	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	refreshTokens := persistence.NewRefreshTokenStore(db)
	budgetRepo := persistence.NewBudgetRepository(db)
	expenseRepo := persistence.NewExpenseRepository(db)
	alertOutbox := persistence.NewAlertOutbox(db)
	transactor := persistence.NewTransactor(db)

	// Create adapters/services
	tokenIssuer := adapters.NewJWTIssuer(cfg.JWT.Secret, adapters.TokenDurations{
		Access:  cfg.JWT.AccessTokenExpiry,
		Refresh: cfg.JWT.RefreshTokenExpiry,
	}, refreshTokens, ext.Clock)
	alertNotifier := email.NewNotifier(alertOutbox, ext.Clock)

	// Create use cases
	authService := auth.NewService(userRepo, ext.Passwords, tokenIssuer, ext.Clock)

	budgetService := budget.NewService(budgetRepo, expenseRepo, transactor, ext.Publisher, appMetrics, ext.Clock)
	expenseService := expense.NewService(
		budgetRepo,
		expenseRepo,
		userRepo,
		transactor,
		ext.Publisher,
		appMetrics,
		alertNotifier,
		ext.Clock,
	)

	// Create controllers
	checks := []controller.HealthCheck{{
		Name: "database",
		Check: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}}
	if ext.Redis != nil {
		checks = append(checks, controller.HealthCheck{
			Name: "redis",
			Check: func(ctx context.Context) error {
				return ext.Redis.Ping(ctx).Err()
			},
		})
	}
	healthController := controller.NewHealthController(ext.Clock, checks...)

	authController := controller.NewAuthController(authService)
	budgetController := controller.NewBudgetController(budgetService)
	expenseController := controller.NewExpenseController(expenseService)

	// Create middleware
	var (
		rateLimitStore   middleware.RateLimitStore
		memoryRateLimits *middleware.MemoryRateLimitStore
	)
	if ext.Redis != nil {
		rateLimitStore = middleware.NewRedisRateLimitStore(ext.Redis)
	} else {
		memoryRateLimits = middleware.NewMemoryRateLimitStore()
		rateLimitStore = memoryRateLimits
	}
	authRateLimiter := middleware.NewRateLimiter(rateLimitStore, middleware.RateLimitConfig{
		Enabled:     cfg.RateLimit.Enabled,
		MaxAttempts: cfg.RateLimit.MaxAttempts,
		Window:      cfg.RateLimit.Window,
	})
	authMiddleware := middleware.NewAuthMiddleware(tokenIssuer)

	r := router.NewRouter(
		healthController,
		authController,
		budgetController,
		expenseController,
		authRateLimiter,
		authMiddleware,
		appMetrics,
	)

	emailWorker := email.NewWorker(alertOutbox, ext.EmailSender, renderer, ext.Clock, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
		Retention:    cfg.Email.Retention,
		AppBaseURL:   cfg.Email.AppBaseURL,
	})

	return &Injector{
		Config:           cfg,
		DB:               db,
		Router:           r,
		BudgetService:    budgetService,
		ExpenseService:   expenseService,
		EmailWorker:      emailWorker,
		MemoryRateLimits: memoryRateLimits,
	}, nil
}

func newEmailSender(cfg config.EmailConfig) adapter.EmailSender {
	if cfg.ResendAPIKey == "" {
		slog.Warn("RESEND_API_KEY not set, alert emails will only be logged")
		return email.NewLogSender()
	}
	return email.NewResendClient(cfg.ResendAPIKey, cfg.FromName, cfg.FromEmail)
}

// OpenRedis connects to Redis when it is enabled. It returns nil when Redis
// is disabled.
func OpenRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	slog.Info("Redis connection established")
	return client, nil
}

// OpenPublisher connects to the event broker. Without a broker URL events
// are dropped. The returned close function is never nil.
func OpenPublisher(cfg config.AMQPConfig) (adapter.EventPublisher, func() error, error) {
	if cfg.URL == "" {
		slog.Info("AMQP_URL not set, budget events will not be published")
		return messaging.NoopPublisher{}, func() error { return nil }, nil
	}
	publisher, err := messaging.NewAMQPPublisher(cfg.URL, cfg.Exchange)
	if err != nil {
		return nil, nil, err
	}
	return publisher, publisher.Close, nil
}
