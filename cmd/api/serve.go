package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/finance-tracker/budget-api/internal/infra/dependency"
)

const rateLimitCleanupInterval = 5 * time.Minute

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the email worker",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	slog.Info("Starting budget API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	redisClient, err := dependency.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	ext := dependency.Externals{}
	if redisClient != nil {
		ext.Redis = redisClient
		defer redisClient.Close()
	}

	publisher, closePublisher, err := dependency.OpenPublisher(cfg.AMQP)
	if err != nil {
		return err
	}
	ext.Publisher = publisher
	defer func() {
		if err := closePublisher(); err != nil {
			slog.Error("Failed to close event publisher", "error", err)
		}
	}()

	injector, err := dependency.NewInjector(cfg, database.DB(), ext)
	if err != nil {
		return err
	}
	engine := injector.Router.Setup(cfg.Server.Environment, cfg.Server.CORSOrigins)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if cfg.Email.WorkerEnabled {
		g.Go(func() error {
			return injector.EmailWorker.Start(gctx)
		})
	}

	if injector.MemoryRateLimits != nil {
		g.Go(func() error {
			return injector.MemoryRateLimits.RunCleanup(gctx, rateLimitCleanupInterval)
		})
	}

	if err := g.Wait(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		return err
	}

	slog.Info("Server exited properly")
	return nil
}
