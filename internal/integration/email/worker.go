package email

import (
	"context"
	"log/slog"
	"time"

	"github.com/finance-tracker/budget-api/internal/application/adapter"
	"github.com/finance-tracker/budget-api/internal/domain/entity"
	domainerror "github.com/finance-tracker/budget-api/internal/domain/error"
	"github.com/finance-tracker/budget-api/internal/integration/email/templates"
)

const purgeInterval = time.Hour

// WorkerConfig tunes the delivery loop. Zero fields take their defaults.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
	// Retention is how long sent emails stay in the outbox.
	Retention time.Duration
	// AppBaseURL prefixes the budget links in alert bodies.
	AppBaseURL string
}

func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: 5 * time.Second,
		BatchSize:    10,
		Retention:    30 * 24 * time.Hour,
		AppBaseURL:   "http://localhost:3000",
	}
}

func (c WorkerConfig) withDefaults() WorkerConfig {
	d := DefaultWorkerConfig()
	if c.PollInterval <= 0 {
		c.PollInterval = d.PollInterval
	}
	if c.BatchSize <= 0 {
		c.BatchSize = d.BatchSize
	}
	if c.Retention <= 0 {
		c.Retention = d.Retention
	}
	if c.AppBaseURL == "" {
		c.AppBaseURL = d.AppBaseURL
	}
	return c
}

// Worker drains the alert outbox through an EmailSender.
type Worker struct {
	outbox   adapter.AlertOutbox
	sender   adapter.EmailSender
	renderer *templates.Renderer
	clock    adapter.Clock
	cfg      WorkerConfig
}

func NewWorker(
	outbox adapter.AlertOutbox,
	sender adapter.EmailSender,
	renderer *templates.Renderer,
	clock adapter.Clock,
	cfg WorkerConfig,
) *Worker {
	return &Worker{
		outbox:   outbox,
		sender:   sender,
		renderer: renderer,
		clock:    clock,
		cfg:      cfg.withDefaults(),
	}
}

// Start delivers due emails every poll interval until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) error {
	slog.Info("Email worker started",
		"poll_interval", w.cfg.PollInterval,
		"batch_size", w.cfg.BatchSize,
	)

	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()
	purgeTicker := time.NewTicker(purgeInterval)
	defer purgeTicker.Stop()

	w.ProcessNow(ctx)
	for {
		select {
		case <-ctx.Done():
			slog.Info("Email worker shutting down")
			return nil
		case <-ticker.C:
			w.ProcessNow(ctx)
		case <-purgeTicker.C:
			w.purgeSent(ctx)
		}
	}
}

// ProcessNow runs a single delivery pass.
func (w *Worker) ProcessNow(ctx context.Context) {
	due, err := w.outbox.Due(ctx, w.clock.Now(), w.cfg.BatchSize)
	if err != nil {
		slog.Error("Failed to load due alert emails", "error", err)
		return
	}

	for _, email := range due {
		if ctx.Err() != nil {
			return
		}
		w.deliver(ctx, email)
	}
}

func (w *Worker) deliver(ctx context.Context, email *entity.AlertEmail) {
	logger := slog.With("email_id", email.ID, "template", email.Template, "recipient", email.To)

	claimed, err := w.outbox.Claim(ctx, email.ID)
	if err != nil {
		logger.Error("Failed to claim alert email", "error", err)
		return
	}
	if !claimed {
		return
	}

	body, err := w.render(email)
	if err != nil {
		w.fail(ctx, logger, email, err)
		return
	}

	providerID, err := w.sender.Send(ctx, adapter.OutgoingEmail{
		To:      email.To,
		Name:    email.ToName,
		Subject: email.Subject,
		HTML:    body.HTML,
		Text:    body.Text,
	})
	if err != nil {
		w.fail(ctx, logger, email, err)
		return
	}

	email.Delivered(providerID, w.clock.Now())
	if err := w.outbox.Save(ctx, email); err != nil {
		logger.Error("Failed to record delivery", "error", err)
		return
	}
	logger.Info("Alert email sent", "provider_id", providerID)
}

func (w *Worker) render(email *entity.AlertEmail) (templates.Body, error) {
	switch email.Template {
	case entity.TemplateBudgetLimitExceeded:
		return w.renderer.Render(email.Template, templates.NewLimitExceeded(email, w.cfg.AppBaseURL))
	default:
		return templates.Body{}, domainerror.NewEmailError(domainerror.ErrCodeInvalidTemplate, nil)
	}
}

func (w *Worker) fail(ctx context.Context, logger *slog.Logger, email *entity.AlertEmail, cause error) {
	email.AttemptFailed(cause, domainerror.IsPermanent(cause), w.clock.Now())
	if err := w.outbox.Save(ctx, email); err != nil {
		logger.Error("Failed to record delivery failure", "error", err)
		return
	}

	if email.Status == entity.DeliveryFailed {
		logger.Warn("Alert email gave up", "attempts", email.Attempts, "error", cause)
		return
	}
	logger.Info("Alert email will be retried",
		"attempts", email.Attempts,
		"next_attempt_at", email.NextAttemptAt,
		"error", cause,
	)
}

func (w *Worker) purgeSent(ctx context.Context) {
	deleted, err := w.outbox.PurgeDelivered(ctx, w.clock.Now().Add(-w.cfg.Retention))
	if err != nil {
		slog.Error("Failed to purge sent alert emails", "error", err)
		return
	}
	if deleted > 0 {
		slog.Info("Purged sent alert emails", "count", deleted)
	}
}
