package usecase

//go:generate mockgen -source=acknowledge.go -destination=../../tests/mock/usecase/acknowledge.go -package=usecasemock

import (
	"context"
	"log/slog"
	"time"

	"purchase-engine/internal/domain/product"
	"purchase-engine/internal/domain/purchase"
	"purchase-engine/internal/pkg/clock"
	"purchase-engine/internal/pkg/config"
	"purchase-engine/internal/pkg/metrics"
)

type Acknowledger interface {
	// Acknowledge reports whether the purchase is acknowledged. It never returns an error.
	Acknowledge(ctx context.Context, outcome purchase.Outcome, kind product.Kind) bool
}

type acknowledgerImpl struct {
	port        AckPort
	platform    purchase.Platform
	clock       clock.Clock
	maxAttempts int
	retryDelay  time.Duration
	logger      *slog.Logger
	metrics     *metrics.Metrics
}

func NewAcknowledger(
	port AckPort,
	store Store,
	clock clock.Clock,
	cfg config.AckConfig,
	logger *slog.Logger,
	m *metrics.Metrics,
) Acknowledger {
	attempts := min(max(cfg.MaxAttempts, 1), config.MaxAckAttempts)
	return &acknowledgerImpl{
		port:        port,
		platform:    store.Platform(),
		clock:       clock,
		maxAttempts: attempts,
		retryDelay:  cfg.RetryDelay,
		logger:      logger,
		metrics:     m,
	}
}

func (a *acknowledgerImpl) Acknowledge(ctx context.Context, outcome purchase.Outcome, kind product.Kind) bool {
	if !a.platform.RequiresAcknowledgement() || outcome.Acknowledged {
		return true
	}
	if outcome.PurchaseToken == "" {
		a.logger.Warn("cannot acknowledge purchase without a token",
			"transaction_id", outcome.TransactionID,
			"error", ErrAcknowledgmentFailed)
		a.metrics.AckResult(false)
		return false
	}

	ack := purchase.Acknowledgement{
		PurchaseToken: outcome.PurchaseToken,
		ProductID:     outcome.ProductID,
		Kind:          kind,
	}

	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		a.metrics.AckAttempt()
		err := a.port.Acknowledge(ctx, ack)
		if err == nil {
			if attempt > 1 {
				a.logger.Info("acknowledgment succeeded after retry",
					"transaction_id", outcome.TransactionID,
					"attempt", attempt)
			}
			a.metrics.AckResult(true)
			return true
		}

		a.logger.Warn("acknowledgment attempt failed",
			"transaction_id", outcome.TransactionID,
			"attempt", attempt,
			"max_attempts", a.maxAttempts,
			"error", err)

		if attempt == a.maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			a.logger.Warn("acknowledgment retry aborted",
				"transaction_id", outcome.TransactionID,
				"error", ctx.Err())
			a.metrics.AckResult(false)
			return false
		case <-a.clock.After(a.retryDelay):
		}
	}

	a.logger.Error("acknowledgment failed, store may refund the purchase",
		"transaction_id", outcome.TransactionID,
		"product_id", outcome.ProductID,
		"attempts", a.maxAttempts,
		"error", ErrAcknowledgmentFailed)
	a.metrics.AckResult(false)
	return false
}
