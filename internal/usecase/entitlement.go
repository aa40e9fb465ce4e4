package usecase

//go:generate mockgen -source=entitlement.go -destination=../../tests/mock/usecase/entitlement.go -package=usecasemock

import (
	"context"
	"log/slog"
	"sync"

	"purchase-engine/internal/domain/entitlement"
	"purchase-engine/internal/pkg/clock"
	"purchase-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

type Entitlements interface {
	// Refresh pulls the user's subscription and credits from the ledger and caches them.
	Refresh(ctx context.Context, userID uuid.UUID) (*entitlement.Snapshot, error)
	Current(userID uuid.UUID) (*entitlement.Snapshot, bool)
}

type entitlementsImpl struct {
	ledger Ledger
	clock  clock.Clock
	logger *slog.Logger

	mu        sync.RWMutex
	snapshots map[uuid.UUID]entitlement.Snapshot
}

func NewEntitlements(ledger Ledger, clock clock.Clock, logger *slog.Logger) Entitlements {
	return &entitlementsImpl{
		ledger:    ledger,
		clock:     clock,
		logger:    logger,
		snapshots: make(map[uuid.UUID]entitlement.Snapshot),
	}
}

func (e *entitlementsImpl) Refresh(ctx context.Context, userID uuid.UUID) (*entitlement.Snapshot, error) {
	sub, err := e.ledger.GetActiveSubscription(ctx, userID)
	if err != nil {
		return nil, errs.Wrap(err, "get active subscription")
	}
	credits, err := e.ledger.GetCredits(ctx, userID)
	if err != nil {
		return nil, errs.Wrap(err, "get credits")
	}

	snap := entitlement.Snapshot{
		UserID:       userID,
		Subscription: sub,
		Credits:      credits,
		RefreshedAt:  e.clock.Now(),
	}

	e.mu.Lock()
	e.snapshots[userID] = snap
	e.mu.Unlock()

	e.logger.Debug("entitlements refreshed",
		"user_id", userID.String(),
		"premium", snap.Premium(snap.RefreshedAt),
		"credit_types", len(credits))
	return &snap, nil
}

func (e *entitlementsImpl) Current(userID uuid.UUID) (*entitlement.Snapshot, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	snap, ok := e.snapshots[userID]
	if !ok {
		return nil, false
	}
	return &snap, true
}
