package usecase

//go:generate mockgen -source=restore.go -destination=../../tests/mock/usecase/restore.go -package=usecasemock

import (
	"context"
	"log/slog"
	"time"

	"purchase-engine/internal/domain/entitlement"
	"purchase-engine/internal/domain/product"
	"purchase-engine/internal/domain/purchase"
	"purchase-engine/internal/pkg/config"
	"purchase-engine/internal/pkg/errs"
	"purchase-engine/internal/pkg/metrics"

	"github.com/google/uuid"
)

type RestoreFailure struct {
	TransactionID string
	ProductID     string
	Err           error
}

func (f RestoreFailure) TimedOut() bool {
	return errs.Is(f.Err, ErrRestoreItemTimeout)
}

type RestoreResult struct {
	// Restored counts unique owned purchases matched to a package.
	Restored   int
	Reconciled int
	Duplicates int
	Unmatched  int
	Pending    int
	Failures   []RestoreFailure
	Snapshot   *entitlement.Snapshot
}

type RestoreCommands interface {
	Restore(ctx context.Context, userID uuid.UUID) (*RestoreResult, error)
}

type restoreImpl struct {
	conn         ConnectionManager
	store        Store
	ledger       Ledger
	ack          Acknowledger
	reconciler   Reconciler
	entitlements Entitlements
	itemTimeout  time.Duration
	logger       *slog.Logger
	metrics      *metrics.Metrics
}

func NewRestoreCommands(
	conn ConnectionManager,
	store Store,
	ledger Ledger,
	ack Acknowledger,
	reconciler Reconciler,
	entitlements Entitlements,
	cfg config.RestoreConfig,
	logger *slog.Logger,
	m *metrics.Metrics,
) RestoreCommands {
	return &restoreImpl{
		conn:         conn,
		store:        store,
		ledger:       ledger,
		ack:          ack,
		reconciler:   reconciler,
		entitlements: entitlements,
		itemTimeout:  cfg.ItemTimeout,
		logger:       logger,
		metrics:      m,
	}
}

func (r *restoreImpl) Restore(ctx context.Context, userID uuid.UUID) (*RestoreResult, error) {
	if !r.conn.Available() {
		return nil, ErrConnectionUnavailable
	}

	owned, err := r.store.OwnedPurchases(ctx)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "enumerate owned purchases"), ErrPlatformFailure)
	}

	idx, err := loadPackageIndex(ctx, r.ledger, r.logger)
	if err != nil {
		return nil, errs.Mark(err, ErrBackendValidationFailed)
	}

	logger := r.logger.With("user_id", userID.String())
	res := &RestoreResult{}
	seen := make(map[string]struct{}, len(owned))

	for _, o := range owned {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		key := o.TransactionID
		if key == "" {
			key = o.PurchaseToken
		}
		if _, dup := seen[key]; dup {
			res.Duplicates++
			r.metrics.RestoreItem("duplicate")
			continue
		}
		seen[key] = struct{}{}

		if o.State == purchase.StatePending {
			res.Pending++
			r.metrics.RestoreItem("pending")
			continue
		}

		pkg, ok := idx.Lookup(o.ProductID)
		if !ok {
			logger.Warn("skipping restored purchase with no matching package",
				"transaction_id", o.TransactionID,
				"product_id", o.ProductID,
				"error", ErrRestoreItemUnmatched)
			res.Unmatched++
			r.metrics.RestoreItem("unmatched")
			continue
		}
		res.Restored++

		if !o.Acknowledged {
			kind := product.KindOneTime
			if pkg.IsSubscription() {
				kind = product.KindSubscription
			}
			r.ack.Acknowledge(ctx, o, kind)
		}

		if err := r.reconcileItem(ctx, userID, pkg, o); err != nil {
			logger.Warn("restored purchase not reconciled",
				"transaction_id", o.TransactionID,
				"product_id", o.ProductID,
				"error", err)
			res.Failures = append(res.Failures, RestoreFailure{
				TransactionID: o.TransactionID,
				ProductID:     o.ProductID,
				Err:           err,
			})
			r.metrics.RestoreItem("failed")
			continue
		}
		res.Reconciled++
		r.metrics.RestoreItem("reconciled")
	}

	snap, err := r.entitlements.Refresh(ctx, userID)
	if err != nil {
		logger.Warn("entitlement refresh after restore failed", "error", err)
	}
	res.Snapshot = snap

	logger.Info("restore finished",
		"restored", res.Restored,
		"reconciled", res.Reconciled,
		"duplicates", res.Duplicates,
		"unmatched", res.Unmatched,
		"failures", len(res.Failures))
	return res, nil
}

// reconcileItem bounds one backend call by the item timeout. The caller is released
// when the deadline passes even if the ledger has not returned yet.
func (r *restoreImpl) reconcileItem(ctx context.Context, userID uuid.UUID, pkg entitlement.Package, o purchase.Outcome) error {
	itemCtx, cancel := context.WithTimeout(ctx, r.itemTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := r.reconciler.ReportToBackend(itemCtx, userID, pkg, o)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil && errs.Is(itemCtx.Err(), context.DeadlineExceeded) {
			return errs.Mark(err, ErrRestoreItemTimeout)
		}
		return err
	case <-itemCtx.Done():
		if errs.Is(itemCtx.Err(), context.DeadlineExceeded) {
			return errs.Mark(errs.Wrapf(itemCtx.Err(), "transaction %s after %s", o.TransactionID, r.itemTimeout), ErrRestoreItemTimeout)
		}
		return itemCtx.Err()
	}
}
