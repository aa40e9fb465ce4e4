package usecase

//go:generate mockgen -source=reconcile.go -destination=../../tests/mock/usecase/reconcile.go -package=usecasemock

import (
	"context"
	"log/slog"

	"purchase-engine/internal/domain/entitlement"
	"purchase-engine/internal/domain/purchase"
	"purchase-engine/internal/pkg/clock"
	"purchase-engine/internal/pkg/config"
	"purchase-engine/internal/pkg/errs"
	"purchase-engine/internal/pkg/metrics"

	"github.com/google/uuid"
)

type Reconciler interface {
	// Validate runs the local checks. Development builds always pass.
	Validate(outcome purchase.Outcome) error
	// ReportToBackend records the purchase in the ledger. It never grants anything locally.
	ReportToBackend(ctx context.Context, userID uuid.UUID, pkg entitlement.Package, outcome purchase.Outcome) (*entitlement.ReconciliationEntry, error)
	// Reconcile validates, resolves the package and reports it. Backend failures are fatal
	// in production only; in development they are logged and a nil entry is returned.
	Reconcile(ctx context.Context, userID uuid.UUID, outcome purchase.Outcome) (*entitlement.ReconciliationEntry, error)
}

type reconcilerImpl struct {
	ledger     Ledger
	platform   purchase.Platform
	production bool
	clock      clock.Clock
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

func NewReconciler(
	ledger Ledger,
	store Store,
	app config.AppConfig,
	clock clock.Clock,
	logger *slog.Logger,
	m *metrics.Metrics,
) Reconciler {
	return &reconcilerImpl{
		ledger:     ledger,
		platform:   store.Platform(),
		production: app.IsProduction(),
		clock:      clock,
		logger:     logger,
		metrics:    m,
	}
}

func (r *reconcilerImpl) Validate(outcome purchase.Outcome) error {
	if !r.production {
		return nil
	}
	if outcome.PurchaseToken == "" {
		return errs.Wrap(ErrLocalValidationFailed, "missing purchase token")
	}
	if outcome.Signature == "" && outcome.RawReceipt == "" {
		return errs.Wrap(ErrLocalValidationFailed, "missing signature and receipt")
	}
	if outcome.IsSandboxIssued() {
		return errs.Wrapf(ErrLocalValidationFailed, "sandbox transaction %s", outcome.TransactionID)
	}
	return nil
}

func (r *reconcilerImpl) ReportToBackend(
	ctx context.Context,
	userID uuid.UUID,
	pkg entitlement.Package,
	outcome purchase.Outcome,
) (*entitlement.ReconciliationEntry, error) {
	purchasedAt := outcome.PurchaseTime
	if purchasedAt.IsZero() {
		purchasedAt = r.clock.Now()
	}

	rec := entitlement.PurchaseRecord{
		UserID:        userID,
		PackageID:     pkg.ID,
		TransactionID: outcome.TransactionID,
		PurchaseToken: outcome.PurchaseToken,
		ProductID:     outcome.ProductID,
		Platform:      r.platform.String(),
		PurchasedAt:   purchasedAt,
		Metadata:      metadataOf(outcome),
	}

	entry, err := r.ledger.RecordPurchase(ctx, rec)
	if err != nil {
		r.metrics.Reconciliation("failure")
		return nil, errs.Mark(errs.Wrapf(err, "record purchase %s", outcome.TransactionID), ErrBackendValidationFailed)
	}
	if entry == nil {
		entry = &entitlement.ReconciliationEntry{
			TransactionID: rec.TransactionID,
			UserID:        userID,
			ProductID:     rec.ProductID,
			PackageID:     pkg.ID,
			Status:        entitlement.StatusGranted,
			RecordedAt:    r.clock.Now(),
		}
	}

	if entry.Duplicate() {
		r.metrics.Reconciliation("duplicate")
		r.logger.Info("purchase already recorded",
			"transaction_id", outcome.TransactionID,
			"package_id", pkg.ID.String())
	} else {
		r.metrics.Reconciliation("success")
	}
	return entry, nil
}

func (r *reconcilerImpl) Reconcile(ctx context.Context, userID uuid.UUID, outcome purchase.Outcome) (*entitlement.ReconciliationEntry, error) {
	if err := r.Validate(outcome); err != nil {
		return nil, err
	}

	idx, err := loadPackageIndex(ctx, r.ledger, r.logger)
	if err != nil {
		return r.backendFailure(outcome, errs.Mark(err, ErrBackendValidationFailed))
	}

	pkg, ok := idx.Lookup(outcome.ProductID)
	if !ok {
		err := errs.Mark(errs.Wrapf(ErrPackageUnresolved, "product %q", outcome.ProductID), ErrBackendValidationFailed)
		return r.backendFailure(outcome, err)
	}

	entry, err := r.ReportToBackend(ctx, userID, pkg, outcome)
	if err != nil {
		return r.backendFailure(outcome, err)
	}
	return entry, nil
}

func (r *reconcilerImpl) backendFailure(outcome purchase.Outcome, err error) (*entitlement.ReconciliationEntry, error) {
	if r.production {
		r.logger.Error("backend reconciliation failed",
			"transaction_id", outcome.TransactionID,
			"product_id", outcome.ProductID,
			"error", err)
		return nil, err
	}
	r.logger.Warn("backend reconciliation failed, continuing in development",
		"transaction_id", outcome.TransactionID,
		"product_id", outcome.ProductID,
		"error", err)
	return nil, nil
}

func metadataOf(o purchase.Outcome) map[string]string {
	md := map[string]string{}
	if o.OrderID != "" {
		md["order_id"] = o.OrderID
	}
	if o.State != "" {
		md["purchase_state"] = string(o.State)
	}
	if o.AutoRenewing {
		md["auto_renewing"] = "true"
	}
	return md
}

func loadPackageIndex(ctx context.Context, ledger Ledger, logger *slog.Logger) (*entitlement.Index, error) {
	packages, err := ledger.ListPackages(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "list packages")
	}
	idx := entitlement.NewIndex(packages)
	for _, id := range idx.Collisions() {
		logger.Warn("several packages resolve to one store product", "product_id", id)
	}
	return idx, nil
}
