package usecase

//go:generate mockgen -source=purchase.go -destination=../../tests/mock/usecase/purchase.go -package=usecasemock

import (
	"context"
	"log/slog"
	"sync"

	"purchase-engine/internal/domain/entitlement"
	"purchase-engine/internal/domain/purchase"
	"purchase-engine/internal/pkg/clock"
	"purchase-engine/internal/pkg/config"
	"purchase-engine/internal/pkg/errs"
	"purchase-engine/internal/pkg/metrics"

	"github.com/google/uuid"
)

const sandboxNotice = " (sandbox purchase: store behavior may differ in production)"

type PurchaseResult struct {
	RequestID     uuid.UUID
	Success       bool
	Pending       bool
	TransactionID string
	ProductID     string
	PackageID     uuid.UUID
	Acknowledged  bool
	Reconciled    bool
	Duplicate     bool
	Sandbox       bool
	Failure       *purchase.Failure
}

// Err maps a failed result onto the error taxonomy. It is nil for successful results.
func (r *PurchaseResult) Err() error {
	if r == nil || r.Failure == nil {
		return nil
	}
	switch r.Failure.Kind {
	case purchase.FailureUserCancelled:
		return ErrUserCancelled
	case purchase.FailureNetwork:
		return ErrPlatformNetwork
	default:
		return errs.Wrap(ErrPlatformFailure, r.Failure.Message)
	}
}

type PurchaseCommands interface {
	// Purchase blocks until the store reports the outcome of this request or ctx ends.
	Purchase(ctx context.Context, userID uuid.UUID, productID string) (*PurchaseResult, error)
}

type event struct {
	outcome *purchase.Outcome
	failure *purchase.PlatformError
	err     error
}

type pendingPurchase struct {
	req  purchase.Request
	done chan event
}

type correlatorImpl struct {
	conn         ConnectionManager
	catalog      *Catalog
	store        Store
	ack          Acknowledger
	reconciler   Reconciler
	entitlements Entitlements
	clock        clock.Clock
	production   bool
	logger       *slog.Logger
	metrics      *metrics.Metrics

	mu      sync.Mutex
	pending map[uuid.UUID]*pendingPurchase
}

func NewPurchaseCommands(
	conn ConnectionManager,
	catalog *Catalog,
	store Store,
	events EventSource,
	ack Acknowledger,
	reconciler Reconciler,
	entitlements Entitlements,
	clock clock.Clock,
	app config.AppConfig,
	logger *slog.Logger,
	m *metrics.Metrics,
) PurchaseCommands {
	c := &correlatorImpl{
		conn:         conn,
		catalog:      catalog,
		store:        store,
		ack:          ack,
		reconciler:   reconciler,
		entitlements: entitlements,
		clock:        clock,
		production:   app.IsProduction(),
		logger:       logger,
		metrics:      m,
		pending:      make(map[uuid.UUID]*pendingPurchase),
	}
	events.Subscribe(c)
	conn.OnShutdown(c.cancelAll)
	return c
}

func (c *correlatorImpl) Purchase(ctx context.Context, userID uuid.UUID, productID string) (*PurchaseResult, error) {
	if !c.conn.Available() {
		return nil, ErrConnectionUnavailable
	}

	p, offerToken, err := c.catalog.purchaseParams(productID)
	if err != nil {
		return nil, err
	}

	req := purchase.NewRequest(userID, productID, p.Kind(), c.clock.Now())
	pp, err := c.register(req)
	if err != nil {
		return nil, err
	}
	defer c.unregister(req.ID)

	logger := c.logger.With("request_id", req.ID.String(), "product_id", productID)

	payload := purchase.BuildPayload(c.store.Platform(), p.Kind(), productID, offerToken)
	if err := c.store.RequestPurchase(ctx, payload); err != nil {
		logger.Error("purchase request rejected by store", "error", err)
		return nil, errs.Mark(errs.Wrap(err, "request purchase"), ErrPlatformFailure)
	}
	logger.Info("purchase requested, awaiting outcome", "kind", p.Kind().String())

	select {
	case <-ctx.Done():
		logger.Warn("purchase abandoned before outcome", "error", ctx.Err())
		c.metrics.PurchaseOutcome("abandoned", c.elapsed(req))
		return nil, ctx.Err()
	case ev := <-pp.done:
		switch {
		case ev.err != nil:
			c.metrics.PurchaseOutcome("aborted", c.elapsed(req))
			return nil, ev.err
		case ev.failure != nil:
			return c.fail(req, *ev.failure, logger), nil
		default:
			return c.complete(ctx, req, *ev.outcome, logger)
		}
	}
}

func (c *correlatorImpl) complete(ctx context.Context, req purchase.Request, outcome purchase.Outcome, logger *slog.Logger) (*PurchaseResult, error) {
	logger = logger.With("transaction_id", outcome.TransactionID)
	res := &PurchaseResult{
		RequestID:     req.ID,
		TransactionID: outcome.TransactionID,
		ProductID:     outcome.ProductID,
		Sandbox:       !c.production,
	}
	if res.ProductID == "" {
		res.ProductID = req.ProductID
		outcome.ProductID = req.ProductID
	}

	if outcome.State == purchase.StatePending {
		logger.Info("purchase is pending payment, deferring acknowledgment")
		res.Pending = true
		c.metrics.PurchaseOutcome("pending", c.elapsed(req))
		return res, nil
	}

	res.Acknowledged = c.ack.Acknowledge(ctx, outcome, req.Kind)

	entry, err := c.reconciler.Reconcile(ctx, req.UserID, outcome)
	if err != nil {
		c.metrics.PurchaseOutcome("rejected", c.elapsed(req))
		return nil, err
	}

	res.Success = true
	if entry != nil {
		res.Reconciled = true
		res.PackageID = entry.PackageID
		res.Duplicate = entry.Status == entitlement.StatusDuplicate
		if _, err := c.entitlements.Refresh(ctx, req.UserID); err != nil {
			logger.Warn("entitlement refresh after purchase failed", "error", err)
		}
	}

	logger.Info("purchase completed",
		"acknowledged", res.Acknowledged,
		"reconciled", res.Reconciled)
	c.metrics.PurchaseOutcome("success", c.elapsed(req))
	return res, nil
}

func (c *correlatorImpl) fail(req purchase.Request, perr purchase.PlatformError, logger *slog.Logger) *PurchaseResult {
	f := purchase.Translate(perr)
	if !c.production {
		f.Message += sandboxNotice
	}
	logger.Info("purchase failed",
		"failure", string(f.Kind),
		"platform_code", perr.Code,
		"response_code", perr.ResponseCode)
	c.metrics.PurchaseOutcome(string(f.Kind), c.elapsed(req))

	return &PurchaseResult{
		RequestID: req.ID,
		ProductID: req.ProductID,
		Sandbox:   !c.production,
		Failure:   &f,
	}
}

func (c *correlatorImpl) register(req purchase.Request) (*pendingPurchase, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.pending) > 0 {
		return nil, ErrPurchaseInProgress
	}
	pp := &pendingPurchase{req: req, done: make(chan event, 1)}
	c.pending[req.ID] = pp
	return pp, nil
}

func (c *correlatorImpl) unregister(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, id)
}

// take removes and returns the pending purchase an event belongs to. An event
// without a product id belongs to the single outstanding request.
func (c *correlatorImpl) take(productID string) *pendingPurchase {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, pp := range c.pending {
		if productID == "" || pp.req.ProductID == productID {
			delete(c.pending, id)
			return pp
		}
	}
	return nil
}

func (c *correlatorImpl) OnPurchaseUpdated(outcome purchase.Outcome) {
	pp := c.take(outcome.ProductID)
	if pp == nil {
		c.logger.Warn("purchase update with no pending request",
			"transaction_id", outcome.TransactionID,
			"product_id", outcome.ProductID)
		c.metrics.StrayEvent("purchase_updated")
		return
	}
	pp.done <- event{outcome: &outcome}
}

func (c *correlatorImpl) OnPurchaseError(perr purchase.PlatformError) {
	pp := c.take(perr.ProductID)
	if pp == nil {
		c.logger.Warn("purchase error with no pending request",
			"code", perr.Code,
			"message", perr.Message)
		c.metrics.StrayEvent("purchase_error")
		return
	}
	pp.done <- event{failure: &perr}
}

func (c *correlatorImpl) cancelAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, pp := range c.pending {
		pp.done <- event{err: ErrConnectionUnavailable}
		delete(c.pending, id)
	}
}

func (c *correlatorImpl) elapsed(req purchase.Request) float64 {
	return c.clock.Now().Sub(req.IssuedAt).Seconds()
}
