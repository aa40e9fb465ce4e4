// Package sandbox is an in-memory store used by development builds. It emits
// platform-shaped events on the bus, so purchases travel the same decode path as
// events pushed by a native bridge.
package sandbox

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"purchase-engine/internal/domain/product"
	"purchase-engine/internal/domain/purchase"
	"purchase-engine/internal/infra/platform/codec"
	"purchase-engine/internal/infra/platform/eventbus"
	"purchase-engine/internal/pkg/clock"
	"purchase-engine/internal/pkg/config"
	"purchase-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrNotConnected   = errs.New("sandbox store not connected")
	ErrUnknownSKU     = errs.New("sandbox store has no such sku")
	ErrUnknownToken   = errs.New("sandbox store has no purchase for token")
	ErrConnectRefused = errs.New("sandbox store refused connection")
	ErrProductionUse  = errs.New("sandbox store cannot serve a production build")
)

type ownedPurchase struct {
	transactionID string
	productID     string
	token         string
	purchasedAt   time.Time
	subscription  bool
	acknowledged  bool
}

type Store struct {
	platform purchase.Platform
	bus      *eventbus.Bus
	clock    clock.Clock
	delay    time.Duration
	logger   *slog.Logger

	mu          sync.Mutex
	connected   bool
	refuse      bool
	listings    map[string]product.Listing
	owned       []*ownedPurchase
	failures    []purchase.PlatformError
	ackFailures int
	wg          sync.WaitGroup
}

func NewStore(cfg config.StoreConfig, bus *eventbus.Bus, clock clock.Clock, logger *slog.Logger) (*Store, error) {
	platform, err := purchase.NewPlatform(cfg.Platform)
	if err != nil {
		return nil, err
	}

	s := &Store{
		platform: platform,
		bus:      bus,
		clock:    clock,
		logger:   logger,
		listings: make(map[string]product.Listing),
	}
	for _, sku := range cfg.SubscriptionSKUs {
		if err := s.AddListing(sku, product.KindSubscription, "9.99", "sandbox-offer-"+sku); err != nil {
			return nil, err
		}
	}
	for _, sku := range cfg.OneTimeSKUs {
		if err := s.AddListing(sku, product.KindOneTime, "1.99", ""); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// AddListing puts a product on sale. An empty offer token leaves subscriptions without offers.
func (s *Store) AddListing(sku string, kind product.Kind, price, offerToken string) error {
	p, err := product.NewProduct(product.Params{
		ID:             sku,
		Kind:           kind,
		Price:          price,
		LocalizedPrice: "$" + price,
		Currency:       "USD",
		Title:          sku + " (sandbox)",
		Description:    "Sandbox listing for " + sku,
	})
	if err != nil {
		return err
	}

	l := product.Listing{Product: p}
	if offerToken != "" {
		l.OfferTokens = []string{offerToken}
	}

	s.mu.Lock()
	s.listings[sku] = l
	s.mu.Unlock()
	return nil
}

// RefuseConnections makes the next Connect calls fail until called with false.
func (s *Store) RefuseConnections(refuse bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refuse = refuse
}

// FailNextPurchase queues an error event for the next purchase request.
func (s *Store) FailNextPurchase(perr purchase.PlatformError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, perr)
}

// FailAcknowledgments makes the next n acknowledgments fail.
func (s *Store) FailAcknowledgments(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ackFailures = n
}

// SetDelay postpones every emitted event by d.
func (s *Store) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// Grant records an owned purchase without emitting an event, as if bought on another device.
func (s *Store) Grant(sku string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.listings[sku]
	if !ok {
		return "", errs.Wrapf(ErrUnknownSKU, "sku %q", sku)
	}
	op := s.newOwnedLocked(sku, l.Product.IsSubscription())
	op.acknowledged = true
	return op.transactionID, nil
}

func (s *Store) Platform() purchase.Platform {
	return s.platform
}

func (s *Store) Connect(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.refuse {
		return ErrConnectRefused
	}
	s.connected = true
	return nil
}

func (s *Store) Disconnect(_ context.Context) error {
	s.mu.Lock()
	s.connected = false
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}

func (s *Store) FetchCatalog(_ context.Context, skus []string, kind product.Kind) ([]product.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return nil, ErrNotConnected
	}

	out := make([]product.Listing, 0, len(skus))
	for _, sku := range skus {
		l, ok := s.listings[sku]
		if !ok || l.Product.Kind() != kind {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (s *Store) RequestPurchase(_ context.Context, payload purchase.Payload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return ErrNotConnected
	}
	sku := payload.ProductID()
	l, ok := s.listings[sku]
	if !ok {
		return errs.Wrapf(ErrUnknownSKU, "sku %q", sku)
	}

	var raw []byte
	switch {
	case len(s.failures) > 0:
		perr := s.failures[0]
		s.failures = s.failures[1:]
		raw = errorEvent(perr)
	case s.platform.RequiresOfferToken() && l.Product.IsSubscription() && payload.OfferToken() == "":
		raw = errorEvent(purchase.PlatformError{Code: "E_DEVELOPER_ERROR", ResponseCode: 5, Message: "subscription offer token missing"})
	default:
		op := s.newOwnedLocked(sku, l.Product.IsSubscription())
		raw = s.updatedEvent(op)
	}

	delay := s.delay
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if delay > 0 {
			<-s.clock.After(delay)
		}
		if err := s.bus.Dispatch(raw); err != nil {
			s.logger.Error("sandbox event dispatch failed", "error", err)
		}
	}()
	return nil
}

func (s *Store) OwnedPurchases(_ context.Context) ([]purchase.Outcome, error) {
	s.mu.Lock()
	if !s.connected {
		s.mu.Unlock()
		return nil, ErrNotConnected
	}
	items := make([]map[string]any, 0, len(s.owned))
	for _, op := range s.owned {
		items = append(items, s.fields(op))
	}
	s.mu.Unlock()

	raw, err := json.Marshal(items)
	if err != nil {
		return nil, errs.Wrap(err, "encode owned purchases")
	}
	outcomes, skipped, err := codec.DecodeOwned(raw)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		s.logger.Warn("owned purchases without token skipped", "count", skipped)
	}
	return outcomes, nil
}

func (s *Store) Acknowledge(_ context.Context, ack purchase.Acknowledgement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ackFailures > 0 {
		s.ackFailures--
		return errs.New("sandbox acknowledgment failure")
	}
	for _, op := range s.owned {
		if op.token == ack.PurchaseToken {
			op.acknowledged = true
			return nil
		}
	}
	return errs.Wrapf(ErrUnknownToken, "token %q", ack.PurchaseToken)
}

// Wait blocks until every emitted event has been delivered.
func (s *Store) Wait() {
	s.wg.Wait()
}

func (s *Store) newOwnedLocked(sku string, subscription bool) *ownedPurchase {
	id := uuid.NewString()
	op := &ownedPurchase{
		transactionID: purchase.SandboxTransactionPrefix + id[:8],
		productID:     sku,
		token:         "sandbox-token-" + id,
		purchasedAt:   s.clock.Now(),
		subscription:  subscription,
	}
	s.owned = append(s.owned, op)
	return op
}

func (s *Store) updatedEvent(op *ownedPurchase) []byte {
	return envelope(codec.EventPurchaseUpdated, s.fields(op))
}

// fields renders an owned purchase with the field names of the store being imitated.
func (s *Store) fields(op *ownedPurchase) map[string]any {
	ms := op.purchasedAt.UnixMilli()
	if s.platform == purchase.PlatformIOS {
		return map[string]any{
			"transactionIdentifier": op.transactionID,
			"productIdentifier":     op.productID,
			"transactionReceipt":    op.token,
			"transactionDate":       strconv.FormatInt(ms, 10),
			"transactionStateIOS":   "purchased",
		}
	}
	original, _ := json.Marshal(map[string]any{
		"orderId":       op.transactionID,
		"productId":     op.productID,
		"purchaseToken": op.token,
		"purchaseTime":  ms,
		"purchaseState": 0,
		"acknowledged":  op.acknowledged,
	})
	return map[string]any{
		"transactionId":         op.transactionID,
		"productId":             op.productID,
		"purchaseToken":         op.token,
		"transactionDate":       ms,
		"purchaseStateAndroid":  1,
		"isAcknowledgedAndroid": op.acknowledged,
		"autoRenewingAndroid":   op.subscription,
		"signatureAndroid":      purchase.SandboxSignature,
		"dataAndroid":           string(original),
	}
}

func errorEvent(perr purchase.PlatformError) []byte {
	payload := map[string]any{
		"code":    perr.Code,
		"message": perr.Message,
	}
	if perr.ResponseCode != 0 {
		payload["responseCode"] = perr.ResponseCode
	}
	if perr.ProductID != "" {
		payload["productId"] = perr.ProductID
	}
	return envelope(codec.EventPurchaseError, payload)
}

func envelope(t codec.EventType, payload map[string]any) []byte {
	raw, err := json.Marshal(map[string]any{"type": t, "payload": payload})
	if err != nil {
		panic(fmt.Sprintf("sandbox: encode event: %v", err))
	}
	return raw
}
