//go:build unit

package sandbox_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"purchase-engine/internal/domain/product"
	"purchase-engine/internal/domain/purchase"
	"purchase-engine/internal/infra/platform/eventbus"
	"purchase-engine/internal/infra/platform/sandbox"
	"purchase-engine/internal/pkg/clock"
	"purchase-engine/internal/pkg/config"
	"purchase-engine/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type captured struct {
	mu       sync.Mutex
	outcomes []purchase.Outcome
	failures []purchase.PlatformError
}

func (c *captured) OnPurchaseUpdated(o purchase.Outcome) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.outcomes = append(c.outcomes, o)
}

func (c *captured) OnPurchaseError(e purchase.PlatformError) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures = append(c.failures, e)
}

type SandboxStoreTestSuite struct {
	suite.Suite
	ctx    context.Context
	events *captured
	store  *sandbox.Store
}

func (s *SandboxStoreTestSuite) newStore(platform string) *sandbox.Store {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus := eventbus.New(logger)
	s.events = &captured{}
	bus.Subscribe(s.events)

	cfg := config.NewTestConfig().Store
	cfg.Platform = platform
	store, err := sandbox.NewStore(cfg, bus, clock.NewMockClock(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)), logger)
	s.Require().NoError(err)
	s.Require().NoError(store.Connect(s.ctx))
	return store
}

func (s *SandboxStoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.newStore("android")
}

func TestSandboxStoreSuite(t *testing.T) {
	suite.Run(t, new(SandboxStoreTestSuite))
}

func (s *SandboxStoreTestSuite) TestFetchCatalog() {
	s.Run("success: listings filtered by kind with offers on subscriptions", func() {
		subs, err := s.store.FetchCatalog(s.ctx, []string{"premiummonthly", "superlikepack5", "missing"}, product.KindSubscription)
		s.Require().NoError(err)
		s.Require().Len(subs, 1)
		s.Equal("premiummonthly", subs[0].Product.ID())

		tok, ok := subs[0].FirstOfferToken()
		s.True(ok)
		s.Equal("sandbox-offer-premiummonthly", tok)
	})

	s.Run("error: not connected", func() {
		s.Require().NoError(s.store.Disconnect(s.ctx))
		_, err := s.store.FetchCatalog(s.ctx, []string{"premiummonthly"}, product.KindSubscription)
		s.True(errs.Is(err, sandbox.ErrNotConnected))
	})
}

func (s *SandboxStoreTestSuite) TestRequestPurchase() {
	s.Run("success: android purchase emits a normalized outcome", func() {
		payload := purchase.BuildPayload(purchase.PlatformAndroid, product.KindSubscription, "premiummonthly", "sandbox-offer-premiummonthly")
		s.Require().NoError(s.store.RequestPurchase(s.ctx, payload))
		s.store.Wait()

		s.Require().Len(s.events.outcomes, 1)
		o := s.events.outcomes[0]
		s.Equal("premiummonthly", o.ProductID)
		s.NotEmpty(o.TransactionID)
		s.NotEmpty(o.PurchaseToken)
		s.Equal(purchase.SandboxSignature, o.Signature)
		s.True(o.IsSandboxIssued())
		s.False(o.Acknowledged)
		s.True(o.AutoRenewing)
	})

	s.Run("success: queued failure is emitted as an error event", func() {
		s.store.FailNextPurchase(purchase.PlatformError{Code: "E_USER_CANCELLED"})
		payload := purchase.BuildPayload(purchase.PlatformAndroid, product.KindOneTime, "superlikepack5", "")
		s.Require().NoError(s.store.RequestPurchase(s.ctx, payload))
		s.store.Wait()

		s.Require().Len(s.events.failures, 1)
		s.Equal("E_USER_CANCELLED", s.events.failures[0].Code)
	})

	s.Run("success: android subscription without offer is a developer error", func() {
		payload := purchase.BuildPayload(purchase.PlatformAndroid, product.KindSubscription, "premiummonthly", "")
		s.Require().NoError(s.store.RequestPurchase(s.ctx, payload))
		s.store.Wait()

		s.Require().Len(s.events.failures, 2)
		s.Equal("E_DEVELOPER_ERROR", s.events.failures[1].Code)
	})

	s.Run("error: unknown sku", func() {
		err := s.store.RequestPurchase(s.ctx, purchase.Payload{SKUs: []string{"nope"}})
		s.True(errs.Is(err, sandbox.ErrUnknownSKU))
	})
}

func (s *SandboxStoreTestSuite) TestOwnedAndAcknowledge() {
	txID, err := s.store.Grant("superlikepack5")
	s.Require().NoError(err)

	owned, err := s.store.OwnedPurchases(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(owned, 1)
	s.Equal(txID, owned[0].TransactionID)
	s.True(owned[0].Acknowledged)

	s.store.FailAcknowledgments(1)
	ack := purchase.Acknowledgement{PurchaseToken: owned[0].PurchaseToken}
	s.Error(s.store.Acknowledge(s.ctx, ack))
	s.NoError(s.store.Acknowledge(s.ctx, ack))

	err = s.store.Acknowledge(s.ctx, purchase.Acknowledgement{PurchaseToken: "unknown"})
	s.True(errs.Is(err, sandbox.ErrUnknownToken))
}

func TestSandboxIOSShapes(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.NewTestConfig().Store
	cfg.Platform = "ios"

	store, err := sandbox.NewStore(cfg, eventbus.New(logger), clock.NewRealClock(), logger)
	require.NoError(t, err)
	require.NoError(t, store.Connect(context.Background()))
	assert.False(t, store.Platform().RequiresAcknowledgement())

	txID, err := store.Grant("premiummonthly")
	require.NoError(t, err)

	owned, err := store.OwnedPurchases(context.Background())
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, txID, owned[0].TransactionID)
	assert.Equal(t, "premiummonthly", owned[0].ProductID)
	assert.NotEmpty(t, owned[0].RawReceipt)

	store.RefuseConnections(true)
	assert.True(t, errs.Is(store.Connect(context.Background()), sandbox.ErrConnectRefused))
}
