//go:build unit

package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"purchase-engine/internal/domain/entitlement"
	"purchase-engine/internal/domain/product"
	"purchase-engine/internal/domain/purchase"
	"purchase-engine/internal/pkg/clock"
	"purchase-engine/internal/pkg/config"
	"purchase-engine/internal/pkg/errs"
	"purchase-engine/internal/pkg/metrics"
	"purchase-engine/internal/usecase"
	"purchase-engine/tests/common/builder"
	usecasemock "purchase-engine/tests/mock/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PurchaseCommandsTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	store        *usecasemock.MockStore
	conn         *usecasemock.MockConnectionManager
	events       *usecasemock.MockEventSource
	ack          *usecasemock.MockAcknowledger
	reconciler   *usecasemock.MockReconciler
	entitlements *usecasemock.MockEntitlements

	listener     usecase.EventListener
	shutdownHook func()
	userID       uuid.UUID
	packageID    uuid.UUID
}

func TestPurchaseCommandsSuite(t *testing.T) {
	suite.Run(t, new(PurchaseCommandsTestSuite))
}

func (s *PurchaseCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = usecasemock.NewMockStore(s.ctrl)
	s.conn = usecasemock.NewMockConnectionManager(s.ctrl)
	s.events = usecasemock.NewMockEventSource(s.ctrl)
	s.ack = usecasemock.NewMockAcknowledger(s.ctrl)
	s.reconciler = usecasemock.NewMockReconciler(s.ctrl)
	s.entitlements = usecasemock.NewMockEntitlements(s.ctrl)
	s.userID = uuid.New()
	s.packageID = uuid.New()
}

func (s *PurchaseCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// newCommands loads a catalog on the given platform and wires the correlator to the mocks.
func (s *PurchaseCommandsTestSuite) newCommands(platform purchase.Platform, env config.Environment, subs []product.Listing) usecase.PurchaseCommands {
	s.store.EXPECT().Platform().Return(platform).AnyTimes()
	s.store.EXPECT().FetchCatalog(gomock.Any(), gomock.Any(), product.KindSubscription).Return(subs, nil)
	s.store.EXPECT().FetchCatalog(gomock.Any(), gomock.Any(), product.KindOneTime).Return(oneTimeListings(), nil)
	catalog := usecase.NewCatalog(s.store, storeConfig(), discardLogger())
	_, err := catalog.Load(context.Background())
	s.Require().NoError(err)

	s.conn.EXPECT().Available().Return(true).AnyTimes()
	s.conn.EXPECT().OnShutdown(gomock.Any()).Do(func(fn func()) { s.shutdownHook = fn })
	s.events.EXPECT().Subscribe(gomock.Any()).DoAndReturn(func(l usecase.EventListener) func() {
		s.listener = l
		return func() {}
	})

	return usecase.NewPurchaseCommands(
		s.conn, catalog, s.store, s.events, s.ack, s.reconciler, s.entitlements,
		clock.NewMockClock(now), config.AppConfig{Env: env}, discardLogger(), metrics.New(),
	)
}

// emitOnRequest answers the next purchase request with fn, as the platform bridge would.
func (s *PurchaseCommandsTestSuite) emitOnRequest(fn func(purchase.Payload)) *gomock.Call {
	return s.store.EXPECT().RequestPurchase(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p purchase.Payload) error {
			fn(p)
			return nil
		})
}

func (s *PurchaseCommandsTestSuite) TestPurchaseSuccess() {
	ctx := context.Background()
	cmds := s.newCommands(purchase.PlatformAndroid, config.EnvDevelopment, subscriptionListings())
	outcome := builder.NewOutcomeBuilder().Build()

	s.emitOnRequest(func(p purchase.Payload) {
		s.Equal([]string{"premiummonthly"}, p.SKUs)
		s.Equal("offer-monthly", p.OfferToken())
		s.listener.OnPurchaseUpdated(outcome)
	})
	s.ack.EXPECT().Acknowledge(gomock.Any(), outcome, product.KindSubscription).Return(true)
	s.reconciler.EXPECT().Reconcile(gomock.Any(), s.userID, outcome).Return(&entitlement.ReconciliationEntry{
		TransactionID: outcome.TransactionID,
		PackageID:     s.packageID,
		Status:        entitlement.StatusGranted,
	}, nil)
	s.entitlements.EXPECT().Refresh(gomock.Any(), s.userID).Return(&entitlement.Snapshot{UserID: s.userID}, nil)

	res, err := cmds.Purchase(ctx, s.userID, "premiummonthly")

	s.Require().NoError(err)
	s.True(res.Success)
	s.True(res.Acknowledged)
	s.True(res.Reconciled)
	s.False(res.Duplicate)
	s.True(res.Sandbox)
	s.Equal(outcome.TransactionID, res.TransactionID)
	s.Equal(s.packageID, res.PackageID)
	s.Nil(res.Failure)
	s.NoError(res.Err())
}

func (s *PurchaseCommandsTestSuite) TestPurchaseUsesFirstNonEmptyOffer() {
	cmds := s.newCommands(purchase.PlatformAndroid, config.EnvProduction, subscriptionListings())
	outcome := builder.NewOutcomeBuilder().WithIdentity("GPA.9", "premiumyearly", "token-9").Build()

	s.emitOnRequest(func(p purchase.Payload) {
		s.Equal("offer-yearly", p.OfferToken(), "first non-empty offer token")
		s.listener.OnPurchaseUpdated(outcome)
	})
	s.ack.EXPECT().Acknowledge(gomock.Any(), gomock.Any(), gomock.Any()).Return(false)
	s.reconciler.EXPECT().Reconcile(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&entitlement.ReconciliationEntry{Status: entitlement.StatusDuplicate, PackageID: s.packageID}, nil)
	s.entitlements.EXPECT().Refresh(gomock.Any(), gomock.Any()).Return(nil, errs.New("ledger timeout"))

	res, err := cmds.Purchase(context.Background(), s.userID, "premiumyearly")

	s.Require().NoError(err)
	s.True(res.Success, "a failed acknowledgment or refresh does not fail the purchase")
	s.False(res.Acknowledged)
	s.True(res.Duplicate)
	s.False(res.Sandbox)
}

func (s *PurchaseCommandsTestSuite) TestPurchaseCancelled() {
	cmds := s.newCommands(purchase.PlatformAndroid, config.EnvDevelopment, subscriptionListings())

	s.emitOnRequest(func(purchase.Payload) {
		s.listener.OnPurchaseError(purchase.PlatformError{Code: "E_USER_CANCELLED", Message: "User cancelled"})
	})
	s.ack.EXPECT().Acknowledge(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	s.reconciler.EXPECT().Reconcile(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	res, err := cmds.Purchase(context.Background(), s.userID, "superlikepack5")

	s.Require().NoError(err)
	s.False(res.Success)
	s.Require().NotNil(res.Failure)
	s.Equal(purchase.FailureUserCancelled, res.Failure.Kind)
	s.Equal(purchase.ReasonCancelled, res.Failure.Reason)
	s.True(strings.HasSuffix(res.Failure.Message, "(sandbox purchase: store behavior may differ in production)"))
	s.True(errs.Is(res.Err(), usecase.ErrUserCancelled))

	s.Run("success: the slot is free again", func() {
		s.emitOnRequest(func(purchase.Payload) {
			s.listener.OnPurchaseError(purchase.PlatformError{ResponseCode: 12})
		})
		res, err := cmds.Purchase(context.Background(), s.userID, "boostpack3")
		s.Require().NoError(err)
		s.Equal(purchase.FailureNetwork, res.Failure.Kind)
		s.True(errs.Is(res.Err(), usecase.ErrPlatformNetwork))
	})
}

func (s *PurchaseCommandsTestSuite) TestPurchasePending() {
	cmds := s.newCommands(purchase.PlatformAndroid, config.EnvProduction, subscriptionListings())
	pending := builder.NewOutcomeBuilder().WithIdentity("GPA.P", "boostpack3", "token-p").AsPending().Build()

	s.emitOnRequest(func(purchase.Payload) { s.listener.OnPurchaseUpdated(pending) })
	s.ack.EXPECT().Acknowledge(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	s.reconciler.EXPECT().Reconcile(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	res, err := cmds.Purchase(context.Background(), s.userID, "boostpack3")

	s.Require().NoError(err)
	s.True(res.Pending)
	s.False(res.Success)
	s.Equal("GPA.P", res.TransactionID)
}

func (s *PurchaseCommandsTestSuite) TestPurchaseSingleFlight() {
	cmds := s.newCommands(purchase.PlatformAndroid, config.EnvDevelopment, subscriptionListings())

	requested := make(chan struct{})
	s.emitOnRequest(func(purchase.Payload) { close(requested) })

	type result struct {
		res *usecase.PurchaseResult
		err error
	}
	first := make(chan result, 1)
	go func() {
		res, err := cmds.Purchase(context.Background(), s.userID, "premiummonthly")
		first <- result{res, err}
	}()
	<-requested

	_, err := cmds.Purchase(context.Background(), uuid.New(), "boostpack3")
	s.True(errs.Is(err, usecase.ErrPurchaseInProgress))

	s.listener.OnPurchaseError(purchase.PlatformError{Code: "E_USER_CANCELLED"})

	select {
	case r := <-first:
		s.Require().NoError(r.err)
		s.Equal(purchase.FailureUserCancelled, r.res.Failure.Kind)
	case <-time.After(time.Second):
		s.Fail("first purchase never completed")
	}
}

func (s *PurchaseCommandsTestSuite) TestPurchaseEventRouting() {
	cmds := s.newCommands(purchase.PlatformAndroid, config.EnvDevelopment, subscriptionListings())

	s.Run("success: stray events are dropped", func() {
		s.NotPanics(func() {
			s.listener.OnPurchaseUpdated(builder.NewOutcomeBuilder().Build())
			s.listener.OnPurchaseError(purchase.PlatformError{Code: "E_UNKNOWN"})
		})
	})

	s.Run("success: an event for another product does not resolve the request", func() {
		outcome := builder.NewOutcomeBuilder().WithIdentity("GPA.B", "boostpack3", "token-b").Build()
		s.emitOnRequest(func(purchase.Payload) {
			s.listener.OnPurchaseUpdated(builder.NewOutcomeBuilder().Build())
			s.listener.OnPurchaseUpdated(outcome)
		})
		s.ack.EXPECT().Acknowledge(gomock.Any(), outcome, product.KindOneTime).Return(true)
		s.reconciler.EXPECT().Reconcile(gomock.Any(), gomock.Any(), outcome).Return(nil, nil)

		res, err := cmds.Purchase(context.Background(), s.userID, "boostpack3")
		s.Require().NoError(err)
		s.Equal("GPA.B", res.TransactionID)
		s.True(res.Success)
		s.False(res.Reconciled, "development may skip the backend")
	})

	s.Run("success: an event without product id goes to the outstanding request", func() {
		outcome := builder.NewOutcomeBuilder().WithIdentity("GPA.C", "", "token-c").Build()
		s.emitOnRequest(func(purchase.Payload) { s.listener.OnPurchaseUpdated(outcome) })
		s.ack.EXPECT().Acknowledge(gomock.Any(), gomock.Any(), product.KindOneTime).Return(true)
		s.reconciler.EXPECT().Reconcile(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ uuid.UUID, o purchase.Outcome) (*entitlement.ReconciliationEntry, error) {
				s.Equal("superlikepack5", o.ProductID)
				return nil, nil
			})

		res, err := cmds.Purchase(context.Background(), s.userID, "superlikepack5")
		s.Require().NoError(err)
		s.Equal("superlikepack5", res.ProductID)
	})
}

func (s *PurchaseCommandsTestSuite) TestPurchaseAborted() {
	cmds := s.newCommands(purchase.PlatformAndroid, config.EnvDevelopment, subscriptionListings())

	s.Run("error: caller context ends before the outcome", func() {
		ctx, cancel := context.WithCancel(context.Background())
		s.emitOnRequest(func(purchase.Payload) { cancel() })

		_, err := cmds.Purchase(ctx, s.userID, "premiummonthly")
		s.True(errs.Is(err, context.Canceled))
	})

	s.Run("error: shutdown fails the pending request", func() {
		s.emitOnRequest(func(purchase.Payload) { s.shutdownHook() })

		_, err := cmds.Purchase(context.Background(), s.userID, "premiummonthly")
		s.True(errs.Is(err, usecase.ErrConnectionUnavailable))
	})

	s.Run("error: store rejects the request", func() {
		s.store.EXPECT().RequestPurchase(gomock.Any(), gomock.Any()).Return(errs.New("billing client not ready"))

		_, err := cmds.Purchase(context.Background(), s.userID, "premiummonthly")
		s.True(errs.Is(err, usecase.ErrPlatformFailure))
	})

	s.Run("success: a late event after abandonment is stray", func() {
		s.NotPanics(func() { s.listener.OnPurchaseUpdated(builder.NewOutcomeBuilder().Build()) })
	})
}

func (s *PurchaseCommandsTestSuite) TestPurchaseRejected() {
	cmds := s.newCommands(purchase.PlatformAndroid, config.EnvProduction, subscriptionListings())
	outcome := builder.NewOutcomeBuilder().Build()

	s.emitOnRequest(func(purchase.Payload) { s.listener.OnPurchaseUpdated(outcome) })
	s.ack.EXPECT().Acknowledge(gomock.Any(), gomock.Any(), gomock.Any()).Return(true)
	s.reconciler.EXPECT().Reconcile(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errs.Mark(errs.New("ledger down"), usecase.ErrBackendValidationFailed))
	s.entitlements.EXPECT().Refresh(gomock.Any(), gomock.Any()).Times(0)

	res, err := cmds.Purchase(context.Background(), s.userID, "premiummonthly")

	s.Nil(res)
	s.True(errs.Is(err, usecase.ErrBackendValidationFailed))
}

func (s *PurchaseCommandsTestSuite) TestPurchasePreconditions() {
	s.Run("error: unknown product", func() {
		cmds := s.newCommands(purchase.PlatformAndroid, config.EnvDevelopment, subscriptionListings())
		s.store.EXPECT().RequestPurchase(gomock.Any(), gomock.Any()).Times(0)

		_, err := cmds.Purchase(context.Background(), s.userID, "goldpack")
		s.True(errs.Is(err, usecase.ErrProductNotFound))
		s.False(errs.Is(err, usecase.ErrOfferParameterMissing))
	})
}

func (s *PurchaseCommandsTestSuite) TestPurchaseOfferMissing() {
	noOffers := []product.Listing{builder.NewListingBuilder("premiummonthly", product.KindSubscription).Build()}
	cmds := s.newCommands(purchase.PlatformAndroid, config.EnvDevelopment, noOffers)
	s.store.EXPECT().RequestPurchase(gomock.Any(), gomock.Any()).Times(0)

	_, err := cmds.Purchase(context.Background(), s.userID, "premiummonthly")

	s.True(errs.Is(err, usecase.ErrOfferParameterMissing))
	s.True(errs.Is(err, usecase.ErrProductNotFound))
}

func (s *PurchaseCommandsTestSuite) TestPurchaseWithoutOfferTokenOnIOS() {
	noOffers := []product.Listing{builder.NewListingBuilder("premiummonthly", product.KindSubscription).Build()}
	cmds := s.newCommands(purchase.PlatformIOS, config.EnvDevelopment, noOffers)

	s.emitOnRequest(func(p purchase.Payload) {
		s.Equal("premiummonthly", p.SKU)
		s.Empty(p.SubscriptionOffers)
		s.listener.OnPurchaseError(purchase.PlatformError{Code: "SKErrorPaymentCancelled"})
	})

	res, err := cmds.Purchase(context.Background(), s.userID, "premiummonthly")
	s.Require().NoError(err)
	s.Equal(purchase.FailureUserCancelled, res.Failure.Kind)
}

func TestPurchaseWhileDisconnected(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := usecasemock.NewMockStore(ctrl)
	conn := usecasemock.NewMockConnectionManager(ctrl)
	events := usecasemock.NewMockEventSource(ctrl)
	conn.EXPECT().Available().Return(false)
	conn.EXPECT().OnShutdown(gomock.Any())
	events.EXPECT().Subscribe(gomock.Any()).Return(func() {})
	store.EXPECT().RequestPurchase(gomock.Any(), gomock.Any()).Times(0)

	cmds := usecase.NewPurchaseCommands(
		conn, usecase.NewCatalog(store, storeConfig(), discardLogger()), store, events,
		usecasemock.NewMockAcknowledger(ctrl), usecasemock.NewMockReconciler(ctrl), usecasemock.NewMockEntitlements(ctrl),
		clock.NewMockClock(now), config.AppConfig{}, discardLogger(), nil,
	)

	_, err := cmds.Purchase(context.Background(), uuid.New(), "premiummonthly")
	if !errs.Is(err, usecase.ErrConnectionUnavailable) {
		t.Fatalf("expected ErrConnectionUnavailable, got %v", err)
	}
}
