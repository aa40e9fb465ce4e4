//go:build unit

package api_test

import (
	"io"
	"log/slog"
	"net/http"
	nethttptest "net/http/httptest"
	"sync"
	"testing"

	"purchase-engine/internal/domain/purchase"
	"purchase-engine/internal/handler/api"
	"purchase-engine/internal/handler/middleware"
	"purchase-engine/internal/infra/platform/eventbus"
	"purchase-engine/internal/pkg/config"
	"purchase-engine/tests/common/httptest"
	usecasemock "purchase-engine/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type capturingListener struct {
	mu       sync.Mutex
	outcomes []purchase.Outcome
	failures []purchase.PlatformError
}

func (l *capturingListener) OnPurchaseUpdated(o purchase.Outcome) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.outcomes = append(l.outcomes, o)
}

func (l *capturingListener) OnPurchaseError(e purchase.PlatformError) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failures = append(l.failures, e)
}

type PlatformHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	mockCtrl *gomock.Controller
	mockConn *usecasemock.MockConnectionManager
	listener *capturingListener
}

func (s *PlatformHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockConn = usecasemock.NewMockConnectionManager(s.mockCtrl)

	bus := eventbus.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.listener = &capturingListener{}
	bus.Subscribe(s.listener)

	handler := api.NewPlatformHandler(bus, s.mockConn)
	bridge := middleware.NewBridgeMiddleware(config.NewTestConfig())
	s.router.POST("/platform/events", bridge.RequireBridge(), handler.Events)
	s.router.POST("/platform/connect", fakeAuth(uuid.New()), handler.Connect)
}

func (s *PlatformHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPlatformHandlerSuite(t *testing.T) {
	suite.Run(t, new(PlatformHandlerTestSuite))
}

func (s *PlatformHandlerTestSuite) TestEvents() {
	s.Run("success: purchase update is published", func() {
		body := []byte(`{"type":"purchase_updated","payload":{"orderId":"GPA.7","productIds":["boostpack3"],"purchaseToken":"tok-7","purchaseStateAndroid":1}}`)

		rec := s.postEvent(body)

		s.Equal(http.StatusAccepted, rec.Code)
		s.JSONEq(`{"status":"accepted"}`, rec.Body.String())
		s.Require().Len(s.listener.outcomes, 1)
		s.Equal("GPA.7", s.listener.outcomes[0].TransactionID)
		s.Equal("boostpack3", s.listener.outcomes[0].ProductID)
		s.Equal("tok-7", s.listener.outcomes[0].PurchaseToken)
	})

	s.Run("success: purchase error is published", func() {
		body := []byte(`{"type":"purchase_error","payload":{"code":"E_USER_CANCELLED","message":"cancelled"}}`)

		rec := s.postEvent(body)

		s.Equal(http.StatusAccepted, rec.Code)
		s.Require().Len(s.listener.failures, 1)
		s.Equal("E_USER_CANCELLED", s.listener.failures[0].Code)
	})

	errorCases := []struct {
		name string
		body string
	}{
		{"not json", `not json`},
		{"unknown event type", `{"type":"price_changed","payload":{}}`},
	}
	for _, tc := range errorCases {
		s.Run("error: 400 on "+tc.name, func() {
			outcomes, failures := len(s.listener.outcomes), len(s.listener.failures)

			rec := s.postEvent([]byte(tc.body))

			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Malformed event")
			s.Len(s.listener.outcomes, outcomes)
			s.Len(s.listener.failures, failures)
		})
	}
}

func (s *PlatformHandlerTestSuite) postEvent(body []byte) *nethttptest.ResponseRecorder {
	return httptest.PerformBridgeRequest(s.T(), s.router, http.MethodPost, "/platform/events", body, config.NewTestConfig().Bridge.Secret)
}

func (s *PlatformHandlerTestSuite) TestEventsRequireBridgeCredential() {
	forged := []byte(`{"type":"purchase_updated","payload":{"productId":"","purchaseToken":"forged","signatureAndroid":"x","dataAndroid":"{}"}}`)

	cases := []struct {
		name   string
		secret string
		msg    string
	}{
		{"missing header", "", "Bridge credential required"},
		{"wrong secret", "guessed-secret", "Invalid bridge credential"},
	}
	for _, tc := range cases {
		s.Run("error: 401 on "+tc.name, func() {
			outcomes := len(s.listener.outcomes)

			rec := httptest.PerformBridgeRequest(s.T(), s.router, http.MethodPost, "/platform/events", forged, tc.secret)

			httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, tc.msg)
			s.Len(s.listener.outcomes, outcomes, "rejected event must not reach the bus")
		})
	}

	s.Run("error: 401 when no secret is configured", func() {
		cfg := config.NewTestConfig()
		cfg.Bridge.Secret = ""
		router := gin.New()
		router.POST("/platform/events", middleware.NewBridgeMiddleware(cfg).RequireBridge(), func(c *gin.Context) {
			s.Fail("handler reached without a configured secret")
		})

		rec := httptest.PerformBridgeRequest(s.T(), router, http.MethodPost, "/platform/events", forged, "anything")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid bridge credential")
	})
}

func (s *PlatformHandlerTestSuite) TestConnect() {
	s.Run("success: connected", func() {
		s.mockConn.EXPECT().Initialize(gomock.Any()).Return(true).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/platform/connect", nil, "bearer-token")

		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"connected":true}`, rec.Body.String())
	})

	s.Run("error: 503 when the store refuses", func() {
		s.mockConn.EXPECT().Initialize(gomock.Any()).Return(false).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/platform/connect", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, "Store connection unavailable")
	})
}
