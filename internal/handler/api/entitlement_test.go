//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"purchase-engine/internal/domain/entitlement"
	"purchase-engine/internal/handler/api"
	resdto "purchase-engine/internal/handler/dto/response"
	"purchase-engine/internal/infra"
	"purchase-engine/tests/common/httptest"
	usecasemock "purchase-engine/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type EntitlementHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockCtrl         *gomock.Controller
	mockEntitlements *usecasemock.MockEntitlements
	userID           uuid.UUID
	snapshot         *entitlement.Snapshot
}

func (s *EntitlementHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.userID = uuid.New()

	refreshedAt := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	s.snapshot = &entitlement.Snapshot{
		UserID: s.userID,
		Subscription: &entitlement.ActiveSubscription{
			PackageID:    uuid.New(),
			DurationType: "monthly",
			ExpiresAt:    refreshedAt.AddDate(0, 0, 30),
		},
		Credits:     []entitlement.Credit{{CreditType: "super_like", Amount: 5}},
		RefreshedAt: refreshedAt,
	}

	s.mockCtrl = gomock.NewController(s.T())
	s.mockEntitlements = usecasemock.NewMockEntitlements(s.mockCtrl)
	handler := api.NewEntitlementHandler(s.mockEntitlements)

	s.router.GET("/entitlements", fakeAuth(s.userID), handler.Get)
}

func (s *EntitlementHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestEntitlementHandlerSuite(t *testing.T) {
	suite.Run(t, new(EntitlementHandlerTestSuite))
}

func (s *EntitlementHandlerTestSuite) TestGet() {
	s.Run("success: serves the cached snapshot", func() {
		s.mockEntitlements.EXPECT().Current(s.userID).Return(s.snapshot, true).Times(1)
		s.mockEntitlements.EXPECT().Refresh(gomock.Any(), gomock.Any()).Times(0)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/entitlements", nil, "bearer-token")

		var got resdto.EntitlementsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.True(got.Premium)
		s.Equal(s.userID, got.UserID)
		s.Require().NotNil(got.Subscription)
		s.Equal("monthly", got.Subscription.DurationType)
		s.Equal([]resdto.CreditResponse{{CreditType: "super_like", Amount: 5}}, got.Credits)
	})

	s.Run("success: refreshes when nothing is cached", func() {
		empty := &entitlement.Snapshot{UserID: s.userID, RefreshedAt: s.snapshot.RefreshedAt}
		s.mockEntitlements.EXPECT().Current(s.userID).Return(nil, false).Times(1)
		s.mockEntitlements.EXPECT().Refresh(gomock.Any(), s.userID).Return(empty, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/entitlements", nil, "bearer-token")

		var got resdto.EntitlementsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.False(got.Premium)
		s.Nil(got.Subscription)
		s.Empty(got.Credits)
	})

	s.Run("success: refresh=true bypasses the cache", func() {
		s.mockEntitlements.EXPECT().Current(gomock.Any()).Times(0)
		s.mockEntitlements.EXPECT().Refresh(gomock.Any(), s.userID).Return(s.snapshot, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/entitlements?refresh=true", nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 500 when the ledger fails", func() {
		s.mockEntitlements.EXPECT().Refresh(gomock.Any(), s.userID).
			Return(nil, infra.RepositoryError{Kind: infra.KindDBFailure}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/entitlements?refresh=1", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Failed to load entitlements")
	})
}
