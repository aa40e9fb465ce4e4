//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"

	"purchase-engine/internal/domain/purchase"
	"purchase-engine/internal/handler/api"
	resdto "purchase-engine/internal/handler/dto/response"
	"purchase-engine/internal/pkg/errs"
	"purchase-engine/internal/usecase"
	"purchase-engine/tests/common/httptest"
	"purchase-engine/tests/common/testutil"
	usecasemock "purchase-engine/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PurchaseHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockCtrl      *gomock.Controller
	mockPurchases *usecasemock.MockPurchaseCommands
	mockRestores  *usecasemock.MockRestoreCommands
	userID        uuid.UUID
}

func (s *PurchaseHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.userID = uuid.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockPurchases = usecasemock.NewMockPurchaseCommands(s.mockCtrl)
	s.mockRestores = usecasemock.NewMockRestoreCommands(s.mockCtrl)
	handler := api.NewPurchaseHandler(s.mockPurchases, s.mockRestores)

	s.router.POST("/purchases", fakeAuth(s.userID), handler.Purchase)
	s.router.POST("/purchases/restore", fakeAuth(s.userID), handler.Restore)
}

func (s *PurchaseHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPurchaseHandlerSuite(t *testing.T) {
	suite.Run(t, new(PurchaseHandlerTestSuite))
}

// fakeAuth stands in for RequireAuth and sets the caller id the way it does.
func fakeAuth(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", userID)
		c.Next()
	}
}

func (s *PurchaseHandlerTestSuite) TestPurchase() {
	url := "/purchases"
	reqBody := map[string]any{"productId": "premiummonthly"}
	packageID := uuid.New()

	s.Run("success: returns the reconciled purchase", func() {
		result := &usecase.PurchaseResult{
			RequestID:     uuid.New(),
			Success:       true,
			TransactionID: "T1",
			ProductID:     "premiummonthly",
			PackageID:     packageID,
			Acknowledged:  true,
			Reconciled:    true,
			Sandbox:       true,
		}
		s.mockPurchases.EXPECT().Purchase(gomock.Any(), s.userID, "premiummonthly").Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var got resdto.PurchaseResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		want := resdto.PurchaseResponse{
			RequestID:     result.RequestID,
			Success:       true,
			TransactionID: "T1",
			ProductID:     "premiummonthly",
			PackageID:     &packageID,
			Acknowledged:  true,
			Reconciled:    true,
			Sandbox:       true,
		}
		if diff := cmp.Diff(want, got); diff != "" {
			s.T().Errorf("response mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("success: cancellation is a result, not an error", func() {
		result := &usecase.PurchaseResult{
			RequestID: uuid.New(),
			ProductID: "premiummonthly",
			Failure:   &purchase.Failure{Kind: purchase.FailureUserCancelled, Reason: purchase.ReasonCancelled, Message: "Purchase was cancelled"},
		}
		s.mockPurchases.EXPECT().Purchase(gomock.Any(), s.userID, "premiummonthly").Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var got resdto.PurchaseResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.False(got.Success)
		s.Require().NotNil(got.Failure)
		s.Equal("user_cancelled", got.Failure.Kind)
		s.Equal("cancelled", got.Failure.Reason)
		s.Nil(got.PackageID)
	})

	errorCases := []struct {
		name       string
		err        error
		expectCode int
		expectMsg  string
	}{
		{"connection unavailable", usecase.ErrConnectionUnavailable, http.StatusServiceUnavailable, "Store connection unavailable"},
		{"product not found", errs.Wrapf(usecase.ErrProductNotFound, "product %q", "x"), http.StatusNotFound, "Product not found"},
		{"offer missing wins over product not found", errs.Mark(errs.Wrap(usecase.ErrOfferParameterMissing, "x"), usecase.ErrProductNotFound), http.StatusUnprocessableEntity, "Subscription offer unavailable"},
		{"purchase in progress", usecase.ErrPurchaseInProgress, http.StatusConflict, "Another purchase is in progress"},
		{"backend rejected", errs.Mark(errs.New("ledger down"), usecase.ErrBackendValidationFailed), http.StatusBadGateway, "Purchase could not be recorded"},
		{"caller gave up", context.DeadlineExceeded, http.StatusGatewayTimeout, "Timed out"},
		{"unexpected", errs.New("boom"), http.StatusInternalServerError, "Purchase failed"},
	}
	for _, tc := range errorCases {
		s.Run("error: "+tc.name, func() {
			s.mockPurchases.EXPECT().Purchase(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err).Times(1)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
			httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectMsg)
		})
	}

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(map[string]any)
		}{
			{"missing productId", testutil.Field("productId", nil)},
			{"empty productId", testutil.Field("productId", "")},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, testutil.DtoMap(s.T(), reqBody, tc.mutate), "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: 401 without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

func (s *PurchaseHandlerTestSuite) TestRestore() {
	url := "/purchases/restore"

	s.Run("success: counts and per-item failures", func() {
		result := &usecase.RestoreResult{
			Restored:   3,
			Reconciled: 2,
			Duplicates: 1,
			Unmatched:  1,
			Failures: []usecase.RestoreFailure{
				{TransactionID: "T3", ProductID: "boostpack3", Err: errs.Mark(errs.New("deadline"), usecase.ErrRestoreItemTimeout)},
			},
		}
		s.mockRestores.EXPECT().Restore(gomock.Any(), s.userID).Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var got resdto.RestoreResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Equal(3, got.Restored)
		s.Equal(2, got.Reconciled)
		s.Equal(1, got.Duplicates)
		s.Equal(1, got.Unmatched)
		s.Require().Len(got.Failures, 1)
		s.True(got.Failures[0].TimedOut)
		s.Equal("T3", got.Failures[0].TransactionID)
		s.Nil(got.Entitlements)
	})

	s.Run("error: 502 when owned purchases cannot be listed", func() {
		s.mockRestores.EXPECT().Restore(gomock.Any(), s.userID).
			Return(nil, errs.Mark(errs.New("bridge gone"), usecase.ErrPlatformFailure)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadGateway, "Store request failed")
	})
}
