//go:build unit

package response_test

import (
	"errors"
	"testing"
	"time"

	"purchase-engine/internal/domain/entitlement"
	"purchase-engine/internal/handler/dto/response"
	"purchase-engine/internal/usecase"
	"purchase-engine/internal/usecase/readmodel"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var refreshedAt = time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)

func TestFromSnapshot(t *testing.T) {
	userID := uuid.New()
	pkgID := uuid.New()

	t.Run("success: credits and subscription are copied", func(t *testing.T) {
		snap := &entitlement.Snapshot{
			UserID: userID,
			Subscription: &entitlement.ActiveSubscription{
				PackageID:    pkgID,
				DurationType: "monthly",
				ExpiresAt:    refreshedAt.Add(24 * time.Hour),
			},
			Credits:     []entitlement.Credit{{CreditType: "boost", Amount: 3}, {CreditType: "super_like", Amount: 5}},
			RefreshedAt: refreshedAt,
		}

		got, err := response.FromSnapshot(snap)

		require.NoError(t, err)
		want := response.EntitlementsResponse{
			UserID:  userID,
			Premium: true,
			Subscription: &response.SubscriptionResponse{
				PackageID:    pkgID,
				DurationType: "monthly",
				ExpiresAt:    refreshedAt.Add(24 * time.Hour),
			},
			Credits:     []response.CreditResponse{{CreditType: "boost", Amount: 3}, {CreditType: "super_like", Amount: 5}},
			RefreshedAt: refreshedAt,
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("FromSnapshot mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("success: no credits renders an empty list", func(t *testing.T) {
		got, err := response.FromSnapshot(&entitlement.Snapshot{UserID: userID, RefreshedAt: refreshedAt})

		require.NoError(t, err)
		require.NotNil(t, got.Credits)
		require.Empty(t, got.Credits)
		require.Nil(t, got.Subscription)
		require.False(t, got.Premium)
	})
}

func TestFromProducts(t *testing.T) {
	rms := []readmodel.ProductRM{{
		ProductID:      "premiummonthly",
		Kind:           "subscription",
		Price:          "9.99",
		LocalizedPrice: "$9.99",
		Currency:       "USD",
		Title:          "Premium",
	}}

	got, err := response.FromProducts(rms)

	require.NoError(t, err)
	want := response.ProductListResponse{Products: []response.ProductResponse{{
		ProductID:      "premiummonthly",
		Kind:           "subscription",
		Price:          "9.99",
		LocalizedPrice: "$9.99",
		Currency:       "USD",
		Title:          "Premium",
	}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FromProducts mismatch (-want +got):\n%s", diff)
	}
}

func TestFromRestoreResult(t *testing.T) {
	res := &usecase.RestoreResult{
		Restored:   2,
		Reconciled: 1,
		Failures: []usecase.RestoreFailure{{
			TransactionID: "GPA.2",
			ProductID:     "boostpack3",
			Err:           errors.New("ledger unavailable"),
		}},
		Snapshot: &entitlement.Snapshot{
			Credits:     []entitlement.Credit{{CreditType: "boost", Amount: 3}},
			RefreshedAt: refreshedAt,
		},
	}

	got, err := response.FromRestoreResult(res)

	require.NoError(t, err)
	require.Equal(t, 2, got.Restored)
	require.Len(t, got.Failures, 1)
	require.Equal(t, "ledger unavailable", got.Failures[0].Message)
	require.NotNil(t, got.Entitlements)
	require.Equal(t, []response.CreditResponse{{CreditType: "boost", Amount: 3}}, got.Entitlements.Credits)
}
