//go:build unit

package entitlement_test

import (
	"testing"
	"time"

	"purchase-engine/internal/domain/entitlement"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestResolveStoreProductID(t *testing.T) {
	tests := []struct {
		name string
		pkg  entitlement.Package
		want string
	}{
		{name: "premium monthly", pkg: entitlement.Package{Category: entitlement.CategoryPremium, DurationType: "monthly"}, want: "premiummonthly"},
		{name: "mixed case and separators", pkg: entitlement.Package{Category: "Premium", DurationType: "Half-Year"}, want: "premiumhalfyear"},
		{name: "credit pack uses the credit type", pkg: entitlement.Package{Category: entitlement.CategoryCredit, CreditType: "super_like", DurationType: "pack_5"}, want: "superlikepack5"},
		{name: "credit pack without type", pkg: entitlement.Package{Category: entitlement.CategoryCredit, DurationType: "pack_5"}, want: "creditpack5"},
		{name: "empty", pkg: entitlement.Package{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, entitlement.ResolveStoreProductID(tt.pkg))
		})
	}
}

func TestIndex(t *testing.T) {
	monthly := entitlement.Package{ID: uuid.New(), Category: entitlement.CategoryPremium, DurationType: "monthly"}
	clash := entitlement.Package{ID: uuid.New(), Category: entitlement.CategoryPremium, DurationType: "MONTHLY"}
	yearly := entitlement.Package{ID: uuid.New(), Category: entitlement.CategoryPremium, DurationType: "yearly"}
	blank := entitlement.Package{ID: uuid.New()}

	idx := entitlement.NewIndex([]entitlement.Package{monthly, clash, yearly, blank})

	t.Run("success: round trip through the forward mapping", func(t *testing.T) {
		for _, p := range []entitlement.Package{monthly, yearly} {
			got, ok := idx.Lookup(entitlement.ResolveStoreProductID(p))
			assert.True(t, ok)
			assert.Equal(t, p.ID, got.ID)
		}
	})

	t.Run("success: first package wins a collision", func(t *testing.T) {
		got, ok := idx.Lookup("premiummonthly")
		assert.True(t, ok)
		assert.Equal(t, monthly.ID, got.ID)
		assert.Equal(t, []string{"premiummonthly"}, idx.Collisions())
		assert.Equal(t, 2, idx.Len())
	})

	t.Run("error: unknown product", func(t *testing.T) {
		_, ok := idx.Lookup("boostpack3")
		assert.False(t, ok)
	})

	t.Run("nil index matches nothing", func(t *testing.T) {
		var empty *entitlement.Index
		_, ok := empty.Lookup("premiummonthly")
		assert.False(t, ok)
		assert.Zero(t, empty.Len())
	})
}

func TestSnapshot(t *testing.T) {
	now := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	s := entitlement.Snapshot{
		Subscription: &entitlement.ActiveSubscription{ExpiresAt: now.Add(time.Hour)},
		Credits:      []entitlement.Credit{{CreditType: "super_like", Amount: 5}},
	}

	assert.True(t, s.Premium(now))
	assert.False(t, s.Premium(now.Add(2*time.Hour)))
	assert.Equal(t, 5, s.CreditBalance("super_like"))
	assert.Zero(t, s.CreditBalance("boost"))
	assert.False(t, entitlement.Snapshot{}.Premium(now))
}
