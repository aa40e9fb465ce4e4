//go:build unit

package usecase_test

import (
	"io"
	"log/slog"
	"time"

	"purchase-engine/internal/domain/product"
	"purchase-engine/internal/pkg/config"
	"purchase-engine/tests/common/builder"
)

var now = time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func storeConfig() config.StoreConfig {
	return config.StoreConfig{
		Platform:         "android",
		SubscriptionSKUs: []string{"premiummonthly", "premiumyearly"},
		OneTimeSKUs:      []string{"superlikepack5", "boostpack3"},
	}
}

func subscriptionListings() []product.Listing {
	return []product.Listing{
		builder.NewListingBuilder("premiummonthly", product.KindSubscription).WithOffers("offer-monthly").Build(),
		builder.NewListingBuilder("premiumyearly", product.KindSubscription).WithOffers("", "offer-yearly").Build(),
	}
}

func oneTimeListings() []product.Listing {
	return []product.Listing{
		builder.NewListingBuilder("superlikepack5", product.KindOneTime).Build(),
		builder.NewListingBuilder("boostpack3", product.KindOneTime).Build(),
	}
}
