package usecase

//go:generate mockgen -source=ports.go -destination=../../tests/mock/usecase/ports.go -package=usecasemock

import (
	"context"

	"purchase-engine/internal/domain/entitlement"
	"purchase-engine/internal/domain/product"
	"purchase-engine/internal/domain/purchase"

	"github.com/google/uuid"
)

// Store is the native billing platform. Adapters normalize every purchase they
// return into the canonical purchase.Outcome before it crosses this boundary.
type Store interface {
	Platform() purchase.Platform
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	FetchCatalog(ctx context.Context, skus []string, kind product.Kind) ([]product.Listing, error)
	// RequestPurchase only submits the request. The outcome arrives later on the event stream.
	RequestPurchase(ctx context.Context, payload purchase.Payload) error
	OwnedPurchases(ctx context.Context) ([]purchase.Outcome, error)
}

// AckPort confirms a purchase with the store.
type AckPort interface {
	Acknowledge(ctx context.Context, ack purchase.Acknowledgement) error
}

// EventListener receives the global purchase event stream.
type EventListener interface {
	OnPurchaseUpdated(outcome purchase.Outcome)
	OnPurchaseError(perr purchase.PlatformError)
}

type EventSource interface {
	Subscribe(l EventListener) (unsubscribe func())
}

// Ledger is the backend entitlement ledger. It is the only place credits are granted.
type Ledger interface {
	// RecordPurchase is idempotent on rec.TransactionID.
	RecordPurchase(ctx context.Context, rec entitlement.PurchaseRecord) (*entitlement.ReconciliationEntry, error)
	ListPackages(ctx context.Context) ([]entitlement.Package, error)
	GetCredits(ctx context.Context, userID uuid.UUID) ([]entitlement.Credit, error)
	GetActiveSubscription(ctx context.Context, userID uuid.UUID) (*entitlement.ActiveSubscription, error)
}
