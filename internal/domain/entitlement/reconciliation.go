package entitlement

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusGranted   Status = "granted"
	StatusDuplicate Status = "duplicate"
)

// PurchaseRecord is what the client reports to the backend ledger for one purchase.
// TransactionID is the idempotency key.
type PurchaseRecord struct {
	UserID        uuid.UUID
	PackageID     uuid.UUID
	TransactionID string
	PurchaseToken string
	ProductID     string
	Platform      string
	PurchasedAt   time.Time
	Metadata      map[string]string
}

// ReconciliationEntry is the backend's answer to a recorded purchase.
type ReconciliationEntry struct {
	TransactionID string
	UserID        uuid.UUID
	ProductID     string
	PackageID     uuid.UUID
	Status        Status
	RecordedAt    time.Time
}

func (e ReconciliationEntry) Duplicate() bool {
	return e.Status == StatusDuplicate
}

type Credit struct {
	CreditType string
	Amount     int
}

type ActiveSubscription struct {
	PackageID    uuid.UUID
	DurationType string
	ExpiresAt    time.Time
}

// Snapshot is the locally cached entitlement state of one user.
type Snapshot struct {
	UserID       uuid.UUID
	Subscription *ActiveSubscription
	Credits      []Credit
	RefreshedAt  time.Time
}

func (s Snapshot) Premium(now time.Time) bool {
	return s.Subscription != nil && s.Subscription.ExpiresAt.After(now)
}

func (s Snapshot) CreditBalance(creditType string) int {
	for _, c := range s.Credits {
		if c.CreditType == creditType {
			return c.Amount
		}
	}
	return 0
}
