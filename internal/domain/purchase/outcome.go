package purchase

import (
	"strings"
	"time"

	"purchase-engine/internal/domain/product"

	"github.com/google/uuid"
)

type State string

const (
	StatePurchased State = "purchased"
	StatePending   State = "pending"
	StateUnknown   State = "unknown"
)

// Outcome is the canonical shape of a completed purchase, whatever platform reported it.
type Outcome struct {
	TransactionID string
	ProductID     string
	PurchaseToken string
	PurchaseTime  time.Time
	State         State
	Acknowledged  bool
	AutoRenewing  bool
	OrderID       string
	Signature     string
	RawReceipt    string
}

// Markers carried by every purchase the in-memory sandbox store issues.
const (
	SandboxTransactionPrefix = "SANDBOX."
	SandboxSignature         = "sandbox-signature"
)

// IsSandboxIssued reports whether the outcome was minted by the sandbox store
// rather than by a real store.
func (o Outcome) IsSandboxIssued() bool {
	return strings.HasPrefix(o.TransactionID, SandboxTransactionPrefix) ||
		strings.HasPrefix(o.OrderID, SandboxTransactionPrefix) ||
		o.Signature == SandboxSignature
}

func (o Outcome) HasIdentity() bool {
	return o.TransactionID != "" && o.ProductID != "" && o.PurchaseToken != ""
}

type Request struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ProductID string
	Kind      product.Kind
	IssuedAt  time.Time
}

func NewRequest(userID uuid.UUID, productID string, kind product.Kind, now time.Time) Request {
	return Request{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: productID,
		Kind:      kind,
		IssuedAt:  now,
	}
}

// Acknowledgement identifies a purchase to confirm with the store.
type Acknowledgement struct {
	PurchaseToken string
	ProductID     string
	Kind          product.Kind
}
