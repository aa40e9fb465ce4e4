//go:build unit || e2e

package builder

import (
	"time"

	"purchase-engine/internal/domain/purchase"
)

type OutcomeBuilder struct {
	outcome purchase.Outcome
}

func NewOutcomeBuilder() *OutcomeBuilder {
	return &OutcomeBuilder{outcome: purchase.Outcome{
		TransactionID: "GPA.0000-0001",
		ProductID:     "premiummonthly",
		PurchaseToken: "token-0001",
		PurchaseTime:  time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		State:         purchase.StatePurchased,
		Signature:     "signature",
		RawReceipt:    `{"orderId":"GPA.0000-0001"}`,
	}}
}

func (b *OutcomeBuilder) With(mutate func(*purchase.Outcome)) *OutcomeBuilder {
	mutate(&b.outcome)
	return b
}

func (b *OutcomeBuilder) WithIdentity(transactionID, productID, token string) *OutcomeBuilder {
	b.outcome.TransactionID = transactionID
	b.outcome.ProductID = productID
	b.outcome.PurchaseToken = token
	return b
}

func (b *OutcomeBuilder) AsAcknowledged() *OutcomeBuilder {
	b.outcome.Acknowledged = true
	return b
}

func (b *OutcomeBuilder) AsPending() *OutcomeBuilder {
	b.outcome.State = purchase.StatePending
	return b
}

func (b *OutcomeBuilder) Build() purchase.Outcome {
	return b.outcome
}
