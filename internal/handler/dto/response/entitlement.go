package response

import (
	"time"

	"purchase-engine/internal/domain/entitlement"
	"purchase-engine/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type CreditResponse struct {
	CreditType string `json:"creditType"`
	Amount     int    `json:"amount"`
}

type SubscriptionResponse struct {
	PackageID    uuid.UUID `json:"packageId"`
	DurationType string    `json:"durationType"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

type EntitlementsResponse struct {
	UserID       uuid.UUID             `json:"userId"`
	Premium      bool                  `json:"premium"`
	Subscription *SubscriptionResponse `json:"subscription,omitempty"`
	Credits      []CreditResponse      `json:"credits"`
	RefreshedAt  time.Time             `json:"refreshedAt"`
}

func FromSnapshot(snap *entitlement.Snapshot) (EntitlementsResponse, error) {
	out := EntitlementsResponse{
		UserID:      snap.UserID,
		Premium:     snap.Premium(snap.RefreshedAt),
		Credits:     make([]CreditResponse, 0, len(snap.Credits)),
		RefreshedAt: snap.RefreshedAt,
	}
	if err := copier.Copy(&out.Credits, &snap.Credits); err != nil {
		return EntitlementsResponse{}, errs.Wrap(err, "copy credits")
	}
	if snap.Subscription != nil {
		out.Subscription = &SubscriptionResponse{}
		if err := copier.Copy(out.Subscription, snap.Subscription); err != nil {
			return EntitlementsResponse{}, errs.Wrap(err, "copy subscription")
		}
	}
	return out, nil
}
