package purchase

import "purchase-engine/internal/domain/product"

type SubscriptionOffer struct {
	SKU        string `json:"sku"`
	OfferToken string `json:"offerToken"`
}

// Payload is the purchase request handed to the native store.
type Payload struct {
	SKU                string              `json:"sku,omitempty"`
	SKUs               []string            `json:"skus,omitempty"`
	SubscriptionOffers []SubscriptionOffer `json:"subscriptionOffers,omitempty"`
	Subscription       bool                `json:"-"`
}

func BuildPayload(platform Platform, kind product.Kind, sku, offerToken string) Payload {
	sub := kind == product.KindSubscription
	if platform != PlatformAndroid {
		return Payload{SKU: sku, Subscription: sub}
	}

	p := Payload{SKUs: []string{sku}, Subscription: sub}
	if sub && offerToken != "" {
		p.SubscriptionOffers = []SubscriptionOffer{{SKU: sku, OfferToken: offerToken}}
	}
	return p
}

func (p Payload) ProductID() string {
	if p.SKU != "" {
		return p.SKU
	}
	if len(p.SKUs) > 0 {
		return p.SKUs[0]
	}
	return ""
}

func (p Payload) OfferToken() string {
	if len(p.SubscriptionOffers) == 0 {
		return ""
	}
	return p.SubscriptionOffers[0].OfferToken
}
