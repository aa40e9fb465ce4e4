//go:build unit || e2e

package builder

import (
	"purchase-engine/internal/domain/product"
)

type ListingBuilder struct {
	Params      product.Params
	OfferTokens []string
}

func NewListingBuilder(id string, kind product.Kind) *ListingBuilder {
	return &ListingBuilder{Params: product.Params{
		ID:             id,
		Kind:           kind,
		Price:          "4.99",
		LocalizedPrice: "$4.99",
		Currency:       "USD",
		Title:          id,
	}}
}

func (b *ListingBuilder) WithOffers(tokens ...string) *ListingBuilder {
	b.OfferTokens = tokens
	return b
}

// Build panics on invalid params so table rows stay one-liners.
func (b *ListingBuilder) Build() product.Listing {
	p, err := product.NewProduct(b.Params)
	if err != nil {
		panic(err)
	}
	return product.Listing{Product: p, OfferTokens: b.OfferTokens}
}
