package product

import (
	"errors"
	"strings"
)

var (
	ErrInvalidProductID = errors.New("product id is required")
	ErrInvalidKind      = errors.New("invalid product kind")
)

type Kind string

const (
	KindSubscription Kind = "subscription"
	KindOneTime      Kind = "one_time"
)

func NewKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindSubscription, KindOneTime:
		return k, nil
	}
	return "", ErrInvalidKind
}

func (k Kind) String() string {
	return string(k)
}

// Product is a store listing as reported by the platform. It never changes after load.
type Product struct {
	id             string
	kind           Kind
	price          string
	localizedPrice string
	currency       string
	title          string
	description    string
}

type Params struct {
	ID             string
	Kind           Kind
	Price          string
	LocalizedPrice string
	Currency       string
	Title          string
	Description    string
}

func NewProduct(p Params) (*Product, error) {
	id := strings.TrimSpace(p.ID)
	if id == "" {
		return nil, ErrInvalidProductID
	}
	kind, err := NewKind(string(p.Kind))
	if err != nil {
		return nil, err
	}
	return &Product{
		id:             id,
		kind:           kind,
		price:          p.Price,
		localizedPrice: p.LocalizedPrice,
		currency:       p.Currency,
		title:          p.Title,
		description:    p.Description,
	}, nil
}

func (p *Product) ID() string             { return p.id }
func (p *Product) Kind() Kind             { return p.kind }
func (p *Product) Price() string          { return p.price }
func (p *Product) LocalizedPrice() string { return p.localizedPrice }
func (p *Product) Currency() string       { return p.currency }
func (p *Product) Title() string          { return p.title }
func (p *Product) Description() string    { return p.description }

func (p *Product) IsSubscription() bool {
	return p.kind == KindSubscription
}

// Listing pairs a product with the purchase parameters the platform attached to it.
// Offer tokens are ordered as the platform returned them.
type Listing struct {
	Product     *Product
	OfferTokens []string
}

func (l Listing) FirstOfferToken() (string, bool) {
	for _, t := range l.OfferTokens {
		if t != "" {
			return t, true
		}
	}
	return "", false
}
