package usecase

//go:generate mockgen -source=catalog.go -destination=../../tests/mock/usecase/catalog.go -package=usecasemock

import (
	"context"
	"log/slog"
	"sync"

	"purchase-engine/internal/domain/product"
	"purchase-engine/internal/pkg/config"
	"purchase-engine/internal/pkg/errs"
	"purchase-engine/internal/usecase/readmodel"
)

type CatalogQueries interface {
	Products() []readmodel.ProductRM
}

// Catalog holds the product snapshot of the current connection. Load replaces it
// wholesale; products are never edited in place.
type Catalog struct {
	store            Store
	subscriptionSKUs []string
	oneTimeSKUs      []string
	logger           *slog.Logger

	mu       sync.RWMutex
	products []*product.Product
	byID     map[string]*product.Product
	offers   map[string]string
}

func NewCatalog(store Store, cfg config.StoreConfig, logger *slog.Logger) *Catalog {
	return &Catalog{
		store:            store,
		subscriptionSKUs: cfg.SubscriptionSKUs,
		oneTimeSKUs:      cfg.OneTimeSKUs,
		logger:           logger,
	}
}

func (c *Catalog) Load(ctx context.Context) ([]readmodel.ProductRM, error) {
	subs, err := c.fetch(ctx, c.subscriptionSKUs, product.KindSubscription)
	if err != nil {
		return nil, err
	}
	oneTime, err := c.fetch(ctx, c.oneTimeSKUs, product.KindOneTime)
	if err != nil {
		return nil, err
	}

	listings := append(subs, oneTime...)
	products := make([]*product.Product, 0, len(listings))
	byID := make(map[string]*product.Product, len(listings))
	offers := make(map[string]string)

	for _, l := range listings {
		if l.Product == nil {
			continue
		}
		p := l.Product
		if _, dup := byID[p.ID()]; dup {
			c.logger.Warn("duplicate product in catalog response", "product_id", p.ID())
			continue
		}
		products = append(products, p)
		byID[p.ID()] = p

		if p.IsSubscription() {
			if token, ok := l.FirstOfferToken(); ok {
				offers[p.ID()] = token
			}
		}
	}

	c.mu.Lock()
	c.products = products
	c.byID = byID
	c.offers = offers
	c.mu.Unlock()

	return c.Products(), nil
}

func (c *Catalog) fetch(ctx context.Context, skus []string, kind product.Kind) ([]product.Listing, error) {
	if len(skus) == 0 {
		return nil, nil
	}
	listings, err := c.store.FetchCatalog(ctx, skus, kind)
	if err != nil {
		return nil, errs.Wrapf(err, "fetch %s catalog", kind)
	}
	return listings, nil
}

func (c *Catalog) Products() []readmodel.ProductRM {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]readmodel.ProductRM, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, toProductRM(p))
	}
	return out
}

func (c *Catalog) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = nil
	c.byID = nil
	c.offers = nil
}

// purchaseParams returns the product and, for subscriptions, its offer token.
func (c *Catalog) purchaseParams(productID string) (*product.Product, string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.byID[productID]
	if !ok {
		return nil, "", errs.Wrapf(ErrProductNotFound, "product %q", productID)
	}
	if !p.IsSubscription() {
		return p, "", nil
	}

	token, ok := c.offers[productID]
	if !ok && c.store.Platform().RequiresOfferToken() {
		return nil, "", errs.Mark(errs.Wrapf(ErrOfferParameterMissing, "product %q", productID), ErrProductNotFound)
	}
	return p, token, nil
}

func toProductRM(p *product.Product) readmodel.ProductRM {
	return readmodel.ProductRM{
		ProductID:      p.ID(),
		Kind:           p.Kind().String(),
		Price:          p.Price(),
		LocalizedPrice: p.LocalizedPrice(),
		Currency:       p.Currency(),
		Title:          p.Title(),
		Description:    p.Description(),
	}
}
