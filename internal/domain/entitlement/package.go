package entitlement

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryPremium Category = "premium"
	CategoryCredit  Category = "credit"
)

// Package is a purchasable entitlement bundle defined by the backend.
type Package struct {
	ID           uuid.UUID
	Category     Category
	CreditType   string
	DurationType string
	Quantity     int
	DurationDays int
}

func (p Package) IsSubscription() bool {
	return p.Category == CategoryPremium
}

// ResolveStoreProductID maps a package to its store product id: the category (the
// credit type for credit packs) followed by the duration type, lower-cased, keeping
// only letters and digits.
func ResolveStoreProductID(p Package) string {
	prefix := string(p.Category)
	if p.Category == CategoryCredit && p.CreditType != "" {
		prefix = p.CreditType
	}
	return normalize(prefix) + normalize(p.DurationType)
}

func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Index is the inverse of ResolveStoreProductID over a package list.
type Index struct {
	byProductID map[string]Package
	collisions  []string
}

// NewIndex keeps the first package for any store product id shared by several packages.
func NewIndex(packages []Package) *Index {
	idx := &Index{byProductID: make(map[string]Package, len(packages))}
	for _, p := range packages {
		key := ResolveStoreProductID(p)
		if key == "" {
			continue
		}
		if _, exists := idx.byProductID[key]; exists {
			idx.collisions = append(idx.collisions, key)
			continue
		}
		idx.byProductID[key] = p
	}
	return idx
}

func (i *Index) Lookup(productID string) (Package, bool) {
	if i == nil {
		return Package{}, false
	}
	p, ok := i.byProductID[productID]
	return p, ok
}

func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.byProductID)
}

// Collisions lists store product ids claimed by more than one package.
func (i *Index) Collisions() []string {
	if i == nil {
		return nil
	}
	return i.collisions
}
