//go:build unit || e2e

package builder

import (
	"purchase-engine/internal/domain/entitlement"
	"purchase-engine/internal/infra/ledger"
	"purchase-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type PackageBuilder struct {
	ID           uuid.UUID
	Category     entitlement.Category
	CreditType   string
	DurationType string
	Quantity     int
	DurationDays int
}

// NewPackageBuilder defaults to the monthly premium package (store product "premiummonthly").
func NewPackageBuilder() *PackageBuilder {
	return &PackageBuilder{
		ID:           uuid.New(),
		Category:     entitlement.CategoryPremium,
		DurationType: "monthly",
		DurationDays: 30,
	}
}

func (b *PackageBuilder) With(mutate func(*PackageBuilder)) *PackageBuilder {
	mutate(b)
	return b
}

// AsCreditPack turns the package into a credit pack, e.g. ("super_like", "pack_5", 5) for "superlikepack5".
func (b *PackageBuilder) AsCreditPack(creditType, durationType string, quantity int) *PackageBuilder {
	b.Category = entitlement.CategoryCredit
	b.CreditType = creditType
	b.DurationType = durationType
	b.Quantity = quantity
	b.DurationDays = 0
	return b
}

func (b *PackageBuilder) BuildDomain() entitlement.Package {
	return entitlement.Package{
		ID:           b.ID,
		Category:     b.Category,
		CreditType:   b.CreditType,
		DurationType: b.DurationType,
		Quantity:     b.Quantity,
		DurationDays: b.DurationDays,
	}
}

func (b *PackageBuilder) BuildInfra() ledger.Packages {
	return ledger.Packages{
		ID:           pgconv.UUIDToPgtype(b.ID),
		Category:     string(b.Category),
		CreditType:   b.CreditType,
		DurationType: b.DurationType,
		Quantity:     int32(b.Quantity),
		DurationDays: int32(b.DurationDays),
	}
}
