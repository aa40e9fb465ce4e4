// Package ledger is the Postgres entitlement ledger. Purchases are keyed on the
// store transaction id, so reporting the same purchase twice grants once.
package ledger

import (
	"context"
	"encoding/json"
	"log/slog"

	"purchase-engine/internal/domain/entitlement"
	"purchase-engine/internal/infra"
	"purchase-engine/internal/pkg/clock"
	"purchase-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type LedgerQueries interface {
	GetPackage(ctx context.Context, db DBTX, id uuid.UUID) (Packages, error)
	ListActivePackages(ctx context.Context, db DBTX) ([]Packages, error)
	InsertLedgerEntry(ctx context.Context, db DBTX, arg InsertLedgerEntryParams) (pgtype.Timestamptz, error)
	GetLedgerEntry(ctx context.Context, db DBTX, transactionID string) (PurchaseLedger, error)
	AddCredits(ctx context.Context, db DBTX, userID uuid.UUID, creditType string, amount int32) error
	ExtendSubscription(ctx context.Context, db DBTX, arg ExtendSubscriptionParams) error
	ListCredits(ctx context.Context, db DBTX, userID uuid.UUID) ([]UserCredits, error)
	GetActiveSubscription(ctx context.Context, db DBTX, userID uuid.UUID, now pgtype.Timestamptz) (UserSubscriptions, error)
}

// Pool is what the repository needs from *pgxpool.Pool.
type Pool interface {
	DBTX
	TxBeginner
}

const maxTxRetries = 2

type Repository struct {
	queries LedgerQueries
	db      Pool
	clock   clock.Clock
	logger  *slog.Logger
}

func NewRepository(queries LedgerQueries, db Pool, clock clock.Clock, logger *slog.Logger) *Repository {
	return &Repository{
		queries: queries,
		db:      db,
		clock:   clock,
		logger:  logger,
	}
}

func (r *Repository) RecordPurchase(ctx context.Context, rec entitlement.PurchaseRecord) (*entitlement.ReconciliationEntry, error) {
	metadata, err := json.Marshal(rec.Metadata)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to encode purchase metadata", err)
	}

	return RunInTxWithRetry(ctx, r.db, maxTxRetries, func(tx DBTX) (*entitlement.ReconciliationEntry, error) {
		row, err := r.queries.GetPackage(ctx, tx, rec.PackageID)
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to load package", err)
		}
		pkg := toPackage(row)

		recordedAt, err := r.queries.InsertLedgerEntry(ctx, tx, InsertLedgerEntryParams{
			TransactionID: rec.TransactionID,
			UserID:        pgconv.UUIDToPgtype(rec.UserID),
			PackageID:     pgconv.UUIDToPgtype(rec.PackageID),
			ProductID:     rec.ProductID,
			PurchaseToken: rec.PurchaseToken,
			Platform:      rec.Platform,
			PurchasedAt:   pgconv.TimeToPgtype(rec.PurchasedAt),
			Metadata:      metadata,
		})
		if pgconv.IsNoRows(err) {
			return r.duplicate(ctx, tx, rec)
		}
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to record purchase", err)
		}

		if err := r.grant(ctx, tx, rec.UserID, pkg); err != nil {
			return nil, err
		}

		return &entitlement.ReconciliationEntry{
			TransactionID: rec.TransactionID,
			UserID:        rec.UserID,
			ProductID:     rec.ProductID,
			PackageID:     rec.PackageID,
			Status:        entitlement.StatusGranted,
			RecordedAt:    pgconv.TimeFromPgtype(recordedAt),
		}, nil
	})
}

func (r *Repository) duplicate(ctx context.Context, tx DBTX, rec entitlement.PurchaseRecord) (*entitlement.ReconciliationEntry, error) {
	row, err := r.queries.GetLedgerEntry(ctx, tx, rec.TransactionID)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to load recorded purchase", err)
	}

	entry := &entitlement.ReconciliationEntry{
		TransactionID: row.TransactionID,
		UserID:        pgconv.UUIDFromPgtype(row.UserID),
		ProductID:     row.ProductID,
		PackageID:     pgconv.UUIDFromPgtype(row.PackageID),
		Status:        entitlement.StatusDuplicate,
		RecordedAt:    pgconv.TimeFromPgtype(row.RecordedAt),
	}
	if entry.UserID != rec.UserID {
		r.logger.Warn("transaction already recorded for another user",
			"transaction_id", rec.TransactionID,
			"recorded_user_id", entry.UserID.String(),
			"reporting_user_id", rec.UserID.String())
	}
	return entry, nil
}

func (r *Repository) grant(ctx context.Context, tx DBTX, userID uuid.UUID, pkg entitlement.Package) error {
	switch pkg.Category {
	case entitlement.CategoryPremium:
		err := r.queries.ExtendSubscription(ctx, tx, ExtendSubscriptionParams{
			UserID:       pgconv.UUIDToPgtype(userID),
			PackageID:    pgconv.UUIDToPgtype(pkg.ID),
			DurationType: pkg.DurationType,
			From:         pgconv.TimeToPgtype(r.clock.Now()),
			Days:         int32(pkg.DurationDays),
		})
		if err != nil {
			return infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to extend subscription", err)
		}
	case entitlement.CategoryCredit:
		if err := r.queries.AddCredits(ctx, tx, userID, pkg.CreditType, int32(pkg.Quantity)); err != nil {
			return infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to add credits", err)
		}
	default:
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "unknown package category "+string(pkg.Category), nil)
	}
	return nil
}

func (r *Repository) ListPackages(ctx context.Context) ([]entitlement.Package, error) {
	rows, err := r.queries.ListActivePackages(ctx, r.db)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to list packages", err)
	}

	packages := make([]entitlement.Package, 0, len(rows))
	for _, row := range rows {
		packages = append(packages, toPackage(row))
	}
	return packages, nil
}

func (r *Repository) GetCredits(ctx context.Context, userID uuid.UUID) ([]entitlement.Credit, error) {
	rows, err := r.queries.ListCredits(ctx, r.db, userID)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to list credits", err)
	}

	credits := make([]entitlement.Credit, 0, len(rows))
	for _, row := range rows {
		credits = append(credits, entitlement.Credit{CreditType: row.CreditType, Amount: int(row.Amount)})
	}
	return credits, nil
}

// GetActiveSubscription returns nil without error when the user has no unexpired subscription.
func (r *Repository) GetActiveSubscription(ctx context.Context, userID uuid.UUID) (*entitlement.ActiveSubscription, error) {
	row, err := r.queries.GetActiveSubscription(ctx, r.db, userID, pgconv.TimeToPgtype(r.clock.Now()))
	if pgconv.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to get subscription", err)
	}

	return &entitlement.ActiveSubscription{
		PackageID:    pgconv.UUIDFromPgtype(row.PackageID),
		DurationType: row.DurationType,
		ExpiresAt:    pgconv.TimeFromPgtype(row.ExpiresAt),
	}, nil
}

func toPackage(row Packages) entitlement.Package {
	return entitlement.Package{
		ID:           pgconv.UUIDFromPgtype(row.ID),
		Category:     entitlement.Category(row.Category),
		CreditType:   row.CreditType,
		DurationType: row.DurationType,
		Quantity:     int(row.Quantity),
		DurationDays: int(row.DurationDays),
	}
}
