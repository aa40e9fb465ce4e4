package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Packages struct {
	ID           pgtype.UUID
	Category     string
	CreditType   string
	DurationType string
	Quantity     int32
	DurationDays int32
}

type PurchaseLedger struct {
	TransactionID string
	UserID        pgtype.UUID
	PackageID     pgtype.UUID
	ProductID     string
	RecordedAt    pgtype.Timestamptz
}

type UserCredits struct {
	CreditType string
	Amount     int32
}

type UserSubscriptions struct {
	PackageID    pgtype.UUID
	DurationType string
	ExpiresAt    pgtype.Timestamptz
}

type InsertLedgerEntryParams struct {
	TransactionID string
	UserID        pgtype.UUID
	PackageID     pgtype.UUID
	ProductID     string
	PurchaseToken string
	Platform      string
	PurchasedAt   pgtype.Timestamptz
	Metadata      []byte
}

type ExtendSubscriptionParams struct {
	UserID       pgtype.UUID
	PackageID    pgtype.UUID
	DurationType string
	From         pgtype.Timestamptz
	Days         int32
}

type Queries struct{}

func New() *Queries {
	return &Queries{}
}

const getPackage = `-- name: GetPackage :one
SELECT id, category, credit_type, duration_type, quantity, duration_days
FROM packages
WHERE id = $1 AND active
`

func (q *Queries) GetPackage(ctx context.Context, db DBTX, id uuid.UUID) (Packages, error) {
	row := db.QueryRow(ctx, getPackage, id)
	var i Packages
	err := row.Scan(&i.ID, &i.Category, &i.CreditType, &i.DurationType, &i.Quantity, &i.DurationDays)
	return i, err
}

const listActivePackages = `-- name: ListActivePackages :many
SELECT id, category, credit_type, duration_type, quantity, duration_days
FROM packages
WHERE active
ORDER BY created_at, id
`

func (q *Queries) ListActivePackages(ctx context.Context, db DBTX) ([]Packages, error) {
	rows, err := db.Query(ctx, listActivePackages)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Packages
	for rows.Next() {
		var i Packages
		if err := rows.Scan(&i.ID, &i.Category, &i.CreditType, &i.DurationType, &i.Quantity, &i.DurationDays); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const insertLedgerEntry = `-- name: InsertLedgerEntry :one
INSERT INTO purchase_ledger (
    transaction_id, user_id, package_id, product_id, purchase_token, platform, purchased_at, metadata
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (transaction_id) DO NOTHING
RETURNING recorded_at
`

// InsertLedgerEntry returns pgx.ErrNoRows when the transaction id is already recorded.
func (q *Queries) InsertLedgerEntry(ctx context.Context, db DBTX, arg InsertLedgerEntryParams) (pgtype.Timestamptz, error) {
	row := db.QueryRow(ctx, insertLedgerEntry,
		arg.TransactionID,
		arg.UserID,
		arg.PackageID,
		arg.ProductID,
		arg.PurchaseToken,
		arg.Platform,
		arg.PurchasedAt,
		arg.Metadata,
	)
	var recordedAt pgtype.Timestamptz
	err := row.Scan(&recordedAt)
	return recordedAt, err
}

const getLedgerEntry = `-- name: GetLedgerEntry :one
SELECT transaction_id, user_id, package_id, product_id, recorded_at
FROM purchase_ledger
WHERE transaction_id = $1
`

func (q *Queries) GetLedgerEntry(ctx context.Context, db DBTX, transactionID string) (PurchaseLedger, error) {
	row := db.QueryRow(ctx, getLedgerEntry, transactionID)
	var i PurchaseLedger
	err := row.Scan(&i.TransactionID, &i.UserID, &i.PackageID, &i.ProductID, &i.RecordedAt)
	return i, err
}

const addCredits = `-- name: AddCredits :exec
INSERT INTO user_credits (user_id, credit_type, amount)
VALUES ($1, $2, $3)
ON CONFLICT (user_id, credit_type)
DO UPDATE SET amount = user_credits.amount + EXCLUDED.amount, updated_at = now()
`

func (q *Queries) AddCredits(ctx context.Context, db DBTX, userID uuid.UUID, creditType string, amount int32) error {
	_, err := db.Exec(ctx, addCredits, userID, creditType, amount)
	return err
}

const extendSubscription = `-- name: ExtendSubscription :exec
INSERT INTO user_subscriptions (user_id, package_id, duration_type, expires_at)
VALUES ($1, $2, $3, $4::timestamptz + make_interval(days => $5))
ON CONFLICT (user_id)
DO UPDATE SET
    package_id = EXCLUDED.package_id,
    duration_type = EXCLUDED.duration_type,
    expires_at = GREATEST(user_subscriptions.expires_at, $4::timestamptz) + make_interval(days => $5),
    updated_at = now()
`

// ExtendSubscription stacks the new period on top of any time left on the current one.
func (q *Queries) ExtendSubscription(ctx context.Context, db DBTX, arg ExtendSubscriptionParams) error {
	_, err := db.Exec(ctx, extendSubscription, arg.UserID, arg.PackageID, arg.DurationType, arg.From, arg.Days)
	return err
}

const listCredits = `-- name: ListCredits :many
SELECT credit_type, amount
FROM user_credits
WHERE user_id = $1
ORDER BY credit_type
`

func (q *Queries) ListCredits(ctx context.Context, db DBTX, userID uuid.UUID) ([]UserCredits, error) {
	rows, err := db.Query(ctx, listCredits, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []UserCredits
	for rows.Next() {
		var i UserCredits
		if err := rows.Scan(&i.CreditType, &i.Amount); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const getActiveSubscription = `-- name: GetActiveSubscription :one
SELECT package_id, duration_type, expires_at
FROM user_subscriptions
WHERE user_id = $1 AND expires_at > $2
`

func (q *Queries) GetActiveSubscription(ctx context.Context, db DBTX, userID uuid.UUID, now pgtype.Timestamptz) (UserSubscriptions, error) {
	row := db.QueryRow(ctx, getActiveSubscription, userID, now)
	var i UserSubscriptions
	err := row.Scan(&i.PackageID, &i.DurationType, &i.ExpiresAt)
	return i, err
}
