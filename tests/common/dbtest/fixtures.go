//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by *pgxpool.Pool and pgx.Tx.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Package ids seeded for the default store catalog.
var (
	PremiumMonthlyID = uuid.MustParse("6f1c1f0e-3d5a-4a57-9a53-0b1f3c2a1001")
	PremiumYearlyID  = uuid.MustParse("6f1c1f0e-3d5a-4a57-9a53-0b1f3c2a1002")
	SuperLikePack5ID = uuid.MustParse("6f1c1f0e-3d5a-4a57-9a53-0b1f3c2a1003")
	BoostPack3ID     = uuid.MustParse("6f1c1f0e-3d5a-4a57-9a53-0b1f3c2a1004")
)

func CreateTestPackage(t *testing.T, db DBLike, category, creditType, durationType string, quantity, days int) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO packages (id, category, credit_type, duration_type, quantity, duration_days) VALUES ($1, $2, $3, $4, $5, $6)",
		id, category, creditType, durationType, quantity, days)
	require.NoError(t, err)
	return id
}

func CreditBalance(t *testing.T, db DBLike, userID uuid.UUID, creditType string) int {
	t.Helper()

	var amount int
	err := db.QueryRow(context.Background(),
		"SELECT COALESCE((SELECT amount FROM user_credits WHERE user_id = $1 AND credit_type = $2), 0)",
		userID, creditType).Scan(&amount)
	require.NoError(t, err)
	return amount
}

func LedgerRows(t *testing.T, db DBLike, transactionID string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM purchase_ledger WHERE transaction_id = $1", transactionID).Scan(&n)
	require.NoError(t, err)
	return n
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO packages (id, category, credit_type, duration_type, quantity, duration_days) VALUES
		    ($1, 'premium', '', 'monthly', 0, 30),
		    ($2, 'premium', '', 'yearly', 0, 365),
		    ($3, 'credit', 'super_like', 'pack_5', 5, 0),
		    ($4, 'credit', 'boost', 'pack_3', 3, 0)
		ON CONFLICT (id) DO NOTHING;
	`, PremiumMonthlyID, PremiumYearlyID, SuperLikePack5ID, BoostPack3ID)
	return err
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
