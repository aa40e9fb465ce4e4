package components

import (
	"purchase-engine/internal/infra/ledger"
	"purchase-engine/internal/usecase"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var LedgerModule = fx.Module("ledger",
	fx.Provide(
		fx.Annotate(
			ledger.New,
			fx.As(new(ledger.LedgerQueries)),
		),
		NewLedgerPool,
		fx.Annotate(
			ledger.NewRepository,
			fx.As(new(usecase.Ledger)),
		),
	),
)

func NewLedgerPool(pool *pgxpool.Pool) ledger.Pool {
	return pool
}
