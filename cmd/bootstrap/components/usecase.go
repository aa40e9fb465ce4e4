package components

import (
	"log/slog"

	"purchase-engine/internal/pkg/clock"
	"purchase-engine/internal/pkg/config"
	"purchase-engine/internal/pkg/metrics"
	"purchase-engine/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewCatalog,
	usecase.NewConnectionManager,
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		fx.Annotate(
			func(c *usecase.Catalog) *usecase.Catalog { return c },
			fx.As(new(usecase.CatalogQueries)),
		),
		usecase.NewEntitlements,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
		NewAcknowledger,
		NewReconciler,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewPurchaseCommands,
		NewRestoreCommands,
	),
)

func NewCatalog(store usecase.Store, cfg config.Config, logger *slog.Logger) *usecase.Catalog {
	return usecase.NewCatalog(store, cfg.Store, logger)
}

func NewAcknowledger(port usecase.AckPort, store usecase.Store, clock clock.Clock, cfg config.Config, logger *slog.Logger, m *metrics.Metrics) usecase.Acknowledger {
	return usecase.NewAcknowledger(port, store, clock, cfg.Ack, logger, m)
}

func NewReconciler(ledger usecase.Ledger, store usecase.Store, cfg config.Config, clock clock.Clock, logger *slog.Logger, m *metrics.Metrics) usecase.Reconciler {
	return usecase.NewReconciler(ledger, store, cfg.App, clock, logger, m)
}

func NewPurchaseCommands(
	conn usecase.ConnectionManager,
	catalog *usecase.Catalog,
	store usecase.Store,
	events usecase.EventSource,
	ack usecase.Acknowledger,
	reconciler usecase.Reconciler,
	entitlements usecase.Entitlements,
	clock clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
	m *metrics.Metrics,
) usecase.PurchaseCommands {
	return usecase.NewPurchaseCommands(conn, catalog, store, events, ack, reconciler, entitlements, clock, cfg.App, logger, m)
}

func NewRestoreCommands(
	conn usecase.ConnectionManager,
	store usecase.Store,
	ledger usecase.Ledger,
	ack usecase.Acknowledger,
	reconciler usecase.Reconciler,
	entitlements usecase.Entitlements,
	cfg config.Config,
	logger *slog.Logger,
	m *metrics.Metrics,
) usecase.RestoreCommands {
	return usecase.NewRestoreCommands(conn, store, ledger, ack, reconciler, entitlements, cfg.Restore, logger, m)
}
