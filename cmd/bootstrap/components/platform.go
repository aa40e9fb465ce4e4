package components

import (
	"context"
	"log/slog"

	"purchase-engine/internal/handler/api"
	"purchase-engine/internal/infra/platform/eventbus"
	"purchase-engine/internal/infra/platform/googleplay"
	"purchase-engine/internal/infra/platform/sandbox"
	"purchase-engine/internal/pkg/clock"
	"purchase-engine/internal/pkg/config"
	"purchase-engine/internal/pkg/errs"
	"purchase-engine/internal/usecase"

	"go.uber.org/fx"
)

var PlatformModule = fx.Module("platform",
	fx.Provide(
		eventbus.New,
		fx.Annotate(
			func(bus *eventbus.Bus) *eventbus.Bus { return bus },
			fx.As(new(api.EventDispatcher)),
			fx.As(new(usecase.EventSource)),
		),
		NewSandboxStore,
		fx.Annotate(
			func(s *sandbox.Store) *sandbox.Store { return s },
			fx.As(new(usecase.Store)),
		),
		NewAckPort,
	),
)

// NewSandboxStore is the only store this server ships, and it grants purchases
// nobody paid for, so a production build fails to start instead of wiring it.
func NewSandboxStore(cfg config.Config, bus *eventbus.Bus, clock clock.Clock, logger *slog.Logger) (*sandbox.Store, error) {
	if cfg.App.IsProduction() {
		return nil, errs.Wrapf(sandbox.ErrProductionUse, "APP_ENV=%s", cfg.App.Env)
	}
	return sandbox.NewStore(cfg.Store, bus, clock, logger)
}

// NewAckPort acknowledges through the Developer API when a service account is
// configured and through the store otherwise.
func NewAckPort(cfg config.Config, store *sandbox.Store, logger *slog.Logger) (usecase.AckPort, error) {
	if !cfg.GooglePlay.Enabled() {
		return store, nil
	}
	ack, err := googleplay.New(context.Background(), cfg.GooglePlay, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("acknowledging through the Google Play Developer API", "package_name", cfg.GooglePlay.PackageName)
	return ack, nil
}
