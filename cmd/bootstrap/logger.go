package bootstrap

import (
	"log/slog"

	"purchase-engine/internal/handler/middleware"
	"purchase-engine/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
		NewSlogLogger,
	),
)

func NewLogger(cfg config.Config) *middleware.Logger {
	return middleware.NewLogger(cfg.Log)
}

// NewSlogLogger also installs the logger as the process default, so package-level
// slog calls share the same handler.
func NewSlogLogger(logger *middleware.Logger) *slog.Logger {
	l := logger.GetSlogLogger()
	slog.SetDefault(l)
	return l
}
