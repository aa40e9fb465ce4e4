package bootstrap

import (
	"purchase-engine/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	MetricsModule,
	DBModule,
	JWTModule,
	components.PlatformModule,
	components.LedgerModule,
	components.UseCaseModule,
	components.HandlerModule,
)
