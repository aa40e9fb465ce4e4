package components

import (
	"purchase-engine/internal/handler"
	"purchase-engine/internal/handler/api"
	"purchase-engine/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewProductHandler,
		api.NewPurchaseHandler,
		api.NewEntitlementHandler,
		api.NewPlatformHandler,
		middleware.NewAuthMiddleware,
		middleware.NewBridgeMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	product *api.ProductHandler,
	purchase *api.PurchaseHandler,
	entitlement *api.EntitlementHandler,
	platform *api.PlatformHandler,
) handler.Handlers {
	return handler.Handlers{
		Product:     product,
		Purchase:    purchase,
		Entitlement: entitlement,
		Platform:    platform,
	}
}
