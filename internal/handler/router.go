package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"purchase-engine/internal/handler/api"
	"purchase-engine/internal/handler/middleware"
	"purchase-engine/internal/pkg/config"
	"purchase-engine/internal/pkg/metrics"
	"purchase-engine/internal/usecase"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Product     *api.ProductHandler
	Purchase    *api.PurchaseHandler
	Entitlement *api.EntitlementHandler
	Platform    *api.PlatformHandler
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *middleware.Logger,
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	bridgeMiddleware *middleware.BridgeMiddleware,
	conn usecase.ConnectionManager,
	m *metrics.Metrics,
) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, handlers, authMiddleware, bridgeMiddleware, conn, m)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	h Handlers,
	authMiddleware *middleware.AuthMiddleware,
	bridgeMiddleware *middleware.BridgeMiddleware,
	conn usecase.ConnectionManager,
	m *metrics.Metrics,
) {
	engine.GET("/health", healthCheck(conn))
	engine.GET("/metrics", gin.WrapH(m.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		products := apiGroup.Group("/products")
		products.Use(authMiddleware.RequireAuth())
		addRoutes(products, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Product.List},
		})

		purchases := apiGroup.Group("/purchases")
		purchases.Use(authMiddleware.RequireAuth())
		addRoutes(purchases, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Purchase.Purchase},
			{Method: http.MethodPost, Path: "/restore", Handler: h.Purchase.Restore},
		})

		entitlements := apiGroup.Group("/entitlements")
		entitlements.Use(authMiddleware.RequireAuth())
		addRoutes(entitlements, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Entitlement.Get},
		})

		platform := apiGroup.Group("/platform")
		addRoutes(platform, []route{
			{Method: http.MethodPost, Path: "/events", Handler: h.Platform.Events, Mw: []gin.HandlerFunc{bridgeMiddleware.RequireBridge()}},
			{Method: http.MethodPost, Path: "/connect", Handler: h.Platform.Connect, Mw: []gin.HandlerFunc{authMiddleware.RequireAuth()}},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy and whether the store is connected
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(conn usecase.ConnectionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := "disconnected"
		if conn.Available() {
			store = "connected"
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"store":  store,
		})
	}
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
