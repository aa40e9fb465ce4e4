package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"purchase-engine/cmd/bootstrap"
	"purchase-engine/internal/pkg/config"
	"purchase-engine/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func init() {
	// Never expose debug output because of a misconfiguration
	gin.SetMode(gin.ReleaseMode)

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}
}

// @title           purchase-engine
// @version         1.0
// @description     Purchase orchestration and reconciliation for in-app store purchases.
// @description     Purchases are correlated with store events, acknowledged and recorded in the entitlement ledger.

// @BasePath  /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @securityDefinitions.apikey BridgeSecret
// @in header
// @name X-Bridge-Secret
func startServer(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, logger *slog.Logger, conn usecase.ConnectionManager) {
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			gin.EnableJsonDecoderDisallowUnknownFields()

			if !conn.Initialize(ctx) {
				logger.Warn("store unavailable at startup, connect later via /api/platform/connect")
			}

			logger.Info("🚀 starting server", "address", srv.Addr, "mode", gin.Mode(), "env", string(cfg.App.Env))
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("server failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("🛑 stopping server")
			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("server shutdown failed", "error", err)
			}
			return conn.Shutdown(ctx)
		},
	})
}

func main() {
	app := fx.New(
		bootstrap.Module,
		fx.Provide(
			func() *gin.Engine {
				return gin.New()
			},
		),
		fx.Invoke(
			startServer,
		),
	)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("application failed to start", "error", err)
		os.Exit(1)
	}

	<-app.Done()

	if err := app.Stop(context.Background()); err != nil {
		slog.Error("application failed to stop cleanly", "error", err)
	}

	slog.Info("application stopped")
}
