package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"purchase-engine/internal/handler/httperr"
	"purchase-engine/internal/pkg/config"
	"purchase-engine/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const BridgeSecretHeader = "X-Bridge-Secret"

var ErrBridgeUnauthenticated = errs.New("bridge credential rejected")

// BridgeMiddleware guards the native bridge ingress. Events posted there resolve
// pending purchases, so only the bridge holding the shared secret may post them.
type BridgeMiddleware struct {
	secret []byte
}

func NewBridgeMiddleware(cfg config.Config) *BridgeMiddleware {
	if cfg.Bridge.Secret == "" {
		slog.Warn("BRIDGE_SECRET is not set, platform event ingress rejects every request")
	}
	return &BridgeMiddleware{secret: []byte(cfg.Bridge.Secret)}
}

func (m *BridgeMiddleware) RequireBridge() gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(BridgeSecretHeader)
		if got == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, ErrBridgeUnauthenticated, "Bridge credential required", nil)
			return
		}
		if len(m.secret) == 0 || subtle.ConstantTimeCompare([]byte(got), m.secret) != 1 {
			slog.Warn("Platform event rejected", "client_ip", c.ClientIP())
			httperr.AbortWithError(c, http.StatusUnauthorized, ErrBridgeUnauthenticated, "Invalid bridge credential", nil)
			return
		}
		c.Next()
	}
}
