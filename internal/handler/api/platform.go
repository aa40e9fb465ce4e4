package api

import (
	"io"
	"net/http"

	"purchase-engine/internal/handler/httperr"
	"purchase-engine/internal/usecase"

	"github.com/gin-gonic/gin"
)

const maxEventBytes = 1 << 20

// EventDispatcher decodes a raw platform event and publishes it to the purchase listeners.
type EventDispatcher interface {
	Dispatch(raw []byte) error
}

type PlatformHandler struct {
	dispatcher EventDispatcher
	conn       usecase.ConnectionManager
}

func NewPlatformHandler(dispatcher EventDispatcher, conn usecase.ConnectionManager) *PlatformHandler {
	return &PlatformHandler{dispatcher: dispatcher, conn: conn}
}

// @Summary Push platform event
// @Description Native bridge ingress for purchase_updated and purchase_error events
// @Tags platform
// @Accept json
// @Produce json
// @Success 202 {object} map[string]string
// @Security BridgeSecret
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /platform/events [post]
func (h *PlatformHandler) Events(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxEventBytes))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unreadable event", nil)
		return
	}
	if err := h.dispatcher.Dispatch(raw); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Malformed event", nil)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

// @Summary Connect store
// @Description Retry the store connection and catalog load
// @Tags platform
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 503 {object} httperr.Response
// @Router /platform/connect [post]
func (h *PlatformHandler) Connect(c *gin.Context) {
	if !h.conn.Initialize(c.Request.Context()) {
		abortWithUsecaseError(c, usecase.ErrConnectionUnavailable, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"connected": true})
}
