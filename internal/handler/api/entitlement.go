package api

import (
	"net/http"
	"strconv"

	"purchase-engine/internal/domain/entitlement"
	resdto "purchase-engine/internal/handler/dto/response"
	"purchase-engine/internal/handler/httperr"
	"purchase-engine/internal/handler/middleware"
	"purchase-engine/internal/usecase"

	"github.com/gin-gonic/gin"
)

type EntitlementHandler struct {
	entitlements usecase.Entitlements
}

func NewEntitlementHandler(entitlements usecase.Entitlements) *EntitlementHandler {
	return &EntitlementHandler{entitlements: entitlements}
}

// @Summary Get entitlements
// @Description Cached subscription and credit balances. refresh=true reloads them from the ledger.
// @Tags entitlements
// @Produce json
// @Security BearerAuth
// @Param refresh query bool false "Reload from the ledger"
// @Success 200 {object} resdto.EntitlementsResponse
// @Failure 500 {object} httperr.Response
// @Router /entitlements [get]
func (h *EntitlementHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, middleware.ErrUnauthenticated, "Unauthorized", nil)
		return
	}
	refresh, _ := strconv.ParseBool(c.Query("refresh"))

	if !refresh {
		if snap, ok := h.entitlements.Current(userID); ok {
			renderSnapshot(c, snap)
			return
		}
	}

	snap, err := h.entitlements.Refresh(c.Request.Context(), userID)
	if err != nil {
		abortWithUsecaseError(c, err, "Failed to load entitlements")
		return
	}
	renderSnapshot(c, snap)
}

func renderSnapshot(c *gin.Context, snap *entitlement.Snapshot) {
	body, err := resdto.FromSnapshot(snap)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render entitlements", nil)
		return
	}
	c.JSON(http.StatusOK, body)
}
