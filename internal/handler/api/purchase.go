package api

import (
	"net/http"

	reqdto "purchase-engine/internal/handler/dto/request"
	resdto "purchase-engine/internal/handler/dto/response"
	"purchase-engine/internal/handler/httperr"
	"purchase-engine/internal/handler/middleware"
	"purchase-engine/internal/usecase"

	"github.com/gin-gonic/gin"
)

type PurchaseHandler struct {
	purchases usecase.PurchaseCommands
	restores  usecase.RestoreCommands
}

func NewPurchaseHandler(purchases usecase.PurchaseCommands, restores usecase.RestoreCommands) *PurchaseHandler {
	return &PurchaseHandler{purchases: purchases, restores: restores}
}

// @Summary Purchase product
// @Description Start a purchase and wait for the store outcome. Cancelled or failed purchases return 200 with a failure body.
// @Tags purchases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.PurchaseRequest true "Purchase request"
// @Success 200 {object} resdto.PurchaseResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /purchases [post]
func (h *PurchaseHandler) Purchase(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, middleware.ErrUnauthenticated, "Unauthorized", nil)
		return
	}
	var req reqdto.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	res, err := h.purchases.Purchase(c.Request.Context(), userID, req.ProductID)
	if err != nil {
		abortWithUsecaseError(c, err, "Purchase failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromPurchaseResult(res))
}

// @Summary Restore purchases
// @Description Reconcile every purchase the store reports as owned
// @Tags purchases
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.RestoreResponse
// @Failure 502 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /purchases/restore [post]
func (h *PurchaseHandler) Restore(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, middleware.ErrUnauthenticated, "Unauthorized", nil)
		return
	}

	res, err := h.restores.Restore(c.Request.Context(), userID)
	if err != nil {
		abortWithUsecaseError(c, err, "Restore failed")
		return
	}
	body, err := resdto.FromRestoreResult(res)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render restore result", nil)
		return
	}
	c.JSON(http.StatusOK, body)
}
