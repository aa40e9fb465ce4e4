package api

import (
	"net/http"

	resdto "purchase-engine/internal/handler/dto/response"
	"purchase-engine/internal/handler/httperr"
	"purchase-engine/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	q    usecase.CatalogQueries
	conn usecase.ConnectionManager
}

func NewProductHandler(q usecase.CatalogQueries, conn usecase.ConnectionManager) *ProductHandler {
	return &ProductHandler{q: q, conn: conn}
}

// @Summary List products
// @Description List the catalog loaded from the store
// @Tags products
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.ProductListResponse
// @Failure 503 {object} httperr.Response
// @Router /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	if !h.conn.Available() {
		abortWithUsecaseError(c, usecase.ErrConnectionUnavailable, "")
		return
	}
	body, err := resdto.FromProducts(h.q.Products())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render products", nil)
		return
	}
	c.JSON(http.StatusOK, body)
}
