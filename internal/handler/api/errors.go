package api

import (
	"context"
	"net/http"

	"purchase-engine/internal/handler/httperr"
	"purchase-engine/internal/pkg/errs"
	"purchase-engine/internal/usecase"

	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	target error
	status int
	msg    string
}

// Order matters: an offer-missing error also matches ErrProductNotFound.
var usecaseErrors = []errorMapping{
	{usecase.ErrConnectionUnavailable, http.StatusServiceUnavailable, "Store connection unavailable"},
	{usecase.ErrOfferParameterMissing, http.StatusUnprocessableEntity, "Subscription offer unavailable"},
	{usecase.ErrProductNotFound, http.StatusNotFound, "Product not found"},
	{usecase.ErrPurchaseInProgress, http.StatusConflict, "Another purchase is in progress"},
	{usecase.ErrLocalValidationFailed, http.StatusUnprocessableEntity, "Purchase validation failed"},
	{usecase.ErrPackageUnresolved, http.StatusUnprocessableEntity, "No package matches product"},
	{usecase.ErrBackendValidationFailed, http.StatusBadGateway, "Purchase could not be recorded"},
	{usecase.ErrPlatformFailure, http.StatusBadGateway, "Store request failed"},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, "Timed out waiting for the store"},
	{context.Canceled, http.StatusRequestTimeout, "Request cancelled"},
}

func abortWithUsecaseError(c *gin.Context, err error, fallback string) {
	for _, m := range usecaseErrors {
		if errs.Is(err, m.target) {
			httperr.AbortWithError(c, m.status, err, m.msg, nil)
			return
		}
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, fallback, nil)
}
