package handlers

import (
	"errors"
	"net/http"

	"payment-relay/internal/services"
	"payment-relay/pkg/common"

	"github.com/gin-gonic/gin"
)

// respondError maps the service error taxonomy onto HTTP status codes:
// validation, invalid receiver and already-processed are 400, missing
// records are 404, everything upstream or store related is 500.
func respondError(c *gin.Context, err error) {
	var validation *services.ValidationError
	var invalidReceiver *services.InvalidReceiverError
	var notFound *services.NotFoundError
	var alreadyProcessed *services.AlreadyProcessedError
	var gatewayAuth *services.GatewayAuthError
	var gateway *services.GatewayError

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(validation.Msg, nil))
	case errors.As(err, &invalidReceiver):
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(invalidReceiver.Msg, nil))
	case errors.As(err, &alreadyProcessed):
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(
			"Withdrawal request already processed",
			gin.H{"status": alreadyProcessed.Status},
		))
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, common.NewErrorResponse(notFound.Msg, nil))
	case errors.As(err, &gateway):
		var details interface{}
		if gateway.Body != "" {
			details = common.DecodeBody([]byte(gateway.Body))
		}
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Payment gateway error", details))
	case errors.As(err, &gatewayAuth):
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Payment gateway authentication failed", nil))
	default:
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Internal server error", err.Error()))
	}
}
