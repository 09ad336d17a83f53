package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-backoffice/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/sale"
	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
)

// conflicts are business rules answered with 409.
var conflicts = []error{
	appointment.ErrLocked,
	appointment.ErrSaleRequired,
	appointment.ErrInvalidTransition,
	appointment.ErrCompletionRequiresSale,
}

// writeError maps use case errors onto the HTTP error body. Anything
// unrecognised is logged and reported as fallback.
func writeError(c *gin.Context, logger *zap.Logger, err error, fallback string) {
	var ve httperr.ValidationError
	if errors.As(err, &ve) {
		httperr.Invalid(c, ve)
		return
	}

	if errors.Is(err, appointment.ErrNotFound) || errors.Is(err, sale.ErrNotFound) {
		httperr.NotFound(c, err.Error(), "Not found.")
		return
	}

	for _, target := range conflicts {
		if errors.Is(err, target) {
			httperr.Conflict(c, err.Error(), "Operation not allowed in the current state.")
			return
		}
	}

	var be httperr.BusinessError
	if errors.As(err, &be) {
		httperr.BadRequest(c, be.Code, "Invalid request.")
		return
	}

	logger.Error(fallback, zap.Error(err))
	httperr.Write(c, http.StatusInternalServerError, fallback, "Unexpected error.")
}
