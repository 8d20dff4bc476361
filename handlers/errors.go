package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"medicore/services/appointment"
	"medicore/services/availability"
	"medicore/services/order"
	"medicore/utils"
)

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Raw persistence errors never reach the client.
func respondServiceError(c *gin.Context, err error) {
	var (
		notFound    availability.NotFoundError
		closed      availability.ClosedError
		unavailable availability.SlotUnavailableError
		badDate     availability.InvalidDateError
		badFormat   utils.FormatError
		badInput    appointment.ValidationError
		assignment  appointment.InvalidAssignmentError
		transition  appointment.InvalidTransitionError
		stock       order.InsufficientStockError
		orderTrans  order.InvalidTransitionError
		notPayable  order.NotPayableError
	)

	switch {
	case errors.As(err, &notFound):
		utils.JSONError(c, http.StatusNotFound, "not found", err.Error())
	case errors.As(err, &closed):
		// Clinic closed is a normal business state, not a failure.
		c.JSON(http.StatusOK, gin.H{"closed": true, "slots": []any{}})
	case errors.As(err, &unavailable):
		utils.JSONError(c, http.StatusConflict, "slot unavailable", err.Error())
	case errors.As(err, &stock):
		utils.JSONError(c, http.StatusConflict, "insufficient stock", err.Error())
	case errors.As(err, &notPayable):
		utils.JSONError(c, http.StatusConflict, "order not payable", err.Error())
	case errors.As(err, &badDate), errors.As(err, &badFormat), errors.As(err, &badInput):
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
	case errors.As(err, &assignment), errors.As(err, &transition), errors.As(err, &orderTrans):
		utils.JSONError(c, http.StatusUnprocessableEntity, "request not allowed", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "an unexpected error occurred")
	}
}
