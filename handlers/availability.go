package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medicore/services/availability"
	"medicore/utils"
)

// AvailabilityHandler serves the slot-availability view.
type AvailabilityHandler struct {
	Svc availability.Service
}

// NewAvailabilityHandler constructs an AvailabilityHandler.
func NewAvailabilityHandler(svc availability.Service) *AvailabilityHandler {
	return &AvailabilityHandler{Svc: svc}
}

// GetSlots handles GET /api/clinics/:id/slots?date=YYYY-MM-DD.
func (h *AvailabilityHandler) GetSlots(c *gin.Context) {
	clinicID := c.Param("id")
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "date query parameter is required")
		return
	}

	slots, err := h.Svc.GetAvailableSlots(c.Request.Context(), clinicID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.GetLogger().Debug("availability served",
		zap.String("clinicId", clinicID),
		zap.String("date", date),
		zap.Int("slots", len(slots)))
	c.JSON(http.StatusOK, gin.H{"closed": false, "slots": slots})
}
