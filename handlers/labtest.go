package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medicore/models"
	"medicore/services/labtest"
	"medicore/utils"
)

// LabTestHandler serves the lab-test catalog and bookings.
type LabTestHandler struct {
	Svc labtest.Service
}

// NewLabTestHandler constructs a LabTestHandler.
func NewLabTestHandler(svc labtest.Service) *LabTestHandler {
	return &LabTestHandler{Svc: svc}
}

// ListTests handles GET /api/lab-tests.
func (h *LabTestHandler) ListTests(c *gin.Context) {
	tests, err := h.Svc.ListTests(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tests)
}

// Book handles POST /api/lab-bookings.
func (h *LabTestHandler) Book(c *gin.Context) {
	var input models.BookLabTestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	booking, err := h.Svc.BookLabTest(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// Cancel handles POST /api/lab-bookings/:id/cancel.
func (h *LabTestHandler) Cancel(c *gin.Context) {
	if err := h.Svc.CancelBooking(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListByClinic handles GET /api/lab-bookings/clinic/:id?date=YYYY-MM-DD,
// the lab day sheet for clinic staff.
func (h *LabTestHandler) ListByClinic(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "date query parameter is required")
		return
	}

	bookings, err := h.Svc.ListActiveBookings(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBooking handles GET /api/lab-bookings/:id.
func (h *LabTestHandler) GetBooking(c *gin.Context) {
	booking, err := h.Svc.GetBookingByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}
