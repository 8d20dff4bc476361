package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medicore/models"
	"medicore/services/appointment"
	"medicore/utils"
)

// AppointmentHandler serves appointment booking and status transitions.
type AppointmentHandler struct {
	Svc appointment.Service
}

// NewAppointmentHandler constructs an AppointmentHandler.
func NewAppointmentHandler(svc appointment.Service) *AppointmentHandler {
	return &AppointmentHandler{Svc: svc}
}

// Create handles POST /api/appointments.
func (h *AppointmentHandler) Create(c *gin.Context) {
	var input models.CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	appt, err := h.Svc.CreateAppointment(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// UpdateStatus handles PATCH /api/appointments/:id/status.
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	appt, err := h.Svc.UpdateStatus(c.Request.Context(), c.Param("id"), input.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// GetByID handles GET /api/appointments/:id.
func (h *AppointmentHandler) GetByID(c *gin.Context) {
	appt, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// ListByPatient handles GET /api/appointments/patient/:id.
func (h *AppointmentHandler) ListByPatient(c *gin.Context) {
	appts, err := h.Svc.ListByPatient(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

// ListByDoctor handles GET /api/appointments/doctor/:id?date=YYYY-MM-DD.
func (h *AppointmentHandler) ListByDoctor(c *gin.Context) {
	appts, err := h.Svc.ListByDoctor(c.Request.Context(), c.Param("id"), c.Query("date"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}
