package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medicore/middleware"
	"medicore/models"
	"medicore/services/order"
	"medicore/utils"
)

// OrderHandler serves the pharmacy order endpoints.
type OrderHandler struct {
	Svc order.Service
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(svc order.Service) *OrderHandler {
	return &OrderHandler{Svc: svc}
}

// Place handles POST /api/orders. The caller's identity from the token
// overrides whatever userId the body claims.
func (h *OrderHandler) Place(c *gin.Context) {
	var input models.PlaceOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	input.UserID = c.GetString(middleware.ContextUserID)

	o, err := h.Svc.PlaceOrder(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

// Cancel handles POST /api/orders/:id/cancel and restores the reserved
// stock.
func (h *OrderHandler) Cancel(c *gin.Context) {
	if err := h.Svc.CancelOrder(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetByID handles GET /api/orders/:id.
func (h *OrderHandler) GetByID(c *gin.Context) {
	o, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// ListMine handles GET /api/orders and returns the caller's orders.
func (h *OrderHandler) ListMine(c *gin.Context) {
	orders, err := h.Svc.ListByUser(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// CreatePaymentIntent handles POST /api/orders/:id/payment-intent. The
// intent is recorded on the order before it is returned.
func (h *OrderHandler) CreatePaymentIntent(c *gin.Context) {
	pay, err := h.Svc.CreatePaymentIntent(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pay)
}

// UpdateStatus handles PATCH /api/orders/:id/status (staff only): the
// fulfilment steps paid, shipped, delivered.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	o, err := h.Svc.UpdateStatus(c.Request.Context(), c.Param("id"), input.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}
