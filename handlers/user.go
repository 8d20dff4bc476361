package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"medicore/middleware"
	"medicore/models"
	"medicore/services/user"
	"medicore/utils"
)

// UserHandler serves account registration and authentication.
type UserHandler struct {
	Svc user.Service
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(svc user.Service) *UserHandler {
	return &UserHandler{Svc: svc}
}

// Register handles POST /api/auth/register.
func (h *UserHandler) Register(c *gin.Context) {
	var input models.RegisterUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	u, err := h.Svc.Register(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			utils.JSONError(c, http.StatusConflict, "email taken", err.Error())
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// Login handles POST /api/auth/login.
func (h *UserHandler) Login(c *gin.Context) {
	var input models.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	u, token, err := h.Svc.Authenticate(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, "unauthorized", err.Error())
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u, "token": token})
}

// Me handles GET /api/auth/me.
func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.Svc.GetByID(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
