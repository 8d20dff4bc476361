package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	clinicRepo "medicore/database/repository/clinic"
	"medicore/models"
	"medicore/services/storage"
	"medicore/utils"
)

// ClinicHandler serves clinic management endpoints.
type ClinicHandler struct {
	Repo    clinicRepo.ClinicRepository
	Storage storage.StorageService
}

// NewClinicHandler constructs a ClinicHandler.
func NewClinicHandler(repo clinicRepo.ClinicRepository, store storage.StorageService) *ClinicHandler {
	return &ClinicHandler{Repo: repo, Storage: store}
}

// Create handles POST /api/clinics.
func (h *ClinicHandler) Create(c *gin.Context) {
	var clinic models.Clinic
	if err := c.ShouldBindJSON(&clinic); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if clinic.Hours.Weekday.Open == "" || clinic.Hours.Weekday.Close == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "weekday open and close hours are required")
		return
	}
	if w := clinic.Hours.Weekend; w != nil && (w.Open == "" || w.Close == "") {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "weekend hours need both open and close")
		return
	}
	switch clinic.Settings.SlotDurationMinutes {
	case 15, 30, 45, 60:
	default:
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "slot duration must be 15, 30, 45 or 60 minutes")
		return
	}

	if err := h.Repo.Create(c.Request.Context(), &clinic); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "failed to create clinic")
		return
	}
	c.JSON(http.StatusCreated, clinic)
}

// GetByID handles GET /api/clinics/:id.
func (h *ClinicHandler) GetByID(c *gin.Context) {
	clinic, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, clinicRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "not found", "clinic not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "clinic lookup failed")
		return
	}
	c.JSON(http.StatusOK, clinic)
}

// List handles GET /api/clinics.
func (h *ClinicHandler) List(c *gin.Context) {
	clinics, err := h.Repo.List(c.Request.Context(), c.Query("all") != "true")
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "clinic listing failed")
		return
	}
	c.JSON(http.StatusOK, clinics)
}

// AddDoctor handles PUT /api/clinics/:id/doctors/:doctorId.
func (h *ClinicHandler) AddDoctor(c *gin.Context) {
	if err := h.Repo.AddDoctor(c.Request.Context(), c.Param("id"), c.Param("doctorId")); err != nil {
		if errors.Is(err, clinicRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "not found", "clinic not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "roster update failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveDoctor handles DELETE /api/clinics/:id/doctors/:doctorId.
func (h *ClinicHandler) RemoveDoctor(c *gin.Context) {
	if err := h.Repo.RemoveDoctor(c.Request.Context(), c.Param("id"), c.Param("doctorId")); err != nil {
		if errors.Is(err, clinicRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "not found", "clinic not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "roster update failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadImage handles POST /api/clinics/:id/image. A replaced image is
// destroyed in storage on a best-effort basis.
func (h *ClinicHandler) UploadImage(c *gin.Context) {
	clinic, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, clinicRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "not found", "clinic not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "clinic lookup failed")
		return
	}

	file, _, err := c.Request.FormFile("image")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "image file is required")
		return
	}
	defer file.Close()

	url, err := h.Storage.UploadImage(c.Request.Context(), file, "clinics")
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "image upload failed")
		return
	}

	if err := h.Repo.Update(c.Request.Context(), clinic.ID, map[string]interface{}{"imageUrl": url}); err != nil {
		if errors.Is(err, clinicRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "not found", "clinic not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "clinic update failed")
		return
	}

	if publicID := storage.PublicIDFromURL(clinic.ImageURL); publicID != "" {
		if err := h.Storage.DeleteImage(c.Request.Context(), publicID); err != nil {
			utils.GetLogger().Warn("failed to delete replaced clinic image",
				zap.String("clinicId", clinic.ID),
				zap.String("publicId", publicID),
				zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, gin.H{"imageUrl": url})
}
