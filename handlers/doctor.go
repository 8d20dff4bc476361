package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	doctorRepo "medicore/database/repository/doctor"
	"medicore/models"
	"medicore/services/availability"
	"medicore/services/storage"
	"medicore/utils"
)

// DoctorHandler serves doctor profile endpoints.
type DoctorHandler struct {
	Repo    doctorRepo.DoctorRepository
	Storage storage.StorageService
}

// NewDoctorHandler constructs a DoctorHandler.
func NewDoctorHandler(repo doctorRepo.DoctorRepository, store storage.StorageService) *DoctorHandler {
	return &DoctorHandler{Repo: repo, Storage: store}
}

// Create handles POST /api/doctors (staff only).
func (h *DoctorHandler) Create(c *gin.Context) {
	var doctor models.Doctor
	if err := c.ShouldBindJSON(&doctor); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if doctor.Name == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "name is required")
		return
	}
	doctor.Active = true

	if err := h.Repo.Create(c.Request.Context(), &doctor); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doctor)
}

// GetByID handles GET /api/doctors/:id.
func (h *DoctorHandler) GetByID(c *gin.Context) {
	doctor, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == doctorRepo.ErrNotFound {
			respondServiceError(c, availability.NotFoundError{Resource: "doctor", ID: c.Param("id")})
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctor)
}

// ListByClinic handles GET /api/clinics/:id/doctors.
func (h *DoctorHandler) ListByClinic(c *gin.Context) {
	doctors, err := h.Repo.ListByClinic(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctors)
}

// Update handles PATCH /api/doctors/:id (staff only).
func (h *DoctorHandler) Update(c *gin.Context) {
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	delete(updates, "id")

	if err := h.Repo.Update(c.Request.Context(), c.Param("id"), updates); err != nil {
		if err == doctorRepo.ErrNotFound {
			respondServiceError(c, availability.NotFoundError{Resource: "doctor", ID: c.Param("id")})
			return
		}
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadImage handles POST /api/doctors/:id/image (staff only). A
// replaced image is destroyed in storage on a best-effort basis.
func (h *DoctorHandler) UploadImage(c *gin.Context) {
	doctor, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == doctorRepo.ErrNotFound {
			respondServiceError(c, availability.NotFoundError{Resource: "doctor", ID: c.Param("id")})
			return
		}
		respondServiceError(c, err)
		return
	}

	file, _, err := c.Request.FormFile("image")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "image file is required")
		return
	}
	defer file.Close()

	url, err := h.Storage.UploadImage(c.Request.Context(), file, "doctors")
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := h.Repo.Update(c.Request.Context(), doctor.ID, map[string]interface{}{"imageUrl": url}); err != nil {
		if err == doctorRepo.ErrNotFound {
			respondServiceError(c, availability.NotFoundError{Resource: "doctor", ID: c.Param("id")})
			return
		}
		respondServiceError(c, err)
		return
	}

	if publicID := storage.PublicIDFromURL(doctor.ImageURL); publicID != "" {
		if err := h.Storage.DeleteImage(c.Request.Context(), publicID); err != nil {
			utils.GetLogger().Warn("failed to delete replaced doctor image",
				zap.String("doctorId", doctor.ID),
				zap.String("publicId", publicID),
				zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, gin.H{"imageUrl": url})
}
