package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	productRepo "medicore/database/repository/product"
	"medicore/models"
	"medicore/services/availability"
	"medicore/utils"
)

// ProductHandler serves the pharmacy catalog.
type ProductHandler struct {
	Repo productRepo.ProductRepository
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(repo productRepo.ProductRepository) *ProductHandler {
	return &ProductHandler{Repo: repo}
}

// Create handles POST /api/products (staff only).
func (h *ProductHandler) Create(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if product.Price < 0 || product.Stock < 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "price and stock must be non-negative")
		return
	}
	product.Active = true

	if err := h.Repo.Create(c.Request.Context(), &product); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// GetByID handles GET /api/products/:id.
func (h *ProductHandler) GetByID(c *gin.Context) {
	product, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == productRepo.ErrNotFound {
			respondServiceError(c, availability.NotFoundError{Resource: "product", ID: c.Param("id")})
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// List handles GET /api/products?category=.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.Repo.List(c.Request.Context(), c.Query("category"), true)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// Update handles PATCH /api/products/:id (staff only). Stock adjustments
// outside order placement go through here.
func (h *ProductHandler) Update(c *gin.Context) {
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	delete(updates, "id")

	if err := h.Repo.Update(c.Request.Context(), c.Param("id"), updates); err != nil {
		if err == productRepo.ErrNotFound {
			respondServiceError(c, availability.NotFoundError{Resource: "product", ID: c.Param("id")})
			return
		}
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
