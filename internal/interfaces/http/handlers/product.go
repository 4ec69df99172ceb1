// internal/interfaces/http/handlers/product.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"gorm.io/gorm"
)

// ProductHandler handles catalog requests
type ProductHandler struct {
	service *product.Service
}

// NewProductHandler creates a new product handler
func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{
		service: product.NewService(db),
	}
}

// ListProducts returns the catalog, optionally filtered by category
func (h *ProductHandler) ListProducts(c *gin.Context) {
	category := c.Query("category")

	products, err := h.service.ListProducts(category)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": products,
	})
}

// GetProduct returns one product with its rating rollup
func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.service.GetProduct(productID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": result,
	})
}
