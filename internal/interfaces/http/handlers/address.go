// internal/interfaces/http/handlers/address.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/domain/user"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// AddressHandler handles address requests
type AddressHandler struct {
	service *user.AddressService
}

// NewAddressHandler creates a new address handler
func NewAddressHandler(db *gorm.DB) *AddressHandler {
	return &AddressHandler{
		service: user.NewAddressService(db),
	}
}

// GetAddresses lists the caller's addresses
func (h *AddressHandler) GetAddresses(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	addresses, err := h.service.GetAddresses(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": addresses,
	})
}

// CreateAddress creates a new address
func (h *AddressHandler) CreateAddress(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	var req user.CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request data: " + err.Error(),
		})
		return
	}

	address, err := h.service.CreateAddress(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Address created",
		"data":    address,
	})
}

// UpdateAddress applies a partial update to an owned address
func (h *AddressHandler) UpdateAddress(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	addressID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req user.UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request data: " + err.Error(),
		})
		return
	}

	address, err := h.service.UpdateAddress(userID, addressID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Address updated",
		"data":    address,
	})
}

// DeleteAddress removes an owned address
func (h *AddressHandler) DeleteAddress(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	addressID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteAddress(userID, addressID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Address deleted",
	})
}
