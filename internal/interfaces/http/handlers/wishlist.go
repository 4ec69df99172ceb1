// internal/interfaces/http/handlers/wishlist.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/domain/wishlist"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// WishlistHandler handles wishlist requests
type WishlistHandler struct {
	service *wishlist.Service
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(db *gorm.DB) *WishlistHandler {
	return &WishlistHandler{
		service: wishlist.NewService(db),
	}
}

// GetWishlist returns the full membership set
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	response, err := h.service.GetWishlist(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": response,
	})
}

// AddToWishlist adds a product to the set
func (h *WishlistHandler) AddToWishlist(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	var req wishlist.AddToWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request data: " + err.Error(),
		})
		return
	}

	response, err := h.service.AddToWishlist(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to wishlist",
		"data":    response,
	})
}

// RemoveFromWishlist removes a product from the set
func (h *WishlistHandler) RemoveFromWishlist(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	response, err := h.service.RemoveFromWishlist(userID, productID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from wishlist",
		"data":    response,
	})
}
