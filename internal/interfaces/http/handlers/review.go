// internal/interfaces/http/handlers/review.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// ReviewHandler handles product review requests
type ReviewHandler struct {
	service *product.ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{
		service: product.NewReviewService(db),
	}
}

// ListReviews returns reviews for a product, or the caller's own when no
// product_id is given
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	if productIDStr := c.Query("product_id"); productIDStr != "" {
		productID, err := strconv.ParseUint(productIDStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid product_id",
			})
			return
		}

		reviews, err := h.service.ListByProduct(uint(productID))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"data": reviews,
		})
		return
	}

	// Own reviews require authentication
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	reviews, err := h.service.ListByUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": reviews,
	})
}

// CreateReview creates a review for a product
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	var req product.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request data: " + err.Error(),
		})
		return
	}

	review, err := h.service.CreateReview(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Review created",
		"data":    review,
	})
}

// UpdateReview applies a partial update to an owned review
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	reviewID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req product.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request data: " + err.Error(),
		})
		return
	}

	review, err := h.service.UpdateReview(userID, reviewID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Review updated",
		"data":    review,
	})
}

// DeleteReview removes an owned review
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	reviewID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteReview(userID, reviewID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Review deleted",
	})
}
