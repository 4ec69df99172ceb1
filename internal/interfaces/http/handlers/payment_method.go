// internal/interfaces/http/handlers/payment_method.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/domain/user"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// PaymentMethodHandler handles stored payment instrument requests
type PaymentMethodHandler struct {
	service *user.PaymentMethodService
}

// NewPaymentMethodHandler creates a new payment method handler
func NewPaymentMethodHandler(db *gorm.DB) *PaymentMethodHandler {
	return &PaymentMethodHandler{
		service: user.NewPaymentMethodService(db),
	}
}

// GetPaymentMethods lists the caller's payment methods
func (h *PaymentMethodHandler) GetPaymentMethods(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	methods, err := h.service.GetPaymentMethods(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": methods,
	})
}

// CreatePaymentMethod stores a new payment method
func (h *PaymentMethodHandler) CreatePaymentMethod(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	var req user.CreatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request data: " + err.Error(),
		})
		return
	}

	method, err := h.service.CreatePaymentMethod(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Payment method created",
		"data":    method,
	})
}

// UpdatePaymentMethod toggles the default flag on an owned method
func (h *PaymentMethodHandler) UpdatePaymentMethod(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	methodID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req user.UpdatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request data: " + err.Error(),
		})
		return
	}

	method, err := h.service.UpdatePaymentMethod(userID, methodID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment method updated",
		"data":    method,
	})
}

// DeletePaymentMethod removes an owned payment method
func (h *PaymentMethodHandler) DeletePaymentMethod(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	methodID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeletePaymentMethod(userID, methodID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment method deleted",
	})
}
