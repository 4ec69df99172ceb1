// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
)

// CheckoutHandler handles payment session creation
type CheckoutHandler struct {
	service *checkout.Service
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(cfg *config.Config) *CheckoutHandler {
	return &CheckoutHandler{
		service: checkout.NewService(cfg),
	}
}

// CreateStripeSession creates a hosted Stripe checkout session
func (h *CheckoutHandler) CreateStripeSession(c *gin.Context) {
	userID := middleware.GetOptionalUserIDFromContext(c)
	email, _ := middleware.GetUserEmailFromContext(c)

	var req checkout.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request data: " + err.Error(),
		})
		return
	}

	response, err := h.service.CreateStripeSession(userID, email, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": response,
	})
}

// CreatePayPalOrder creates a mock PayPal order
func (h *CheckoutHandler) CreatePayPalOrder(c *gin.Context) {
	response, err := h.service.CreatePayPalOrder()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": response,
	})
}
