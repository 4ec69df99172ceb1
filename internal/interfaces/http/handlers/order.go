// internal/interfaces/http/handlers/order.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-backend/internal/pkg/pdf"
	"gorm.io/gorm"
)

// OrderHandler handles order history requests
type OrderHandler struct {
	service   *order.Service
	generator *pdf.Generator
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(db *gorm.DB) *OrderHandler {
	return &OrderHandler{
		service:   order.NewService(db),
		generator: pdf.NewGenerator(),
	}
}

// ListOrders returns the caller's orders, newest first
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	orders, err := h.service.ListOrders(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": orders,
	})
}

// GetOrder returns one owned order
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.service.GetOrder(userID, orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": result,
	})
}

// GetInvoice renders an owned order as a PDF invoice
func (h *OrderHandler) GetInvoice(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.service.GetOrder(userID, orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	invoice := &pdf.Invoice{
		OrderNumber: result.OrderNumber,
		Email:       result.Email,
		CreatedAt:   result.CreatedAt,
		TotalAmount: result.TotalAmount,
	}
	for _, item := range result.Items {
		invoice.Lines = append(invoice.Lines, pdf.InvoiceLine{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
			Total:    item.Price * int64(item.Quantity),
		})
	}

	data, err := h.generator.GenerateInvoice(invoice)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate invoice",
		})
		return
	}

	filename := fmt.Sprintf("invoice-%s.pdf", result.OrderNumber)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
