// internal/interfaces/http/handlers/webhook.go
package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/pkg/apperrors"
	"github.com/your-org/storefront-backend/internal/pkg/email"
	"gorm.io/gorm"
)

var errMalformedSnapshot = apperrors.Validation("malformed item snapshot")

// WebhookHandler consumes payment gateway webhooks
type WebhookHandler struct {
	config *config.Config
	orders *order.Service
	email  *email.Service
	logger *logrus.Logger
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(db *gorm.DB, cfg *config.Config) *WebhookHandler {
	return &WebhookHandler{
		config: cfg,
		orders: order.NewService(db),
		email:  email.NewService(cfg),
		logger: logrus.New(),
	}
}

// StripeWebhook verifies the event signature and records completed
// checkouts. An invalid signature is rejected before anything is read
// from the payload; a redelivered event is acknowledged without writes.
func (h *WebhookHandler) StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Failed to read request body",
		})
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"),
		h.config.External.Stripe.WebhookSecret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid webhook signature",
		})
		return
	}

	if event.Type != "checkout.session.completed" {
		// Unhandled event types are acknowledged so Stripe stops retrying
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Malformed event payload",
		})
		return
	}

	evt, err := h.buildCheckoutEvent(&session)
	if err != nil {
		respondError(c, err)
		return
	}

	recorded, err := h.orders.RecordCheckoutCompleted(evt)
	if err != nil {
		respondError(c, err)
		return
	}

	// Confirmation email failures are logged, never surfaced to Stripe
	if err := h.email.SendOrderConfirmation(recorded.Email, recorded.OrderNumber, recorded.TotalAmount); err != nil {
		h.logger.WithError(err).WithField("order", recorded.OrderNumber).
			Warn("Failed to send order confirmation email")
	}

	c.JSON(http.StatusOK, gin.H{
		"received": true,
		"order_id": recorded.ID,
	})
}

// buildCheckoutEvent normalizes a completed session into a recording event
func (h *WebhookHandler) buildCheckoutEvent(session *stripe.CheckoutSession) (*order.CheckoutCompletedEvent, error) {
	var items []order.PaidItem
	if raw := session.Metadata["items"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return nil, errMalformedSnapshot
		}
	}

	var userID *uint
	if raw := session.Metadata["user_id"]; raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err == nil {
			id := uint(parsed)
			userID = &id
		}
	}

	emailAddr := session.CustomerEmail
	if session.CustomerDetails != nil && session.CustomerDetails.Email != "" {
		emailAddr = session.CustomerDetails.Email
	}

	txnID := session.ID
	if session.PaymentIntent != nil && session.PaymentIntent.ID != "" {
		txnID = session.PaymentIntent.ID
	}

	return &order.CheckoutCompletedEvent{
		Provider:      order.ProviderStripe,
		ProviderTxnID: txnID,
		UserID:        userID,
		Email:         emailAddr,
		Amount:        session.AmountTotal,
		Items:         items,
	}, nil
}
