// internal/domain/checkout/service.go
package checkout

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/pkg/apperrors"
)

// sessionCreator lets tests stub out the Stripe API call
type sessionCreator func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)

// Service creates hosted payment sessions. Stripe is the real gateway;
// the PayPal adapter returns a mock order and exists as an independent
// integration point.
type Service struct {
	config        *config.Config
	createSession sessionCreator
}

// NewService creates a new checkout service
func NewService(cfg *config.Config) *Service {
	stripe.Key = cfg.External.Stripe.SecretKey

	return &Service{
		config:        cfg,
		createSession: session.New,
	}
}

// CreateStripeSession builds a payment-mode checkout session from the
// submitted cart lines. The item snapshot rides along as metadata so the
// webhook can record the order without re-reading the catalog.
func (s *Service) CreateStripeSession(userID *uint, email string, req *CreateSessionRequest) (*SessionResponse, error) {
	snapshot := make([]order.PaidItem, 0, len(req.Items))
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.Items))

	for _, item := range req.Items {
		snapshot = append(snapshot, order.PaidItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String("usd"),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
				UnitAmount: stripe.Int64(item.Price),
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}

	itemsJSON, err := json.Marshal(snapshot)
	if err != nil {
		return nil, apperrors.Persistence(err, "failed to encode item snapshot")
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(s.config.CheckoutSuccessURL()),
		CancelURL:  stripe.String(s.config.CheckoutCancelURL()),
	}
	if email != "" {
		params.CustomerEmail = stripe.String(email)
	}
	params.AddMetadata("items", string(itemsJSON))
	if userID != nil {
		params.AddMetadata("user_id", strconv.FormatUint(uint64(*userID), 10))
	}

	sess, err := s.createSession(params)
	if err != nil {
		return nil, apperrors.Gateway(err, "stripe session creation failed")
	}

	return &SessionResponse{
		SessionID: sess.ID,
		URL:       sess.URL,
	}, nil
}

// CreatePayPalOrder returns a mock PayPal order id
func (s *Service) CreatePayPalOrder() (*PayPalOrderResponse, error) {
	orderID := fmt.Sprintf("PAYPAL-MOCK-%s", strings.ToUpper(uuid.New().String()[:12]))
	return &PayPalOrderResponse{
		OrderID: orderID,
		Status:  "CREATED",
	}, nil
}
