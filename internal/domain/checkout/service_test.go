package checkout

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/pkg/apperrors"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.BaseURL = "https://shop.example.com"
	cfg.External.Stripe.SecretKey = "sk_test_123"
	cfg.External.Stripe.SuccessPath = "/checkout/success"
	cfg.External.Stripe.CancelPath = "/checkout/cancel"
	return cfg
}

func sessionRequest() *CreateSessionRequest {
	return &CreateSessionRequest{
		Items: []CheckoutItem{
			{ProductID: 1, Name: "Widget", Price: 1000, Quantity: 2},
			{ProductID: 2, Name: "Gadget", Price: 2500, Quantity: 1},
		},
	}
}

func TestCreateStripeSession(t *testing.T) {
	svc := NewService(testConfig())

	var captured *stripe.CheckoutSessionParams
	svc.createSession = func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
		captured = params
		return &stripe.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.stripe.com/pay/cs_test_1"}, nil
	}

	userID := uint(7)
	resp, err := svc.CreateStripeSession(&userID, "buyer@example.com", sessionRequest())
	require.NoError(t, err)
	assert.Equal(t, "cs_test_1", resp.SessionID)
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_test_1", resp.URL)

	require.NotNil(t, captured)
	assert.Equal(t, string(stripe.CheckoutSessionModePayment), *captured.Mode)
	assert.Equal(t, "https://shop.example.com/checkout/success", *captured.SuccessURL)
	assert.Equal(t, "https://shop.example.com/checkout/cancel", *captured.CancelURL)
	assert.Equal(t, "buyer@example.com", *captured.CustomerEmail)

	require.Len(t, captured.LineItems, 2)
	assert.Equal(t, "Widget", *captured.LineItems[0].PriceData.ProductData.Name)
	assert.EqualValues(t, 1000, *captured.LineItems[0].PriceData.UnitAmount)
	assert.EqualValues(t, 2, *captured.LineItems[0].Quantity)

	// The metadata snapshot is what the webhook will record from
	assert.Equal(t, "7", captured.Metadata["user_id"])
	var snapshot []order.PaidItem
	require.NoError(t, json.Unmarshal([]byte(captured.Metadata["items"]), &snapshot))
	require.Len(t, snapshot, 2)
	assert.Equal(t, "Widget", snapshot[0].Name)
	assert.EqualValues(t, 1000, snapshot[0].Price)
	assert.Equal(t, 2, snapshot[0].Quantity)
}

func TestCreateStripeSessionGatewayFailure(t *testing.T) {
	svc := NewService(testConfig())
	svc.createSession = func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
		return nil, errors.New("stripe unavailable")
	}

	_, err := svc.CreateStripeSession(nil, "", sessionRequest())
	assert.True(t, apperrors.IsCode(err, apperrors.CodeGateway))
}

func TestCreatePayPalOrderReturnsMockID(t *testing.T) {
	svc := NewService(testConfig())

	resp, err := svc.CreatePayPalOrder()
	require.NoError(t, err)
	assert.Contains(t, resp.OrderID, "PAYPAL-MOCK-")
	assert.Equal(t, "CREATED", resp.Status)

	// Each call mints a fresh order id
	again, err := svc.CreatePayPalOrder()
	require.NoError(t, err)
	assert.NotEqual(t, resp.OrderID, again.OrderID)
}
