// internal/domain/checkout/entity.go
package checkout

// CheckoutItem is one cart line submitted for payment. Price is in cents
// and is snapshotted into the session metadata for the webhook to record.
type CheckoutItem struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name" binding:"required,max=255"`
	Price     int64  `json:"price" binding:"required,min=1"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// CreateSessionRequest represents a checkout session request
type CreateSessionRequest struct {
	Items []CheckoutItem `json:"items" binding:"required,min=1,dive"`
}

// SessionResponse carries the hosted payment page URL
type SessionResponse struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// PayPalOrderResponse carries the created PayPal order id
type PayPalOrderResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}
