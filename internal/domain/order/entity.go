// internal/domain/order/entity.go
package order

import (
	"time"
)

// Order statuses
const (
	StatusPaid = "paid"
)

// Payment providers
const (
	ProviderStripe = "stripe"
	ProviderPayPal = "paypal"
)

// Order is an immutable record of a completed purchase.
// Amounts are in cents. UserID is nil for guest checkouts.
type Order struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	OrderNumber string    `json:"order_number" gorm:"uniqueIndex;not null;size:50"`
	UserID      *uint     `json:"user_id,omitempty" gorm:"index"`
	Email       string    `json:"email" gorm:"size:255"`
	Status      string    `json:"status" gorm:"not null;size:20"`
	TotalAmount int64     `json:"total_amount" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`

	Items   []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	Payment *Payment    `json:"payment,omitempty" gorm:"foreignKey:OrderID"`
}

// OrderItem snapshots a purchased line at payment time.
// Name and price are copied verbatim from the checkout snapshot,
// never re-read from the catalog.
type OrderItem struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	OrderID   uint   `json:"order_id" gorm:"not null;index"`
	ProductID uint   `json:"product_id"`
	Name      string `json:"name" gorm:"size:255"`
	Price     int64  `json:"price" gorm:"not null"`
	Quantity  int    `json:"quantity" gorm:"not null"`
}

// Payment records the gateway transaction backing an order.
// ProviderTxnID is unique so a redelivered webhook cannot
// record the same charge twice.
type Payment struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	OrderID       uint      `json:"order_id" gorm:"not null;uniqueIndex"`
	Provider      string    `json:"provider" gorm:"not null;size:20"`
	ProviderTxnID string    `json:"provider_txn_id" gorm:"uniqueIndex;not null;size:255"`
	Amount        int64     `json:"amount" gorm:"not null"`
	Status        string    `json:"status" gorm:"not null;size:20"`
	CreatedAt     time.Time `json:"created_at"`
}

// PaidItem is one line of the item snapshot carried through checkout metadata
type PaidItem struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// CheckoutCompletedEvent is the normalized form of a successful
// gateway checkout, extracted from the webhook payload
type CheckoutCompletedEvent struct {
	Provider      string
	ProviderTxnID string
	UserID        *uint
	Email         string
	Amount        int64
	Items         []PaidItem
}
