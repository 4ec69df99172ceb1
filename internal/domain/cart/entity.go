// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/your-org/storefront-backend/internal/domain/product"
)

// Cart represents a persistent shopping cart, one per user
type Cart struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []CartItem `json:"items" gorm:"foreignKey:CartID"`
}

// CartItem represents a product line in a persistent cart.
// A product appears at most once per cart.
type CartItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CartID    uint      `json:"cart_id" gorm:"not null;uniqueIndex:idx_cart_items_cart_product,priority:1"`
	ProductID uint      `json:"product_id" gorm:"not null;uniqueIndex:idx_cart_items_cart_product,priority:2"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Product *product.Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// SessionCart is the ephemeral guest cart held in Redis
type SessionCart struct {
	SessionID string            `json:"session_id"`
	Items     []SessionCartItem `json:"items"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// SessionCartItem is a product line in a guest cart
type SessionCartItem struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// AddToCartRequest represents an add-to-cart request
type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// CartItemResponse is a cart line with product details attached
type CartItemResponse struct {
	ProductID uint             `json:"product_id"`
	Quantity  int              `json:"quantity"`
	Product   *product.Product `json:"product,omitempty"`
}

// CartResponse is the full cart state returned by every cart operation
type CartResponse struct {
	Items     []CartItemResponse `json:"items"`
	ItemCount int                `json:"item_count"`
	Subtotal  int64              `json:"subtotal"`
}
