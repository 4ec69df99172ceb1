// internal/domain/wishlist/entity.go
package wishlist

import (
	"time"

	"github.com/your-org/storefront-backend/internal/domain/product"
)

// Item represents a wishlist membership row.
// A product appears at most once per user.
type Item struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_wishlist_user_product,priority:1"`
	ProductID uint      `json:"product_id" gorm:"not null;uniqueIndex:idx_wishlist_user_product,priority:2"`
	CreatedAt time.Time `json:"created_at"`

	Product *product.Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// TableName overrides the default table name
func (Item) TableName() string {
	return "wishlist_items"
}

// AddToWishlistRequest represents an add-to-wishlist request
type AddToWishlistRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// WishlistResponse is the full membership set returned by every operation
type WishlistResponse struct {
	Items []Item `json:"items"`
	Count int    `json:"count"`
}
