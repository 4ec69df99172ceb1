// internal/domain/product/entity.go
package product

import (
	"time"
)

// Product represents a catalog product. Price is stored in cents.
type Product struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null;size:255"`
	Description string    `json:"description" gorm:"type:text"`
	ImageURL    string    `json:"image_url" gorm:"size:500"`
	Price       int64     `json:"price" gorm:"not null"`
	Category    string    `json:"category" gorm:"size:100;index"`
	Stock       int       `json:"stock" gorm:"default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Derived from reviews at read time, never stored
	AvgRating   float64 `json:"avg_rating" gorm:"-"`
	ReviewCount int     `json:"review_count" gorm:"-"`
}

// Review represents a product review. One review per user and product.
type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProductID uint      `json:"product_id" gorm:"not null;uniqueIndex:idx_reviews_user_product,priority:2"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_reviews_user_product,priority:1"`
	Rating    int       `json:"rating" gorm:"not null"`
	Comment   string    `json:"comment" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// CreateReviewRequest represents a review creation request
type CreateReviewRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment" binding:"max=2000"`
}

// UpdateReviewRequest represents a review update request
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}
