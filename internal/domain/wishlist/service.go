// internal/domain/wishlist/service.go
package wishlist

import (
	"errors"

	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/pkg/apperrors"
	"gorm.io/gorm"
)

// Service handles wishlist business logic. Membership is a set: adds and
// removes are idempotent, and every operation returns the full set.
type Service struct {
	db *gorm.DB
}

// NewService creates a new wishlist service
func NewService(db *gorm.DB) *Service {
	return &Service{
		db: db,
	}
}

// GetWishlist returns the full membership set with product details
func (s *Service) GetWishlist(userID uint) (*WishlistResponse, error) {
	var items []Item
	if err := s.db.Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, apperrors.Persistence(err, "failed to load wishlist")
	}

	return &WishlistResponse{
		Items: items,
		Count: len(items),
	}, nil
}

// AddToWishlist adds a product to the set. Adding a member again is a
// no-op success.
func (s *Service) AddToWishlist(userID uint, req *AddToWishlistRequest) (*WishlistResponse, error) {
	var p product.Product
	if err := s.db.First(&p, req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("product not found")
		}
		return nil, apperrors.Persistence(err, "failed to load product")
	}

	item := Item{
		UserID:    userID,
		ProductID: req.ProductID,
	}
	if err := s.db.Where(Item{UserID: userID, ProductID: req.ProductID}).
		FirstOrCreate(&item).Error; err != nil {
		return nil, apperrors.Persistence(err, "failed to add wishlist item")
	}

	return s.GetWishlist(userID)
}

// RemoveFromWishlist removes a product from the set. Removing a
// non-member is a no-op success.
func (s *Service) RemoveFromWishlist(userID, productID uint) (*WishlistResponse, error) {
	if err := s.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&Item{}).Error; err != nil {
		return nil, apperrors.Persistence(err, "failed to remove wishlist item")
	}

	return s.GetWishlist(userID)
}

// Contains reports whether a product is in the user's wishlist
func (s *Service) Contains(userID, productID uint) (bool, error) {
	var count int64
	if err := s.db.Model(&Item{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error; err != nil {
		return false, apperrors.Persistence(err, "failed to check wishlist")
	}
	return count > 0, nil
}
