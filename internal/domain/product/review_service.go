// internal/domain/product/review_service.go
package product

import (
	"errors"

	"github.com/your-org/storefront-backend/internal/pkg/apperrors"
	"gorm.io/gorm"
)

// ReviewService handles product review business logic
type ReviewService struct {
	db *gorm.DB
}

// NewReviewService creates a new review service
func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{
		db: db,
	}
}

// CreateReview creates a review. Rating is validated before the store is
// touched, and a user gets one review per product.
func (s *ReviewService) CreateReview(userID uint, req *CreateReviewRequest) (*Review, error) {
	if err := validateRating(req.Rating); err != nil {
		return nil, err
	}

	var product Product
	if err := s.db.First(&product, req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("product not found")
		}
		return nil, apperrors.Persistence(err, "failed to load product")
	}

	var existing Review
	err := s.db.Where("user_id = ? AND product_id = ?", userID, req.ProductID).
		First(&existing).Error
	if err == nil {
		return nil, apperrors.Conflict("product already reviewed")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Persistence(err, "failed to check existing review")
	}

	review := &Review{
		ProductID: req.ProductID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	if err := s.db.Create(review).Error; err != nil {
		return nil, apperrors.Persistence(err, "failed to create review")
	}
	return review, nil
}

// ListByProduct returns all reviews for a product, newest first
func (s *ReviewService) ListByProduct(productID uint) ([]Review, error) {
	var reviews []Review
	if err := s.db.Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, apperrors.Persistence(err, "failed to load reviews")
	}
	return reviews, nil
}

// ListByUser returns the caller's reviews with product details
func (s *ReviewService) ListByUser(userID uint) ([]Review, error) {
	var reviews []Review
	if err := s.db.Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, apperrors.Persistence(err, "failed to load reviews")
	}
	return reviews, nil
}

// UpdateReview applies a partial update to an owned review
func (s *ReviewService) UpdateReview(userID, reviewID uint, req *UpdateReviewRequest) (*Review, error) {
	if req.Rating != nil {
		if err := validateRating(*req.Rating); err != nil {
			return nil, err
		}
	}

	review, err := s.getOwnedReview(userID, reviewID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Rating != nil {
		updates["rating"] = *req.Rating
	}
	if req.Comment != nil {
		updates["comment"] = *req.Comment
	}

	if len(updates) > 0 {
		if err := s.db.Model(review).Updates(updates).Error; err != nil {
			return nil, apperrors.Persistence(err, "failed to update review")
		}
	}
	return s.getOwnedReview(userID, reviewID)
}

// DeleteReview removes an owned review
func (s *ReviewService) DeleteReview(userID, reviewID uint) error {
	review, err := s.getOwnedReview(userID, reviewID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(review).Error; err != nil {
		return apperrors.Persistence(err, "failed to delete review")
	}
	return nil
}

// getOwnedReview loads a review and checks ownership
func (s *ReviewService) getOwnedReview(userID, reviewID uint) (*Review, error) {
	var review Review
	if err := s.db.First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("review not found")
		}
		return nil, apperrors.Persistence(err, "failed to load review")
	}

	if review.UserID != userID {
		return nil, apperrors.Forbidden("review belongs to another user")
	}
	return &review, nil
}

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return apperrors.Validation("rating must be between 1 and 5")
	}
	return nil
}
