// internal/domain/product/service.go
package product

import (
	"errors"

	"github.com/your-org/storefront-backend/internal/pkg/apperrors"
	"gorm.io/gorm"
)

// Service handles catalog reads
type Service struct {
	db *gorm.DB
}

// NewService creates a new catalog service
func NewService(db *gorm.DB) *Service {
	return &Service{
		db: db,
	}
}

// ratingAggregate is the per-product review rollup
type ratingAggregate struct {
	ProductID uint
	Avg       float64
	Count     int
}

// ListProducts returns the catalog, optionally filtered by category.
// Ratings are aggregated from reviews at read time.
func (s *Service) ListProducts(category string) ([]Product, error) {
	query := s.db.Order("created_at DESC")
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var products []Product
	if err := query.Find(&products).Error; err != nil {
		return nil, apperrors.Persistence(err, "failed to load products")
	}

	if len(products) == 0 {
		return products, nil
	}

	ids := make([]uint, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}

	aggregates, err := s.ratingAggregates(ids)
	if err != nil {
		return nil, err
	}

	for i := range products {
		if agg, ok := aggregates[products[i].ID]; ok {
			products[i].AvgRating = agg.Avg
			products[i].ReviewCount = agg.Count
		}
	}
	return products, nil
}

// GetProduct returns one product with its rating rollup
func (s *Service) GetProduct(productID uint) (*Product, error) {
	var product Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("product not found")
		}
		return nil, apperrors.Persistence(err, "failed to load product")
	}

	aggregates, err := s.ratingAggregates([]uint{product.ID})
	if err != nil {
		return nil, err
	}
	if agg, ok := aggregates[product.ID]; ok {
		product.AvgRating = agg.Avg
		product.ReviewCount = agg.Count
	}
	return &product, nil
}

func (s *Service) ratingAggregates(productIDs []uint) (map[uint]ratingAggregate, error) {
	var rows []ratingAggregate
	if err := s.db.Model(&Review{}).
		Select("product_id, AVG(rating) AS avg, COUNT(*) AS count").
		Where("product_id IN ?", productIDs).
		Group("product_id").
		Scan(&rows).Error; err != nil {
		return nil, apperrors.Persistence(err, "failed to aggregate ratings")
	}

	aggregates := make(map[uint]ratingAggregate, len(rows))
	for _, row := range rows {
		aggregates[row.ProductID] = row
	}
	return aggregates, nil
}
