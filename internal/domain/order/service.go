// internal/domain/order/service.go
package order

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/pkg/apperrors"
	"gorm.io/gorm"
)

// Service handles order reads and payment recording
type Service struct {
	db *gorm.DB
}

// NewService creates a new order service
func NewService(db *gorm.DB) *Service {
	return &Service{
		db: db,
	}
}

// ListOrders returns the caller's orders, newest first, with items and
// payment attached
func (s *Service) ListOrders(userID uint) ([]Order, error) {
	var orders []Order
	if err := s.db.Preload("Items").Preload("Payment").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, apperrors.Persistence(err, "failed to load orders")
	}
	return orders, nil
}

// GetOrder returns one owned order with items and payment
func (s *Service) GetOrder(userID, orderID uint) (*Order, error) {
	var order Order
	if err := s.db.Preload("Items").Preload("Payment").
		First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order not found")
		}
		return nil, apperrors.Persistence(err, "failed to load order")
	}

	if order.UserID == nil || *order.UserID != userID {
		return nil, apperrors.Forbidden("order belongs to another user")
	}
	return &order, nil
}

// RecordCheckoutCompleted turns a verified gateway event into an Order,
// its OrderItems and a Payment, all in one transaction. Item names and
// prices come verbatim from the checkout snapshot, never from the
// catalog. Redelivery of the same transaction id is a no-op that
// returns the already recorded order.
func (s *Service) RecordCheckoutCompleted(evt *CheckoutCompletedEvent) (*Order, error) {
	if evt.ProviderTxnID == "" {
		return nil, apperrors.Validation("missing provider transaction id")
	}
	if len(evt.Items) == 0 {
		return nil, apperrors.Validation("empty item snapshot")
	}
	for _, item := range evt.Items {
		if item.Quantity <= 0 || item.Price < 0 {
			return nil, apperrors.Validation("malformed item snapshot")
		}
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Duplicate delivery check on the unique transaction id
	var existing Payment
	err := tx.Where("provider_txn_id = ?", evt.ProviderTxnID).First(&existing).Error
	if err == nil {
		tx.Rollback()
		return s.loadOrder(existing.OrderID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		tx.Rollback()
		return nil, apperrors.Persistence(err, "failed to check payment")
	}

	order := &Order{
		OrderNumber: generateOrderNumber(),
		UserID:      evt.UserID,
		Email:       evt.Email,
		Status:      StatusPaid,
		TotalAmount: evt.Amount,
	}
	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		return nil, apperrors.Persistence(err, "failed to create order")
	}

	for _, item := range evt.Items {
		orderItem := OrderItem{
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
		if err := tx.Create(&orderItem).Error; err != nil {
			tx.Rollback()
			return nil, apperrors.Persistence(err, "failed to create order item")
		}

		// Stock only moves when enough is available; the sale itself
		// already happened at the gateway either way
		if item.ProductID != 0 {
			if err := tx.Model(&product.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				Update("stock", gorm.Expr("stock - ?", item.Quantity)).Error; err != nil {
				tx.Rollback()
				return nil, apperrors.Persistence(err, "failed to decrement stock")
			}
		}
	}

	payment := &Payment{
		OrderID:       order.ID,
		Provider:      evt.Provider,
		ProviderTxnID: evt.ProviderTxnID,
		Amount:        evt.Amount,
		Status:        StatusPaid,
	}
	if err := tx.Create(payment).Error; err != nil {
		tx.Rollback()
		return nil, apperrors.Persistence(err, "failed to create payment")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.Persistence(err, "failed to commit order")
	}

	return s.loadOrder(order.ID)
}

func (s *Service) loadOrder(orderID uint) (*Order, error) {
	var order Order
	if err := s.db.Preload("Items").Preload("Payment").
		First(&order, orderID).Error; err != nil {
		return nil, apperrors.Persistence(err, "failed to load order")
	}
	return &order, nil
}

func generateOrderNumber() string {
	return fmt.Sprintf("ORD-%s", strings.ToUpper(uuid.New().String()[:8]))
}
