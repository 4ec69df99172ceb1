// internal/domain/user/payment_method_service.go
package user

import (
	"errors"

	"github.com/your-org/storefront-backend/internal/pkg/apperrors"
	"gorm.io/gorm"
)

// PaymentMethodService handles stored payment instrument logic
type PaymentMethodService struct {
	db *gorm.DB
}

// NewPaymentMethodService creates a new payment method service
func NewPaymentMethodService(db *gorm.DB) *PaymentMethodService {
	return &PaymentMethodService{
		db: db,
	}
}

// GetPaymentMethods returns all payment methods for a user, default first
func (s *PaymentMethodService) GetPaymentMethods(userID uint) ([]PaymentMethod, error) {
	var methods []PaymentMethod
	if err := s.db.Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&methods).Error; err != nil {
		return nil, apperrors.Persistence(err, "failed to load payment methods")
	}
	return methods, nil
}

// CreatePaymentMethod validates the type-specific fields and stores the
// method. Validation failures never touch the store. A new default clears
// the previous one in the same transaction.
func (s *PaymentMethodService) CreatePaymentMethod(userID uint, req *CreatePaymentMethodRequest) (*PaymentMethod, error) {
	if err := validatePaymentMethodRequest(req); err != nil {
		return nil, err
	}

	method := &PaymentMethod{
		UserID:       userID,
		Type:         req.Type,
		CardBrand:    req.CardBrand,
		CardLast4:    req.CardLast4,
		CardExpMonth: req.CardExpMonth,
		CardExpYear:  req.CardExpYear,
		PaypalEmail:  req.PaypalEmail,
		IsDefault:    req.IsDefault,
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if req.IsDefault {
		if err := unsetDefaultPaymentMethods(tx, userID); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Create(method).Error; err != nil {
		tx.Rollback()
		return nil, apperrors.Persistence(err, "failed to create payment method")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.Persistence(err, "failed to commit payment method")
	}
	return method, nil
}

// UpdatePaymentMethod toggles the default flag on an owned method.
// Clearing the only default leaves the user with none, which is allowed.
func (s *PaymentMethodService) UpdatePaymentMethod(userID, methodID uint, req *UpdatePaymentMethodRequest) (*PaymentMethod, error) {
	method, err := s.getOwnedPaymentMethod(userID, methodID)
	if err != nil {
		return nil, err
	}

	if req.IsDefault == nil {
		return method, nil
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if *req.IsDefault {
		if err := unsetDefaultPaymentMethods(tx, userID); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Model(method).Update("is_default", *req.IsDefault).Error; err != nil {
		tx.Rollback()
		return nil, apperrors.Persistence(err, "failed to update payment method")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.Persistence(err, "failed to commit payment method update")
	}

	return s.getOwnedPaymentMethod(userID, methodID)
}

// DeletePaymentMethod removes an owned payment method
func (s *PaymentMethodService) DeletePaymentMethod(userID, methodID uint) error {
	method, err := s.getOwnedPaymentMethod(userID, methodID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(method).Error; err != nil {
		return apperrors.Persistence(err, "failed to delete payment method")
	}
	return nil
}

// getOwnedPaymentMethod loads a payment method and checks ownership
func (s *PaymentMethodService) getOwnedPaymentMethod(userID, methodID uint) (*PaymentMethod, error) {
	var method PaymentMethod
	if err := s.db.First(&method, methodID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("payment method not found")
		}
		return nil, apperrors.Persistence(err, "failed to load payment method")
	}

	if method.UserID != userID {
		return nil, apperrors.Forbidden("payment method belongs to another user")
	}
	return &method, nil
}

// validatePaymentMethodRequest enforces the type-specific required fields
func validatePaymentMethodRequest(req *CreatePaymentMethodRequest) error {
	switch req.Type {
	case PaymentMethodTypeCard:
		if req.CardBrand == "" || req.CardLast4 == "" || req.CardExpMonth == 0 || req.CardExpYear == 0 {
			return apperrors.Validation("card payment methods require brand, last4 and expiry")
		}
		if len(req.CardLast4) != 4 {
			return apperrors.Validation("card_last4 must be exactly 4 digits")
		}
		if req.CardExpMonth < 1 || req.CardExpMonth > 12 {
			return apperrors.Validation("card_exp_month must be between 1 and 12")
		}
	case PaymentMethodTypePayPal:
		if req.PaypalEmail == "" {
			return apperrors.Validation("paypal payment methods require paypal_email")
		}
	default:
		return apperrors.Validation("type must be card or paypal")
	}
	return nil
}

// unsetDefaultPaymentMethods clears the current default inside a transaction
func unsetDefaultPaymentMethods(tx *gorm.DB, userID uint) error {
	if err := tx.Model(&PaymentMethod{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error; err != nil {
		return apperrors.Persistence(err, "failed to clear default payment method")
	}
	return nil
}
