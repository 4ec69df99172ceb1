// internal/domain/user/address_service.go
package user

import (
	"errors"

	"github.com/your-org/storefront-backend/internal/pkg/apperrors"
	"gorm.io/gorm"
)

// AddressService handles address business logic
type AddressService struct {
	db *gorm.DB
}

// NewAddressService creates a new address service
func NewAddressService(db *gorm.DB) *AddressService {
	return &AddressService{
		db: db,
	}
}

// GetAddresses returns all addresses for a user, default first
func (s *AddressService) GetAddresses(userID uint) ([]Address, error) {
	var addresses []Address
	if err := s.db.Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&addresses).Error; err != nil {
		return nil, apperrors.Persistence(err, "failed to load addresses")
	}
	return addresses, nil
}

// CreateAddress creates a new address. When the new address is marked
// default, the previous default is cleared in the same transaction so
// at most one default exists per user.
func (s *AddressService) CreateAddress(userID uint, req *CreateAddressRequest) (*Address, error) {
	address := &Address{
		UserID:     userID,
		FullName:   req.FullName,
		Line1:      req.Line1,
		Line2:      req.Line2,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		Phone:      req.Phone,
		IsDefault:  req.IsDefault,
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if req.IsDefault {
		if err := unsetDefaultAddresses(tx, userID); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Create(address).Error; err != nil {
		tx.Rollback()
		return nil, apperrors.Persistence(err, "failed to create address")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.Persistence(err, "failed to commit address")
	}
	return address, nil
}

// UpdateAddress applies a partial update to an owned address.
// Clearing is_default on the only default leaves the user with none,
// which is allowed.
func (s *AddressService) UpdateAddress(userID, addressID uint, req *UpdateAddressRequest) (*Address, error) {
	address, err := s.getOwnedAddress(userID, addressID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Line1 != nil {
		updates["line1"] = *req.Line1
	}
	if req.Line2 != nil {
		updates["line2"] = *req.Line2
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.State != nil {
		updates["state"] = *req.State
	}
	if req.PostalCode != nil {
		updates["postal_code"] = *req.PostalCode
	}
	if req.Country != nil {
		updates["country"] = *req.Country
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.IsDefault != nil {
		updates["is_default"] = *req.IsDefault
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if req.IsDefault != nil && *req.IsDefault {
		if err := unsetDefaultAddresses(tx, userID); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if len(updates) > 0 {
		if err := tx.Model(address).Updates(updates).Error; err != nil {
			tx.Rollback()
			return nil, apperrors.Persistence(err, "failed to update address")
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.Persistence(err, "failed to commit address update")
	}

	return s.getOwnedAddress(userID, addressID)
}

// DeleteAddress removes an owned address
func (s *AddressService) DeleteAddress(userID, addressID uint) error {
	address, err := s.getOwnedAddress(userID, addressID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(address).Error; err != nil {
		return apperrors.Persistence(err, "failed to delete address")
	}
	return nil
}

// getOwnedAddress loads an address and checks ownership
func (s *AddressService) getOwnedAddress(userID, addressID uint) (*Address, error) {
	var address Address
	if err := s.db.First(&address, addressID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("address not found")
		}
		return nil, apperrors.Persistence(err, "failed to load address")
	}

	if address.UserID != userID {
		return nil, apperrors.Forbidden("address belongs to another user")
	}
	return &address, nil
}

// unsetDefaultAddresses clears the current default inside a transaction
func unsetDefaultAddresses(tx *gorm.DB, userID uint) error {
	if err := tx.Model(&Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error; err != nil {
		return apperrors.Persistence(err, "failed to clear default address")
	}
	return nil
}
