// internal/domain/user/service.go
package user

import (
	"errors"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/domain/wishlist"
	"github.com/your-org/storefront-backend/internal/pkg/apperrors"
	"github.com/your-org/storefront-backend/internal/pkg/auth"
	"gorm.io/gorm"
)

// Service handles account business logic
type Service struct {
	db              *gorm.DB
	config          *config.Config
	jwtManager      *auth.JWTManager
	passwordManager *auth.PasswordManager
}

// NewService creates a new account service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:              db,
		config:          cfg,
		jwtManager:      auth.NewJWTManager(cfg),
		passwordManager: auth.NewPasswordManager(cfg),
	}
}

// Register creates a new account and returns a token pair
func (s *Service) Register(req *RegisterRequest) (*AuthResponse, error) {
	var existing User
	err := s.db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return nil, apperrors.Conflict("email already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Persistence(err, "failed to check existing user")
	}

	hashed, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	user := &User{
		Name:        req.Name,
		Email:       req.Email,
		Password:    hashed,
		NotifyEmail: true,
		Language:    "en",
		Theme:       "light",
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, apperrors.Persistence(err, "failed to create user")
	}

	return s.buildAuthResponse(user)
}

// Login verifies credentials and returns a token pair
func (s *Service) Login(req *LoginRequest) (*AuthResponse, error) {
	var user User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Unauthorized("invalid email or password")
		}
		return nil, apperrors.Persistence(err, "failed to load user")
	}

	if err := s.passwordManager.VerifyPassword(req.Password, user.Password); err != nil {
		return nil, apperrors.Unauthorized("invalid email or password")
	}

	return s.buildAuthResponse(&user)
}

// RefreshToken exchanges a valid refresh token for a new token pair
func (s *Service) RefreshToken(refreshToken string) (*AuthResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid refresh token")
	}

	var user User
	if err := s.db.First(&user, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Unauthorized("account no longer exists")
		}
		return nil, apperrors.Persistence(err, "failed to load user")
	}

	return s.buildAuthResponse(&user)
}

// GetProfile returns the account for the given user id
func (s *Service) GetProfile(userID uint) (*User, error) {
	var user User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Persistence(err, "failed to load user")
	}
	return &user, nil
}

// GetSettings returns the stored preferences
func (s *Service) GetSettings(userID uint) (*SettingsResponse, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	return settingsOf(user), nil
}

// UpdateSettings applies a partial preference update
func (s *Service) UpdateSettings(userID uint, req *UpdateSettingsRequest) (*SettingsResponse, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.NotifyEmail != nil {
		updates["notify_email"] = *req.NotifyEmail
	}
	if req.NotifySMS != nil {
		updates["notify_sms"] = *req.NotifySMS
	}
	if req.Language != nil {
		if *req.Language == "" || len(*req.Language) > 10 {
			return nil, apperrors.Validation("invalid language")
		}
		updates["language"] = *req.Language
	}
	if req.Theme != nil {
		if *req.Theme != "light" && *req.Theme != "dark" {
			return nil, apperrors.Validation("theme must be light or dark")
		}
		updates["theme"] = *req.Theme
	}

	if len(updates) > 0 {
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			return nil, apperrors.Persistence(err, "failed to update settings")
		}
	}

	return s.GetSettings(userID)
}

// DeleteAccount removes the account and everything owned by it.
// Orders are kept for bookkeeping with the user reference cleared.
func (s *Service) DeleteAccount(userID uint) error {
	if _, err := s.GetProfile(userID); err != nil {
		return err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("user_id = ?", userID).Delete(&product.Review{}).Error; err != nil {
		tx.Rollback()
		return apperrors.Persistence(err, "failed to delete reviews")
	}

	if err := tx.Where("user_id = ?", userID).Delete(&wishlist.Item{}).Error; err != nil {
		tx.Rollback()
		return apperrors.Persistence(err, "failed to delete wishlist")
	}

	var userCart cart.Cart
	err := tx.Where("user_id = ?", userID).First(&userCart).Error
	if err == nil {
		if err := tx.Where("cart_id = ?", userCart.ID).Delete(&cart.CartItem{}).Error; err != nil {
			tx.Rollback()
			return apperrors.Persistence(err, "failed to delete cart items")
		}
		if err := tx.Delete(&userCart).Error; err != nil {
			tx.Rollback()
			return apperrors.Persistence(err, "failed to delete cart")
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		tx.Rollback()
		return apperrors.Persistence(err, "failed to load cart")
	}

	if err := tx.Where("user_id = ?", userID).Delete(&PaymentMethod{}).Error; err != nil {
		tx.Rollback()
		return apperrors.Persistence(err, "failed to delete payment methods")
	}

	if err := tx.Where("user_id = ?", userID).Delete(&Address{}).Error; err != nil {
		tx.Rollback()
		return apperrors.Persistence(err, "failed to delete addresses")
	}

	// Order history stays, detached from the account
	if err := tx.Model(&order.Order{}).Where("user_id = ?", userID).
		Update("user_id", nil).Error; err != nil {
		tx.Rollback()
		return apperrors.Persistence(err, "failed to detach orders")
	}

	if err := tx.Delete(&User{}, userID).Error; err != nil {
		tx.Rollback()
		return apperrors.Persistence(err, "failed to delete user")
	}

	if err := tx.Commit().Error; err != nil {
		return apperrors.Persistence(err, "failed to commit account deletion")
	}
	return nil
}

func (s *Service) buildAuthResponse(user *User) (*AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, apperrors.Persistence(err, "failed to generate access token")
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, apperrors.Persistence(err, "failed to generate refresh token")
	}

	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func settingsOf(user *User) *SettingsResponse {
	return &SettingsResponse{
		NotifyEmail: user.NotifyEmail,
		NotifySMS:   user.NotifySMS,
		Language:    user.Language,
		Theme:       user.Theme,
	}
}
