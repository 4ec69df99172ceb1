// internal/domain/user/entity.go
package user

import (
	"time"
)

// User represents a customer account
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password  string    `json:"-" gorm:"not null;size:255"`
	Name      string    `json:"name" gorm:"size:255"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Notification and display preferences
	NotifyEmail bool   `json:"notify_email" gorm:"default:true"`
	NotifySMS   bool   `json:"notify_sms" gorm:"default:false"`
	Language    string `json:"language" gorm:"size:10;default:en"`
	Theme       string `json:"theme" gorm:"size:20;default:light"`

	// Relationships
	Addresses      []Address       `json:"addresses,omitempty" gorm:"foreignKey:UserID"`
	PaymentMethods []PaymentMethod `json:"payment_methods,omitempty" gorm:"foreignKey:UserID"`
}

// Address represents a shipping address
type Address struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"not null;index"`
	FullName   string    `json:"full_name" gorm:"not null;size:255"`
	Line1      string    `json:"line1" gorm:"not null;size:255"`
	Line2      string    `json:"line2" gorm:"size:255"`
	City       string    `json:"city" gorm:"not null;size:100"`
	State      string    `json:"state" gorm:"not null;size:100"`
	PostalCode string    `json:"postal_code" gorm:"not null;size:20"`
	Country    string    `json:"country" gorm:"not null;size:100"`
	Phone      string    `json:"phone" gorm:"size:20"`
	IsDefault  bool      `json:"is_default" gorm:"default:false;index:idx_addresses_user_default,priority:2"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Payment method types
const (
	PaymentMethodTypeCard   = "card"
	PaymentMethodTypePayPal = "paypal"
)

// PaymentMethod represents a stored payment instrument.
// Card data is display-only (brand, last4, expiry), never a full number.
type PaymentMethod struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"not null;index"`
	Type         string    `json:"type" gorm:"not null;size:20"`
	CardBrand    string    `json:"card_brand,omitempty" gorm:"size:50"`
	CardLast4    string    `json:"card_last4,omitempty" gorm:"size:4"`
	CardExpMonth int       `json:"card_exp_month,omitempty"`
	CardExpYear  int       `json:"card_exp_year,omitempty"`
	PaypalEmail  string    `json:"paypal_email,omitempty" gorm:"size:255"`
	IsDefault    bool      `json:"is_default" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AuthResponse is returned after registration, login and refresh
type AuthResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UpdateSettingsRequest carries partial preference updates.
// Pointers distinguish "absent" from zero values.
type UpdateSettingsRequest struct {
	NotifyEmail *bool   `json:"notify_email"`
	NotifySMS   *bool   `json:"notify_sms"`
	Language    *string `json:"language"`
	Theme       *string `json:"theme"`
}

// SettingsResponse mirrors the stored preferences
type SettingsResponse struct {
	NotifyEmail bool   `json:"notify_email"`
	NotifySMS   bool   `json:"notify_sms"`
	Language    string `json:"language"`
	Theme       string `json:"theme"`
}

// CreateAddressRequest represents an address creation request
type CreateAddressRequest struct {
	FullName   string `json:"full_name" binding:"required,max=255"`
	Line1      string `json:"line1" binding:"required,max=255"`
	Line2      string `json:"line2" binding:"max=255"`
	City       string `json:"city" binding:"required,max=100"`
	State      string `json:"state" binding:"required,max=100"`
	PostalCode string `json:"postal_code" binding:"required,max=20"`
	Country    string `json:"country" binding:"required,max=100"`
	Phone      string `json:"phone" binding:"max=20"`
	IsDefault  bool   `json:"is_default"`
}

// UpdateAddressRequest represents an address update request.
// Pointers distinguish "absent" from zero values.
type UpdateAddressRequest struct {
	FullName   *string `json:"full_name"`
	Line1      *string `json:"line1"`
	Line2      *string `json:"line2"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	PostalCode *string `json:"postal_code"`
	Country    *string `json:"country"`
	Phone      *string `json:"phone"`
	IsDefault  *bool   `json:"is_default"`
}

// CreatePaymentMethodRequest represents a payment method creation request
type CreatePaymentMethodRequest struct {
	Type         string `json:"type" binding:"required"`
	CardBrand    string `json:"card_brand"`
	CardLast4    string `json:"card_last4"`
	CardExpMonth int    `json:"card_exp_month"`
	CardExpYear  int    `json:"card_exp_year"`
	PaypalEmail  string `json:"paypal_email"`
	IsDefault    bool   `json:"is_default"`
}

// UpdatePaymentMethodRequest represents a payment method update request
type UpdatePaymentMethodRequest struct {
	IsDefault *bool `json:"is_default"`
}
