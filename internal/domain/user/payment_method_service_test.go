package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/pkg/apperrors"
	"gorm.io/gorm"
)

func cardRequest(isDefault bool) *CreatePaymentMethodRequest {
	return &CreatePaymentMethodRequest{
		Type:         PaymentMethodTypeCard,
		CardBrand:    "visa",
		CardLast4:    "4242",
		CardExpMonth: 12,
		CardExpYear:  2030,
		IsDefault:    isDefault,
	}
}

func methodCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&PaymentMethod{}).Count(&count).Error)
	return count
}

func TestCreatePaymentMethodValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewPaymentMethodService(db)
	u := createTestUser(t, db, "pay@example.com")

	cases := []struct {
		name string
		req  *CreatePaymentMethodRequest
	}{
		{"unknown type", &CreatePaymentMethodRequest{Type: "crypto"}},
		{"card without details", &CreatePaymentMethodRequest{Type: PaymentMethodTypeCard}},
		{"card with bad month", &CreatePaymentMethodRequest{
			Type: PaymentMethodTypeCard, CardBrand: "visa", CardLast4: "4242",
			CardExpMonth: 13, CardExpYear: 2030,
		}},
		{"card with short last4", &CreatePaymentMethodRequest{
			Type: PaymentMethodTypeCard, CardBrand: "visa", CardLast4: "42",
			CardExpMonth: 6, CardExpYear: 2030,
		}},
		{"paypal without email", &CreatePaymentMethodRequest{Type: PaymentMethodTypePayPal}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreatePaymentMethod(u.ID, tc.req)
			assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
		})
	}

	// Rejected requests never touched the store
	assert.Zero(t, methodCount(t, db))
}

func TestCreatePaymentMethodDefaultInvariant(t *testing.T) {
	db := newTestDB(t)
	svc := NewPaymentMethodService(db)
	u := createTestUser(t, db, "pay@example.com")

	card, err := svc.CreatePaymentMethod(u.ID, cardRequest(true))
	require.NoError(t, err)
	assert.True(t, card.IsDefault)

	paypal, err := svc.CreatePaymentMethod(u.ID, &CreatePaymentMethodRequest{
		Type:        PaymentMethodTypePayPal,
		PaypalEmail: "pay@example.com",
		IsDefault:   true,
	})
	require.NoError(t, err)
	assert.True(t, paypal.IsDefault)

	var defaults int64
	require.NoError(t, db.Model(&PaymentMethod{}).
		Where("user_id = ? AND is_default = ?", u.ID, true).
		Count(&defaults).Error)
	assert.EqualValues(t, 1, defaults)

	var reloaded PaymentMethod
	require.NoError(t, db.First(&reloaded, card.ID).Error)
	assert.False(t, reloaded.IsDefault)
}

func TestUpdatePaymentMethodDefaultToggle(t *testing.T) {
	db := newTestDB(t)
	svc := NewPaymentMethodService(db)
	u := createTestUser(t, db, "pay@example.com")

	first, err := svc.CreatePaymentMethod(u.ID, cardRequest(true))
	require.NoError(t, err)
	second, err := svc.CreatePaymentMethod(u.ID, cardRequest(false))
	require.NoError(t, err)

	on := true
	updated, err := svc.UpdatePaymentMethod(u.ID, second.ID, &UpdatePaymentMethodRequest{IsDefault: &on})
	require.NoError(t, err)
	assert.True(t, updated.IsDefault)

	var reloaded PaymentMethod
	require.NoError(t, db.First(&reloaded, first.ID).Error)
	assert.False(t, reloaded.IsDefault)

	// Clearing the only default is allowed and leaves none
	off := false
	_, err = svc.UpdatePaymentMethod(u.ID, second.ID, &UpdatePaymentMethodRequest{IsDefault: &off})
	require.NoError(t, err)

	var defaults int64
	require.NoError(t, db.Model(&PaymentMethod{}).
		Where("user_id = ? AND is_default = ?", u.ID, true).
		Count(&defaults).Error)
	assert.Zero(t, defaults)
}

func TestPaymentMethodOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewPaymentMethodService(db)
	owner := createTestUser(t, db, "owner@example.com")
	intruder := createTestUser(t, db, "intruder@example.com")

	created, err := svc.CreatePaymentMethod(owner.ID, cardRequest(false))
	require.NoError(t, err)

	on := true
	_, err = svc.UpdatePaymentMethod(intruder.ID, created.ID, &UpdatePaymentMethodRequest{IsDefault: &on})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))

	err = svc.DeletePaymentMethod(intruder.ID, created.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))

	err = svc.DeletePaymentMethod(owner.ID, 9999)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))

	require.NoError(t, svc.DeletePaymentMethod(owner.ID, created.ID))
	assert.Zero(t, methodCount(t, db))
}
