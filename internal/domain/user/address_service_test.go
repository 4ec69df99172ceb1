package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/pkg/apperrors"
	"gorm.io/gorm"
)

func createTestUser(t *testing.T, db *gorm.DB, email string) *User {
	t.Helper()
	u := &User{Email: email, Password: "hashed", Name: "Test"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func addressRequest(isDefault bool) *CreateAddressRequest {
	return &CreateAddressRequest{
		FullName:   "Ada Lovelace",
		Line1:      "12 Analytical Way",
		City:       "London",
		State:      "LDN",
		PostalCode: "E1 6AN",
		Country:    "GB",
		IsDefault:  isDefault,
	}
}

func defaultCount(t *testing.T, db *gorm.DB, userID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Count(&count).Error)
	return count
}

func TestCreateAddressDefaultInvariant(t *testing.T) {
	db := newTestDB(t)
	svc := NewAddressService(db)
	u := createTestUser(t, db, "addr@example.com")

	first, err := svc.CreateAddress(u.ID, addressRequest(true))
	require.NoError(t, err)
	assert.True(t, first.IsDefault)

	// A second default demotes the first in the same transaction
	second, err := svc.CreateAddress(u.ID, addressRequest(true))
	require.NoError(t, err)
	assert.True(t, second.IsDefault)

	assert.EqualValues(t, 1, defaultCount(t, db, u.ID))

	var reloaded Address
	require.NoError(t, db.First(&reloaded, first.ID).Error)
	assert.False(t, reloaded.IsDefault)
}

func TestDefaultInvariantIsPerUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewAddressService(db)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	_, err := svc.CreateAddress(alice.ID, addressRequest(true))
	require.NoError(t, err)
	_, err = svc.CreateAddress(bob.ID, addressRequest(true))
	require.NoError(t, err)

	// One default each; setting Bob's never touched Alice's
	assert.EqualValues(t, 1, defaultCount(t, db, alice.ID))
	assert.EqualValues(t, 1, defaultCount(t, db, bob.ID))
}

func TestClearOnlyDefaultLeavesNone(t *testing.T) {
	db := newTestDB(t)
	svc := NewAddressService(db)
	u := createTestUser(t, db, "addr@example.com")

	created, err := svc.CreateAddress(u.ID, addressRequest(true))
	require.NoError(t, err)

	off := false
	updated, err := svc.UpdateAddress(u.ID, created.ID, &UpdateAddressRequest{IsDefault: &off})
	require.NoError(t, err)
	assert.False(t, updated.IsDefault)
	assert.Zero(t, defaultCount(t, db, u.ID))
}

func TestUpdateAddressOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewAddressService(db)
	owner := createTestUser(t, db, "owner@example.com")
	intruder := createTestUser(t, db, "intruder@example.com")

	created, err := svc.CreateAddress(owner.ID, addressRequest(false))
	require.NoError(t, err)

	city := "Paris"
	_, err = svc.UpdateAddress(intruder.ID, created.ID, &UpdateAddressRequest{City: &city})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))

	err = svc.DeleteAddress(intruder.ID, created.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))

	_, err = svc.UpdateAddress(owner.ID, 9999, &UpdateAddressRequest{City: &city})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))

	// The intruder's attempts changed nothing
	var reloaded Address
	require.NoError(t, db.First(&reloaded, created.ID).Error)
	assert.Equal(t, "London", reloaded.City)
}

func TestDeleteAddress(t *testing.T) {
	db := newTestDB(t)
	svc := NewAddressService(db)
	u := createTestUser(t, db, "addr@example.com")

	created, err := svc.CreateAddress(u.ID, addressRequest(false))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAddress(u.ID, created.ID))

	addresses, err := svc.GetAddresses(u.ID)
	require.NoError(t, err)
	assert.Empty(t, addresses)
}
