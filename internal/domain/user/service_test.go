package user

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/domain/wishlist"
	"github.com/your-org/storefront-backend/internal/pkg/apperrors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&User{}, &Address{}, &PaymentMethod{},
		&product.Product{}, &product.Review{},
		&cart.Cart{}, &cart.CartItem{},
		&wishlist.Item{},
		&order.Order{}, &order.OrderItem{}, &order.Payment{},
	))
	return db
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "storefront-test"
	cfg.JWT.Secret = "test-secret-key-that-is-long-enough!"
	cfg.JWT.AccessTokenExpiry = 3600e9
	cfg.JWT.RefreshTokenExpiry = 86400e9
	cfg.Security.BcryptCost = 4
	return cfg
}

func registerTestUser(t *testing.T, svc *Service, email string) *User {
	t.Helper()
	resp, err := svc.Register(&RegisterRequest{
		Name:     "Test User",
		Email:    email,
		Password: "sup3rsecret",
	})
	require.NoError(t, err)
	return resp.User
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, testConfig())

	resp, err := svc.Register(&RegisterRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "sup3rsecret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "ada@example.com", resp.User.Email)
	assert.True(t, resp.User.NotifyEmail)
	assert.Equal(t, "en", resp.User.Language)

	login, err := svc.Login(&LoginRequest{Email: "ada@example.com", Password: "sup3rsecret"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	_, err = svc.Login(&LoginRequest{Email: "ada@example.com", Password: "wrongpass1"})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeUnauthorized))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, testConfig())

	registerTestUser(t, svc, "dup@example.com")

	_, err := svc.Register(&RegisterRequest{
		Name:     "Other",
		Email:    "dup@example.com",
		Password: "sup3rsecret",
	})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))
}

func TestRefreshToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, testConfig())

	resp := func() *AuthResponse {
		r, err := svc.Register(&RegisterRequest{
			Name: "Ada", Email: "ada@example.com", Password: "sup3rsecret",
		})
		require.NoError(t, err)
		return r
	}()

	refreshed, err := svc.RefreshToken(resp.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, refreshed.User.ID)

	// Access tokens are not accepted for refresh
	_, err = svc.RefreshToken(resp.AccessToken)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeUnauthorized))
}

func TestUpdateSettingsPartial(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, testConfig())
	u := registerTestUser(t, svc, "prefs@example.com")

	dark := "dark"
	off := false
	settings, err := svc.UpdateSettings(u.ID, &UpdateSettingsRequest{
		Theme:       &dark,
		NotifyEmail: &off,
	})
	require.NoError(t, err)
	assert.Equal(t, "dark", settings.Theme)
	assert.False(t, settings.NotifyEmail)
	// Untouched fields keep their values
	assert.Equal(t, "en", settings.Language)
	assert.False(t, settings.NotifySMS)

	bad := "neon"
	_, err = svc.UpdateSettings(u.ID, &UpdateSettingsRequest{Theme: &bad})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))

	// Failed update left the stored theme alone
	settings, err = svc.GetSettings(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "dark", settings.Theme)
}

func TestDeleteAccountCascades(t *testing.T) {
	db := newTestDB(t)
	cfg := testConfig()
	svc := NewService(db, cfg)
	u := registerTestUser(t, svc, "gone@example.com")

	p := product.Product{Name: "Widget", Price: 1000, Stock: 5}
	require.NoError(t, db.Create(&p).Error)

	require.NoError(t, db.Create(&Address{UserID: u.ID, FullName: "G", Line1: "1 St", City: "X", State: "Y", PostalCode: "1", Country: "US"}).Error)
	require.NoError(t, db.Create(&PaymentMethod{UserID: u.ID, Type: PaymentMethodTypePayPal, PaypalEmail: "g@e.com"}).Error)
	require.NoError(t, db.Create(&product.Review{UserID: u.ID, ProductID: p.ID, Rating: 5}).Error)
	require.NoError(t, db.Create(&wishlist.Item{UserID: u.ID, ProductID: p.ID}).Error)

	userCart := cart.Cart{UserID: u.ID}
	require.NoError(t, db.Create(&userCart).Error)
	require.NoError(t, db.Create(&cart.CartItem{CartID: userCart.ID, ProductID: p.ID, Quantity: 2}).Error)

	uid := u.ID
	require.NoError(t, db.Create(&order.Order{OrderNumber: "ORD-TEST1", UserID: &uid, Status: order.StatusPaid, TotalAmount: 1000}).Error)

	require.NoError(t, svc.DeleteAccount(u.ID))

	var count int64
	for _, model := range []interface{}{&User{}, &Address{}, &PaymentMethod{}, &product.Review{}, &wishlist.Item{}, &cart.Cart{}, &cart.CartItem{}} {
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Zero(t, count, "%T rows should be gone", model)
	}

	// Order history survives with the user reference cleared
	var kept order.Order
	require.NoError(t, db.First(&kept, "order_number = ?", "ORD-TEST1").Error)
	assert.Nil(t, kept.UserID)

	err := svc.DeleteAccount(u.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}
