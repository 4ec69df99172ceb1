package wishlist

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/domain/product"
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
	require.NoError(t, db.AutoMigrate(&product.Product{}, &Item{}))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string) *product.Product {
	t.Helper()
	p := &product.Product{Name: name, Price: 1000, Stock: 10}
	require.NoError(t, db.Create(p).Error)
	return p
}

func TestAddToWishlistIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	p := seedProduct(t, db, "Widget")
	userID := uint(1)

	resp, err := svc.AddToWishlist(userID, &AddToWishlistRequest{ProductID: p.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Count)

	// Adding a member again is a no-op success, not a duplicate
	resp, err = svc.AddToWishlist(userID, &AddToWishlistRequest{ProductID: p.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Count)

	var rows int64
	require.NoError(t, db.Model(&Item{}).Count(&rows).Error)
	assert.EqualValues(t, 1, rows)
}

func TestAddToWishlistUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	_, err := svc.AddToWishlist(1, &AddToWishlistRequest{ProductID: 42})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestRemoveFromWishlistIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	p := seedProduct(t, db, "Widget")
	userID := uint(1)

	_, err := svc.AddToWishlist(userID, &AddToWishlistRequest{ProductID: p.ID})
	require.NoError(t, err)

	resp, err := svc.RemoveFromWishlist(userID, p.ID)
	require.NoError(t, err)
	assert.Zero(t, resp.Count)

	// Removing a non-member succeeds too
	resp, err = svc.RemoveFromWishlist(userID, p.ID)
	require.NoError(t, err)
	assert.Zero(t, resp.Count)
}

func TestWishlistReturnsFullSetWithProducts(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	p1 := seedProduct(t, db, "Widget")
	p2 := seedProduct(t, db, "Gadget")
	userID := uint(1)

	_, err := svc.AddToWishlist(userID, &AddToWishlistRequest{ProductID: p1.ID})
	require.NoError(t, err)
	resp, err := svc.AddToWishlist(userID, &AddToWishlistRequest{ProductID: p2.ID})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Count)
	for _, item := range resp.Items {
		require.NotNil(t, item.Product)
		assert.NotEmpty(t, item.Product.Name)
	}

	ok, err := svc.Contains(userID, p1.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// Another user's wishlist is unaffected
	other, err := svc.GetWishlist(2)
	require.NoError(t, err)
	assert.Zero(t, other.Count)
}
