package order

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
	require.NoError(t, db.AutoMigrate(&product.Product{}, &Order{}, &OrderItem{}, &Payment{}))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, stock int) *product.Product {
	t.Helper()
	p := &product.Product{Name: "Widget", Price: 1000, Stock: stock}
	require.NoError(t, db.Create(p).Error)
	return p
}

func paidEvent(p *product.Product, txnID string, userID *uint) *CheckoutCompletedEvent {
	return &CheckoutCompletedEvent{
		Provider:      ProviderStripe,
		ProviderTxnID: txnID,
		UserID:        userID,
		Email:         "buyer@example.com",
		Amount:        2000,
		Items: []PaidItem{
			{ProductID: p.ID, Name: "Widget", Price: 1000, Quantity: 2},
		},
	}
}

func TestRecordCheckoutCompleted(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	p := seedProduct(t, db, 10)
	userID := uint(7)

	recorded, err := svc.RecordCheckoutCompleted(paidEvent(p, "pi_123", &userID))
	require.NoError(t, err)

	assert.Equal(t, StatusPaid, recorded.Status)
	assert.EqualValues(t, 2000, recorded.TotalAmount)
	assert.NotEmpty(t, recorded.OrderNumber)
	require.NotNil(t, recorded.UserID)
	assert.Equal(t, userID, *recorded.UserID)

	require.Len(t, recorded.Items, 1)
	assert.Equal(t, "Widget", recorded.Items[0].Name)
	assert.EqualValues(t, 1000, recorded.Items[0].Price)
	assert.Equal(t, 2, recorded.Items[0].Quantity)

	require.NotNil(t, recorded.Payment)
	assert.Equal(t, ProviderStripe, recorded.Payment.Provider)
	assert.Equal(t, "pi_123", recorded.Payment.ProviderTxnID)
	assert.Equal(t, StatusPaid, recorded.Payment.Status)

	// Stock moved by the purchased quantity
	var reloaded product.Product
	require.NoError(t, db.First(&reloaded, p.ID).Error)
	assert.Equal(t, 8, reloaded.Stock)
}

func TestRecordCheckoutCompletedIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	p := seedProduct(t, db, 10)

	first, err := svc.RecordCheckoutCompleted(paidEvent(p, "pi_dup", nil))
	require.NoError(t, err)

	// Redelivery of the same transaction id records nothing new
	second, err := svc.RecordCheckoutCompleted(paidEvent(p, "pi_dup", nil))
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var orders, payments, items int64
	require.NoError(t, db.Model(&Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&Payment{}).Count(&payments).Error)
	require.NoError(t, db.Model(&OrderItem{}).Count(&items).Error)
	assert.EqualValues(t, 1, orders)
	assert.EqualValues(t, 1, payments)
	assert.EqualValues(t, 1, items)

	// Stock was decremented exactly once
	var reloaded product.Product
	require.NoError(t, db.First(&reloaded, p.ID).Error)
	assert.Equal(t, 8, reloaded.Stock)
}

func TestRecordCheckoutSnapshotPricesAreVerbatim(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	p := seedProduct(t, db, 10)

	evt := paidEvent(p, "pi_snap", nil)
	// Catalog price changes after checkout must not leak into the order
	require.NoError(t, db.Model(&product.Product{}).Where("id = ?", p.ID).
		Update("price", 9999).Error)

	recorded, err := svc.RecordCheckoutCompleted(evt)
	require.NoError(t, err)
	assert.EqualValues(t, 1000, recorded.Items[0].Price)
}

func TestRecordCheckoutInsufficientStock(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	p := seedProduct(t, db, 1)

	// The charge already happened, so the order is still recorded; the
	// guarded decrement just leaves stock untouched
	recorded, err := svc.RecordCheckoutCompleted(paidEvent(p, "pi_low", nil))
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, recorded.Status)

	var reloaded product.Product
	require.NoError(t, db.First(&reloaded, p.ID).Error)
	assert.Equal(t, 1, reloaded.Stock)
}

func TestRecordCheckoutMalformedSnapshot(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	p := seedProduct(t, db, 10)

	cases := []*CheckoutCompletedEvent{
		{Provider: ProviderStripe, ProviderTxnID: "", Amount: 100, Items: []PaidItem{{ProductID: p.ID, Price: 100, Quantity: 1}}},
		{Provider: ProviderStripe, ProviderTxnID: "pi_x", Amount: 100, Items: nil},
		{Provider: ProviderStripe, ProviderTxnID: "pi_y", Amount: 100, Items: []PaidItem{{ProductID: p.ID, Price: 100, Quantity: 0}}},
		{Provider: ProviderStripe, ProviderTxnID: "pi_z", Amount: 100, Items: []PaidItem{{ProductID: p.ID, Price: -5, Quantity: 1}}},
	}

	for _, evt := range cases {
		_, err := svc.RecordCheckoutCompleted(evt)
		assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
	}

	// Nothing was written
	var orders int64
	require.NoError(t, db.Model(&Order{}).Count(&orders).Error)
	assert.Zero(t, orders)
}

func TestListAndGetOrdersScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	p := seedProduct(t, db, 10)
	alice, bob := uint(1), uint(2)

	mine, err := svc.RecordCheckoutCompleted(paidEvent(p, "pi_alice", &alice))
	require.NoError(t, err)
	_, err = svc.RecordCheckoutCompleted(paidEvent(p, "pi_bob", &bob))
	require.NoError(t, err)

	orders, err := svc.ListOrders(alice)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, mine.ID, orders[0].ID)
	require.NotNil(t, orders[0].Payment)
	require.Len(t, orders[0].Items, 1)

	_, err = svc.GetOrder(bob, mine.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))

	_, err = svc.GetOrder(alice, 999)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}
