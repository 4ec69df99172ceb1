package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testWebhookSecret = "whsec_test_secret"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&product.Product{}, &order.Order{}, &order.OrderItem{}, &order.Payment{},
	))
	return db
}

func newWebhookRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.External.Stripe.WebhookSecret = testWebhookSecret

	router := gin.New()
	router.POST("/webhooks/stripe", NewWebhookHandler(db, cfg).StripeWebhook)
	return router
}

// signPayload builds a Stripe-Signature header the way Stripe does:
// an HMAC-SHA256 of "<timestamp>.<payload>" under the shared secret.
func signPayload(payload string, secret string) string {
	timestamp := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", timestamp, payload)
	return fmt.Sprintf("t=%d,v1=%s", timestamp, hex.EncodeToString(mac.Sum(nil)))
}

func checkoutCompletedPayload(txnID string, productID uint) string {
	items := fmt.Sprintf(`[{\"product_id\":%d,\"name\":\"Widget\",\"price\":1000,\"quantity\":2}]`, productID)
	return fmt.Sprintf(`{
		"id": "evt_test_1",
		"object": "event",
		"api_version": %q,
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_test_1",
				"object": "checkout.session",
				"amount_total": 2000,
				"payment_intent": %q,
				"customer_details": {"email": "buyer@example.com"},
				"metadata": {"items": "%s", "user_id": "7"}
			}
		}
	}`, stripe.APIVersion, txnID, items)
}

func postWebhook(router *gin.Engine, payload, signature string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", strings.NewReader(payload))
	req.Header.Set("Stripe-Signature", signature)
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestStripeWebhookRecordsOrder(t *testing.T) {
	db := newTestDB(t)
	router := newWebhookRouter(t, db)

	p := product.Product{Name: "Widget", Price: 1000, Stock: 10}
	require.NoError(t, db.Create(&p).Error)

	payload := checkoutCompletedPayload("pi_test_1", p.ID)
	recorder := postWebhook(router, payload, signPayload(payload, testWebhookSecret))
	assert.Equal(t, http.StatusOK, recorder.Code)

	var recorded order.Order
	require.NoError(t, db.Preload("Items").Preload("Payment").First(&recorded).Error)
	assert.Equal(t, order.StatusPaid, recorded.Status)
	assert.EqualValues(t, 2000, recorded.TotalAmount)
	assert.Equal(t, "buyer@example.com", recorded.Email)
	require.NotNil(t, recorded.UserID)
	assert.EqualValues(t, 7, *recorded.UserID)

	require.Len(t, recorded.Items, 1)
	assert.Equal(t, "Widget", recorded.Items[0].Name)
	assert.Equal(t, 2, recorded.Items[0].Quantity)

	require.NotNil(t, recorded.Payment)
	assert.Equal(t, "pi_test_1", recorded.Payment.ProviderTxnID)

	var reloaded product.Product
	require.NoError(t, db.First(&reloaded, p.ID).Error)
	assert.Equal(t, 8, reloaded.Stock)
}

func TestStripeWebhookReplayIsAcknowledgedOnce(t *testing.T) {
	db := newTestDB(t)
	router := newWebhookRouter(t, db)

	p := product.Product{Name: "Widget", Price: 1000, Stock: 10}
	require.NoError(t, db.Create(&p).Error)

	payload := checkoutCompletedPayload("pi_replay", p.ID)
	first := postWebhook(router, payload, signPayload(payload, testWebhookSecret))
	second := postWebhook(router, payload, signPayload(payload, testWebhookSecret))
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)

	var orders int64
	require.NoError(t, db.Model(&order.Order{}).Count(&orders).Error)
	assert.EqualValues(t, 1, orders)
}

func TestStripeWebhookRejectsBadSignature(t *testing.T) {
	db := newTestDB(t)
	router := newWebhookRouter(t, db)

	payload := checkoutCompletedPayload("pi_bad", 1)

	// Missing header
	recorder := postWebhook(router, payload, "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// Signed with the wrong secret
	recorder = postWebhook(router, payload, signPayload(payload, "whsec_wrong"))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// Signature from a different body
	recorder = postWebhook(router, payload, signPayload(payload+" ", testWebhookSecret))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// Nothing was written on any rejected delivery
	var orders int64
	require.NoError(t, db.Model(&order.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)
}

func TestStripeWebhookIgnoresOtherEventTypes(t *testing.T) {
	db := newTestDB(t)
	router := newWebhookRouter(t, db)

	payload := fmt.Sprintf(`{
		"id": "evt_test_2",
		"object": "event",
		"api_version": %q,
		"type": "payment_intent.created",
		"data": {"object": {"id": "pi_other", "object": "payment_intent"}}
	}`, stripe.APIVersion)

	recorder := postWebhook(router, payload, signPayload(payload, testWebhookSecret))
	assert.Equal(t, http.StatusOK, recorder.Code)

	var orders int64
	require.NoError(t, db.Model(&order.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)
}
