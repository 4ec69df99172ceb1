// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

const sessionCookieName = "cart_session"

// CartHandler handles cart requests for both authenticated users and
// guests. Guest identity rides on a session cookie.
type CartHandler struct {
	service *cart.Service
}

// NewCartHandler creates a new cart handler
func NewCartHandler(db *gorm.DB, redisClient *redis.Client) *CartHandler {
	return &CartHandler{
		service: cart.NewService(db, cart.NewRedisSessionStore(redisClient)),
	}
}

// GetCart returns the full cart for the current identity
func (h *CartHandler) GetCart(c *gin.Context) {
	userID := middleware.GetOptionalUserIDFromContext(c)
	sessionID := h.sessionID(c, userID)

	response, err := h.service.GetCart(c.Request.Context(), userID, sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": response,
	})
}

// AddToCart adds a product or increments its line
func (h *CartHandler) AddToCart(c *gin.Context) {
	userID := middleware.GetOptionalUserIDFromContext(c)
	sessionID := h.sessionID(c, userID)

	var req cart.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request data: " + err.Error(),
		})
		return
	}

	response, err := h.service.AddToCart(c.Request.Context(), userID, sessionID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart",
		"data":    response,
	})
}

// RemoveFromCart removes a product line. Absent products are a no-op.
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	userID := middleware.GetOptionalUserIDFromContext(c)
	sessionID := h.sessionID(c, userID)

	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	response, err := h.service.RemoveFromCart(c.Request.Context(), userID, sessionID, productID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart",
		"data":    response,
	})
}

// ClearCart empties the cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID := middleware.GetOptionalUserIDFromContext(c)
	sessionID := h.sessionID(c, userID)

	if err := h.service.ClearCart(c.Request.Context(), userID, sessionID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared",
	})
}

// GetCount returns the total quantity across cart lines
func (h *CartHandler) GetCount(c *gin.Context) {
	userID := middleware.GetOptionalUserIDFromContext(c)
	sessionID := h.sessionID(c, userID)

	count, err := h.service.ItemCount(c.Request.Context(), userID, sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"count": count},
	})
}

// sessionID returns the guest session id, creating the cookie when a
// guest has none yet. Authenticated requests never touch the cookie, so
// logging in simply switches the source of truth to the persistent cart.
func (h *CartHandler) sessionID(c *gin.Context, userID *uint) string {
	if userID != nil {
		return ""
	}

	sessionID, err := c.Cookie(sessionCookieName)
	if err == nil && sessionID != "" {
		return sessionID
	}

	sessionID = uuid.New().String()
	c.SetCookie(sessionCookieName, sessionID, int(24*60*60), "/", "", false, true)
	return sessionID
}
