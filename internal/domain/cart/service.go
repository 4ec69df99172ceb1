// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/pkg/apperrors"
	"gorm.io/gorm"
)

const (
	guestCartKeyPrefix = "cart:session:"
	guestCartTTL       = 24 * time.Hour
)

// Service handles cart business logic. The resolved identity picks the
// mode: an authenticated user works against the persistent cart, a guest
// against the session cart. Guest items are not merged on login; the
// persistent cart simply becomes the source of truth.
type Service struct {
	db       *gorm.DB
	sessions SessionStore
}

// NewService creates a new cart service
func NewService(db *gorm.DB, sessions SessionStore) *Service {
	return &Service{
		db:       db,
		sessions: sessions,
	}
}

// GetCart returns the full cart for the current identity
func (s *Service) GetCart(ctx context.Context, userID *uint, sessionID string) (*CartResponse, error) {
	if userID != nil {
		return s.getUserCart(*userID)
	}
	return s.getGuestCartResponse(ctx, sessionID)
}

// AddToCart adds a product or increments its quantity, then returns the
// committed cart state
func (s *Service) AddToCart(ctx context.Context, userID *uint, sessionID string, req *AddToCartRequest) (*CartResponse, error) {
	if _, err := s.loadProduct(req.ProductID); err != nil {
		return nil, err
	}

	if userID != nil {
		return s.addToUserCart(*userID, req)
	}
	return s.addToGuestCart(ctx, sessionID, req)
}

// RemoveFromCart removes a product line. Removing an absent product is a
// no-op success.
func (s *Service) RemoveFromCart(ctx context.Context, userID *uint, sessionID string, productID uint) (*CartResponse, error) {
	if userID != nil {
		return s.removeFromUserCart(*userID, productID)
	}
	return s.removeFromGuestCart(ctx, sessionID, productID)
}

// ClearCart empties the cart for the current identity
func (s *Service) ClearCart(ctx context.Context, userID *uint, sessionID string) error {
	if userID != nil {
		var userCart Cart
		err := s.db.Where("user_id = ?", *userID).First(&userCart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return apperrors.Persistence(err, "failed to load cart")
		}
		if err := s.db.Where("cart_id = ?", userCart.ID).Delete(&CartItem{}).Error; err != nil {
			return apperrors.Persistence(err, "failed to clear cart")
		}
		return nil
	}

	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Del(ctx, guestCartKeyPrefix+sessionID); err != nil {
		return apperrors.Persistence(err, "failed to clear session cart")
	}
	return nil
}

// ItemCount returns the total quantity across all lines
func (s *Service) ItemCount(ctx context.Context, userID *uint, sessionID string) (int, error) {
	response, err := s.GetCart(ctx, userID, sessionID)
	if err != nil {
		return 0, err
	}
	return response.ItemCount, nil
}

// Owned cart operations

func (s *Service) getUserCart(userID uint) (*CartResponse, error) {
	var userCart Cart
	err := s.db.Preload("Items.Product").Where("user_id = ?", userID).First(&userCart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return emptyCartResponse(), nil
	}
	if err != nil {
		return nil, apperrors.Persistence(err, "failed to load cart")
	}
	return buildCartResponse(userCart.Items), nil
}

func (s *Service) addToUserCart(userID uint, req *AddToCartRequest) (*CartResponse, error) {
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var userCart Cart
	if err := tx.Where(Cart{UserID: userID}).FirstOrCreate(&userCart).Error; err != nil {
		tx.Rollback()
		return nil, apperrors.Persistence(err, "failed to load cart")
	}

	var item CartItem
	err := tx.Where("cart_id = ? AND product_id = ?", userCart.ID, req.ProductID).
		First(&item).Error
	switch {
	case err == nil:
		// Same product again increments the existing line
		if err := tx.Model(&item).
			Update("quantity", gorm.Expr("quantity + ?", req.Quantity)).Error; err != nil {
			tx.Rollback()
			return nil, apperrors.Persistence(err, "failed to update cart item")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = CartItem{
			CartID:    userCart.ID,
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
		}
		if err := tx.Create(&item).Error; err != nil {
			tx.Rollback()
			return nil, apperrors.Persistence(err, "failed to create cart item")
		}
	default:
		tx.Rollback()
		return nil, apperrors.Persistence(err, "failed to load cart item")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.Persistence(err, "failed to commit cart update")
	}

	// Response reflects committed state, re-read in full
	return s.getUserCart(userID)
}

func (s *Service) removeFromUserCart(userID uint, productID uint) (*CartResponse, error) {
	var userCart Cart
	err := s.db.Where("user_id = ?", userID).First(&userCart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return emptyCartResponse(), nil
	}
	if err != nil {
		return nil, apperrors.Persistence(err, "failed to load cart")
	}

	if err := s.db.Where("cart_id = ? AND product_id = ?", userCart.ID, productID).
		Delete(&CartItem{}).Error; err != nil {
		return nil, apperrors.Persistence(err, "failed to remove cart item")
	}

	return s.getUserCart(userID)
}

// Guest cart operations

func (s *Service) getGuestCart(ctx context.Context, sessionID string) (*SessionCart, error) {
	if sessionID == "" {
		return &SessionCart{Items: []SessionCartItem{}}, nil
	}

	payload, err := s.sessions.Get(ctx, guestCartKeyPrefix+sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return &SessionCart{SessionID: sessionID, Items: []SessionCartItem{}}, nil
	}
	if err != nil {
		return nil, apperrors.Persistence(err, "failed to load session cart")
	}

	var sessionCart SessionCart
	if err := json.Unmarshal([]byte(payload), &sessionCart); err != nil {
		return nil, apperrors.Persistence(err, "failed to decode session cart")
	}
	return &sessionCart, nil
}

func (s *Service) saveGuestCart(ctx context.Context, sessionCart *SessionCart) error {
	sessionCart.UpdatedAt = time.Now().UTC()

	payload, err := json.Marshal(sessionCart)
	if err != nil {
		return apperrors.Persistence(err, "failed to encode session cart")
	}

	key := guestCartKeyPrefix + sessionCart.SessionID
	if err := s.sessions.Set(ctx, key, string(payload), guestCartTTL); err != nil {
		return apperrors.Persistence(err, "failed to save session cart")
	}
	return nil
}

func (s *Service) getGuestCartResponse(ctx context.Context, sessionID string) (*CartResponse, error) {
	sessionCart, err := s.getGuestCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.buildGuestResponse(sessionCart)
}

func (s *Service) addToGuestCart(ctx context.Context, sessionID string, req *AddToCartRequest) (*CartResponse, error) {
	if sessionID == "" {
		return nil, apperrors.Validation("session required for guest cart")
	}

	sessionCart, err := s.getGuestCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sessionCart.SessionID = sessionID

	found := false
	for i := range sessionCart.Items {
		if sessionCart.Items[i].ProductID == req.ProductID {
			sessionCart.Items[i].Quantity += req.Quantity
			found = true
			break
		}
	}
	if !found {
		sessionCart.Items = append(sessionCart.Items, SessionCartItem{
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
		})
	}

	if err := s.saveGuestCart(ctx, sessionCart); err != nil {
		return nil, err
	}
	return s.buildGuestResponse(sessionCart)
}

func (s *Service) removeFromGuestCart(ctx context.Context, sessionID string, productID uint) (*CartResponse, error) {
	sessionCart, err := s.getGuestCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	kept := sessionCart.Items[:0]
	for _, item := range sessionCart.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	sessionCart.Items = kept

	if sessionID != "" {
		sessionCart.SessionID = sessionID
		if err := s.saveGuestCart(ctx, sessionCart); err != nil {
			return nil, err
		}
	}
	return s.buildGuestResponse(sessionCart)
}

// Response building

func (s *Service) loadProduct(productID uint) (*product.Product, error) {
	var p product.Product
	if err := s.db.First(&p, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("product not found")
		}
		return nil, apperrors.Persistence(err, "failed to load product")
	}
	return &p, nil
}

func (s *Service) buildGuestResponse(sessionCart *SessionCart) (*CartResponse, error) {
	if len(sessionCart.Items) == 0 {
		return emptyCartResponse(), nil
	}

	ids := make([]uint, 0, len(sessionCart.Items))
	for _, item := range sessionCart.Items {
		ids = append(ids, item.ProductID)
	}

	var products []product.Product
	if err := s.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, apperrors.Persistence(err, "failed to load products")
	}

	byID := make(map[uint]*product.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	response := emptyCartResponse()
	for _, item := range sessionCart.Items {
		line := CartItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Product:   byID[item.ProductID],
		}
		response.Items = append(response.Items, line)
		response.ItemCount += item.Quantity
		if line.Product != nil {
			response.Subtotal += line.Product.Price * int64(item.Quantity)
		}
	}
	return response, nil
}

func buildCartResponse(items []CartItem) *CartResponse {
	response := emptyCartResponse()
	for _, item := range items {
		line := CartItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Product:   item.Product,
		}
		response.Items = append(response.Items, line)
		response.ItemCount += item.Quantity
		if item.Product != nil {
			response.Subtotal += item.Product.Price * int64(item.Quantity)
		}
	}
	return response
}

func emptyCartResponse() *CartResponse {
	return &CartResponse{
		Items: []CartItemResponse{},
	}
}
