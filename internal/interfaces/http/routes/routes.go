// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupRoutes wires all API routes
func SetupRoutes(api *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	accountHandler := handlers.NewAccountHandler(db, cfg)
	productHandler := handlers.NewProductHandler(db)
	reviewHandler := handlers.NewReviewHandler(db)
	cartHandler := handlers.NewCartHandler(db, redisClient)
	wishlistHandler := handlers.NewWishlistHandler(db)
	addressHandler := handlers.NewAddressHandler(db)
	paymentMethodHandler := handlers.NewPaymentMethodHandler(db)
	orderHandler := handlers.NewOrderHandler(db)
	checkoutHandler := handlers.NewCheckoutHandler(cfg)
	webhookHandler := handlers.NewWebhookHandler(db, cfg)

	// Authentication routes
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
		auth.GET("/profile", middleware.AuthMiddleware(cfg), authHandler.GetProfile)
	}

	// Account settings and deletion
	account := api.Group("/account")
	account.Use(middleware.AuthMiddleware(cfg))
	{
		account.GET("/settings", accountHandler.GetSettings)
		account.PUT("/settings", accountHandler.UpdateSettings)
		account.DELETE("", accountHandler.DeleteAccount)
	}

	// Public catalog
	products := api.Group("/products")
	{
		products.GET("", productHandler.ListProducts)
		products.GET("/:id", productHandler.GetProduct)
	}

	// Reviews: public listing by product, authenticated writes
	reviews := api.Group("/reviews")
	{
		reviews.GET("", middleware.OptionalAuthMiddleware(cfg), reviewHandler.ListReviews)
		reviews.POST("", middleware.AuthMiddleware(cfg), reviewHandler.CreateReview)
		reviews.PUT("/:id", middleware.AuthMiddleware(cfg), reviewHandler.UpdateReview)
		reviews.DELETE("/:id", middleware.AuthMiddleware(cfg), reviewHandler.DeleteReview)
	}

	// Cart works for guests and users alike
	cart := api.Group("/cart")
	cart.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/items", cartHandler.AddToCart)
		cart.DELETE("/items/:productId", cartHandler.RemoveFromCart)
		cart.DELETE("", cartHandler.ClearCart)
		cart.GET("/count", cartHandler.GetCount)
	}

	// Wishlist is authenticated-only
	wishlist := api.Group("/wishlist")
	wishlist.Use(middleware.AuthMiddleware(cfg))
	{
		wishlist.GET("", wishlistHandler.GetWishlist)
		wishlist.POST("", wishlistHandler.AddToWishlist)
		wishlist.DELETE("/:productId", wishlistHandler.RemoveFromWishlist)
	}

	// Addresses
	addresses := api.Group("/addresses")
	addresses.Use(middleware.AuthMiddleware(cfg))
	{
		addresses.GET("", addressHandler.GetAddresses)
		addresses.POST("", addressHandler.CreateAddress)
		addresses.PUT("/:id", addressHandler.UpdateAddress)
		addresses.DELETE("/:id", addressHandler.DeleteAddress)
	}

	// Payment methods
	paymentMethods := api.Group("/payment-methods")
	paymentMethods.Use(middleware.AuthMiddleware(cfg))
	{
		paymentMethods.GET("", paymentMethodHandler.GetPaymentMethods)
		paymentMethods.POST("", paymentMethodHandler.CreatePaymentMethod)
		paymentMethods.PUT("/:id", paymentMethodHandler.UpdatePaymentMethod)
		paymentMethods.DELETE("/:id", paymentMethodHandler.DeletePaymentMethod)
	}

	// Orders
	orders := api.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg))
	{
		orders.GET("", orderHandler.ListOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.GET("/:id/invoice", orderHandler.GetInvoice)
	}

	// Checkout
	checkoutGroup := api.Group("/checkout")
	checkoutGroup.Use(middleware.AuthMiddleware(cfg))
	{
		checkoutGroup.POST("/session", checkoutHandler.CreateStripeSession)
		checkoutGroup.POST("/paypal", checkoutHandler.CreatePayPalOrder)
	}

	// Webhooks authenticate by signature, not by token
	webhooks := api.Group("/webhooks")
	{
		webhooks.POST("/stripe", webhookHandler.StripeWebhook)
	}
}
