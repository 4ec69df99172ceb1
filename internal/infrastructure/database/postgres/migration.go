// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/domain/user"
	"github.com/your-org/storefront-backend/internal/domain/wishlist"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Define all models that need migration in dependency order
	models := []interface{}{
		// User domain - Base tables
		&user.User{},
		&user.Address{},
		&user.PaymentMethod{},

		// Product domain
		&product.Product{},
		&product.Review{},

		// Cart domain
		&cart.Cart{},
		&cart.CartItem{},

		// Wishlist domain
		&wishlist.Item{},

		// Order domain - Dependent tables
		&order.Order{},
		&order.OrderItem{},
		&order.Payment{},
	}

	// Run auto-migration for each model
	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at DESC)",

		// Address and payment method default lookups
		"CREATE INDEX IF NOT EXISTS idx_addresses_user_default ON addresses(user_id, is_default)",
		"CREATE INDEX IF NOT EXISTS idx_payment_methods_user_default ON payment_methods(user_id, is_default)",

		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",

		// Review indexes
		"CREATE INDEX IF NOT EXISTS idx_reviews_product ON reviews(product_id)",
		"CREATE INDEX IF NOT EXISTS idx_reviews_user ON reviews(user_id)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_user_created ON orders(user_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",
	}

	for _, index := range indexes {
		if err := m.db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	log.Println("✅ Database indexes created successfully")
	return nil
}

// SeedInitialData seeds the catalog with demo products in development
func (m *Migration) SeedInitialData() error {
	log.Println("🔄 Seeding initial data...")

	var count int64
	if err := m.db.Model(&product.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		log.Println("Products already seeded, skipping")
		return nil
	}

	products := []product.Product{
		{Name: "Wireless Headphones", Description: "High-quality wireless headphones with noise cancellation.", ImageURL: "https://images.unsplash.com/photo-1517841905240-472988babdf9?auto=format&fit=crop&w=400&q=80", Price: 9999, Category: "Electronics", Stock: 50},
		{Name: "Smart Watch", Description: "Track your fitness and notifications on the go.", ImageURL: "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?auto=format&fit=crop&w=400&q=80", Price: 14999, Category: "Wearables", Stock: 30},
		{Name: "Bluetooth Speaker", Description: "Portable speaker with deep bass and long battery life.", ImageURL: "https://images.unsplash.com/photo-1465101046530-73398c7f28ca?auto=format&fit=crop&w=400&q=80", Price: 5999, Category: "Audio", Stock: 40},
		{Name: "VR Headset", Description: "Immersive virtual reality experience for gaming and more.", ImageURL: "https://images.unsplash.com/photo-1517336714731-489689fd1ca8?auto=format&fit=crop&w=400&q=80", Price: 29999, Category: "Electronics", Stock: 20},
		{Name: "Robot Vacuum", Description: "Automatic vacuum cleaner for effortless cleaning.", ImageURL: "https://images.unsplash.com/photo-1512820790803-83ca734da794?auto=format&fit=crop&w=400&q=80", Price: 19999, Category: "Home", Stock: 15},
		{Name: "Fitness Tracker", Description: "Monitor your health and activity 24/7.", ImageURL: "https://images.unsplash.com/photo-1516574187841-cb9cc2ca948b?auto=format&fit=crop&w=400&q=80", Price: 7999, Category: "Wearables", Stock: 60},
		{Name: "Smart Home Hub", Description: "Control all your smart devices from one place.", ImageURL: "https://images.unsplash.com/photo-1507089947368-19c1da9775ae?auto=format&fit=crop&w=400&q=80", Price: 12999, Category: "Home", Stock: 25},
		{Name: "Noise Cancelling Earbuds", Description: "Compact earbuds with active noise cancellation.", ImageURL: "https://images.unsplash.com/photo-1511367461989-f85a21fda167?auto=format&fit=crop&w=400&q=80", Price: 8999, Category: "Audio", Stock: 35},
		{Name: "Smart Light Bulb", Description: "Energy-efficient LED bulb with app control.", ImageURL: "https://images.unsplash.com/photo-1519125323398-675f0ddb6308?auto=format&fit=crop&w=400&q=80", Price: 1999, Category: "Home", Stock: 100},
		{Name: "Wireless Charger", Description: "Fast wireless charging pad for all devices.", ImageURL: "https://images.unsplash.com/photo-1519389950473-47ba0277781c?auto=format&fit=crop&w=400&q=80", Price: 2999, Category: "Electronics", Stock: 80},
		{Name: "Portable Gaming Console", Description: "Play your favorite games anywhere with this portable console.", ImageURL: "https://images.unsplash.com/photo-1511512578047-dfb367046420?auto=format&fit=crop&w=400&q=80", Price: 24999, Category: "Electronics", Stock: 40},
		{Name: "Smart Glasses", Description: "Augmented reality smart glasses for hands-free information.", ImageURL: "https://images.unsplash.com/photo-1519125323398-675f0ddb6308?auto=format&fit=crop&w=400&q=80", Price: 19999, Category: "Wearables", Stock: 25},
		{Name: "Wireless Earbuds", Description: "True wireless earbuds with long battery life and great sound.", ImageURL: "https://images.unsplash.com/photo-1511367461989-f85a21fda167?auto=format&fit=crop&w=400&q=80", Price: 8999, Category: "Audio", Stock: 50},
	}

	if err := m.db.Create(&products).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	log.Printf("✅ Seeded %d products", len(products))
	return nil
}

// GetTableInfo logs the migrated tables with their row counts
func (m *Migration) GetTableInfo() {
	tables := []string{
		"users", "addresses", "payment_methods",
		"products", "reviews",
		"carts", "cart_items", "wishlist_items",
		"orders", "order_items", "payments",
	}

	log.Println("📋 Database tables:")
	for _, table := range tables {
		var count int64
		if err := m.db.Table(table).Count(&count).Error; err != nil {
			log.Printf("  %s: error reading count", table)
			continue
		}
		log.Printf("  %s: %d rows", table, count)
	}
}
