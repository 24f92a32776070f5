// Seeds the catalog with a small demo dataset and walks one cart through
// add / change-quantity / checkout against the live backends.
package main

import (
	"context"
	"database/sql"
	"os"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/galaxyshop/shop/internal/adapter/storage"
	"github.com/galaxyshop/shop/internal/core/domain"
	"github.com/galaxyshop/shop/internal/core/service"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()

	db, err := sql.Open("mysql", getenv("MYSQL_DSN", "root:root@tcp(localhost:3306)/galaxyshop?parseTime=true"))
	if err != nil {
		logger.Fatal("failed to connect mysql", zap.Error(err))
	}
	defer db.Close()

	rdb := redis.NewClient(&redis.Options{Addr: getenv("REDIS_ADDR", "localhost:6379")})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Fatal("failed to connect redis", zap.Error(err))
	}
	defer rdb.Close()

	catalogStore := storage.NewMySQLCatalogStore(db)
	cartStore := storage.NewMySQLCartStore(db)
	orderStore := storage.NewMySQLOrderStore(db)

	catalog := service.NewCatalogService(catalogStore, storage.NewRedisProductCache(rdb))
	carts := service.NewCartService(cartStore, catalog)
	checkout := service.NewCheckoutService(cartStore, orderStore)

	// Catalog
	brand := domain.NewBrand("Samsung")
	if err := catalogStore.CreateBrand(ctx, brand); err != nil {
		logger.Fatal("seed brand", zap.Error(err))
	}

	sub := domain.NewSubCategory("Smartphones")
	if err := catalogStore.CreateSubCategory(ctx, sub); err != nil {
		logger.Fatal("seed subcategory", zap.Error(err))
	}

	category := domain.NewCategory("Mobile Devices", sub.ID)
	if err := catalogStore.CreateCategory(ctx, category); err != nil {
		logger.Fatal("seed category", zap.Error(err))
	}

	phone, err := domain.NewProduct(category.ID, sub.ID, brand.ID, "Galaxy S24", decimal.RequireFromString("999.00"))
	if err != nil {
		logger.Fatal("build product", zap.Error(err))
	}
	if err := catalog.AddProduct(ctx, phone); err != nil {
		logger.Fatal("seed product", zap.Error(err))
	}
	logger.Info("seeded product", zap.String("slug", phone.Slug), zap.String("price", phone.Price.StringFixed(2)))

	// Cart flow
	cart, err := carts.Create(ctx)
	if err != nil {
		logger.Fatal("create cart", zap.Error(err))
	}

	cart, err = carts.AddItem(ctx, cart.ID, phone.ID)
	if err != nil {
		logger.Fatal("add item", zap.Error(err))
	}

	cart, err = carts.ChangeQuantity(ctx, cart.ID, cart.Items[0].ID, 2)
	if err != nil {
		logger.Fatal("change quantity", zap.Error(err))
	}
	logger.Info("cart ready", zap.String("cart_id", cart.ID), zap.String("total", cart.CartTotal.StringFixed(2)))

	order, err := checkout.Checkout(ctx, "demo-user", []string{cart.ID}, domain.ContactInfo{
		FirstName: "Demo",
		LastName:  "User",
		Phone:     "+380000000000",
		Address:   "1 Demo St",
	}, domain.BuyingTypeDelivery)
	if err != nil {
		logger.Fatal("checkout", zap.Error(err))
	}

	logger.Info("order placed",
		zap.String("order_id", order.ID),
		zap.String("total", order.Total.StringFixed(2)),
		zap.String("status", string(order.Status)),
		zap.Time("created_at", order.CreatedAt),
	)
}
