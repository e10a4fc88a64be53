package orders

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/marketloop/storefront-backend/internal/cart"
	"github.com/marketloop/storefront-backend/internal/products"
	"github.com/marketloop/storefront-backend/pkg/db/models"
	"github.com/marketloop/storefront-backend/pkg/enums"
)

// each test gets its own named in-memory database so global listings
// stay deterministic
func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	schemas := []string{`
CREATE TABLE users (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'customer',
  address TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL DEFAULT 0,
  category TEXT NOT NULL DEFAULT '',
  brand TEXT NOT NULL DEFAULT '',
  stock INTEGER NOT NULL DEFAULT 0,
  images TEXT,
  rating NUMERIC NOT NULL DEFAULT 0,
  num_reviews INTEGER NOT NULL DEFAULT 0,
  features TEXT,
  tags TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE carts (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL UNIQUE,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE cart_items (
  id TEXT PRIMARY KEY,
  cart_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  unit_price NUMERIC NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (cart_id, product_id)
);`, `
CREATE TABLE orders (
  id TEXT PRIMARY KEY,
  order_number TEXT NOT NULL UNIQUE,
  user_id TEXT NOT NULL,
  shipping_address TEXT NOT NULL,
  payment_method TEXT NOT NULL,
  items_price NUMERIC NOT NULL DEFAULT 0,
  tax_price NUMERIC NOT NULL DEFAULT 0,
  shipping_price NUMERIC NOT NULL DEFAULT 0,
  total_price NUMERIC NOT NULL DEFAULT 0,
  is_paid INTEGER NOT NULL DEFAULT 0,
  paid_at DATETIME,
  payment_result TEXT,
  is_delivered INTEGER NOT NULL DEFAULT 0,
  delivered_at DATETIME,
  status TEXT NOT NULL DEFAULT 'pending',
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE order_line_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  name TEXT NOT NULL,
  image_url TEXT NOT NULL DEFAULT '',
  quantity INTEGER NOT NULL,
  unit_price NUMERIC NOT NULL DEFAULT 0,
  created_at DATETIME
);`}

	for _, schema := range schemas {
		require.NoError(t, db.Exec(schema).Error)
	}
	return db
}

func buildOrderService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:        NewRepository(db),
		CartRepo:    cart.NewRepository(db),
		ProductRepo: products.NewRepository(db),
		Tx:          gormTxRunner{db: db},
	})
	require.NoError(t, err)
	return svc
}

func mustCreateOrderUser(t *testing.T, db *gorm.DB, role enums.UserRole) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.New(),
		Name:         "Order Tester",
		Email:        fmt.Sprintf("orders_test_%s@example.com", uuid.NewString()),
		PasswordHash: "hash",
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func mustCreateOrderProduct(t *testing.T, db *gorm.DB, price string, stock int) *models.Product {
	t.Helper()
	unit, err := decimal.NewFromString(price)
	require.NoError(t, err)
	product := &models.Product{
		ID:       uuid.New(),
		Name:     fmt.Sprintf("Order Product %s", uuid.NewString()[:8]),
		Price:    unit,
		Category: "orders-test",
		Stock:    stock,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func mustFillCart(t *testing.T, db *gorm.DB, userID uuid.UUID, items ...models.CartItem) *models.Cart {
	t.Helper()
	userCart := &models.Cart{ID: uuid.New(), UserID: userID}
	require.NoError(t, db.Create(userCart).Error)
	for i := range items {
		items[i].ID = uuid.New()
		items[i].CartID = userCart.ID
		require.NoError(t, db.Create(&items[i]).Error)
	}
	return userCart
}

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
