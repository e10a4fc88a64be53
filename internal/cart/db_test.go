package cart

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/marketloop/storefront-backend/pkg/db/models"
	"github.com/marketloop/storefront-backend/pkg/enums"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schemas := []string{`
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'customer',
  address TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS products (
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
CREATE TABLE IF NOT EXISTS carts (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL UNIQUE,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS cart_items (
  id TEXT PRIMARY KEY,
  cart_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  unit_price NUMERIC NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (cart_id, product_id)
);`}

	for _, schema := range schemas {
		require.NoError(t, db.Exec(schema).Error)
	}
	return db
}

func mustCreateCartUser(t *testing.T, tx *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.New(),
		Name:         "Cart Tester",
		Email:        fmt.Sprintf("cart_test_%s@example.com", uuid.NewString()),
		PasswordHash: "hash",
		Role:         enums.UserRoleCustomer,
	}
	require.NoError(t, tx.Create(user).Error)
	return user
}

func mustCreateCartProduct(t *testing.T, tx *gorm.DB, price string, stock int) *models.Product {
	t.Helper()
	unit, err := decimal.NewFromString(price)
	require.NoError(t, err)
	product := &models.Product{
		ID:       uuid.New(),
		Name:     fmt.Sprintf("Cart Product %s", uuid.NewString()[:8]),
		Price:    unit,
		Category: "cart-test",
		Stock:    stock,
	}
	require.NoError(t, tx.Create(product).Error)
	return product
}

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
