package products

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

func setupCatalogTestDB(t *testing.T) *gorm.DB {
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
CREATE TABLE IF NOT EXISTS product_reviews (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  user_id TEXT NOT NULL,
  author TEXT NOT NULL,
  rating INTEGER NOT NULL,
  comment TEXT NOT NULL DEFAULT '',
  created_at DATETIME,
  UNIQUE (product_id, user_id)
);`}

	for _, schema := range schemas {
		require.NoError(t, db.Exec(schema).Error)
	}
	return db
}

func mustCreateTestUser(t *testing.T, tx *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.New(),
		Name:         "Repo Tester",
		Email:        fmt.Sprintf("catalog_test_%s@example.com", uuid.NewString()),
		PasswordHash: "hash",
		Role:         enums.UserRoleCustomer,
	}
	require.NoError(t, tx.Create(user).Error)
	return user
}

func mustCreateTestProduct(t *testing.T, tx *gorm.DB, category string, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:       uuid.New(),
		Name:     fmt.Sprintf("Test Product %s", uuid.NewString()[:8]),
		Price:    decimal.NewFromFloat(19.99),
		Category: category,
		Stock:    stock,
	}
	require.NoError(t, tx.Create(product).Error)
	return product
}

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
