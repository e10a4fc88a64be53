package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketloop/storefront-backend/pkg/db/models"
	"github.com/marketloop/storefront-backend/pkg/pagination"
)

func TestListFiltersByCategory(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	category := "cat-" + uuid.NewString()[:8]
	other := "cat-" + uuid.NewString()[:8]
	mustCreateTestProduct(t, db, category, 5)
	mustCreateTestProduct(t, db, category, 5)
	mustCreateTestProduct(t, db, other, 5)

	rows, total, err := repo.List(ctx, ListProductsInput{
		Category:   category,
		Pagination: pagination.Params{Page: 1, Limit: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, category, row.Category)
	}
}

func TestListPaginates(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	category := "cat-" + uuid.NewString()[:8]
	for i := 0; i < 5; i++ {
		mustCreateTestProduct(t, db, category, 5)
	}

	rows, total, err := repo.List(ctx, ListProductsInput{
		Category:   category,
		Pagination: pagination.Params{Page: 2, Limit: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, rows, 2)

	last, total, err := repo.List(ctx, ListProductsInput{
		Category:   category,
		Pagination: pagination.Params{Page: 3, Limit: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, last, 1)
}

func TestDecrementStockGuardsAvailability(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := mustCreateTestProduct(t, db, "guard", 3)

	ok, err := repo.DecrementStock(ctx, product.ID, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	// only 1 left, a decrement of 2 must be refused without changing stock
	ok, err = repo.DecrementStock(ctx, product.ID, 2)
	require.NoError(t, err)
	assert.False(t, ok)

	reloaded, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Stock)
}

func TestRestoreStock(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := mustCreateTestProduct(t, db, "restore", 1)
	require.NoError(t, repo.RestoreStock(ctx, product.ID, 4))

	reloaded, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, reloaded.Stock)
}

func TestRefreshRatingStats(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := mustCreateTestProduct(t, db, "rated", 5)
	alice := mustCreateTestUser(t, db)
	bob := mustCreateTestUser(t, db)

	require.NoError(t, repo.CreateReview(ctx, &models.ProductReview{
		ID: uuid.New(), ProductID: product.ID, UserID: alice.ID, Author: alice.Name, Rating: 5, Comment: "great",
	}))
	require.NoError(t, repo.CreateReview(ctx, &models.ProductReview{
		ID: uuid.New(), ProductID: product.ID, UserID: bob.ID, Author: bob.Name, Rating: 4, Comment: "good",
	}))
	require.NoError(t, repo.RefreshRatingStats(ctx, product.ID))

	reloaded, err := repo.FindByIDWithReviews(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.NumReviews)
	assert.True(t, reloaded.Rating.Equal(decimalFromString(t, "4.5")), "rating: %s", reloaded.Rating)
	assert.Len(t, reloaded.Reviews, 2)
}
