package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketloop/storefront-backend/internal/users"
	pkgerrors "github.com/marketloop/storefront-backend/pkg/errors"
	"github.com/marketloop/storefront-backend/pkg/pagination"
)

func TestServiceGetUnknownProductNotFound(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo, gormTxRunner{db: db}, users.NewRepository(db))
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestServiceAddReviewRecomputesAggregates(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo, gormTxRunner{db: db}, users.NewRepository(db))
	require.NoError(t, err)
	ctx := context.Background()

	product := mustCreateTestProduct(t, db, "svc-review", 5)
	user := mustCreateTestUser(t, db)

	updated, err := svc.AddReview(ctx, user.ID, product.ID, AddReviewRequest{Rating: 4, Comment: "solid"})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.NumReviews)
	assert.True(t, updated.Rating.Equal(decimalFromString(t, "4")))
	require.Len(t, updated.Reviews, 1)
	assert.Equal(t, user.Name, updated.Reviews[0].Author)
}

func TestServiceAddReviewTwiceConflicts(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo, gormTxRunner{db: db}, users.NewRepository(db))
	require.NoError(t, err)
	ctx := context.Background()

	product := mustCreateTestProduct(t, db, "svc-dup", 5)
	user := mustCreateTestUser(t, db)

	_, err = svc.AddReview(ctx, user.ID, product.ID, AddReviewRequest{Rating: 4, Comment: "first"})
	require.NoError(t, err)

	_, err = svc.AddReview(ctx, user.ID, product.ID, AddReviewRequest{Rating: 2, Comment: "second"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())

	reloaded, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.NumReviews)
}

func TestServiceAddReviewValidatesRating(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo, gormTxRunner{db: db}, users.NewRepository(db))
	require.NoError(t, err)

	_, err = svc.AddReview(context.Background(), uuid.New(), uuid.New(), AddReviewRequest{Rating: 6, Comment: "nope"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestServiceListEmptyPage(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo, gormTxRunner{db: db}, users.NewRepository(db))
	require.NoError(t, err)

	result, err := svc.List(context.Background(), ListProductsInput{
		Category:   "no-such-category-" + uuid.NewString(),
		Pagination: pagination.Params{Page: 1, Limit: 10},
	})
	require.NoError(t, err)
	assert.NotNil(t, result.Products)
	assert.Len(t, result.Products, 0)
	assert.False(t, result.Meta.HasNext)
}
