package products

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketloop/storefront-backend/pkg/db/models"
	"github.com/marketloop/storefront-backend/pkg/pagination"
)

// Repository exposes catalog persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a products repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repository to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// List returns a catalog page, optionally filtered by category or name search.
func (r *Repository) List(ctx context.Context, input ListProductsInput) ([]models.Product, int64, error) {
	params := input.Pagination.Normalize()

	query := r.db.WithContext(ctx).Model(&models.Product{})
	if category := strings.TrimSpace(input.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := strings.TrimSpace(input.Search); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Product
	err := query.
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// FindByID loads a product without its reviews.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByIDWithReviews loads a product and its reviews, newest first.
func (r *Repository) FindByIDWithReviews(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateReview inserts a review row. The unique (product_id, user_id) index
// rejects a second review from the same user.
func (r *Repository) CreateReview(ctx context.Context, review *models.ProductReview) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// RefreshRatingStats recomputes the product's aggregate rating and review count
// from the review rows.
func (r *Repository) RefreshRatingStats(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE products
		SET rating = COALESCE((SELECT AVG(rating) FROM product_reviews WHERE product_id = ?), 0),
			num_reviews = (SELECT COUNT(*) FROM product_reviews WHERE product_id = ?),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, productID, productID, productID).Error
}

// DecrementStock atomically subtracts qty from the product's stock. It reports
// false when the remaining stock cannot cover the quantity.
func (r *Repository) DecrementStock(ctx context.Context, productID uuid.UUID, qty int) (bool, error) {
	if qty <= 0 {
		return false, nil
	}
	res := r.db.WithContext(ctx).Exec(`
		UPDATE products
		SET stock = stock - ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND stock >= ?
	`, qty, productID, qty)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// RestoreStock returns quantity to the product, used when an order is cancelled.
func (r *Repository) RestoreStock(ctx context.Context, productID uuid.UUID, qty int) error {
	if qty <= 0 {
		return nil
	}
	return r.db.WithContext(ctx).Exec(`
		UPDATE products
		SET stock = stock + ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, qty, productID).Error
}

// BuildListMeta derives pagination metadata for a list call.
func BuildListMeta(input ListProductsInput, total int64) pagination.Meta {
	return pagination.BuildMeta(input.Pagination, total)
}
