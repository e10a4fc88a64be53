package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/marketloop/storefront-backend/pkg/types"
)

// Product is the canonical catalog listing. Stock is decremented by
// checkout and guarded by a non-negative CHECK constraint.
type Product struct {
	ID          uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string              `gorm:"column:name;not null" json:"name"`
	Description string              `gorm:"column:description" json:"description"`
	Price       decimal.Decimal     `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	Category    string              `gorm:"column:category;not null;index" json:"category"`
	Brand       string              `gorm:"column:brand" json:"brand"`
	Stock       int                 `gorm:"column:stock;not null;default:0" json:"stock"`
	Images      types.ProductImages `gorm:"column:images;type:jsonb;serializer:json" json:"images"`
	Rating      decimal.Decimal     `gorm:"column:rating;type:numeric(3,2);not null;default:0" json:"rating"`
	NumReviews  int                 `gorm:"column:num_reviews;not null;default:0" json:"num_reviews"`
	Features    pq.StringArray      `gorm:"column:features;type:text[]" json:"features"`
	Tags        pq.StringArray      `gorm:"column:tags;type:text[]" json:"tags"`
	Reviews     []ProductReview     `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
