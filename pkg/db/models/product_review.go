package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductReview is one customer review. A user may review a product once;
// the unique index backs the conflict check on append.
type ProductReview struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_product_reviews_product_user" json:"product_id"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_product_reviews_product_user" json:"user_id"`
	Author    string    `gorm:"column:author;not null" json:"author"`
	Rating    int       `gorm:"column:rating;not null" json:"rating"`
	Comment   string    `gorm:"column:comment" json:"comment"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
