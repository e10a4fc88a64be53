package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLineItem is the frozen copy of a cart line at purchase time.
// Product data is snapshotted so later catalog edits never rewrite
// order history; ProductID stays as a weak reference for lookups.
type OrderLineItem struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID   uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;not null" json:"product_id"`
	Name      string          `gorm:"column:name;not null" json:"name"`
	ImageURL  string          `gorm:"column:image_url" json:"image_url"`
	Quantity  int             `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null" json:"unit_price"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
