package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marketloop/storefront-backend/pkg/enums"
	"github.com/marketloop/storefront-backend/pkg/types"
)

// Order is an immutable purchase snapshot. Only the fulfillment fields
// (status, paid/delivered flags, payment result) change after creation.
type Order struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderNumber     string              `gorm:"column:order_number;not null;uniqueIndex" json:"order_number"`
	UserID          uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Items           []OrderLineItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	ShippingAddress types.Address       `gorm:"column:shipping_address;type:jsonb;serializer:json" json:"shipping_address"`
	PaymentMethod   enums.PaymentMethod `gorm:"column:payment_method;not null" json:"payment_method"`
	ItemsPrice      decimal.Decimal     `gorm:"column:items_price;type:numeric(12,2);not null" json:"items_price"`
	TaxPrice        decimal.Decimal     `gorm:"column:tax_price;type:numeric(12,2);not null" json:"tax_price"`
	ShippingPrice   decimal.Decimal     `gorm:"column:shipping_price;type:numeric(12,2);not null" json:"shipping_price"`
	TotalPrice      decimal.Decimal     `gorm:"column:total_price;type:numeric(12,2);not null" json:"total_price"`
	IsPaid          bool                `gorm:"column:is_paid;not null;default:false" json:"is_paid"`
	PaidAt          *time.Time          `gorm:"column:paid_at" json:"paid_at,omitempty"`
	PaymentResult   *types.JSONMap      `gorm:"column:payment_result;type:jsonb;serializer:json" json:"payment_result,omitempty"`
	IsDelivered     bool                `gorm:"column:is_delivered;not null;default:false" json:"is_delivered"`
	DeliveredAt     *time.Time          `gorm:"column:delivered_at" json:"delivered_at,omitempty"`
	Status          enums.OrderStatus   `gorm:"column:status;not null;default:'pending'" json:"status"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
