package orders

import (
	"github.com/marketloop/storefront-backend/pkg/db/models"
	"github.com/marketloop/storefront-backend/pkg/pagination"
	"github.com/marketloop/storefront-backend/pkg/types"
)

// CreateOrderRequest is the checkout payload. The cart itself is loaded
// server-side; the client only supplies destination and payment choice.
type CreateOrderRequest struct {
	ShippingAddress types.Address `json:"shipping_address" validate:"required"`
	PaymentMethod   string        `json:"payment_method" validate:"required"`
}

// MarkPaidRequest carries the gateway result recorded verbatim on the order.
type MarkPaidRequest struct {
	PaymentResult types.JSONMap `json:"payment_result,omitempty"`
}

// SetStatusRequest moves an order through its fulfillment lifecycle.
type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AdminListMeta is the pagination block of the admin order table. The
// total is named totalOrders on the wire, unlike the catalog's totalItems.
type AdminListMeta struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalOrders int64 `json:"totalOrders"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

// NewAdminListMeta converts shared page metadata into the admin order shape.
func NewAdminListMeta(meta pagination.Meta) AdminListMeta {
	return AdminListMeta{
		CurrentPage: meta.CurrentPage,
		TotalPages:  meta.TotalPages,
		TotalOrders: meta.TotalItems,
		HasNext:     meta.HasNext,
		HasPrev:     meta.HasPrev,
	}
}

// AdminListResult pairs a page of orders with its metadata.
type AdminListResult struct {
	Orders []models.Order `json:"orders"`
	Meta   AdminListMeta  `json:"pagination"`
}
