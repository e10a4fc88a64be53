package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marketloop/storefront-backend/internal/pricing"
	"github.com/marketloop/storefront-backend/pkg/db/models"
)

// AddItemRequest is the payload for adding a product to the cart.
// Quantity defaults to 1 when omitted.
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"omitempty,min=1"`
}

// UpdateItemRequest overwrites a cart line's quantity.
type UpdateItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// View is the cart returned to clients: lines with resolved products plus
// totals derived on read.
type View struct {
	ID            uuid.UUID         `json:"id"`
	UserID        uuid.UUID         `json:"user_id"`
	Items         []models.CartItem `json:"items"`
	ItemsPrice    decimal.Decimal   `json:"items_price"`
	TaxPrice      decimal.Decimal   `json:"tax_price"`
	ShippingPrice decimal.Decimal   `json:"shipping_price"`
	TotalPrice    decimal.Decimal   `json:"total_price"`
}

func buildView(cart *models.Cart) *View {
	items := cart.Items
	if items == nil {
		items = []models.CartItem{}
	}

	lines := make([]pricing.Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, pricing.Line{UnitPrice: item.UnitPrice, Quantity: item.Quantity})
	}
	totals := pricing.Calculate(lines)

	return &View{
		ID:            cart.ID,
		UserID:        cart.UserID,
		Items:         items,
		ItemsPrice:    totals.ItemsPrice,
		TaxPrice:      totals.TaxPrice,
		ShippingPrice: totals.ShippingPrice,
		TotalPrice:    totals.TotalPrice,
	}
}
