package pricing

import (
	"github.com/shopspring/decimal"
)

// Business constants for checkout pricing. Rates are applied to the
// rounded items subtotal and every output is rounded to cents.
var (
	TaxRate               = decimal.NewFromFloat(0.10)
	FreeShippingThreshold = decimal.NewFromInt(100)
	FlatShippingFee       = decimal.NewFromInt(10)
)

// Line is a priced quantity of a single product.
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// Totals holds the four monetary components of an order.
type Totals struct {
	ItemsPrice    decimal.Decimal
	TaxPrice      decimal.Decimal
	ShippingPrice decimal.Decimal
	TotalPrice    decimal.Decimal
}

// Calculate derives order totals from the given lines.
//
// Shipping is free strictly above the threshold; an items subtotal of
// exactly 100.00 still pays the flat fee.
func Calculate(lines []Line) Totals {
	items := decimal.Zero
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		items = items.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	items = items.Round(2)

	tax := items.Mul(TaxRate).Round(2)

	shipping := FlatShippingFee
	if items.GreaterThan(FreeShippingThreshold) {
		shipping = decimal.Zero
	}
	if items.IsZero() {
		shipping = decimal.Zero
	}
	shipping = shipping.Round(2)

	total := items.Add(tax).Add(shipping).Round(2)

	return Totals{
		ItemsPrice:    items,
		TaxPrice:      tax,
		ShippingPrice: shipping,
		TotalPrice:    total,
	}
}
