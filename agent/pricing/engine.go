// Package pricing computes quoted prices with tiered bulk discounts and
// splits requested quantity into available and backordered portions.
package pricing

import (
	"github.com/shopspring/decimal"

	contractx "github.com/kchia/paperflow-ai/agent/contract"
)

// Discount tiers keyed on the requested (not available) quantity.
var (
	discount10 = decimal.NewFromFloat(0.10)
	discount20 = decimal.NewFromFloat(0.20)
	discount25 = decimal.NewFromFloat(0.25)

	one = decimal.NewFromInt(1)
)

// DiscountPct returns the bulk discount for a requested quantity:
// 100-499 units 10%, 500-999 units 20%, 1000+ units 25%, otherwise 0.
func DiscountPct(requestedUnits int) decimal.Decimal {
	switch {
	case requestedUnits >= 1000:
		return discount25
	case requestedUnits >= 500:
		return discount20
	case requestedUnits >= 100:
		return discount10
	default:
		return decimal.Zero
	}
}

// Quote prices one line. The line total is charged on the full requested
// quantity even when part of it is backordered; availability is reported
// alongside, not deducted from the charge.
func Quote(item contractx.Item, requestedUnits int) contractx.PriceQuote {
	available := requestedUnits
	if item.CurrentStock < available {
		available = item.CurrentStock
	}
	if available < 0 {
		available = 0
	}

	discount := DiscountPct(requestedUnits)
	lineTotal := item.UnitPrice.
		Mul(decimal.NewFromInt(int64(requestedUnits))).
		Mul(one.Sub(discount))

	return contractx.PriceQuote{
		ItemName:         item.Name,
		UnitPrice:        item.UnitPrice,
		DiscountPct:      discount,
		RequestedUnits:   requestedUnits,
		AvailableUnits:   available,
		BackorderedUnits: requestedUnits - available,
		LineTotal:        lineTotal,
	}
}

// SaleTotal prices the portion of a line actually sold: the available
// units at the unit price, discounted at the requested quantity's tier.
func SaleTotal(q contractx.PriceQuote) decimal.Decimal {
	return q.UnitPrice.
		Mul(decimal.NewFromInt(int64(q.AvailableUnits))).
		Mul(one.Sub(q.DiscountPct))
}

// Total sums line totals across a multi-line quote. Lines are priced
// independently; there is no cross-line discount.
func Total(quotes []contractx.PriceQuote) decimal.Decimal {
	sum := decimal.Zero
	for _, q := range quotes {
		sum = sum.Add(q.LineTotal)
	}
	return sum
}
