package pricing

import (
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rainadr/kasirkopi-backend/pkg/enums"
)

// LineItem is a priced cart row. UnitPrice is whole rupiah.
type LineItem struct {
	ProductID uuid.UUID
	Name      string
	UnitPrice int64
	Qty       int
	Note      string
}

// Subtotal returns unit price times quantity for this line.
func (l LineItem) Subtotal() int64 {
	return l.UnitPrice * int64(l.Qty)
}

// DiscountSpec is an order-level discount. Value is interpreted per Type:
// a percentage in [0,100] or a fixed rupiah amount. Malformed values
// (NaN, negative) clamp to zero; the computation never errors.
type DiscountSpec struct {
	Type  enums.DiscountType
	Value float64
}

// Totals is the result of quoting a cart against a discount.
type Totals struct {
	Subtotal       int64
	DiscountAmount int64
	Total          int64
}

// Subtotal sums unit price times quantity over all lines.
func Subtotal(items []LineItem) int64 {
	var sum int64
	for _, item := range items {
		sum += item.Subtotal()
	}
	return sum
}

// Quote computes subtotal, discount, and payable total for the cart.
// The discount is applied at the order level only; line subtotals are
// never adjusted.
func Quote(items []LineItem, discount DiscountSpec) Totals {
	subtotal := Subtotal(items)
	amount := DiscountAmount(subtotal, discount)
	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: amount,
		Total:          subtotal - amount,
	}
}

// DiscountAmount resolves the discount in rupiah, clamped so the total
// never goes negative.
func DiscountAmount(subtotal int64, discount DiscountSpec) int64 {
	value := discount.Value
	if math.IsNaN(value) || value < 0 {
		value = 0
	}

	switch discount.Type {
	case enums.DiscountTypePercentage:
		if value > 100 {
			value = 100
		}
		pct := decimal.NewFromFloat(value).Div(decimal.NewFromInt(100))
		amount := pct.Mul(decimal.NewFromInt(subtotal)).Round(0).IntPart()
		if amount > subtotal {
			amount = subtotal
		}
		return amount
	case enums.DiscountTypeFixed:
		amount := int64(value)
		if amount > subtotal {
			amount = subtotal
		}
		return amount
	default:
		return 0
	}
}

// CashPayment reports the change due and whether the tendered cash
// covers the total. Change is never negative.
func CashPayment(total, tendered int64) (change int64, sufficient bool) {
	if tendered >= total {
		return tendered - total, true
	}
	return 0, false
}
