package pricing

import (
	"math"
	"testing"

	"github.com/rainadr/kasirkopi-backend/pkg/enums"
)

func twoLattes() []LineItem {
	return []LineItem{{Name: "Kopi Susu", UnitPrice: 15000, Qty: 2}}
}

func TestQuoteFixedDiscount(t *testing.T) {
	totals := Quote(twoLattes(), DiscountSpec{Type: enums.DiscountTypeFixed, Value: 5000})
	if totals.Subtotal != 30000 {
		t.Fatalf("expected subtotal 30000, got %d", totals.Subtotal)
	}
	if totals.DiscountAmount != 5000 {
		t.Fatalf("expected discount 5000, got %d", totals.DiscountAmount)
	}
	if totals.Total != 25000 {
		t.Fatalf("expected total 25000, got %d", totals.Total)
	}
}

func TestQuotePercentageDiscount(t *testing.T) {
	totals := Quote(twoLattes(), DiscountSpec{Type: enums.DiscountTypePercentage, Value: 10})
	if totals.DiscountAmount != 3000 {
		t.Fatalf("expected discount 3000, got %d", totals.DiscountAmount)
	}
	if totals.Total != 27000 {
		t.Fatalf("expected total 27000, got %d", totals.Total)
	}
}

func TestQuotePercentageOverHundredClampsToSubtotal(t *testing.T) {
	totals := Quote(twoLattes(), DiscountSpec{Type: enums.DiscountTypePercentage, Value: 150})
	if totals.DiscountAmount != totals.Subtotal {
		t.Fatalf("expected discount to equal subtotal, got %d vs %d", totals.DiscountAmount, totals.Subtotal)
	}
	if totals.Total != 0 {
		t.Fatalf("expected total 0, got %d", totals.Total)
	}
}

func TestQuoteFixedDiscountClampsToSubtotal(t *testing.T) {
	totals := Quote(twoLattes(), DiscountSpec{Type: enums.DiscountTypeFixed, Value: 99000})
	if totals.DiscountAmount != 30000 {
		t.Fatalf("expected discount clamped to 30000, got %d", totals.DiscountAmount)
	}
	if totals.Total != 0 {
		t.Fatalf("expected total 0, got %d", totals.Total)
	}
}

func TestQuoteMalformedDiscountClampsToZero(t *testing.T) {
	for _, spec := range []DiscountSpec{
		{Type: enums.DiscountTypePercentage, Value: -20},
		{Type: enums.DiscountTypeFixed, Value: -5000},
		{Type: enums.DiscountTypePercentage, Value: math.NaN()},
	} {
		totals := Quote(twoLattes(), spec)
		if totals.DiscountAmount != 0 {
			t.Fatalf("expected zero discount for %+v, got %d", spec, totals.DiscountAmount)
		}
		if totals.Total != totals.Subtotal {
			t.Fatalf("expected untouched total for %+v", spec)
		}
	}
}

func TestPercentageDiscountMonotonic(t *testing.T) {
	prev := int64(-1)
	for v := 0.0; v <= 120; v += 2.5 {
		amount := DiscountAmount(30000, DiscountSpec{Type: enums.DiscountTypePercentage, Value: v})
		if amount < prev {
			t.Fatalf("discount decreased at value %.1f: %d < %d", v, amount, prev)
		}
		prev = amount
	}
}

func TestPercentageDiscountRoundsToWholeRupiah(t *testing.T) {
	// 12.5% of 13999 = 1749.875, rounds half up to 1750.
	amount := DiscountAmount(13999, DiscountSpec{Type: enums.DiscountTypePercentage, Value: 12.5})
	if amount != 1750 {
		t.Fatalf("expected 1750, got %d", amount)
	}
}

func TestCashPayment(t *testing.T) {
	change, ok := CashPayment(25000, 30000)
	if !ok || change != 5000 {
		t.Fatalf("expected sufficient with change 5000, got ok=%v change=%d", ok, change)
	}

	change, ok = CashPayment(25000, 20000)
	if ok || change != 0 {
		t.Fatalf("expected insufficient with zero change, got ok=%v change=%d", ok, change)
	}

	change, ok = CashPayment(25000, 25000)
	if !ok || change != 0 {
		t.Fatalf("expected exact payment to be sufficient, got ok=%v change=%d", ok, change)
	}
}

func TestSubtotalSumsLines(t *testing.T) {
	items := []LineItem{
		{Name: "Americano", UnitPrice: 12000, Qty: 1},
		{Name: "Croissant", UnitPrice: 18000, Qty: 3},
	}
	if got := Subtotal(items); got != 66000 {
		t.Fatalf("expected 66000, got %d", got)
	}
	if items[1].Subtotal() != 54000 {
		t.Fatalf("line subtotal mismatch: %d", items[1].Subtotal())
	}
}
