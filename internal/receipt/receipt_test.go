package receipt

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/rainadr/kasirkopi-backend/pkg/db/models"
	"github.com/rainadr/kasirkopi-backend/pkg/enums"
)

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

func sampleOrder() (models.Order, []models.OrderLineItem) {
	method := enums.PaymentMethodCash
	order := models.Order{
		ID:             uuid.MustParse("3e8c2f31-6f58-4b2e-9a44-1af0a1b2c3d4"),
		Number:         123,
		Status:         enums.OrderStatusPaid,
		CustomerName:   "Budi",
		Subtotal:       30000,
		DiscountType:   enums.DiscountTypeFixed,
		DiscountValue:  5000,
		DiscountAmount: 5000,
		Total:          25000,
		PaymentMethod:  &method,
		CashTendered:   int64Ptr(30000),
		CashChange:     int64Ptr(5000),
		CreatedAt:      time.Date(2025, 8, 12, 9, 30, 0, 0, time.UTC),
	}
	items := []models.OrderLineItem{
		{Name: "Kopi Susu", UnitPrice: 15000, Qty: 2, Subtotal: 30000, Note: strPtr("less sugar")},
	}
	return order, items
}

func testFormatter() Formatter {
	return NewFormatter(Profile{
		Width:       32,
		HeaderLines: []string{"Kasir Kopi", "Jl. Melawai No. 8"},
		FooterLines: []string{"Terima kasih!"},
		FeedLines:   3,
	})
}

func TestTextLayoutSections(t *testing.T) {
	order, items := sampleOrder()
	out := testFormatter().Text(order, items, Options{CashierName: "Rani"})

	for _, want := range []string{
		"Kasir Kopi",
		"#123 (3e8c2f31)",
		"12/08/2025 09:30",
		"Budi",
		"Kopi Susu",
		"  less sugar",
		"2 x 15.000",
		"Rp30.000",
		"-Rp5.000",
		"Rp25.000",
		"Tunai",
		"Kembali",
		"Terima kasih!",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q:\n%s", want, out)
		}
	}

	if strings.Contains(out, "Catatan:") {
		t.Fatalf("unexpected note line without order note:\n%s", out)
	}
}

func TestTextRowsFitWidth(t *testing.T) {
	order, items := sampleOrder()
	out := testFormatter().Text(order, items, Options{})

	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Rp") && len(line) != 32 {
			t.Fatalf("amount row %q is %d columns, want 32", line, len(line))
		}
	}
}

func TestTextAlignsNonASCIINames(t *testing.T) {
	order, items := sampleOrder()
	order.CustomerName = "Bu Déwi"
	items[0].Name = "Crème Brûlée Latte"

	out := testFormatter().Text(order, items, Options{})

	var sawCustomerRow bool
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, "Déwi") || !strings.Contains(line, "Pelanggan") {
			continue
		}
		sawCustomerRow = true
		if got := utf8.RuneCountInString(line); got != 32 {
			t.Fatalf("customer row %q is %d columns, want 32", line, got)
		}
	}
	if !sawCustomerRow {
		t.Fatalf("expected customer row in output:\n%s", out)
	}
}

func TestTextOverflowRowNeverTruncates(t *testing.T) {
	f := NewFormatter(Profile{Width: 10})
	order, items := sampleOrder()
	order.CustomerName = "Bambang Sulistyo Nugroho"

	out := f.Text(order, items, Options{})
	if !strings.Contains(out, "Pelanggan Bambang Sulistyo Nugroho") {
		t.Fatalf("expected overflow row to keep full content with single space:\n%s", out)
	}
}

func TestTextIdempotent(t *testing.T) {
	order, items := sampleOrder()
	f := testFormatter()

	first := f.Text(order, items, Options{CopyLabel: "ARSIP"})
	second := f.Text(order, items, Options{CopyLabel: "ARSIP"})
	if first != second {
		t.Fatal("expected byte-identical output for identical inputs")
	}
}

func TestTextCopiesDifferOnlyInLabelLine(t *testing.T) {
	order, items := sampleOrder()
	f := testFormatter()

	customer := f.Text(order, items, Options{CopyLabel: "KASIR"})
	archive := f.Text(order, items, Options{CopyLabel: "ARSIP"})

	customerLines := strings.Split(customer, "\n")
	archiveLines := strings.Split(archive, "\n")
	if len(customerLines) != len(archiveLines) {
		t.Fatalf("copies have different line counts: %d vs %d", len(customerLines), len(archiveLines))
	}

	var diff int
	for i := range customerLines {
		if customerLines[i] != archiveLines[i] {
			diff++
			if !strings.Contains(customerLines[i], "KASIR") || !strings.Contains(archiveLines[i], "ARSIP") {
				t.Fatalf("unexpected difference at line %d: %q vs %q", i, customerLines[i], archiveLines[i])
			}
		}
	}
	if diff != 1 {
		t.Fatalf("expected exactly one differing line, got %d", diff)
	}
}

func TestTextQRISPayment(t *testing.T) {
	order, items := sampleOrder()
	method := enums.PaymentMethodQRIS
	order.PaymentMethod = &method
	order.CashTendered = nil
	order.CashChange = nil

	out := testFormatter().Text(order, items, Options{})
	if !strings.Contains(out, "QRIS") {
		t.Fatalf("expected QRIS label:\n%s", out)
	}
	if strings.Contains(out, "Kembali") {
		t.Fatalf("change row should not appear for QRIS:\n%s", out)
	}
}

func TestTextUnpaidOrder(t *testing.T) {
	order, items := sampleOrder()
	order.Status = enums.OrderStatusOpen
	order.PaymentMethod = nil
	order.CashTendered = nil
	order.CashChange = nil

	out := testFormatter().Text(order, items, Options{})
	if !strings.Contains(out, "Belum dibayar") {
		t.Fatalf("expected unpaid marker:\n%s", out)
	}
}

func TestTextNoDiscountOmitsDiscountRow(t *testing.T) {
	order, items := sampleOrder()
	order.DiscountValue = 0
	order.DiscountAmount = 0
	order.Total = order.Subtotal

	out := testFormatter().Text(order, items, Options{})
	if strings.Contains(out, "Diskon") {
		t.Fatalf("unexpected discount row:\n%s", out)
	}
}

func TestHTMLContainsOrderData(t *testing.T) {
	order, items := sampleOrder()
	out, err := testFormatter().HTML(order, items, Options{CopyLabel: "ARSIP", CashierName: "Rani"})
	if err != nil {
		t.Fatalf("HTML returned error: %v", err)
	}

	for _, want := range []string{
		"Kasir Kopi",
		"ARSIP",
		"Budi",
		"Kopi Susu",
		"Rp25.000",
		"Tunai",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected HTML to contain %q", want)
		}
	}
}

func TestFormatRupiah(t *testing.T) {
	cases := map[int64]string{
		0:        "Rp0",
		500:      "Rp500",
		15000:    "Rp15.000",
		1250000:  "Rp1.250.000",
		-5000:    "-Rp5.000",
		10000000: "Rp10.000.000",
	}
	for amount, want := range cases {
		if got := FormatRupiah(amount); got != want {
			t.Fatalf("FormatRupiah(%d) = %q, want %q", amount, got, want)
		}
	}
}

func TestFormatGrouped(t *testing.T) {
	if got := FormatGrouped(15000); got != "15.000" {
		t.Fatalf("FormatGrouped(15000) = %q", got)
	}
	if got := FormatGrouped(-15000); got != "-15.000" {
		t.Fatalf("FormatGrouped(-15000) = %q", got)
	}
}
