package receipt

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rainadr/kasirkopi-backend/pkg/db/models"
	"github.com/rainadr/kasirkopi-backend/pkg/enums"
)

const (
	defaultWidth     = 32
	defaultFeedLines = 3
	timeLayout       = "02/01/2006 15:04"
)

// Profile describes the thermal paper the receipt is laid out for.
type Profile struct {
	Width       int
	HeaderLines []string
	FooterLines []string
	FeedLines   int
}

// Options vary a single print without changing the order content.
// CopyLabel marks reprints and archive copies; two prints of the same
// order with different labels differ only in that line.
type Options struct {
	CopyLabel   string
	CashierName string
}

// Formatter builds receipt text for a fixed paper profile. All methods
// are pure string building; transmission to a printer happens elsewhere.
type Formatter struct {
	profile Profile
}

// NewFormatter normalizes the profile and returns a Formatter.
func NewFormatter(profile Profile) Formatter {
	if profile.Width <= 0 {
		profile.Width = defaultWidth
	}
	if profile.FeedLines < 0 {
		profile.FeedLines = defaultFeedLines
	}
	return Formatter{profile: profile}
}

// Text renders the fixed-width layout for a narrow thermal printer.
// Output is deterministic: the same order and options always produce
// byte-identical text.
func (f Formatter) Text(order models.Order, items []models.OrderLineItem, opts Options) string {
	w := f.profile.Width
	var b strings.Builder

	for _, line := range f.profile.HeaderLines {
		b.WriteString(center(line, w))
		b.WriteByte('\n')
	}
	if opts.CopyLabel != "" {
		b.WriteString(center("* "+opts.CopyLabel+" *", w))
		b.WriteByte('\n')
	}
	b.WriteString(rule(w))

	b.WriteString(alignRow("No.", orderNumber(order), w))
	b.WriteString(alignRow("Waktu", order.CreatedAt.Format(timeLayout), w))
	if opts.CashierName != "" {
		b.WriteString(alignRow("Kasir", opts.CashierName, w))
	}
	b.WriteString(alignRow("Pelanggan", order.CustomerName, w))
	if order.Note != nil && *order.Note != "" {
		b.WriteString("Catatan: " + *order.Note + "\n")
	}
	b.WriteString(rule(w))

	for _, item := range items {
		b.WriteString(item.Name)
		b.WriteByte('\n')
		if item.Note != nil && *item.Note != "" {
			b.WriteString("  " + *item.Note + "\n")
		}
		qtyPrice := strconv.Itoa(item.Qty) + " x " + FormatGrouped(item.UnitPrice)
		b.WriteString(alignRow(qtyPrice, FormatGrouped(item.Subtotal), w))
	}
	b.WriteString(rule(w))

	b.WriteString(alignRow("Subtotal", FormatRupiah(order.Subtotal), w))
	if order.DiscountAmount > 0 {
		b.WriteString(alignRow("Diskon", "-"+FormatRupiah(order.DiscountAmount), w))
	}
	b.WriteString(alignRow("TOTAL", FormatRupiah(order.Total), w))

	f.writePaymentRows(&b, order, w)
	b.WriteString(rule(w))

	for _, line := range f.profile.FooterLines {
		b.WriteString(center(line, w))
		b.WriteByte('\n')
	}
	for i := 0; i < f.profile.FeedLines; i++ {
		b.WriteByte('\n')
	}
	return b.String()
}

func (f Formatter) writePaymentRows(b *strings.Builder, order models.Order, w int) {
	if order.PaymentMethod == nil {
		b.WriteString(alignRow("Pembayaran", "Belum dibayar", w))
		return
	}
	method := *order.PaymentMethod
	if method == enums.PaymentMethodCash {
		tendered := int64(0)
		if order.CashTendered != nil {
			tendered = *order.CashTendered
		}
		change := int64(0)
		if order.CashChange != nil {
			change = *order.CashChange
		}
		b.WriteString(alignRow("Tunai", FormatRupiah(tendered), w))
		b.WriteString(alignRow("Kembali", FormatRupiah(change), w))
		return
	}
	b.WriteString(alignRow("Pembayaran", method.ReceiptLabel(), w))
}

// alignRow pads label and value so they fill the width exactly. Widths
// count runes, not bytes, so accented names still line up. When the
// pair is already too wide, a single space separates them; content is
// never truncated.
func alignRow(label, value string, width int) string {
	gap := width - utf8.RuneCountInString(label) - utf8.RuneCountInString(value)
	if gap < 1 {
		gap = 1
	}
	return label + strings.Repeat(" ", gap) + value + "\n"
}

func center(s string, width int) string {
	pad := (width - utf8.RuneCountInString(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}

func rule(width int) string {
	return strings.Repeat("-", width) + "\n"
}

func orderNumber(order models.Order) string {
	short := order.ID.String()
	if len(short) > 8 {
		short = short[:8]
	}
	return "#" + strconv.FormatInt(order.Number, 10) + " (" + short + ")"
}
