package receipt

import (
	"html/template"
	"strings"

	"github.com/rainadr/kasirkopi-backend/pkg/db/models"
	"github.com/rainadr/kasirkopi-backend/pkg/enums"
)

var htmlTemplate = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: monospace; width: 280px; margin: 0 auto; }
h1 { font-size: 14px; text-align: center; margin: 4px 0; }
p.meta, p.copy { text-align: center; margin: 2px 0; }
table { width: 100%; border-collapse: collapse; font-size: 12px; }
td.amount { text-align: right; }
tr.total td { font-weight: bold; border-top: 1px dashed #000; }
hr { border: none; border-top: 1px dashed #000; }
</style>
</head>
<body>
{{range .Header}}<h1>{{.}}</h1>
{{end}}{{if .CopyLabel}}<p class="copy">* {{.CopyLabel}} *</p>
{{end}}<p class="meta">{{.Number}} &middot; {{.Timestamp}}</p>
{{if .CashierName}}<p class="meta">Kasir: {{.CashierName}}</p>
{{end}}<p class="meta">Pelanggan: {{.CustomerName}}</p>
{{if .Note}}<p class="meta">Catatan: {{.Note}}</p>
{{end}}<hr>
<table>
{{range .Items}}<tr><td colspan="2">{{.Name}}{{if .Note}}<br><small>{{.Note}}</small>{{end}}</td></tr>
<tr><td>{{.Qty}} x {{.UnitPrice}}</td><td class="amount">{{.Subtotal}}</td></tr>
{{end}}<tr><td>Subtotal</td><td class="amount">{{.Subtotal}}</td></tr>
{{if .Discount}}<tr><td>Diskon</td><td class="amount">-{{.Discount}}</td></tr>
{{end}}<tr class="total"><td>TOTAL</td><td class="amount">{{.Total}}</td></tr>
{{range .PaymentRows}}<tr><td>{{.Label}}</td><td class="amount">{{.Value}}</td></tr>
{{end}}</table>
<hr>
{{range .Footer}}<p class="meta">{{.}}</p>
{{end}}</body>
</html>
`))

type htmlItem struct {
	Name      string
	Note      string
	Qty       int
	UnitPrice string
	Subtotal  string
}

type htmlRow struct {
	Label string
	Value string
}

type htmlData struct {
	Header       []string
	Footer       []string
	CopyLabel    string
	Number       string
	Timestamp    string
	CashierName  string
	CustomerName string
	Note         string
	Items        []htmlItem
	Subtotal     string
	Discount     string
	Total        string
	PaymentRows  []htmlRow
}

// HTML renders the print-dialog fallback document for the same order.
func (f Formatter) HTML(order models.Order, items []models.OrderLineItem, opts Options) (string, error) {
	data := htmlData{
		Header:       f.profile.HeaderLines,
		Footer:       f.profile.FooterLines,
		CopyLabel:    opts.CopyLabel,
		Number:       orderNumber(order),
		Timestamp:    order.CreatedAt.Format(timeLayout),
		CashierName:  opts.CashierName,
		CustomerName: order.CustomerName,
		Subtotal:     FormatRupiah(order.Subtotal),
		Total:        FormatRupiah(order.Total),
	}
	if order.Note != nil {
		data.Note = *order.Note
	}
	if order.DiscountAmount > 0 {
		data.Discount = FormatRupiah(order.DiscountAmount)
	}
	for _, item := range items {
		row := htmlItem{
			Name:      item.Name,
			Qty:       item.Qty,
			UnitPrice: FormatGrouped(item.UnitPrice),
			Subtotal:  FormatGrouped(item.Subtotal),
		}
		if item.Note != nil {
			row.Note = *item.Note
		}
		data.Items = append(data.Items, row)
	}
	data.PaymentRows = paymentRows(order)

	var b strings.Builder
	if err := htmlTemplate.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func paymentRows(order models.Order) []htmlRow {
	if order.PaymentMethod == nil {
		return []htmlRow{{Label: "Pembayaran", Value: "Belum dibayar"}}
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
		return []htmlRow{
			{Label: "Tunai", Value: FormatRupiah(tendered)},
			{Label: "Kembali", Value: FormatRupiah(change)},
		}
	}
	return []htmlRow{{Label: "Pembayaran", Value: method.ReceiptLabel()}}
}
