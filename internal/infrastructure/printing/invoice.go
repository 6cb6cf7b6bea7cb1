package printing

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

// UPI payee used for the pay-now link on invoices
const (
	UPIPayeeAddress = "merchant@upi"
	UPIPayeeName    = "BrickWorks"
)

// InvoiceDocument is everything printed on a sale invoice
type InvoiceDocument struct {
	Number         string
	Date           time.Time
	CustomerName   string
	CustomerPhone  string
	BrickType      string
	Quantity       int
	Rate           decimal.Decimal
	Total          decimal.Decimal
	Received       decimal.Decimal
	Balance        decimal.Decimal
	PaymentStatus  string
	FactoryName    string
	FactoryAddress string
	FactoryPhone   string
}

// UPILink returns the upi://pay link for the outstanding balance, or "" when
// nothing is due.
func (d *InvoiceDocument) UPILink() string {
	if !d.Balance.IsPositive() {
		return ""
	}
	q := url.Values{}
	q.Set("pa", UPIPayeeAddress)
	q.Set("pn", UPIPayeeName)
	q.Set("am", d.Balance.StringFixed(2))
	q.Set("cu", CurrencyCode())
	q.Set("tn", "Invoice "+d.Number)
	return "upi://pay?" + q.Encode()
}

var invoiceTemplate = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"inr":  FormatINR,
	"qty":  FormatQuantity,
	"date": func(t time.Time) string { return t.Format("02 Jan 2006") },
}).Parse(invoiceHTML))

// RenderInvoiceHTML renders the invoice document as a standalone HTML page
func RenderInvoiceHTML(doc *InvoiceDocument) (string, error) {
	var buf bytes.Buffer
	data := struct {
		*InvoiceDocument
		UPI      template.URL
		Currency string
	}{
		InvoiceDocument: doc,
		// upi: is not in html/template's safe scheme list
		UPI:      template.URL(doc.UPILink()),
		Currency: CurrencyCode(),
	}
	if err := invoiceTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render invoice %s: %w", doc.Number, err)
	}
	return buf.String(), nil
}

const invoiceHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Invoice {{.Number}}</title>
<style>
  body { font-family: "Noto Sans", Arial, sans-serif; color: #222; font-size: 13px; }
  h1 { font-size: 22px; margin: 0; color: #9a3412; }
  .header { display: flex; justify-content: space-between; border-bottom: 2px solid #9a3412; padding-bottom: 8px; }
  .meta td { padding: 2px 8px 2px 0; }
  table.items { width: 100%; border-collapse: collapse; margin-top: 16px; }
  table.items th, table.items td { border: 1px solid #ddd; padding: 6px; text-align: right; }
  table.items th:first-child, table.items td:first-child { text-align: left; }
  .totals { margin-top: 12px; width: 45%; margin-left: auto; }
  .totals td { padding: 3px 0; }
  .totals td:last-child { text-align: right; }
  .status { font-weight: bold; }
  .pay { margin-top: 18px; padding: 8px; border: 1px dashed #9a3412; }
</style>
</head>
<body>
<div class="header">
  <div>
    <h1>{{if .FactoryName}}{{.FactoryName}}{{else}}BrickWorks{{end}}</h1>
    {{if .FactoryAddress}}<div>{{.FactoryAddress}}</div>{{end}}
    {{if .FactoryPhone}}<div>Phone: {{.FactoryPhone}}</div>{{end}}
  </div>
  <div>
    <table class="meta">
      <tr><td>Invoice</td><td><strong>{{.Number}}</strong></td></tr>
      <tr><td>Date</td><td>{{date .Date}}</td></tr>
    </table>
  </div>
</div>

<p>
  <strong>Bill to:</strong> {{.CustomerName}}{{if .CustomerPhone}} ({{.CustomerPhone}}){{end}}
</p>

<table class="items">
  <tr><th>Brick type</th><th>Quantity</th><th>Rate ({{.Currency}})</th><th>Amount ({{.Currency}})</th></tr>
  <tr><td>{{.BrickType}}</td><td>{{qty .Quantity}}</td><td>{{inr .Rate}}</td><td>{{inr .Total}}</td></tr>
</table>

<table class="totals">
  <tr><td>Total</td><td>{{inr .Total}}</td></tr>
  <tr><td>Received</td><td>{{inr .Received}}</td></tr>
  <tr><td>Balance due</td><td>{{inr .Balance}}</td></tr>
  <tr><td>Status</td><td class="status">{{.PaymentStatus}}</td></tr>
</table>

{{if .UPI}}
<div class="pay">
  Pay {{inr .Balance}} by UPI: <a href="{{.UPI}}">{{.UPI}}</a>
</div>
{{end}}
</body>
</html>
`
