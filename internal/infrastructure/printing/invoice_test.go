package printing

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInvoice() *InvoiceDocument {
	return &InvoiceDocument{
		Number:        "SALE-1A2B3C4D",
		Date:          time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC),
		CustomerName:  "Ramesh Traders",
		CustomerPhone: "9800000000",
		BrickType:     "Red Brick",
		Quantity:      1000,
		Rate:          decimal.RequireFromString("7.5"),
		Total:         decimal.NewFromInt(7500),
		Received:      decimal.NewFromInt(5000),
		Balance:       decimal.NewFromInt(2500),
		PaymentStatus: "Partial",
	}
}

func TestInvoiceDocument_UPILink(t *testing.T) {
	doc := sampleInvoice()
	link := doc.UPILink()
	assert.True(t, strings.HasPrefix(link, "upi://pay?"))
	assert.Contains(t, link, "pa=merchant%40upi")
	assert.Contains(t, link, "pn=BrickWorks")
	assert.Contains(t, link, "am=2500.00")
	assert.Contains(t, link, "cu=INR")
	assert.Contains(t, link, "tn=Invoice+SALE-1A2B3C4D")

	doc.Balance = decimal.Zero
	assert.Empty(t, doc.UPILink())
}

func TestRenderInvoiceHTML(t *testing.T) {
	t.Run("renders amounts and pay link", func(t *testing.T) {
		html, err := RenderInvoiceHTML(sampleInvoice())
		require.NoError(t, err)
		assert.Contains(t, html, "SALE-1A2B3C4D")
		assert.Contains(t, html, "Ramesh Traders")
		assert.Contains(t, html, "11 Jun 2024")
		assert.Contains(t, html, "₹7,500.00")
		assert.Contains(t, html, "₹2,500.00")
		assert.Contains(t, html, "upi://pay?")
		assert.Contains(t, html, "Partial")
	})

	t.Run("paid invoices omit the pay link", func(t *testing.T) {
		doc := sampleInvoice()
		doc.Received = doc.Total
		doc.Balance = decimal.Zero
		doc.PaymentStatus = "Paid"
		html, err := RenderInvoiceHTML(doc)
		require.NoError(t, err)
		assert.NotContains(t, html, "upi://")
	})

	t.Run("escapes customer input", func(t *testing.T) {
		doc := sampleInvoice()
		doc.CustomerName = "<script>x</script>"
		html, err := RenderInvoiceHTML(doc)
		require.NoError(t, err)
		assert.NotContains(t, html, "<script>x</script>")
	})
}

func TestFormatINR(t *testing.T) {
	assert.Equal(t, "₹1,234.50", FormatINR(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "₹0.00", FormatINR(decimal.Zero))
	assert.Equal(t, "-₹12.00", FormatINR(decimal.NewFromInt(-12)))
	assert.Equal(t, "INR", CurrencyCode())
}
