package printing

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var indianEnglish = language.MustParse("en-IN")

// RupeeSymbol prefixes formatted INR amounts
const RupeeSymbol = "₹"

// FormatINR formats an amount with en-IN digit grouping and two decimals,
// e.g. 1234.5 -> "₹1,234.50".
func FormatINR(d decimal.Decimal) string {
	p := message.NewPrinter(indianEnglish)
	f, _ := d.Round(2).Float64()
	if f < 0 {
		return "-" + RupeeSymbol + p.Sprintf("%.2f", -f)
	}
	return RupeeSymbol + p.Sprintf("%.2f", f)
}

// FormatQuantity formats a whole number with en-IN digit grouping
func FormatQuantity(n int) string {
	return message.NewPrinter(indianEnglish).Sprintf("%d", n)
}

// CurrencyCode is the ISO 4217 code printed on invoices
func CurrencyCode() string {
	return currency.INR.String()
}
