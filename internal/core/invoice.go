package core

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ExpectedTotal computes what the invoice total should be from its subtotal
// and rates: subtotal + VAT − withholding, rounded to cents. Stored totals are
// not forced through this — it backs the invariant checked by generators and
// tests.
func (i Invoice) ExpectedTotal() decimal.Decimal {
	sub := decimal.NewFromFloat(i.Subtotal)
	vat := sub.Mul(decimal.NewFromFloat(i.VATRate)).Div(hundred)
	irpf := sub.Mul(decimal.NewFromFloat(i.IRPFRate)).Div(hundred)
	return sub.Add(vat).Sub(irpf).Round(2)
}

// WithholdingAmount is the absolute IRPF withheld on this invoice.
func (i Invoice) WithholdingAmount() decimal.Decimal {
	return decimal.NewFromFloat(i.Subtotal).
		Mul(decimal.NewFromFloat(i.IRPFRate)).
		Div(hundred).
		Round(2)
}

// NextInvoiceID builds a document id from the profile's invoice series and a
// timestamp suffix, e.g. "F2024-8541".
func NextInvoiceID(series string, now time.Time) string {
	if series == "" {
		series = "F-"
	}
	return fmt.Sprintf("%s%04d", series, now.UnixMilli()%10000)
}

// NextExpenseID mirrors NextInvoiceID for captured expenses, e.g. "G2024-8541".
func NextExpenseID(now time.Time) string {
	return fmt.Sprintf("G%d-%04d", now.Year(), now.UnixMilli()%10000)
}
