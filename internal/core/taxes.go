package core

import "github.com/shopspring/decimal"

// The calculators are pure functions over a profile's invoice and expense
// collections. They never mutate their inputs and are evaluated fresh on
// every read — there is no cached fiscal state anywhere.

var hundred = decimal.NewFromInt(100)

// OutputVAT is the VAT charged on issued invoices (IVA repercutido):
// Σ(subtotal × vatRate / 100).
func OutputVAT(invoices []Invoice) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range invoices {
		line := decimal.NewFromFloat(inv.Subtotal).
			Mul(decimal.NewFromFloat(inv.VATRate)).
			Div(hundred)
		total = total.Add(line)
	}
	return total
}

// InputVAT is the VAT paid on expenses (IVA soportado). Expense VAT is stored
// as an absolute amount, not a rate.
func InputVAT(expenses []Expense) decimal.Decimal {
	total := decimal.Zero
	for _, exp := range expenses {
		total = total.Add(decimal.NewFromFloat(exp.VATAmount))
	}
	return total
}

// VATDue is the quarterly VAT settlement estimate: output VAT minus input VAT.
// Negative means the tax authority owes the business.
func VATDue(invoices []Invoice, expenses []Expense) decimal.Decimal {
	return OutputVAT(invoices).Sub(InputVAT(expenses))
}

// NetProfit is Σ(invoice subtotals) − Σ(expense amounts). Both sides are
// pre-tax: VAT is collected and paid on behalf of the tax authority and never
// counts toward profit.
func NetProfit(invoices []Invoice, expenses []Expense) decimal.Decimal {
	income := decimal.Zero
	for _, inv := range invoices {
		income = income.Add(decimal.NewFromFloat(inv.Subtotal))
	}
	spent := decimal.Zero
	for _, exp := range expenses {
		spent = spent.Add(decimal.NewFromFloat(exp.Amount))
	}
	return income.Sub(spent)
}

// WithholdingCredit is the income tax already withheld by clients:
// Σ(subtotal × irpfRate / 100).
func WithholdingCredit(invoices []Invoice) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range invoices {
		line := decimal.NewFromFloat(inv.Subtotal).
			Mul(decimal.NewFromFloat(inv.IRPFRate)).
			Div(hundred)
		total = total.Add(line)
	}
	return total
}

// IncomeTaxPrepayment estimates the quarterly income tax prepayment:
// max(0, netProfit × rate) minus the withholding credit. The flat rate is a
// simplification of the progressive schedule and is configurable. The result
// is signed — callers clamp for display with ClampZero.
func IncomeTaxPrepayment(invoices []Invoice, expenses []Expense, rate decimal.Decimal) decimal.Decimal {
	base := NetProfit(invoices, expenses).Mul(rate)
	if base.IsNegative() {
		base = decimal.Zero
	}
	return base.Sub(WithholdingCredit(invoices))
}

// ClampZero floors a display amount at zero.
func ClampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ComputeFiscalStatus returns the traffic-light signal: danger when any
// invoice is overdue, warning when any expense lacks a receipt, ok otherwise.
func ComputeFiscalStatus(invoices []Invoice, expenses []Expense) FiscalStatus {
	for _, inv := range invoices {
		if inv.Status == InvoiceOverdue {
			return FiscalDanger
		}
	}
	for _, exp := range expenses {
		if !exp.HasReceipt {
			return FiscalWarning
		}
	}
	return FiscalOK
}

// OverdueInvoices returns the overdue subset in collection order.
func OverdueInvoices(invoices []Invoice) []Invoice {
	var out []Invoice
	for _, inv := range invoices {
		if inv.Status == InvoiceOverdue {
			out = append(out, inv)
		}
	}
	return out
}
