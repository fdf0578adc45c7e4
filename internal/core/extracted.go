package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType discriminates what kind of record an extraction maps to.
type DocumentType string

const (
	DocumentInvoice DocumentType = "invoice"
	DocumentExpense DocumentType = "expense"
)

// ExtractedData is the transient result of document extraction. It is never
// stored directly — callers map it into an Invoice or Expense. The
// jsonschema_description tags drive the response schema sent to the model.
// Every field is required in that schema (strict structured output demands
// it); absence is expressed with zero values, never omitted keys.
type ExtractedData struct {
	DocumentType   DocumentType `json:"documentType" jsonschema:"enum=invoice,enum=expense" jsonschema_description:"'invoice' for a document issued to a client, 'expense' for a purchase or a received invoice"`
	VendorOrClient string     `json:"vendorOrClient" jsonschema_description:"Vendor name for an expense, client name for an issued invoice"`
	Date           string     `json:"date" jsonschema_description:"Document date in YYYY-MM-DD format"`
	TotalAmount    float64    `json:"totalAmount" jsonschema_description:"Final total amount of the document"`
	Subtotal       float64    `json:"subtotal" jsonschema_description:"Taxable base before taxes"`
	IVAAmount      float64    `json:"ivaAmount" jsonschema_description:"Total VAT amount; sum multiple rates; 0 if absent"`
	IRPFAmount     float64    `json:"irpfAmount" jsonschema_description:"Withheld income tax amount; 0 if absent"`
	InvoiceID      string     `json:"invoiceId" jsonschema_description:"Invoice number or identifier; empty string if the document is not an invoice or carries none"`
	LineItems      []LineItem `json:"lineItems" jsonschema_description:"Concept lines; an empty array when the document does not itemize"`
	Category       string     `json:"category" jsonschema_description:"Suggested accounting category for an expense (e.g. Suministros, Marketing, Software, Dietas); empty string for an invoice"`
}

// Normalize cleans up model output before validation: trims strings and
// lower-cases the document type discriminant.
func (d *ExtractedData) Normalize() {
	d.DocumentType = DocumentType(strings.ToLower(strings.TrimSpace(string(d.DocumentType))))
	d.VendorOrClient = strings.TrimSpace(d.VendorOrClient)
	d.Date = strings.TrimSpace(d.Date)
	d.InvoiceID = strings.TrimSpace(d.InvoiceID)
	d.Category = strings.TrimSpace(d.Category)
	for i := range d.LineItems {
		d.LineItems[i].Description = strings.TrimSpace(d.LineItems[i].Description)
	}
}

// Validate enforces the extraction contract at the adapter boundary. A
// response that fails here must surface as an extraction error, never as a
// partially populated record.
func (d *ExtractedData) Validate() error {
	switch d.DocumentType {
	case DocumentInvoice, DocumentExpense:
	case "":
		return errors.New("extraction is missing the document type")
	default:
		return fmt.Errorf("unknown document type %q", d.DocumentType)
	}
	if d.VendorOrClient == "" {
		return errors.New("extraction is missing the vendor or client name")
	}
	if d.Date == "" {
		return errors.New("extraction is missing the document date")
	}
	if _, err := time.Parse("2006-01-02", d.Date); err != nil {
		return fmt.Errorf("invalid document date %q: %w", d.Date, err)
	}
	if d.Subtotal < 0 {
		return fmt.Errorf("subtotal cannot be negative, got %v", d.Subtotal)
	}
	if d.TotalAmount < 0 {
		return fmt.Errorf("total cannot be negative, got %v", d.TotalAmount)
	}
	return nil
}

// ToInvoice maps an invoice-shaped extraction into a domain Invoice. The due
// date defaults to issue date + 30 days; VAT and IRPF rates are back-computed
// from the extracted amounts, falling back to defaultVATRate and 0 when the
// subtotal is zero; a missing item list becomes one synthetic line covering
// the full subtotal.
func (d ExtractedData) ToInvoice(series string, defaultVATRate float64, now time.Time) Invoice {
	id := d.InvoiceID
	if id == "" {
		id = NextInvoiceID(series, now)
	}

	due := d.Date
	if issue, err := time.Parse("2006-01-02", d.Date); err == nil {
		due = issue.AddDate(0, 0, 30).Format("2006-01-02")
	}

	vatRate := defaultVATRate
	irpfRate := 0.0
	if d.Subtotal > 0 {
		vatRate = backRate(d.IVAAmount, d.Subtotal)
		irpfRate = backRate(d.IRPFAmount, d.Subtotal)
	}

	items := d.LineItems
	if len(items) == 0 {
		items = []LineItem{{Description: "Servicio General", Quantity: 1, Price: d.Subtotal}}
	}

	return Invoice{
		ID:         id,
		ClientName: d.VendorOrClient,
		IssueDate:  d.Date,
		DueDate:    due,
		Status:     InvoicePending,
		Items:      items,
		Subtotal:   d.Subtotal,
		VATRate:    vatRate,
		IRPFRate:   irpfRate,
		Total:      d.TotalAmount,
	}
}

// ToExpense maps an expense-shaped extraction into a domain Expense. A
// captured document always counts as having a receipt.
func (d ExtractedData) ToExpense(now time.Time) Expense {
	category := d.Category
	if category == "" {
		category = "General"
	}
	return Expense{
		ID:         NextExpenseID(now),
		Vendor:     d.VendorOrClient,
		Date:       d.Date,
		Category:   category,
		Amount:     d.Subtotal,
		VATAmount:  d.IVAAmount,
		HasReceipt: true,
	}
}

// backRate converts an absolute tax amount into a percentage of the subtotal,
// rounded to two decimals.
func backRate(amount, subtotal float64) float64 {
	rate := decimal.NewFromFloat(amount).
		Div(decimal.NewFromFloat(subtotal)).
		Mul(hundred).
		Round(2)
	f, _ := rate.Float64()
	return f
}
