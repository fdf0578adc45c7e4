package core

// ProfileKind distinguishes a self-employed individual from a company.
type ProfileKind string

const (
	KindIndividual ProfileKind = "individual"
	KindCompany    ProfileKind = "company"
)

type InvoiceStatus string

const (
	InvoicePaid    InvoiceStatus = "paid"
	InvoicePending InvoiceStatus = "pending"
	InvoiceOverdue InvoiceStatus = "overdue"
)

// FiscalStatus is the traffic-light summary shown on the dashboard.
type FiscalStatus string

const (
	FiscalOK      FiscalStatus = "ok"
	FiscalWarning FiscalStatus = "warning"
	FiscalDanger  FiscalStatus = "danger"
)

type ObligationKind string

const (
	ObligationTax      ObligationKind = "tax"
	ObligationReminder ObligationKind = "reminder"
)

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// LineItem is a single concept line on an invoice.
type LineItem struct {
	Description string  `json:"description" jsonschema_description:"Concept or product description"`
	Quantity    float64 `json:"quantity" jsonschema_description:"Number of units"`
	Price       float64 `json:"price" jsonschema_description:"Unit price before tax"`
}

// Invoice is an issued invoice. VAT and IRPF are percentages of the subtotal;
// Total is what the client actually transfers after withholding.
type Invoice struct {
	ID          string        `json:"id"`
	ClientName  string        `json:"client_name"`
	IssueDate   string        `json:"issue_date"` // YYYY-MM-DD
	DueDate     string        `json:"due_date"`
	Status      InvoiceStatus `json:"status"`
	Items       []LineItem    `json:"items"`
	Subtotal    float64       `json:"subtotal"`
	VATRate     float64       `json:"vat_rate"`
	IRPFRate    float64       `json:"irpf_rate"`
	Total       float64       `json:"total"`
	ImageRef    string        `json:"image_ref,omitempty"`
}

// Expense is a purchase or received invoice. VATAmount is an absolute amount,
// not a rate — tickets rarely state a single rate.
type Expense struct {
	ID         string  `json:"id"`
	Vendor     string  `json:"vendor"`
	Date       string  `json:"date"`
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"` // pre-tax
	VATAmount  float64 `json:"vat_amount"`
	HasReceipt bool    `json:"has_receipt"`
	ImageRef   string  `json:"image_ref,omitempty"`
}

// Obligation is a scheduled compliance deadline tracked per profile.
type Obligation struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	DueDate   string         `json:"due_date"`
	Kind      ObligationKind `json:"kind"`
	Completed bool           `json:"completed"`
}

// ChatMessage is one turn of the per-profile assistant transcript. Append-only.
type ChatMessage struct {
	ID     string `json:"id"`
	Sender Sender `json:"sender"`
	Text   string `json:"text"`
}

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// BillingConfig holds per-profile invoicing defaults.
type BillingConfig struct {
	LogoURL        string  `json:"logo_url"`
	InvoiceSeries  string  `json:"invoice_series"`
	DefaultVATRate float64 `json:"default_vat_rate"`
	DefaultIRPF    float64 `json:"default_irpf_rate"`
	BankIBAN       string  `json:"bank_iban"`
}

type TaxConfig struct {
	VATRegime string `json:"vat_regime"` // "General", "Recargo de Equivalencia", "Otro"
}

// Profile is one business identity. All child records are exclusively owned:
// cloning a Profile clones everything reachable from it.
type Profile struct {
	ID          string        `json:"id"`
	Kind        ProfileKind   `json:"kind"`
	Name        string        `json:"name"`
	TaxID       string        `json:"tax_id"` // DNI/NIE or CIF
	AvatarURL   string        `json:"avatar_url,omitempty"`
	Invoices    []Invoice     `json:"invoices"`
	Expenses    []Expense     `json:"expenses"`
	Obligations []Obligation  `json:"obligations"`
	Chat        []ChatMessage `json:"chat"`
	Address     Address       `json:"address"`
	Billing     BillingConfig `json:"billing"`
	Tax         TaxConfig     `json:"tax"`
}

// Clone returns a deep copy of the profile. The state container hands out
// clones so callers can never alias its internal records.
func (p Profile) Clone() Profile {
	out := p
	out.Invoices = make([]Invoice, len(p.Invoices))
	for i, inv := range p.Invoices {
		out.Invoices[i] = inv
		out.Invoices[i].Items = append([]LineItem(nil), inv.Items...)
	}
	out.Expenses = append([]Expense(nil), p.Expenses...)
	out.Obligations = append([]Obligation(nil), p.Obligations...)
	out.Chat = append([]ChatMessage(nil), p.Chat...)
	return out
}
