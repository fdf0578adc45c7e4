package app

import (
	"cuadrai/internal/assistant"
	"cuadrai/internal/core"
)

// CreateProfileRequest carries the fields needed to open a new profile.
// Everything else is seeded with kind-appropriate defaults.
type CreateProfileRequest struct {
	Name  string           `json:"name"`
	TaxID string           `json:"tax_id"`
	Kind  core.ProfileKind `json:"kind"`
}

// CreateInvoiceRequest is a manually entered invoice. ID, DueDate and Total
// are optional; missing values are derived from the profile's defaults.
type CreateInvoiceRequest struct {
	ID         string          `json:"id"`
	ClientName string          `json:"client_name"`
	IssueDate  string          `json:"issue_date"`
	DueDate    string          `json:"due_date"`
	Subtotal   float64         `json:"subtotal"`
	VATRate    float64         `json:"vat_rate"`
	IRPFRate   float64         `json:"irpf_rate"`
	Total      float64         `json:"total"`
	Items      []core.LineItem `json:"items"`
}

// SaveExpenseRequest creates an expense, or replaces it when ID names an
// existing record.
type SaveExpenseRequest struct {
	ID         string  `json:"id"`
	Vendor     string  `json:"vendor"`
	Date       string  `json:"date"`
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	VATAmount  float64 `json:"vat_amount"`
	HasReceipt bool    `json:"has_receipt"`
	ImageRef   string  `json:"image_ref"`
}

// CaptureRequest is a document image plus the user's free-text hint.
type CaptureRequest struct {
	Image assistant.Image
	Hint  string
}

// SaveExtractedRequest persists a confirmed extraction. The caller may have
// edited the fields after reviewing them; they are re-validated here.
type SaveExtractedRequest struct {
	Data     core.ExtractedData `json:"data"`
	ImageRef string             `json:"image_ref"`
}
