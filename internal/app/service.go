package app

import (
	"context"

	"cuadrai/internal/assistant"
	"cuadrai/internal/core"
)

// DocumentExtractor is the slice of the assistant used by document capture.
type DocumentExtractor interface {
	ExtractDocument(ctx context.Context, img assistant.Image, hint string) (*core.ExtractedData, error)
}

// Advisor is the slice of the assistant used by the chat.
type Advisor interface {
	Advise(ctx context.Context, question string, history []core.ChatMessage, profileContext string) (string, error)
}

// ApplicationService is the single interface the web adapter calls. It
// decouples presentation from business logic; implementations contain no
// HTTP or display concerns.
type ApplicationService interface {
	// ListProfiles returns snapshots of every profile plus the active id.
	ListProfiles(ctx context.Context) (*ProfilesResult, error)

	// CreateProfile adds a profile with kind-appropriate defaults and makes it active.
	CreateProfile(ctx context.Context, req CreateProfileRequest) (*ProfileResult, error)

	// SwitchProfile activates the profile with the given id. An unknown id is
	// a no-op; the result always reflects the profile active afterwards.
	SwitchProfile(ctx context.Context, id string) (*ProfileResult, error)

	// UpdateProfile replaces a profile record wholesale (settings editing).
	UpdateProfile(ctx context.Context, profile core.Profile) (*ProfileResult, error)

	// GetActiveProfile returns a snapshot of the active profile.
	GetActiveProfile(ctx context.Context) (*ProfileResult, error)

	// ListInvoices returns the active profile's invoices in collection order.
	ListInvoices(ctx context.Context) ([]core.Invoice, error)

	// CreateInvoice adds a manually entered invoice to the active profile.
	CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*core.Invoice, error)

	// SetInvoiceStatus updates one invoice's status. Setting the status it
	// already has leaves the record unchanged.
	SetInvoiceStatus(ctx context.Context, invoiceID string, status core.InvoiceStatus) (*core.Invoice, error)

	// ListExpenses returns the active profile's expenses.
	ListExpenses(ctx context.Context) ([]core.Expense, error)

	// SaveExpense creates the expense or, when the id already exists, replaces it.
	SaveExpense(ctx context.Context, req SaveExpenseRequest) (*core.Expense, error)

	// DeleteExpense removes an expense from the active profile.
	DeleteExpense(ctx context.Context, expenseID string) error

	// ListObligations returns the active profile's compliance deadlines.
	ListObligations(ctx context.Context) ([]core.Obligation, error)

	// CompleteObligation marks an obligation done. Idempotent.
	CompleteObligation(ctx context.Context, obligationID string) (*core.Obligation, error)

	// GetTaxSummary computes the full tax estimate for the active profile.
	// Nothing is cached; every call reflects the current records.
	GetTaxSummary(ctx context.Context) (*TaxSummaryResult, error)

	// ExtractDocument runs the capture flow: image + hint → validated
	// extraction. The result is transient — nothing is stored until
	// SaveExtracted.
	ExtractDocument(ctx context.Context, req CaptureRequest) (*core.ExtractedData, error)

	// SaveExtracted maps a confirmed extraction into an Invoice or Expense on
	// the active profile.
	SaveExtracted(ctx context.Context, req SaveExtractedRequest) (*SaveExtractedResult, error)

	// GetChatHistory returns the active profile's transcript.
	GetChatHistory(ctx context.Context) ([]core.ChatMessage, error)

	// Ask appends the question to the transcript, consults the advisor with
	// the prior turns as history, and appends the reply. Remote failures
	// degrade to fixed fallback messages instead of errors.
	Ask(ctx context.Context, question string) (*ChatResult, error)

	// ListQuickActions returns the fixed quick-question menu.
	ListQuickActions(ctx context.Context) ([]assistant.QuickAction, error)

	// RunQuickAction answers one quick action, locally or remotely depending
	// on its kind, through the same transcript conventions as Ask.
	RunQuickAction(ctx context.Context, actionID string) (*ChatResult, error)
}
