package app

import "cuadrai/internal/core"

// ProfilesResult is the full roster plus which profile is active.
type ProfilesResult struct {
	Profiles []core.Profile `json:"profiles"`
	ActiveID string         `json:"active_id"`
}

// ProfileResult wraps a single profile snapshot.
type ProfileResult struct {
	Profile core.Profile `json:"profile"`
}

// TaxSummaryResult is the on-demand tax estimate for the active profile.
// Amounts are rounded to cents. PrepaymentRaw keeps the sign so a loss
// period is visible; Prepayment is the clamped amount actually owed.
type TaxSummaryResult struct {
	OutputVAT         float64           `json:"output_vat"`
	InputVAT          float64           `json:"input_vat"`
	VATDue            float64           `json:"vat_due"`
	NetProfit         float64           `json:"net_profit"`
	WithholdingCredit float64           `json:"withholding_credit"`
	PrepaymentRate    float64           `json:"prepayment_rate"`
	PrepaymentRaw     float64           `json:"prepayment_raw"`
	Prepayment        float64           `json:"prepayment"`
	FiscalStatus      core.FiscalStatus `json:"fiscal_status"`
}

// SaveExtractedResult reports what SaveExtracted created.
type SaveExtractedResult struct {
	DocumentType core.DocumentType `json:"document_type"`
	Invoice      *core.Invoice     `json:"invoice,omitempty"`
	Expense      *core.Expense     `json:"expense,omitempty"`
}

// ChatResult is the transcript delta after a chat turn: the user message as
// recorded and the assistant's reply.
type ChatResult struct {
	UserMessage core.ChatMessage `json:"user_message"`
	Reply       core.ChatMessage `json:"reply"`
}
