package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cuadrai/internal/assistant"
	"cuadrai/internal/core"
	"cuadrai/internal/state"
)

// Service is the production ApplicationService. All state lives in the
// in-memory store; the assistant dependencies are interfaces so tests can
// substitute fakes.
type Service struct {
	store          *state.Store
	extractor      DocumentExtractor
	advisor        Advisor
	prepaymentRate decimal.Decimal
	now            func() time.Time
}

var _ ApplicationService = (*Service)(nil)

// NewService wires the store and the assistant adapters. prepaymentRate is
// the flat income tax prepayment rate, e.g. 0.20.
func NewService(store *state.Store, extractor DocumentExtractor, advisor Advisor, prepaymentRate decimal.Decimal) *Service {
	return &Service{
		store:          store,
		extractor:      extractor,
		advisor:        advisor,
		prepaymentRate: prepaymentRate,
		now:            time.Now,
	}
}

func (s *Service) ListProfiles(ctx context.Context) (*ProfilesResult, error) {
	return &ProfilesResult{Profiles: s.store.All(), ActiveID: s.store.ActiveID()}, nil
}

func (s *Service) CreateProfile(ctx context.Context, req CreateProfileRequest) (*ProfileResult, error) {
	name := strings.TrimSpace(req.Name)
	taxID := strings.TrimSpace(req.TaxID)
	if name == "" {
		return nil, invalidf("name", "profile name is required")
	}
	if taxID == "" {
		return nil, invalidf("tax_id", "tax identifier is required")
	}
	kind := req.Kind
	switch kind {
	case "":
		kind = core.KindIndividual
	case core.KindIndividual, core.KindCompany:
	default:
		return nil, invalidf("kind", "unknown profile kind %q", kind)
	}

	p := s.store.Add(name, taxID, kind)
	return &ProfileResult{Profile: p}, nil
}

func (s *Service) SwitchProfile(ctx context.Context, id string) (*ProfileResult, error) {
	s.store.Switch(id)
	p, ok := s.store.Active()
	if !ok {
		return nil, ErrNoActiveProfile
	}
	return &ProfileResult{Profile: p}, nil
}

func (s *Service) UpdateProfile(ctx context.Context, profile core.Profile) (*ProfileResult, error) {
	if profile.ID == "" {
		return nil, invalidf("id", "profile id is required")
	}
	if strings.TrimSpace(profile.Name) == "" {
		return nil, invalidf("name", "profile name is required")
	}
	if !s.store.Replace(profile) {
		return nil, fmt.Errorf("profile %q: %w", profile.ID, ErrNotFound)
	}
	return &ProfileResult{Profile: profile.Clone()}, nil
}

func (s *Service) GetActiveProfile(ctx context.Context) (*ProfileResult, error) {
	p, ok := s.store.Active()
	if !ok {
		return nil, ErrNoActiveProfile
	}
	return &ProfileResult{Profile: p}, nil
}

func (s *Service) ListInvoices(ctx context.Context) ([]core.Invoice, error) {
	p, ok := s.store.Active()
	if !ok {
		return nil, ErrNoActiveProfile
	}
	return p.Invoices, nil
}

func (s *Service) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*core.Invoice, error) {
	if strings.TrimSpace(req.ClientName) == "" {
		return nil, invalidf("client_name", "client name is required")
	}
	if _, err := time.Parse("2006-01-02", req.IssueDate); err != nil {
		return nil, invalidf("issue_date", "invalid issue date %q", req.IssueDate)
	}
	if req.Subtotal <= 0 {
		return nil, invalidf("subtotal", "subtotal must be positive, got %v", req.Subtotal)
	}
	if req.VATRate < 0 || req.IRPFRate < 0 {
		return nil, invalidf("vat_rate", "tax rates cannot be negative")
	}

	var created core.Invoice
	_, ok := s.store.Update(func(p *core.Profile) {
		inv := core.Invoice{
			ID:         strings.TrimSpace(req.ID),
			ClientName: strings.TrimSpace(req.ClientName),
			IssueDate:  req.IssueDate,
			DueDate:    req.DueDate,
			Status:     core.InvoicePending,
			Items:      append([]core.LineItem(nil), req.Items...),
			Subtotal:   req.Subtotal,
			VATRate:    req.VATRate,
			IRPFRate:   req.IRPFRate,
			Total:      req.Total,
		}
		if inv.ID == "" {
			inv.ID = core.NextInvoiceID(p.Billing.InvoiceSeries, s.now())
		}
		if inv.DueDate == "" {
			issue, _ := time.Parse("2006-01-02", inv.IssueDate)
			inv.DueDate = issue.AddDate(0, 0, 30).Format("2006-01-02")
		}
		if inv.Total == 0 {
			inv.Total, _ = inv.ExpectedTotal().Float64()
		}
		if len(inv.Items) == 0 {
			inv.Items = []core.LineItem{{Description: "Servicio General", Quantity: 1, Price: inv.Subtotal}}
		}
		// Newest first, the order the records are shown in.
		p.Invoices = append([]core.Invoice{inv}, p.Invoices...)
		created = snapshotInvoice(inv)
	})
	if !ok {
		return nil, ErrNoActiveProfile
	}
	return &created, nil
}

func (s *Service) SetInvoiceStatus(ctx context.Context, invoiceID string, status core.InvoiceStatus) (*core.Invoice, error) {
	switch status {
	case core.InvoicePaid, core.InvoicePending, core.InvoiceOverdue:
	default:
		return nil, invalidf("status", "unknown invoice status %q", status)
	}

	var updated *core.Invoice
	_, ok := s.store.Update(func(p *core.Profile) {
		for i := range p.Invoices {
			if p.Invoices[i].ID == invoiceID {
				p.Invoices[i].Status = status
				inv := snapshotInvoice(p.Invoices[i])
				updated = &inv
				return
			}
		}
	})
	if !ok {
		return nil, ErrNoActiveProfile
	}
	if updated == nil {
		return nil, fmt.Errorf("invoice %q: %w", invoiceID, ErrNotFound)
	}
	return updated, nil
}

func (s *Service) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	p, ok := s.store.Active()
	if !ok {
		return nil, ErrNoActiveProfile
	}
	return p.Expenses, nil
}

func (s *Service) SaveExpense(ctx context.Context, req SaveExpenseRequest) (*core.Expense, error) {
	if strings.TrimSpace(req.Vendor) == "" {
		return nil, invalidf("vendor", "vendor is required")
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return nil, invalidf("date", "invalid expense date %q", req.Date)
	}
	if req.Amount <= 0 {
		return nil, invalidf("amount", "amount must be positive, got %v", req.Amount)
	}
	if req.VATAmount < 0 {
		return nil, invalidf("vat_amount", "VAT amount cannot be negative")
	}

	exp := core.Expense{
		ID:         strings.TrimSpace(req.ID),
		Vendor:     strings.TrimSpace(req.Vendor),
		Date:       req.Date,
		Category:   strings.TrimSpace(req.Category),
		Amount:     req.Amount,
		VATAmount:  req.VATAmount,
		HasReceipt: req.HasReceipt,
		ImageRef:   req.ImageRef,
	}
	if exp.ID == "" {
		exp.ID = core.NextExpenseID(s.now())
	}
	if exp.Category == "" {
		exp.Category = "General"
	}

	_, ok := s.store.Update(func(p *core.Profile) {
		for i := range p.Expenses {
			if p.Expenses[i].ID == exp.ID {
				p.Expenses[i] = exp
				return
			}
		}
		p.Expenses = append([]core.Expense{exp}, p.Expenses...)
	})
	if !ok {
		return nil, ErrNoActiveProfile
	}
	return &exp, nil
}

func (s *Service) DeleteExpense(ctx context.Context, expenseID string) error {
	removed := false
	_, ok := s.store.Update(func(p *core.Profile) {
		kept := p.Expenses[:0]
		for _, exp := range p.Expenses {
			if exp.ID == expenseID {
				removed = true
				continue
			}
			kept = append(kept, exp)
		}
		p.Expenses = kept
	})
	if !ok {
		return ErrNoActiveProfile
	}
	if !removed {
		return fmt.Errorf("expense %q: %w", expenseID, ErrNotFound)
	}
	return nil
}

func (s *Service) ListObligations(ctx context.Context) ([]core.Obligation, error) {
	p, ok := s.store.Active()
	if !ok {
		return nil, ErrNoActiveProfile
	}
	return p.Obligations, nil
}

func (s *Service) CompleteObligation(ctx context.Context, obligationID string) (*core.Obligation, error) {
	var updated *core.Obligation
	_, ok := s.store.Update(func(p *core.Profile) {
		for i := range p.Obligations {
			if p.Obligations[i].ID == obligationID {
				p.Obligations[i].Completed = true
				ob := p.Obligations[i]
				updated = &ob
				return
			}
		}
	})
	if !ok {
		return nil, ErrNoActiveProfile
	}
	if updated == nil {
		return nil, fmt.Errorf("obligation %q: %w", obligationID, ErrNotFound)
	}
	return updated, nil
}

func (s *Service) GetTaxSummary(ctx context.Context) (*TaxSummaryResult, error) {
	p, ok := s.store.Active()
	if !ok {
		return nil, ErrNoActiveProfile
	}

	raw := core.IncomeTaxPrepayment(p.Invoices, p.Expenses, s.prepaymentRate)
	rate, _ := s.prepaymentRate.Float64()
	return &TaxSummaryResult{
		OutputVAT:         cents(core.OutputVAT(p.Invoices)),
		InputVAT:          cents(core.InputVAT(p.Expenses)),
		VATDue:            cents(core.VATDue(p.Invoices, p.Expenses)),
		NetProfit:         cents(core.NetProfit(p.Invoices, p.Expenses)),
		WithholdingCredit: cents(core.WithholdingCredit(p.Invoices)),
		PrepaymentRate:    rate,
		PrepaymentRaw:     cents(raw),
		Prepayment:        cents(core.ClampZero(raw)),
		FiscalStatus:      core.ComputeFiscalStatus(p.Invoices, p.Expenses),
	}, nil
}

func (s *Service) ExtractDocument(ctx context.Context, req CaptureRequest) (*core.ExtractedData, error) {
	if len(req.Image.Data) == 0 {
		return nil, invalidf("image", "document image is required")
	}
	if !strings.HasPrefix(req.Image.MimeType, "image/") {
		return nil, invalidf("image", "unsupported content type %q", req.Image.MimeType)
	}
	return s.extractor.ExtractDocument(ctx, req.Image, strings.TrimSpace(req.Hint))
}

func (s *Service) SaveExtracted(ctx context.Context, req SaveExtractedRequest) (*SaveExtractedResult, error) {
	data := req.Data
	data.Normalize()
	if err := data.Validate(); err != nil {
		return nil, &ValidationError{Field: "data", Message: err.Error()}
	}

	// The extraction's line items came in from the caller; detach them so the
	// stored invoice owns its slice.
	data.LineItems = append([]core.LineItem(nil), data.LineItems...)

	result := &SaveExtractedResult{DocumentType: data.DocumentType}
	_, ok := s.store.Update(func(p *core.Profile) {
		switch data.DocumentType {
		case core.DocumentInvoice:
			inv := data.ToInvoice(p.Billing.InvoiceSeries, p.Billing.DefaultVATRate, s.now())
			inv.ImageRef = req.ImageRef
			p.Invoices = append([]core.Invoice{inv}, p.Invoices...)
			snap := snapshotInvoice(inv)
			result.Invoice = &snap
		case core.DocumentExpense:
			exp := data.ToExpense(s.now())
			exp.ImageRef = req.ImageRef
			p.Expenses = append([]core.Expense{exp}, p.Expenses...)
			result.Expense = &exp
		}
	})
	if !ok {
		return nil, ErrNoActiveProfile
	}
	return result, nil
}

func (s *Service) GetChatHistory(ctx context.Context) ([]core.ChatMessage, error) {
	p, ok := s.store.Active()
	if !ok {
		return nil, ErrNoActiveProfile
	}
	return p.Chat, nil
}

func (s *Service) Ask(ctx context.Context, question string) (*ChatResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, invalidf("message", "message is required")
	}

	p, ok := s.store.Active()
	if !ok {
		return nil, ErrNoActiveProfile
	}

	reply := s.advise(ctx, question, p)
	return s.appendTurn(question, reply)
}

func (s *Service) ListQuickActions(ctx context.Context) ([]assistant.QuickAction, error) {
	return assistant.QuickActions(), nil
}

func (s *Service) RunQuickAction(ctx context.Context, actionID string) (*ChatResult, error) {
	action, found := assistant.FindQuickAction(actionID)
	if !found {
		return nil, fmt.Errorf("quick action %q: %w", actionID, ErrNotFound)
	}

	p, ok := s.store.Active()
	if !ok {
		return nil, ErrNoActiveProfile
	}

	var reply string
	if action.Kind == assistant.ActionLocal {
		answer, err := assistant.LocalAnswer(action.ID, p.Invoices, p.Expenses)
		if err != nil {
			return nil, err
		}
		reply = answer
	} else {
		reply = s.advise(ctx, action.Prompt, p)
	}
	return s.appendTurn(action.Label, reply)
}

// advise consults the remote advisor with the profile's transcript as
// history. A missing credential or a remote failure degrades to a fixed
// Spanish message — the chat must stay usable offline.
func (s *Service) advise(ctx context.Context, question string, p core.Profile) string {
	answer, err := s.advisor.Advise(ctx, question, p.Chat, profileContext(p))
	switch {
	case errors.Is(err, assistant.ErrNotConfigured):
		return assistant.UnavailableMessage
	case err != nil:
		return assistant.FallbackMessage
	}
	return answer
}

// appendTurn records the user message and the reply on the active profile in
// one atomic update.
func (s *Service) appendTurn(userText, replyText string) (*ChatResult, error) {
	userMsg := core.ChatMessage{ID: uuid.NewString(), Sender: core.SenderUser, Text: userText}
	replyMsg := core.ChatMessage{ID: uuid.NewString(), Sender: core.SenderAssistant, Text: replyText}

	_, ok := s.store.Update(func(p *core.Profile) {
		p.Chat = append(p.Chat, userMsg, replyMsg)
	})
	if !ok {
		return nil, ErrNoActiveProfile
	}
	return &ChatResult{UserMessage: userMsg, Reply: replyMsg}, nil
}

// profileContext renders the line prepended to the advisor's system prompt so
// answers can reference who is asking.
func profileContext(p core.Profile) string {
	label := "Individual"
	if p.Kind == core.KindCompany {
		label = "Empresa"
	}
	return fmt.Sprintf("Contexto del perfil: %s llamado '%s' con identificador fiscal %s.", label, p.Name, p.TaxID)
}

// snapshotInvoice detaches an invoice from store-owned memory. Records
// captured inside an Update closure share their Items backing array with the
// stored profile; returning one without this copy would let callers mutate
// container state.
func snapshotInvoice(inv core.Invoice) core.Invoice {
	inv.Items = append([]core.LineItem(nil), inv.Items...)
	return inv
}

func cents(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
