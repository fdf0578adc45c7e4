package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"cuadrai/internal/app"
	"cuadrai/internal/assistant"
	"cuadrai/internal/core"
	"cuadrai/internal/state"
)

type fakeAdvisor struct {
	reply       string
	err         error
	calls       int
	gotQuestion string
	gotHistory  []core.ChatMessage
	gotContext  string
}

func (f *fakeAdvisor) Advise(_ context.Context, question string, history []core.ChatMessage, profileContext string) (string, error) {
	f.calls++
	f.gotQuestion = question
	f.gotHistory = history
	f.gotContext = profileContext
	return f.reply, f.err
}

type fakeExtractor struct {
	data    *core.ExtractedData
	err     error
	gotHint string
}

func (f *fakeExtractor) ExtractDocument(_ context.Context, _ assistant.Image, hint string) (*core.ExtractedData, error) {
	f.gotHint = hint
	return f.data, f.err
}

func newService(t *testing.T, advisor *fakeAdvisor, extractor *fakeExtractor) (*app.Service, *state.Store) {
	t.Helper()
	if advisor == nil {
		advisor = &fakeAdvisor{reply: "ok"}
	}
	if extractor == nil {
		extractor = &fakeExtractor{}
	}
	store := state.NewStore()
	store.Add("Ana García", "12345678Z", core.KindIndividual)
	return app.NewService(store, extractor, advisor, decimal.NewFromFloat(0.20)), store
}

func TestCreateProfile(t *testing.T) {
	svc, store := newService(t, nil, nil)
	ctx := context.Background()

	t.Run("activates the new profile", func(t *testing.T) {
		res, err := svc.CreateProfile(ctx, app.CreateProfileRequest{Name: "Estudio SL", TaxID: "B12345678", Kind: core.KindCompany})
		if err != nil {
			t.Fatal(err)
		}
		if store.ActiveID() != res.Profile.ID {
			t.Errorf("new profile should become active")
		}
		if res.Profile.Billing.DefaultIRPF != 0 {
			t.Errorf("a company must not default to IRPF withholding, got %v", res.Profile.Billing.DefaultIRPF)
		}
	})

	t.Run("rejects blank fields", func(t *testing.T) {
		_, err := svc.CreateProfile(ctx, app.CreateProfileRequest{Name: "  ", TaxID: "X"})
		var verr *app.ValidationError
		if !errors.As(err, &verr) || verr.Field != "name" {
			t.Errorf("want ValidationError on name, got %v", err)
		}
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		_, err := svc.CreateProfile(ctx, app.CreateProfileRequest{Name: "X", TaxID: "Y", Kind: "cooperative"})
		var verr *app.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("want ValidationError, got %v", err)
		}
	})
}

func TestCreateInvoice_Defaults(t *testing.T) {
	svc, _ := newService(t, nil, nil)

	inv, err := svc.CreateInvoice(context.Background(), app.CreateInvoiceRequest{
		ClientName: "Tecno Soluciones",
		IssueDate:  "2024-07-15",
		Subtotal:   1000,
		VATRate:    21,
		IRPFRate:   15,
	})
	if err != nil {
		t.Fatal(err)
	}
	if inv.Total != 1060 {
		t.Errorf("total should be derived from the rates, got %v", inv.Total)
	}
	if inv.DueDate != "2024-08-14" {
		t.Errorf("due date should default to issue + 30 days, got %q", inv.DueDate)
	}
	if inv.Status != core.InvoicePending {
		t.Errorf("new invoices start pending, got %q", inv.Status)
	}
	if len(inv.Items) != 1 || inv.Items[0].Description != "Servicio General" {
		t.Errorf("missing items should become one generic line, got %v", inv.Items)
	}
	if inv.ID == "" {
		t.Errorf("id should be generated")
	}

	invoices, err := svc.ListInvoices(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(invoices) != 1 {
		t.Fatalf("invoice not stored, got %d", len(invoices))
	}
}

func TestCreateInvoice_Validation(t *testing.T) {
	svc, _ := newService(t, nil, nil)

	tests := []struct {
		name  string
		req   app.CreateInvoiceRequest
		field string
	}{
		{"missing client", app.CreateInvoiceRequest{IssueDate: "2024-07-15", Subtotal: 100}, "client_name"},
		{"bad date", app.CreateInvoiceRequest{ClientName: "X", IssueDate: "15/07/2024", Subtotal: 100}, "issue_date"},
		{"zero subtotal", app.CreateInvoiceRequest{ClientName: "X", IssueDate: "2024-07-15"}, "subtotal"},
		{"negative rate", app.CreateInvoiceRequest{ClientName: "X", IssueDate: "2024-07-15", Subtotal: 100, VATRate: -1}, "vat_rate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateInvoice(context.Background(), tt.req)
			var verr *app.ValidationError
			if !errors.As(err, &verr) || verr.Field != tt.field {
				t.Errorf("want ValidationError on %q, got %v", tt.field, err)
			}
		})
	}
}

func TestSetInvoiceStatus(t *testing.T) {
	svc, _ := newService(t, nil, nil)
	inv, err := svc.CreateInvoice(context.Background(), app.CreateInvoiceRequest{
		ClientName: "X", IssueDate: "2024-07-15", Subtotal: 100, VATRate: 21,
	})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := svc.SetInvoiceStatus(context.Background(), inv.ID, core.InvoicePaid)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != core.InvoicePaid {
		t.Errorf("status not applied, got %q", updated.Status)
	}

	if _, err := svc.SetInvoiceStatus(context.Background(), "nope", core.InvoicePaid); !errors.Is(err, app.ErrNotFound) {
		t.Errorf("unknown invoice should be ErrNotFound, got %v", err)
	}
	if _, err := svc.SetInvoiceStatus(context.Background(), inv.ID, "archived"); err == nil {
		t.Errorf("unknown status must be rejected")
	}
}

func TestSaveExpense_CreateAndReplace(t *testing.T) {
	svc, _ := newService(t, nil, nil)
	ctx := context.Background()

	exp, err := svc.SaveExpense(ctx, app.SaveExpenseRequest{Vendor: "Software World", Date: "2024-07-10", Amount: 49.99, VATAmount: 10.49})
	if err != nil {
		t.Fatal(err)
	}
	if exp.ID == "" {
		t.Fatal("id should be generated")
	}
	if exp.Category != "General" {
		t.Errorf("category should default to General, got %q", exp.Category)
	}

	exp2, err := svc.SaveExpense(ctx, app.SaveExpenseRequest{ID: exp.ID, Vendor: "Software World", Date: "2024-07-10", Category: "Software", Amount: 60, VATAmount: 12.6})
	if err != nil {
		t.Fatal(err)
	}
	expenses, _ := svc.ListExpenses(ctx)
	if len(expenses) != 1 {
		t.Fatalf("same id should replace, not append: got %d expenses", len(expenses))
	}
	if expenses[0].Amount != exp2.Amount || expenses[0].Category != "Software" {
		t.Errorf("replacement not applied: %+v", expenses[0])
	}
}

func TestDeleteExpense(t *testing.T) {
	svc, _ := newService(t, nil, nil)
	ctx := context.Background()
	exp, err := svc.SaveExpense(ctx, app.SaveExpenseRequest{Vendor: "X", Date: "2024-07-10", Amount: 10})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteExpense(ctx, exp.ID); err != nil {
		t.Fatal(err)
	}
	if expenses, _ := svc.ListExpenses(ctx); len(expenses) != 0 {
		t.Errorf("expense not deleted")
	}
	if err := svc.DeleteExpense(ctx, exp.ID); !errors.Is(err, app.ErrNotFound) {
		t.Errorf("second delete should be ErrNotFound, got %v", err)
	}
}

func TestCompleteObligation(t *testing.T) {
	advisor := &fakeAdvisor{reply: "ok"}
	store := state.NewStore()
	store.SeedDemo()
	svc := app.NewService(store, &fakeExtractor{}, advisor, decimal.NewFromFloat(0.20))
	ctx := context.Background()

	obligations, err := svc.ListObligations(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(obligations) == 0 {
		t.Fatal("demo profile should carry obligations")
	}

	ob, err := svc.CompleteObligation(ctx, obligations[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if !ob.Completed {
		t.Errorf("obligation should be completed")
	}

	again, err := svc.CompleteObligation(ctx, obligations[0].ID)
	if err != nil || !again.Completed {
		t.Errorf("completing twice must be a no-op, got %v %v", again, err)
	}
}

func TestGetTaxSummary(t *testing.T) {
	svc, _ := newService(t, nil, nil)
	ctx := context.Background()

	if _, err := svc.CreateInvoice(ctx, app.CreateInvoiceRequest{ClientName: "X", IssueDate: "2024-07-15", Subtotal: 1000, VATRate: 21, IRPFRate: 15}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SaveExpense(ctx, app.SaveExpenseRequest{Vendor: "Y", Date: "2024-07-10", Amount: 200, VATAmount: 42}); err != nil {
		t.Fatal(err)
	}

	sum, err := svc.GetTaxSummary(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if sum.OutputVAT != 210 || sum.InputVAT != 42 || sum.VATDue != 168 {
		t.Errorf("VAT figures off: %+v", sum)
	}
	if sum.NetProfit != 800 {
		t.Errorf("net profit = %v, want 800", sum.NetProfit)
	}
	if sum.WithholdingCredit != 150 {
		t.Errorf("withholding credit = %v, want 150", sum.WithholdingCredit)
	}
	// base 800×0.20 = 160, minus 150 withheld
	if sum.PrepaymentRaw != 10 || sum.Prepayment != 10 {
		t.Errorf("prepayment = %v raw %v, want 10", sum.Prepayment, sum.PrepaymentRaw)
	}
	if sum.PrepaymentRate != 0.20 {
		t.Errorf("rate = %v, want 0.20", sum.PrepaymentRate)
	}
	if sum.FiscalStatus != core.FiscalOK {
		t.Errorf("fiscal status = %q, want ok", sum.FiscalStatus)
	}
}

func TestGetTaxSummary_ClampsNegativePrepayment(t *testing.T) {
	svc, _ := newService(t, nil, nil)
	ctx := context.Background()

	if _, err := svc.CreateInvoice(ctx, app.CreateInvoiceRequest{ClientName: "X", IssueDate: "2024-07-15", Subtotal: 100, IRPFRate: 15}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SaveExpense(ctx, app.SaveExpenseRequest{Vendor: "Y", Date: "2024-07-10", Amount: 500}); err != nil {
		t.Fatal(err)
	}

	sum, err := svc.GetTaxSummary(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if sum.PrepaymentRaw != -15 {
		t.Errorf("raw prepayment should keep its sign, got %v", sum.PrepaymentRaw)
	}
	if sum.Prepayment != 0 {
		t.Errorf("displayed prepayment must clamp at zero, got %v", sum.Prepayment)
	}
}

func TestExtractDocument(t *testing.T) {
	extractor := &fakeExtractor{data: &core.ExtractedData{
		DocumentType: core.DocumentExpense, VendorOrClient: "Gasolinera", Date: "2024-07-01",
		TotalAmount: 60.50, Subtotal: 50, IVAAmount: 10.50,
	}}
	svc, _ := newService(t, nil, extractor)
	ctx := context.Background()

	img := assistant.Image{MimeType: "image/jpeg", Data: []byte("jpegbytes")}

	t.Run("passes hint through", func(t *testing.T) {
		data, err := svc.ExtractDocument(ctx, app.CaptureRequest{Image: img, Hint: "  ticket de gasolina "})
		if err != nil {
			t.Fatal(err)
		}
		if extractor.gotHint != "ticket de gasolina" {
			t.Errorf("hint should be trimmed, got %q", extractor.gotHint)
		}
		if data.VendorOrClient != "Gasolinera" {
			t.Errorf("extraction not returned: %+v", data)
		}
	})

	t.Run("rejects missing image", func(t *testing.T) {
		_, err := svc.ExtractDocument(ctx, app.CaptureRequest{Hint: "x"})
		var verr *app.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("want ValidationError, got %v", err)
		}
	})

	t.Run("rejects non-image payloads", func(t *testing.T) {
		_, err := svc.ExtractDocument(ctx, app.CaptureRequest{Image: assistant.Image{MimeType: "application/pdf", Data: []byte("x")}})
		var verr *app.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("want ValidationError, got %v", err)
		}
	})
}

func TestSaveExtracted(t *testing.T) {
	svc, _ := newService(t, nil, nil)
	ctx := context.Background()

	t.Run("invoice extraction becomes an invoice", func(t *testing.T) {
		res, err := svc.SaveExtracted(ctx, app.SaveExtractedRequest{
			Data: core.ExtractedData{
				DocumentType: core.DocumentInvoice, VendorOrClient: "Cliente Nuevo",
				Date: "2024-07-15", TotalAmount: 1060, Subtotal: 1000, IVAAmount: 210, IRPFAmount: 150,
				InvoiceID: "F2024-100",
			},
			ImageRef: "uploads/doc1.jpg",
		})
		if err != nil {
			t.Fatal(err)
		}
		if res.DocumentType != core.DocumentInvoice || res.Invoice == nil {
			t.Fatalf("want an invoice result, got %+v", res)
		}
		if res.Invoice.ImageRef != "uploads/doc1.jpg" {
			t.Errorf("image ref not carried, got %q", res.Invoice.ImageRef)
		}
		invoices, _ := svc.ListInvoices(ctx)
		if len(invoices) != 1 || invoices[0].ID != "F2024-100" {
			t.Errorf("invoice not stored: %+v", invoices)
		}
	})

	t.Run("expense extraction becomes an expense", func(t *testing.T) {
		res, err := svc.SaveExtracted(ctx, app.SaveExtractedRequest{
			Data: core.ExtractedData{
				DocumentType: core.DocumentExpense, VendorOrClient: "Gasolinera",
				Date: "2024-07-01", TotalAmount: 60.50, Subtotal: 50, IVAAmount: 10.50,
			},
		})
		if err != nil {
			t.Fatal(err)
		}
		if res.Expense == nil || !res.Expense.HasReceipt {
			t.Fatalf("captured expenses always carry a receipt, got %+v", res)
		}
	})

	t.Run("invalid extraction is rejected", func(t *testing.T) {
		_, err := svc.SaveExtracted(ctx, app.SaveExtractedRequest{
			Data: core.ExtractedData{DocumentType: "payslip", VendorOrClient: "X", Date: "2024-07-01"},
		})
		var verr *app.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("want ValidationError, got %v", err)
		}
	})
}

func TestAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("appends both turns and passes prior history", func(t *testing.T) {
		advisor := &fakeAdvisor{reply: "Puedes deducirlo al 50%."}
		svc, _ := newService(t, advisor, nil)

		res, err := svc.Ask(ctx, "¿Es deducible mi móvil?")
		if err != nil {
			t.Fatal(err)
		}
		if res.UserMessage.Sender != core.SenderUser || res.Reply.Sender != core.SenderAssistant {
			t.Errorf("senders wrong: %+v", res)
		}
		if res.Reply.Text != "Puedes deducirlo al 50%." {
			t.Errorf("reply = %q", res.Reply.Text)
		}
		// the greeting is the only prior turn; the live question must not be in it
		if len(advisor.gotHistory) != 1 {
			t.Errorf("history should hold prior turns only, got %d", len(advisor.gotHistory))
		}
		if !strings.Contains(advisor.gotContext, "Ana García") || !strings.Contains(advisor.gotContext, "12345678Z") {
			t.Errorf("profile context missing identity: %q", advisor.gotContext)
		}

		history, _ := svc.GetChatHistory(ctx)
		if len(history) != 3 { // greeting + question + reply
			t.Errorf("transcript should have 3 messages, got %d", len(history))
		}
	})

	t.Run("missing credential degrades to the unavailable message", func(t *testing.T) {
		advisor := &fakeAdvisor{err: assistant.ErrNotConfigured}
		svc, _ := newService(t, advisor, nil)

		res, err := svc.Ask(ctx, "hola")
		if err != nil {
			t.Fatal(err)
		}
		if res.Reply.Text != assistant.UnavailableMessage {
			t.Errorf("reply = %q", res.Reply.Text)
		}
	})

	t.Run("remote failure degrades to the fallback message", func(t *testing.T) {
		advisor := &fakeAdvisor{err: &assistant.AdviceError{Err: errors.New("boom")}}
		svc, _ := newService(t, advisor, nil)

		res, err := svc.Ask(ctx, "hola")
		if err != nil {
			t.Fatal(err)
		}
		if res.Reply.Text != assistant.FallbackMessage {
			t.Errorf("reply = %q", res.Reply.Text)
		}
	})

	t.Run("rejects empty questions", func(t *testing.T) {
		svc, _ := newService(t, nil, nil)
		_, err := svc.Ask(ctx, "   ")
		var verr *app.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("want ValidationError, got %v", err)
		}
	})
}

func TestRunQuickAction(t *testing.T) {
	ctx := context.Background()

	t.Run("local action never calls the advisor", func(t *testing.T) {
		advisor := &fakeAdvisor{reply: "should not be used"}
		svc, _ := newService(t, advisor, nil)
		if _, err := svc.CreateInvoice(ctx, app.CreateInvoiceRequest{ClientName: "X", IssueDate: "2024-07-15", Subtotal: 1000, VATRate: 21}); err != nil {
			t.Fatal(err)
		}

		res, err := svc.RunQuickAction(ctx, assistant.ActionVATDue)
		if err != nil {
			t.Fatal(err)
		}
		if advisor.calls != 0 {
			t.Errorf("local action must not reach the advisor")
		}
		if res.UserMessage.Text != "¿Cuánto IVA a pagar?" {
			t.Errorf("the menu label is what lands in the transcript, got %q", res.UserMessage.Text)
		}
		if !strings.Contains(res.Reply.Text, "210,00 €") {
			t.Errorf("reply should carry the computed VAT, got %q", res.Reply.Text)
		}
	})

	t.Run("remote action goes through the advisor with its prompt", func(t *testing.T) {
		advisor := &fakeAdvisor{reply: "Consejo: revisa tus suscripciones."}
		svc, _ := newService(t, advisor, nil)

		res, err := svc.RunQuickAction(ctx, assistant.ActionSaveTips)
		if err != nil {
			t.Fatal(err)
		}
		if advisor.calls != 1 {
			t.Fatalf("advisor not consulted")
		}
		if !strings.Contains(advisor.gotQuestion, "reducir mis gastos deducibles") {
			t.Errorf("prompt not forwarded, got %q", advisor.gotQuestion)
		}
		if res.Reply.Text != "Consejo: revisa tus suscripciones." {
			t.Errorf("reply = %q", res.Reply.Text)
		}
	})

	t.Run("unknown action id", func(t *testing.T) {
		svc, _ := newService(t, nil, nil)
		if _, err := svc.RunQuickAction(ctx, "nope"); !errors.Is(err, app.ErrNotFound) {
			t.Errorf("want ErrNotFound, got %v", err)
		}
	})
}

func TestServiceResults_DoNotAliasStore(t *testing.T) {
	svc, store := newService(t, nil, nil)
	ctx := context.Background()

	t.Run("created invoice", func(t *testing.T) {
		inv, err := svc.CreateInvoice(ctx, app.CreateInvoiceRequest{
			ClientName: "Tecno Soluciones", IssueDate: "2024-07-15", Subtotal: 1000, VATRate: 21,
		})
		if err != nil {
			t.Fatal(err)
		}
		inv.Items[0].Description = "mutated by caller"

		active, _ := store.Active()
		if active.Invoices[0].Items[0].Description != "Servicio General" {
			t.Errorf("caller mutation reached the store: %q", active.Invoices[0].Items[0].Description)
		}
	})

	t.Run("status update result", func(t *testing.T) {
		invoices, _ := svc.ListInvoices(ctx)
		updated, err := svc.SetInvoiceStatus(ctx, invoices[0].ID, core.InvoicePaid)
		if err != nil {
			t.Fatal(err)
		}
		updated.Items[0].Description = "mutated by caller"

		active, _ := store.Active()
		if active.Invoices[0].Items[0].Description != "Servicio General" {
			t.Errorf("caller mutation reached the store: %q", active.Invoices[0].Items[0].Description)
		}
	})

	t.Run("saved extraction result", func(t *testing.T) {
		res, err := svc.SaveExtracted(ctx, app.SaveExtractedRequest{
			Data: core.ExtractedData{
				DocumentType: core.DocumentInvoice, VendorOrClient: "Cliente", Date: "2024-07-15",
				TotalAmount: 121, Subtotal: 100, IVAAmount: 21,
				LineItems: []core.LineItem{{Description: "Consultoría", Quantity: 1, Price: 100}},
			},
		})
		if err != nil {
			t.Fatal(err)
		}
		res.Invoice.Items[0].Description = "mutated by caller"

		active, _ := store.Active()
		if active.Invoices[0].Items[0].Description != "Consultoría" {
			t.Errorf("caller mutation reached the store: %q", active.Invoices[0].Items[0].Description)
		}
	})
}

func TestNewestRecordsFirst(t *testing.T) {
	svc, _ := newService(t, nil, nil)
	ctx := context.Background()

	for _, client := range []string{"Primero", "Segundo"} {
		if _, err := svc.CreateInvoice(ctx, app.CreateInvoiceRequest{
			ClientName: client, IssueDate: "2024-07-15", Subtotal: 100, VATRate: 21,
		}); err != nil {
			t.Fatal(err)
		}
	}
	invoices, err := svc.ListInvoices(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if invoices[0].ClientName != "Segundo" || invoices[1].ClientName != "Primero" {
		t.Errorf("invoices should list newest first, got %q then %q", invoices[0].ClientName, invoices[1].ClientName)
	}

	for _, vendor := range []string{"Vieja", "Nueva"} {
		if _, err := svc.SaveExpense(ctx, app.SaveExpenseRequest{
			ID: vendor, Vendor: vendor, Date: "2024-07-10", Amount: 10,
		}); err != nil {
			t.Fatal(err)
		}
	}
	expenses, err := svc.ListExpenses(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if expenses[0].Vendor != "Nueva" {
		t.Errorf("expenses should list newest first, got %q", expenses[0].Vendor)
	}
}

func TestNoActiveProfile(t *testing.T) {
	store := state.NewStore()
	svc := app.NewService(store, &fakeExtractor{}, &fakeAdvisor{}, decimal.NewFromFloat(0.20))
	ctx := context.Background()

	if _, err := svc.GetActiveProfile(ctx); !errors.Is(err, app.ErrNoActiveProfile) {
		t.Errorf("want ErrNoActiveProfile, got %v", err)
	}
	if _, err := svc.GetTaxSummary(ctx); !errors.Is(err, app.ErrNoActiveProfile) {
		t.Errorf("want ErrNoActiveProfile, got %v", err)
	}
	if _, err := svc.Ask(ctx, "hola"); !errors.Is(err, app.ErrNoActiveProfile) {
		t.Errorf("want ErrNoActiveProfile, got %v", err)
	}
}
