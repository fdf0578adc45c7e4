package core_test

import (
	"testing"
	"time"

	"cuadrai/internal/core"
)

func timeFixed(t *testing.T) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, "2024-07-20T10:30:00Z")
	if err != nil {
		t.Fatal(err)
	}
	return ts
}

func TestExtractedData_Validate(t *testing.T) {
	valid := core.ExtractedData{
		DocumentType:   core.DocumentInvoice,
		VendorOrClient: "Startup Creativa S.L.",
		Date:           "2024-07-15",
		TotalAmount:    1060,
		Subtotal:       1000,
		IVAAmount:      210,
		IRPFAmount:     150,
	}

	tests := []struct {
		name      string
		mutate    func(*core.ExtractedData)
		expectErr bool
	}{
		{name: "valid invoice extraction", mutate: func(d *core.ExtractedData) {}},
		{
			name:      "missing document type",
			mutate:    func(d *core.ExtractedData) { d.DocumentType = "" },
			expectErr: true,
		},
		{
			name:      "unknown document type",
			mutate:    func(d *core.ExtractedData) { d.DocumentType = "receipt" },
			expectErr: true,
		},
		{
			name:      "missing counterparty",
			mutate:    func(d *core.ExtractedData) { d.VendorOrClient = "  " },
			expectErr: true,
		},
		{
			name:      "malformed date",
			mutate:    func(d *core.ExtractedData) { d.Date = "15/07/2024" },
			expectErr: true,
		},
		{
			name:      "negative subtotal",
			mutate:    func(d *core.ExtractedData) { d.Subtotal = -10 },
			expectErr: true,
		},
		{
			name:      "upper-cased type is normalized before validation",
			mutate:    func(d *core.ExtractedData) { d.DocumentType = " Invoice " },
			expectErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			d.Normalize()
			err := d.Validate()
			if tt.expectErr && err == nil {
				t.Errorf("expected error, got nil")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestExtractedData_ToInvoice(t *testing.T) {
	now := timeFixed(t)

	t.Run("rates back-computed and due date thirty days out", func(t *testing.T) {
		d := core.ExtractedData{
			DocumentType:   core.DocumentInvoice,
			VendorOrClient: "Tecno Soluciones",
			Date:           "2024-07-15",
			TotalAmount:    1060,
			Subtotal:       1000,
			IVAAmount:      210,
			IRPFAmount:     150,
			InvoiceID:      "F2024-009",
			LineItems:      []core.LineItem{{Description: "Consultoría", Quantity: 20, Price: 50}},
		}
		inv := d.ToInvoice("F2024-", 21, now)

		if inv.ID != "F2024-009" {
			t.Errorf("ID = %q, want extracted invoice number", inv.ID)
		}
		if inv.DueDate != "2024-08-14" {
			t.Errorf("DueDate = %q, want 2024-08-14", inv.DueDate)
		}
		if inv.VATRate != 21 {
			t.Errorf("VATRate = %v, want 21", inv.VATRate)
		}
		if inv.IRPFRate != 15 {
			t.Errorf("IRPFRate = %v, want 15", inv.IRPFRate)
		}
		if inv.Status != core.InvoicePending {
			t.Errorf("Status = %q, want pending", inv.Status)
		}
		if len(inv.Items) != 1 || inv.Items[0].Description != "Consultoría" {
			t.Errorf("extracted line items should be kept, got %+v", inv.Items)
		}
	})

	t.Run("zero subtotal falls back to the default VAT rate", func(t *testing.T) {
		d := core.ExtractedData{
			DocumentType:   core.DocumentInvoice,
			VendorOrClient: "Cliente",
			Date:           "2024-07-15",
		}
		inv := d.ToInvoice("F-", 21, now)
		if inv.VATRate != 21 {
			t.Errorf("VATRate = %v, want default 21", inv.VATRate)
		}
		if inv.IRPFRate != 0 {
			t.Errorf("IRPFRate = %v, want 0", inv.IRPFRate)
		}
	})

	t.Run("missing line items become a synthetic full-subtotal line", func(t *testing.T) {
		d := core.ExtractedData{
			DocumentType:   core.DocumentInvoice,
			VendorOrClient: "Cliente",
			Date:           "2024-07-15",
			Subtotal:       800,
			IVAAmount:      168,
		}
		inv := d.ToInvoice("F-", 21, now)
		if len(inv.Items) != 1 {
			t.Fatalf("want exactly one synthetic line, got %d", len(inv.Items))
		}
		if inv.Items[0].Price != 800 || inv.Items[0].Quantity != 1 {
			t.Errorf("synthetic line should cover the full subtotal, got %+v", inv.Items[0])
		}
	})
}

func TestExtractedData_ToExpense(t *testing.T) {
	d := core.ExtractedData{
		DocumentType:   core.DocumentExpense,
		VendorOrClient: "Software World",
		Date:           "2024-07-10",
		TotalAmount:    60.48,
		Subtotal:       49.99,
		IVAAmount:      10.49,
	}
	exp := d.ToExpense(timeFixed(t))

	if exp.Vendor != "Software World" {
		t.Errorf("Vendor = %q", exp.Vendor)
	}
	if exp.Amount != 49.99 || exp.VATAmount != 10.49 {
		t.Errorf("amounts not carried over: %+v", exp)
	}
	if exp.Category != "General" {
		t.Errorf("Category = %q, want General fallback", exp.Category)
	}
	if !exp.HasReceipt {
		t.Errorf("captured expense must count as having a receipt")
	}
}

func TestProfile_Clone(t *testing.T) {
	p := core.Profile{
		ID:       "p1",
		Invoices: []core.Invoice{{ID: "F-1", Items: []core.LineItem{{Description: "a"}}}},
		Expenses: []core.Expense{{ID: "G-1"}},
		Chat:     []core.ChatMessage{{ID: "m1", Sender: core.SenderAssistant, Text: "hola"}},
	}

	c := p.Clone()
	c.Invoices[0].Items[0].Description = "mutated"
	c.Expenses[0].Vendor = "mutated"
	c.Chat[0].Text = "mutated"

	if p.Invoices[0].Items[0].Description != "a" {
		t.Errorf("clone aliases invoice line items")
	}
	if p.Expenses[0].Vendor != "" {
		t.Errorf("clone aliases expenses")
	}
	if p.Chat[0].Text != "hola" {
		t.Errorf("clone aliases chat transcript")
	}
}
