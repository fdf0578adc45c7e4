package core_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"cuadrai/internal/core"
)

func TestInvoice_ExpectedTotal(t *testing.T) {
	tests := []struct {
		name    string
		invoice core.Invoice
		want    string
	}{
		{
			name:    "standard freelancer invoice",
			invoice: core.Invoice{Subtotal: 1000, VATRate: 21, IRPFRate: 15, Total: 1060},
			want:    "1060",
		},
		{
			name:    "company invoice without withholding",
			invoice: core.Invoice{Subtotal: 5000, VATRate: 21, IRPFRate: 0, Total: 6050},
			want:    "6050",
		},
		{
			name:    "cent rounding",
			invoice: core.Invoice{Subtotal: 33.33, VATRate: 21, IRPFRate: 15},
			want:    "35.33", // 33.33 + 7.0 - 5.0, rounded to cents
		},
		{
			name:    "zero subtotal",
			invoice: core.Invoice{Subtotal: 0, VATRate: 21, IRPFRate: 15},
			want:    "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.invoice.ExpectedTotal()
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("ExpectedTotal = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestInvoice_WithholdingAmount(t *testing.T) {
	inv := core.Invoice{Subtotal: 1000, VATRate: 21, IRPFRate: 15}
	if got, want := inv.WithholdingAmount(), decimal.NewFromInt(150); !got.Equal(want) {
		t.Errorf("WithholdingAmount = %s, want %s", got, want)
	}
}

func TestNextInvoiceID(t *testing.T) {
	now := timeFixed(t)
	id := core.NextInvoiceID("F2024-", now)
	if len(id) != len("F2024-")+4 {
		t.Errorf("unexpected id shape: %q", id)
	}
	if core.NextInvoiceID("", now)[:2] != "F-" {
		t.Errorf("empty series should fall back to the F- prefix")
	}
}
