package state

import (
	"github.com/google/uuid"

	"cuadrai/internal/core"
)

// SeedDemo loads two demo profiles (a freelancer and a small company) so the
// app is explorable without typing data in first. Gated behind SEED_DEMO.
func (s *Store) SeedDemo() {
	ana := newProfile("Ana García", "12345678A", core.KindIndividual)
	ana.Invoices = []core.Invoice{
		{
			ID: "F2024-003", ClientName: "Startup Creativa S.L.",
			IssueDate: "2024-07-15", DueDate: "2024-08-14", Status: core.InvoicePending,
			Items:    []core.LineItem{{Description: "Consultoría de Diseño UX", Quantity: 20, Price: 50}},
			Subtotal: 1000, VATRate: 21, IRPFRate: 15, Total: 1060,
		},
		{
			ID: "F2024-002", ClientName: "Tecno Soluciones",
			IssueDate: "2024-06-20", DueDate: "2024-07-20", Status: core.InvoicePaid,
			Items:    []core.LineItem{{Description: "Desarrollo Landing Page", Quantity: 1, Price: 1200}},
			Subtotal: 1200, VATRate: 21, IRPFRate: 15, Total: 1272,
		},
		{
			ID: "F2024-001", ClientName: "Marketing Digital Avanzado",
			IssueDate: "2024-05-10", DueDate: "2024-06-09", Status: core.InvoiceOverdue,
			Items:    []core.LineItem{{Description: "Campaña SEO", Quantity: 1, Price: 800}},
			Subtotal: 800, VATRate: 21, IRPFRate: 15, Total: 848,
		},
	}
	ana.Expenses = []core.Expense{
		{ID: "G2024-005", Vendor: "Software World", Date: "2024-07-10", Category: "Software", Amount: 49.99, VATAmount: 10.49, HasReceipt: true},
		{ID: "G2024-004", Vendor: "Espacio Co-working", Date: "2024-07-01", Category: "Alquiler", Amount: 250.00, VATAmount: 52.50, HasReceipt: true},
	}
	ana.Obligations = []core.Obligation{
		{ID: uuid.NewString(), Title: "Presentación Modelo 303 (IVA)", DueDate: "2024-10-20", Kind: core.ObligationTax},
		{ID: uuid.NewString(), Title: "Presentación Modelo 130 (IRPF)", DueDate: "2024-10-20", Kind: core.ObligationTax},
	}
	ana.Chat = []core.ChatMessage{{
		ID: uuid.NewString(), Sender: core.SenderAssistant,
		Text: "¡Hola Ana! Soy tu copiloto fiscal. ¿En qué te puedo ayudar hoy con tu actividad como autónoma?",
	}}
	ana.Address = core.Address{Street: "Calle Falsa, 123", City: "Madrid", PostalCode: "28001", Country: "España"}
	ana.Billing.InvoiceSeries = "F2024-"
	ana.Billing.BankIBAN = "ES91 2100 0418 4502 0005 1332"

	sc := newProfile("Startup Creativa S.L.", "B98765432", core.KindCompany)
	sc.Invoices = []core.Invoice{
		{
			ID: "SC-F2024-010", ClientName: "Global Corp",
			IssueDate: "2024-07-20", DueDate: "2024-08-19", Status: core.InvoicePending,
			Items:    []core.LineItem{{Description: "Servicios de Branding", Quantity: 1, Price: 5000}},
			Subtotal: 5000, VATRate: 21, IRPFRate: 0, Total: 6050,
		},
	}
	sc.Expenses = []core.Expense{
		{ID: "SC-G2024-015", Vendor: "Cloud Services Inc.", Date: "2024-07-01", Category: "Software", Amount: 300, VATAmount: 63, HasReceipt: true},
		{ID: "SC-G2024-016", Vendor: "Nóminas Julio", Date: "2024-07-31", Category: "Salarios", Amount: 4500, VATAmount: 0, HasReceipt: true},
	}
	sc.Billing.InvoiceSeries = "SC-F2024-"

	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles = append(s.profiles, ana, sc)
	s.activeID = ana.ID
}
