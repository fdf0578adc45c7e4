package assistant

import (
	"fmt"

	"github.com/shopspring/decimal"

	"cuadrai/internal/core"
)

// ActionKind selects how a quick action is answered: locally from the
// calculators, or by the remote advice call.
type ActionKind string

const (
	ActionLocal  ActionKind = "local"
	ActionRemote ActionKind = "remote"
)

// QuickAction is one entry of the fixed quick-question menu. Local actions
// never touch the network; remote ones go through Advise with Prompt as the
// question. Both paths share the same formatting conventions so the
// transcript is visually consistent regardless of source.
type QuickAction struct {
	ID     string     `json:"id"`
	Label  string     `json:"label"`
	Prompt string     `json:"prompt"`
	Kind   ActionKind `json:"kind"`
}

const (
	ActionVATDue    = "vat-due"
	ActionOverdue   = "overdue-invoices"
	ActionNetProfit = "net-profit"
	ActionSaveTips  = "save-tips"
)

// QuickActions returns the fixed menu in display order.
func QuickActions() []QuickAction {
	return []QuickAction{
		{ID: ActionVATDue, Label: "¿Cuánto IVA a pagar?", Prompt: "Calcula mi IVA a pagar este trimestre.", Kind: ActionLocal},
		{ID: ActionOverdue, Label: "¿Tengo facturas vencidas?", Prompt: "Revisa si tengo facturas vencidas.", Kind: ActionLocal},
		{ID: ActionNetProfit, Label: "¿Cuál es mi beneficio neto?", Prompt: "Calcula mi beneficio neto hasta la fecha.", Kind: ActionLocal},
		{ID: ActionSaveTips, Label: "Consejos para reducir gastos", Prompt: "Dame algunos consejos prácticos para un autónomo en España sobre cómo reducir mis gastos deducibles.", Kind: ActionRemote},
	}
}

// FindQuickAction looks up a menu entry by id.
func FindQuickAction(id string) (QuickAction, bool) {
	for _, a := range QuickActions() {
		if a.ID == id {
			return a, true
		}
	}
	return QuickAction{}, false
}

// LocalAnswer computes the response for a local quick action entirely from
// the profile's records — no remote call, no credential needed.
func LocalAnswer(actionID string, invoices []core.Invoice, expenses []core.Expense) (string, error) {
	switch actionID {
	case ActionVATDue:
		output := core.OutputVAT(invoices)
		input := core.InputVAT(expenses)
		due := output.Sub(input)
		return fmt.Sprintf(
			"Tu estimación de IVA a pagar para este trimestre es de **%s**. \n\nEsto se calcula así:\n- **IVA cobrado (repercutido):** %s\n- **IVA pagado (soportado):** %s",
			FormatCurrency(due), FormatCurrency(output), FormatCurrency(input)), nil

	case ActionOverdue:
		overdue := core.OverdueInvoices(invoices)
		if len(overdue) == 0 {
			return "¡Buenas noticias! No tienes ninguna factura vencida. Todas tus facturas están al día.", nil
		}
		total := decimal.Zero
		for _, inv := range overdue {
			total = total.Add(decimal.NewFromFloat(inv.Total))
		}
		return fmt.Sprintf(
			"Sí, tienes **%d factura(s) vencida(s)** por un total de **%s**. Te recomiendo reclamar el pago pronto.",
			len(overdue), FormatCurrency(total)), nil

	case ActionNetProfit:
		income := decimal.Zero
		for _, inv := range invoices {
			income = income.Add(decimal.NewFromFloat(inv.Subtotal))
		}
		spent := decimal.Zero
		for _, exp := range expenses {
			spent = spent.Add(decimal.NewFromFloat(exp.Amount))
		}
		profit := core.NetProfit(invoices, expenses)
		return fmt.Sprintf(
			"Hasta ahora, tu beneficio neto (ingresos menos gastos) es de **%s**. \n\n- **Total Ingresos:** %s\n- **Total Gastos:** %s",
			FormatCurrency(profit), FormatCurrency(income), FormatCurrency(spent)), nil
	}
	return "", fmt.Errorf("quick action %q has no local answer", actionID)
}
