package web

import (
	"net/http"

	"cuadrai/internal/app"
)

func (h *Handler) listExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.svc.ListExpenses(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, expenses)
}

// saveExpense creates the expense, or replaces it when the body carries an
// existing id.
func (h *Handler) saveExpense(w http.ResponseWriter, r *http.Request) {
	var req app.SaveExpenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	exp, err := h.svc.SaveExpense(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, exp)
}

func (h *Handler) deleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteExpense(r.Context(), urlID(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]bool{"deleted": true})
}

func (h *Handler) listObligations(w http.ResponseWriter, r *http.Request) {
	obligations, err := h.svc.ListObligations(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, obligations)
}

func (h *Handler) completeObligation(w http.ResponseWriter, r *http.Request) {
	ob, err := h.svc.CompleteObligation(r.Context(), urlID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, ob)
}
