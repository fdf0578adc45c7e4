package web

import (
	"net/http"

	"cuadrai/internal/app"
	"cuadrai/internal/core"
)

func (h *Handler) listInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.svc.ListInvoices(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, invoices)
}

func (h *Handler) createInvoice(w http.ResponseWriter, r *http.Request) {
	var req app.CreateInvoiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	inv, err := h.svc.CreateInvoice(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, inv)
}

// setInvoiceStatus flips one invoice between pending, paid and overdue.
func (h *Handler) setInvoiceStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status core.InvoiceStatus `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	inv, err := h.svc.SetInvoiceStatus(r.Context(), urlID(r), req.Status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, inv)
}
