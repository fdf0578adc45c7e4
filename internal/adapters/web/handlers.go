package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cuadrai/internal/app"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc    app.ApplicationService
	router chi.Router
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins string) http.Handler {
	h := &Handler{svc: svc}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))

	r.Get("/api/health", h.health)

	// Document capture: multipart uploads, limit managed inside the handler.
	r.Post("/api/capture", h.capture)

	// Everything else: 1 MB body limit to prevent unbounded request abuse.
	r.Group(func(r chi.Router) {
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		r.Get("/api/profiles", h.listProfiles)
		r.Post("/api/profiles", h.createProfile)
		r.Put("/api/profiles/{id}", h.updateProfile)
		r.Post("/api/profiles/{id}/activate", h.activateProfile)
		r.Get("/api/profile", h.activeProfile)

		r.Get("/api/invoices", h.listInvoices)
		r.Post("/api/invoices", h.createInvoice)
		r.Post("/api/invoices/{id}/status", h.setInvoiceStatus)

		r.Get("/api/expenses", h.listExpenses)
		r.Post("/api/expenses", h.saveExpense)
		r.Delete("/api/expenses/{id}", h.deleteExpense)

		r.Get("/api/obligations", h.listObligations)
		r.Post("/api/obligations/{id}/complete", h.completeObligation)

		r.Get("/api/taxes/summary", h.taxSummary)

		r.Post("/api/capture/save", h.captureSave)

		r.Get("/api/chat/history", h.chatHistory)
		r.Post("/api/chat/message", h.chatMessage)
		r.Get("/api/chat/quick", h.quickActions)
		r.Post("/api/chat/quick", h.runQuickAction)
	})

	h.router = r
	return r
}

// health reports service status and which profile is active.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status  string `json:"status"`
		Profile string `json:"profile,omitempty"`
	}

	resp := response{Status: "ok"}
	if res, err := h.svc.GetActiveProfile(r.Context()); err == nil {
		resp.Profile = res.Profile.Name
	}
	writeJSON(w, resp)
}

// urlID extracts the {id} URL parameter.
func urlID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

// decodeJSON decodes the request body into v, writing the error response
// itself on failure: 413 when the body exceeds the RequestBodyLimit cap, 400
// for every other decode error.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
