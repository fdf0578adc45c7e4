package web

import "net/http"

// taxSummary computes the tax estimate fresh from the active profile's
// records on every call.
func (h *Handler) taxSummary(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.GetTaxSummary(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}
