package web

import "net/http"

func (h *Handler) chatHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.svc.GetChatHistory(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, history)
}

// chatMessage runs one chat turn. Advisor failures never surface here — the
// service degrades them to fallback replies — so errors are request problems.
func (h *Handler) chatMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.svc.Ask(r.Context(), req.Message)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

func (h *Handler) quickActions(w http.ResponseWriter, r *http.Request) {
	actions, err := h.svc.ListQuickActions(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, actions)
}

func (h *Handler) runQuickAction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ActionID string `json:"action_id"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.svc.RunQuickAction(r.Context(), req.ActionID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}
