package web

import (
	"net/http"

	"cuadrai/internal/app"
	"cuadrai/internal/core"
)

// listProfiles returns every profile plus the active id.
func (h *Handler) listProfiles(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ListProfiles(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

// createProfile adds a profile and activates it.
func (h *Handler) createProfile(w http.ResponseWriter, r *http.Request) {
	var req app.CreateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.svc.CreateProfile(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

// updateProfile replaces a profile record wholesale. The id in the URL wins
// over whatever the body carries.
func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var profile core.Profile
	if !decodeJSON(w, r, &profile) {
		return
	}
	profile.ID = urlID(r)

	res, err := h.svc.UpdateProfile(r.Context(), profile)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

// activateProfile switches the active profile.
func (h *Handler) activateProfile(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.SwitchProfile(r.Context(), urlID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

// activeProfile returns a snapshot of the active profile.
func (h *Handler) activeProfile(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.GetActiveProfile(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}
