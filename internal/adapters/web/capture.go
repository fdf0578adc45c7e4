package web

import (
	"errors"
	"io"
	"net/http"

	"cuadrai/internal/app"
	"cuadrai/internal/assistant"
)

// maxCaptureBytes caps the multipart upload; vision models reject anything
// much larger anyway.
const maxCaptureBytes = 10 << 20 // 10 MB

// capture accepts a multipart document photo plus an optional "hint" field
// and returns the extraction for the user to review. Nothing is stored here.
func (h *Handler) capture(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxCaptureBytes)
	if err := r.ParseMultipartForm(maxCaptureBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "document too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return
		}
		writeError(w, r, "invalid multipart body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, r, "an 'image' file field is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, "reading upload: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	extracted, err := h.svc.ExtractDocument(r.Context(), app.CaptureRequest{
		Image: assistant.Image{MimeType: mimeType, Data: data},
		Hint:  r.FormValue("hint"),
	})
	if err != nil {
		writeCaptureError(w, r, err)
		return
	}
	writeJSON(w, extracted)
}

// captureSave stores a reviewed extraction as an invoice or expense.
func (h *Handler) captureSave(w http.ResponseWriter, r *http.Request) {
	var req app.SaveExtractedRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.svc.SaveExtracted(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

// writeCaptureError distinguishes the missing credential and the remote
// extraction failure from plain bad requests.
func writeCaptureError(w http.ResponseWriter, r *http.Request, err error) {
	var exErr *assistant.ExtractionError
	switch {
	case errors.Is(err, assistant.ErrNotConfigured):
		writeError(w, r, assistant.UnavailableMessage, "NOT_CONFIGURED", http.StatusServiceUnavailable)
	case errors.As(err, &exErr):
		writeError(w, r, exErr.Error(), "EXTRACTION_FAILED", http.StatusBadGateway)
	default:
		writeServiceError(w, r, err)
	}
}
