// Package relay is the minimal chat endpoint kept for frontends that predate
// the full API: one POST route that forwards a message to a Gemini model and
// returns the raw reply. It shares nothing with the profile-aware chat.
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash"

// GenerateFunc produces a reply for a single message. Injected so tests can
// run without credentials or network.
type GenerateFunc func(ctx context.Context, message string) (string, error)

// GeminiGenerator returns a GenerateFunc backed by the Gemini API. The client
// reads GEMINI_API_KEY / GOOGLE_API_KEY from the environment.
func GeminiGenerator(ctx context.Context, model string) (GenerateFunc, error) {
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, err
	}

	return func(ctx context.Context, message string) (string, error) {
		contents := []*genai.Content{
			{Role: "user", Parts: []*genai.Part{{Text: message}}},
		}
		resp, err := client.Models.GenerateContent(ctx, model, contents, nil)
		if err != nil {
			return "", err
		}
		text := resp.Text()
		if text == "" {
			return "", errors.New("empty response from model")
		}
		return text, nil
	}, nil
}

// Relay is the HTTP surface. Errors are fixed Spanish strings because the
// legacy frontend shows them verbatim.
type Relay struct {
	generate GenerateFunc
	logger   *slog.Logger
}

func New(generate GenerateFunc, logger *slog.Logger) *Relay {
	if logger == nil {
		logger = slog.Default()
	}
	return &Relay{generate: generate, logger: logger}
}

// Handler returns the route table: POST /api/chat only.
func (rl *Relay) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/chat", rl.chat)
	return mux
}

func (rl *Relay) chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		writeRelayError(w, http.StatusBadRequest, "El mensaje es requerido")
		return
	}

	reply, err := rl.generate(r.Context(), req.Message)
	if err != nil {
		rl.logger.Error("generate failed", "error", err)
		writeRelayError(w, http.StatusInternalServerError, "Error al procesar la solicitud")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"reply": reply})
}

func writeRelayError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
