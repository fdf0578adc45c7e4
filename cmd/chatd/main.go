package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"cuadrai/internal/relay"
)

// chatd is the legacy single-endpoint chat relay kept for the old frontend:
// POST /api/chat forwarded to a Gemini model, nothing else.
func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	generate, err := relay.GeminiGenerator(context.Background(), os.Getenv("GEMINI_MODEL"))
	if err != nil {
		logger.Error("creating generator", "error", err)
		os.Exit(1)
	}

	port := os.Getenv("CHATD_PORT")
	if port == "" {
		port = "3001"
	}

	rl := relay.New(generate, logger)
	logger.Info("chat relay starting", "port", port)
	if err := http.ListenAndServe(":"+port, rl.Handler()); err != nil {
		logger.Error("server", "error", err)
		os.Exit(1)
	}
}
