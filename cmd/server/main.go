package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	webAdapter "cuadrai/internal/adapters/web"
	"cuadrai/internal/app"
	"cuadrai/internal/assistant"
	"cuadrai/internal/config"
	"cuadrai/internal/state"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.OpenAIAPIKey == "" {
		log.Println("Warning: OPENAI_API_KEY is not set; chat and capture run degraded")
	}

	store := state.NewStore()
	if cfg.SeedDemo {
		store.SeedDemo()
		log.Println("demo profiles loaded")
	}

	client := assistant.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	svc := app.NewService(store, client, client, decimal.NewFromFloat(cfg.PrepaymentRate))

	handler := webAdapter.NewHandler(svc, cfg.AllowedOrigins)

	log.Printf("server starting on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatalf("server: %v", err)
	}
}
