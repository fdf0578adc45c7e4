package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"cuadrai/internal/assistant"
	"cuadrai/internal/core"
)

// Smoke-checks the advice adapter against the live API: one question with a
// short fabricated transcript and profile context.
func main() {
	_ = godotenv.Load() // Load .env if present

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Fatal("OPENAI_API_KEY not set")
	}

	client := assistant.NewClient(apiKey, os.Getenv("OPENAI_MODEL"))
	ctx := context.Background()

	history := []core.ChatMessage{
		{Sender: core.SenderAssistant, Text: "¡Hola! Soy tu copiloto fiscal. ¿En qué puedo ayudarte?"},
	}
	profileContext := "Contexto del perfil: Individual llamado 'Ana García' con identificador fiscal 12345678Z."
	question := "¿Puedo deducir la cuota de autónomos en el modelo 130?"

	fmt.Printf("QUESTION: %s\n", question)
	answer, err := client.Advise(ctx, question, history, profileContext)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	fmt.Printf("\n--- ANSWER ---\n%s\n", answer)
}
