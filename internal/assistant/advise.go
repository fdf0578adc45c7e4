package assistant

import (
	"context"
	"strings"

	"github.com/openai/openai-go"

	"cuadrai/internal/core"
)

const personaInstruction = `Eres "CUADRAI", un experto consultor fiscal y de negocio para autónomos y freelancers en España.
Tu personalidad es la de un "copiloto fiscal silencioso pero atento": profesional, cercano y, sobre todo, tranquilizador.
Tu misión es hacer la vida del autónomo más fácil. Evita la jerga fiscal compleja y traduce todo a un lenguaje que cualquiera pueda entender.
Responde de forma concisa y clara, usando listas o puntos clave para que la información sea fácil de digerir.
Cuando un usuario te pregunte algo, no solo respondas, anticípate a su siguiente pregunta. Dale contexto y explícale por qué es importante.
Tu objetivo no es solo dar datos, es dar tranquilidad. Siempre debes basar tus respuestas en la normativa fiscal y mercantil española vigente.
No des consejos de inversión ni opiniones personales. Céntrate en la gestión del negocio y la fiscalidad del autónomo.`

// Advise sends the question to the model with the prior transcript as
// role-tagged history and the profile context folded into the system
// instruction. The question itself travels as the live turn, never duplicated
// into the history. Failures come back as *AdviceError — the caller swaps in
// FallbackMessage so the conversation stays usable.
func (c *Client) Advise(ctx context.Context, question string, history []core.ChatMessage, profileContext string) (string, error) {
	if !c.configured() {
		return "", ErrNotConfigured
	}

	system := personaInstruction
	if profileContext != "" {
		system += "\n\n" + profileContext
	}

	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+2)
	msgs = append(msgs, openai.SystemMessage(system))
	for _, m := range history {
		if m.Sender == core.SenderUser {
			msgs = append(msgs, openai.UserMessage(m.Text))
		} else {
			msgs = append(msgs, openai.AssistantMessage(m.Text))
		}
	}
	msgs = append(msgs, openai.UserMessage(question))

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    msgs,
		Temperature: openai.Float(0.7),
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", &AdviceError{Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &AdviceError{Err: errEmptyResponse}
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", &AdviceError{Err: errEmptyResponse}
	}
	return text, nil
}
