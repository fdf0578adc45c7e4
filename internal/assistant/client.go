package assistant

import (
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Client talks to the generative-language API for both adapters: document
// extraction and conversational advice. A zero credential is allowed at
// construction time — calls then fail fast with ErrNotConfigured so the UI
// can degrade to a "service unavailable" message.
type Client struct {
	client *openai.Client
	model  string
	apiKey string
}

func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = openai.ChatModelGPT4o
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Client{client: &client, model: model, apiKey: apiKey}
}

// configured reports whether a credential was supplied.
func (c *Client) configured() bool {
	return c.apiKey != ""
}
