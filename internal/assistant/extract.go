package assistant

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go"

	"cuadrai/internal/core"
)

// Image is an uploaded document photo or scan. JPG, PNG and WEBP are what the
// vision models accept.
type Image struct {
	MimeType string
	Data     []byte
}

const extractionInstruction = `Eres un experto en OCR y extracción de datos de facturas y tickets españoles. Tu única función es analizar la imagen y rellenar el schema JSON con la mayor precisión posible. No respondas con texto plano, solo con el JSON.`

// ExtractDocument sends the image plus the user's free-text hint to the model
// and returns the validated extraction. Any failure — missing credential
// aside — comes back as *ExtractionError; there is no retry and no partial
// result.
func (c *Client) ExtractDocument(ctx context.Context, img Image, hint string) (*core.ExtractedData, error) {
	if !c.configured() {
		return nil, ErrNotConfigured
	}

	schemaMap, err := extractionSchema()
	if err != nil {
		return nil, &ExtractionError{Reason: "building response schema", Err: err}
	}

	prompt := fmt.Sprintf(`Analiza la imagen de esta factura o ticket. Extrae los datos clave según el schema JSON proporcionado. El usuario ha añadido esta nota: %q`, hint)
	dataURL := "data:" + img.MimeType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(extractionInstruction),
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(prompt),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: dataURL}),
			}),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        "extracted_document",
					Description: openai.String("Key fields extracted from an invoice or expense receipt"),
					Schema:      schemaMap,
					Strict:      openai.Bool(true),
				},
			},
		},
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, &ExtractionError{Reason: "remote call", Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &ExtractionError{Reason: "empty response"}
	}

	raw := []byte(strings.TrimSpace(resp.Choices[0].Message.Content))
	if err := validateAgainstSchema(schemaMap, raw); err != nil {
		return nil, &ExtractionError{Reason: "schema validation", Err: err}
	}

	var data core.ExtractedData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, &ExtractionError{Reason: "parsing response", Err: err}
	}

	data.Normalize()
	if err := data.Validate(); err != nil {
		return nil, &ExtractionError{Reason: "invalid extraction", Err: err}
	}
	return &data, nil
}
