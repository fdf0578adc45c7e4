package assistant

import (
	"errors"
	"fmt"
)

var errEmptyResponse = errors.New("empty response content")

// ErrNotConfigured signals a missing API credential. It is checked eagerly on
// every adapter entry point so the caller can show a static unavailability
// message instead of attempting a network call.
var ErrNotConfigured = errors.New("assistant: API credential not configured")

// Fixed user-facing strings. The chat must stay usable when the remote
// service misbehaves, so these replace raw errors at the interaction boundary.
const (
	UnavailableMessage = "El servicio de consulta no está disponible en este momento. Por favor, asegúrese de que la clave de API esté configurada."
	FallbackMessage    = "Lo siento, ha ocurrido un error al procesar tu consulta. Por favor, inténtalo de nuevo más tarde."
)

// ExtractionError wraps any failure of the document extraction call: remote
// errors, malformed JSON, or a response that violates the schema. No retry is
// performed; the caller owns the retry affordance.
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction failed: %s: %v", e.Reason, e.Err)
	}
	return "extraction failed: " + e.Reason
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// AdviceError wraps a failed remote advice call. Callers replace it with
// FallbackMessage in the transcript rather than surfacing it to the user.
type AdviceError struct {
	Err error
}

func (e *AdviceError) Error() string { return fmt.Sprintf("advice call failed: %v", e.Err) }

func (e *AdviceError) Unwrap() error { return e.Err }
