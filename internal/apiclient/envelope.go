package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Envelope mirrors the {success, message, data, errors} wrapper every API
// endpoint answers with.
type Envelope[T any] struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    T                 `json:"data"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// APIError is an unsuccessful response.
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// decodeEnvelope reads a response body. Bodies that are not envelopes still
// produce an APIError for non-2xx statuses.
func decodeEnvelope(status int, body []byte) (Envelope[json.RawMessage], error) {
	var env Envelope[json.RawMessage]
	if err := json.Unmarshal(body, &env); err != nil {
		if status >= http.StatusBadRequest {
			return env, &APIError{Status: status, Message: http.StatusText(status)}
		}
		return env, fmt.Errorf("decode response: %w", err)
	}
	if status >= http.StatusBadRequest || !env.Success {
		return env, &APIError{Status: status, Message: env.Message, Fields: env.Errors}
	}
	return env, nil
}
