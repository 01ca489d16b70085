package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrDecodeResponse = errors.New("failed to decode backend response")
	ErrEncodeRequest  = errors.New("failed to encode backend request")
)

// APIError is a non-2xx answer from the sales backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// newAPIError takes the message from the optional "error" field of the body,
// falling back to the status text.
func newAPIError(status int, body []byte) *APIError {
	msg := http.StatusText(status)

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && strings.TrimSpace(eb.Error) != "" {
		msg = eb.Error
		if eb.Details != "" {
			msg += ": " + eb.Details
		}
	}
	return &APIError{Status: status, Message: msg}
}

// AsAPIError unwraps err to an *APIError if there is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
