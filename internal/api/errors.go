package api

import (
	"encoding/json"
	"fmt"
)

// Error is a non-2xx response from the platform API. The body is kept as a
// tagged result: when the platform returned its JSON error object the
// structured fields are populated, otherwise RawBody holds the verbatim
// response text.
type Error struct {
	Status    int
	Message   string
	Code      string
	RequestID string
	RawBody   string
}

// newError classifies a response body into the structured or raw variant.
func newError(status int, body []byte) *Error {
	var parsed struct {
		Message   string `json:"message"`
		Code      string `json:"code"`
		RequestID string `json:"requestId"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		return &Error{
			Status:    status,
			Message:   parsed.Message,
			Code:      parsed.Code,
			RequestID: parsed.RequestID,
		}
	}
	return &Error{Status: status, RawBody: string(body)}
}

// Structured reports whether the platform's JSON error object was parsed.
func (e *Error) Structured() bool { return e.Message != "" }

func (e *Error) Error() string {
	if e.Structured() {
		return fmt.Sprintf("API error (%d): %s [code=%s requestId=%s]", e.Status, e.Message, e.Code, e.RequestID)
	}
	if e.RawBody != "" {
		return fmt.Sprintf("HTTP error %d: %s", e.Status, e.RawBody)
	}
	return fmt.Sprintf("HTTP error %d", e.Status)
}
