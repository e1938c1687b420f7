package auth

import (
	"encoding/json"
	"fmt"
)

// AuthenticationError is returned when the client-credentials flow fails.
// It is fatal: client credentials are the root of trust and there is no
// further fallback. Detail carries the server's diagnostic payload so
// operators can see why the platform rejected the credentials.
type AuthenticationError struct {
	Status int    // HTTP status, 0 for transport or parse failures
	Detail string // server error body (JSON or raw text), may be empty
	Err    error
}

func (e *AuthenticationError) Error() string {
	switch {
	case e.Detail != "" && e.Status != 0:
		return fmt.Sprintf("authentication failed (status %d): %s", e.Status, e.Detail)
	case e.Status != 0:
		return fmt.Sprintf("authentication failed (status %d)", e.Status)
	case e.Err != nil:
		return fmt.Sprintf("authentication failed: %v", e.Err)
	default:
		return "authentication failed"
	}
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// tokenEndpointError describes a non-2xx response from the token endpoint.
// The body is kept verbatim; if it parses as the platform's JSON error
// object the message is extracted for display.
type tokenEndpointError struct {
	status int
	body   string
}

func (e *tokenEndpointError) Error() string {
	return fmt.Sprintf("token endpoint returned status %d: %s", e.status, e.detail())
}

func (e *tokenEndpointError) detail() string {
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(e.body), &parsed); err == nil && parsed.Message != "" {
		return parsed.Message
	}
	return e.body
}
