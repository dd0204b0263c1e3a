package gateway

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidCredentials is returned by Login when the API
	// rejects the credentials or omits the access token.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthorized maps an upstream 401. Handlers resolve it
	// by redirecting to the login page.
	ErrUnauthorized = errors.New("unauthorized")
)

// HTTPError is any upstream non-2xx response other than 401.
// Detail carries the server's error text when the body had one.
type HTTPError struct {
	Status int
	Detail string
}

func (e *HTTPError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api responded with status %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("api responded with status %d", e.Status)
}

// NetworkError means the external API was unreachable.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("api unreachable: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError enumerates every violated field, not just
// the first one. It is produced before any network call.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	messages := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		messages[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(messages, "; ")
}
