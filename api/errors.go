package api

import (
	"fmt"
	"net/http"
)

// StatusError is a non-2xx answer from the backend.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Message    string // backend "message" field, may be empty
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %d %s: %s", e.Endpoint, e.StatusCode, e.Status(), e.Message)
	}
	return fmt.Sprintf("%s: %d %s", e.Endpoint, e.StatusCode, e.Status())
}

// Status is the reason phrase for the status code ("Internal Server Error").
func (e *StatusError) Status() string {
	return http.StatusText(e.StatusCode)
}

// DecodeError means the backend answered 2xx with a body that does not have the expected shape.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: unexpected response shape: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
