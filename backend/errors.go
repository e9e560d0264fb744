package backend

import (
	"errors"
	"fmt"
)

// ErrEmptyQuery is the cause of a RequestFailed for a blank query.
var ErrEmptyQuery = errors.New("query is empty")

// RequestFailed is returned for every unsuccessful generate-response call:
// transport errors, non-2xx statuses and malformed payloads alike.
type RequestFailed struct {
	// Endpoint is the URL the request was sent to
	Endpoint string

	// StatusCode is the HTTP status, 0 when no response was received
	StatusCode int

	// Detail is the error detail reported by the backend, if any
	Detail string

	// Err is the underlying error
	Err error
}

func (e *RequestFailed) Error() string {
	msg := "generate-response request failed"
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *RequestFailed) Unwrap() error {
	return e.Err
}
