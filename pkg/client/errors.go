package client

import "fmt"

// APIError is a non-2xx response from the registration API. Detail holds the
// server-supplied message verbatim; it is empty when the server sent none.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// TransportError is a network-level failure: the request never produced a
// response. Its message is deliberately generic; the underlying cause is
// available via Unwrap.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "could not reach the registration service"
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
