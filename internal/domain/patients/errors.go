package patients

import (
	"errors"
	"strings"
)

// ErrNotFound is returned by lookups for ids with no corresponding row.
var ErrNotFound = errors.New("patient not found")

// ValidationError carries the full violation list for a rejected submission.
// No store call is made when Register returns one.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Message
	}
	return strings.Join(msgs, "; ")
}

// PrimaryStoreError wraps a failed write or read against the system of
// record. It is fatal to the request: no partial record exists and the
// secondary write is never attempted.
type PrimaryStoreError struct {
	Err error
}

func (e *PrimaryStoreError) Error() string {
	return "primary store: " + e.Err.Error()
}

func (e *PrimaryStoreError) Unwrap() error {
	return e.Err
}

// SecondaryStoreError wraps a failed document-store write. It never escapes
// Register: the caller still sees success and the failure is reported
// through the log and the drift recorder instead.
type SecondaryStoreError struct {
	Err error
}

func (e *SecondaryStoreError) Error() string {
	return "secondary store: " + e.Err.Error()
}

func (e *SecondaryStoreError) Unwrap() error {
	return e.Err
}
