package resource

import (
	"errors"
	"fmt"
)

// ErrNotFound is reported by transports for a missing resource. Transport
// errors match it through errors.Is.
var ErrNotFound = errors.New("resource not found")

// Done is returned by Result.Next when no more models will be produced.
var Done = errors.New("no more resources")

// TransportError reports a response the handler cannot use: an unexpected
// status or an unexpected payload shape.
type TransportError struct {
	Op     string
	Path   string
	Status int
	Err    error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	msg := fmt.Sprintf("%s %s", e.Op, e.Path)
	if e.Status != 0 {
		msg += fmt.Sprintf(": unexpected status %d", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error
func (e *TransportError) Unwrap() error {
	return e.Err
}
