// Package apierrors defines the single error type returned by commands and transports.
// Callers classify failures by Kind instead of matching on messages.
package apierrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind is a machine-readable error category
type Kind string

const (
	// KindValidation caller input was rejected before any request was sent
	KindValidation Kind = "validation"
	// KindAccessToken no access token could be obtained
	KindAccessToken Kind = "access_token"
	// KindTransport the request could not be delivered or the server replied with a non 200 status
	KindTransport Kind = "transport"
	// KindFault the server rejected the call with a fault
	KindFault Kind = "fault"
	// KindProcessing the response did not have the expected shape
	KindProcessing Kind = "processing"
)

// Error wraps a cause with its kind and the api method it happened in
type Error struct {
	Kind    Kind
	Method  string
	Message string
	Err     error
}

func (e *Error) Error() string {
	prefix := string(e.Kind)
	if e.Method != "" {
		prefix += " " + e.Method
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ------------------------------------------------------------------------------------------------
// ~ Constructor
// ------------------------------------------------------------------------------------------------

func New(kind Kind, method, msg string) *Error {
	return &Error{Kind: kind, Method: method, Message: msg}
}

func Wrap(kind Kind, method, msg string, err error) *Error {
	return &Error{Kind: kind, Method: method, Message: msg, Err: err}
}

// Validationf returns a validation error with a formatted message
func Validationf(method, format string, args ...interface{}) *Error {
	return New(KindValidation, method, fmt.Sprintf(format, args...))
}

// ------------------------------------------------------------------------------------------------
// ~ Public methods
// ------------------------------------------------------------------------------------------------

// KindOf returns the kind of the first *Error in the chain or an empty kind
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

// Is reports whether err carries the given kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
