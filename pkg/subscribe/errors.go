package subscribe

import (
	"errors"
	"fmt"
)

// User-facing messages.
const (
	MsgEmailRequired   = "Email is required"
	MsgNameRequired    = "Name is required"
	MsgInvalidEmail    = "Please enter a valid email address"
	MsgSubscribed      = "Subscription successful!"
	MsgSubscribeFailed = "Subscription failed"
	MsgUnexpected      = "An error occurred. Please try again."
	MsgNoConnection    = "No internet connection. Please check your network."
	MsgServerError     = "Server error. Please try again later."
	MsgNetworkError    = "Network error. Please try again."
)

var (
	// ErrMissingElement is returned by New when a required page element
	// cannot be resolved.
	ErrMissingElement = errors.New("subscribe: missing element")
	// ErrNilDocument is returned by New when no document is supplied.
	ErrNilDocument = errors.New("subscribe: document is nil")
)

// Reason identifies a local validation failure.
type Reason string

const (
	ReasonMissingEmail       Reason = "missing_email"
	ReasonMissingName        Reason = "missing_name"
	ReasonInvalidEmailFormat Reason = "invalid_email_format"
)

// Message returns the text shown to the user for the reason.
func (r Reason) Message() string {
	switch r {
	case ReasonMissingEmail:
		return MsgEmailRequired
	case ReasonMissingName:
		return MsgNameRequired
	case ReasonInvalidEmailFormat:
		return MsgInvalidEmail
	default:
		return string(r)
	}
}

// ValidationError is the invalid arm of a validation result.
type ValidationError struct {
	Reason Reason
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("subscribe: invalid input: %s", e.Reason)
}

// TransportError reports a request that did not complete at the HTTP level.
// Message is the derived user-facing text.
type TransportError struct {
	Status  int
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("subscribe: transport failure: %s: %v", e.Message, e.Err)
	}
	return "subscribe: transport failure: " + e.Message
}

func (e *TransportError) Unwrap() error { return e.Err }
