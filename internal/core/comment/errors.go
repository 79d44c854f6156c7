package comment

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrNetwork           = errors.New("network error")
	ErrServer            = errors.New("server error")
	ErrUnauthorized      = errors.New("not permitted")
	ErrNotFound          = errors.New("not found")
	ErrBusy              = errors.New("operation already in progress")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrNoChange          = errors.New("content unchanged")
)

// Reason identifies which validation rule rejected a draft.
type Reason string

const (
	ReasonEmpty    Reason = "empty"
	ReasonTooShort Reason = "too_short"
	ReasonTooLong  Reason = "too_long"
)

// ValidationError is returned when draft text fails validation. It matches
// ErrValidation with errors.Is.
type ValidationError struct {
	Reason Reason
	Limits Limits
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonEmpty:
		return "Comment cannot be empty"
	case ReasonTooShort:
		return fmt.Sprintf("Comment must be at least %d characters long", e.Limits.Min)
	case ReasonTooLong:
		return fmt.Sprintf("Comment must not exceed %d characters", e.Limits.Max)
	default:
		return "Comment is invalid"
	}
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// GatewayError carries a failure reported by the comment gateway. Kind is one
// of the sentinel errors (ErrNetwork, ErrServer, ErrNotFound) and Message is
// the human readable text from the remote side, if any.
type GatewayError struct {
	Op      string
	Status  int
	Message string
	Kind    error
}

func (e *GatewayError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Kind)
}

func (e *GatewayError) Unwrap() error {
	return e.Kind
}

// UserMessage picks the text shown to a user for err. Validation errors and
// gateway errors with a remote message are shown verbatim; anything else falls
// back to the provided generic message.
func UserMessage(err error, fallback string) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}

	var gerr *GatewayError
	if errors.As(err, &gerr) && gerr.Message != "" {
		return gerr.Message
	}

	return fallback
}
