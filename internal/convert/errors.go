package convert

import (
	"errors"
	"fmt"
)

// Kind classifies a conversion failure for callers that must report it.
type Kind int

const (
	// KindInput means the request was rejected before any extraction work started.
	KindInput Kind = iota + 1
	// KindUnavailable means the selected back-end cannot be constructed in this deployment.
	KindUnavailable
	// KindExtraction means the back-end failed on the whole document.
	KindExtraction
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindUnavailable:
		return "unavailable"
	case KindExtraction:
		return "extraction"
	}
	return "unknown"
}

// Error carries a message fit for end users next to the underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func inputErr(format string, args ...any) *Error {
	return &Error{Kind: KindInput, Message: fmt.Sprintf(format, args...)}
}

// KindOf reports the Kind of err, or KindExtraction for errors that are not *Error.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindExtraction
}

// Message is the user-facing text for err.
func Message(err error) string {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Message
	}
	return err.Error()
}
