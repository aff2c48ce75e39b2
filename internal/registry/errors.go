package registry

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidKey   = errors.New("registry: key must not be blank")
	ErrDuplicateKey = errors.New("registry: key already registered")
	ErrUnknownKey   = errors.New("registry: unknown model")
	ErrUnavailable  = errors.New("registry: model unavailable")
)

// UnavailableError reports that a registered back-end could not be constructed. Err is the
// factory's error, untouched.
type UnavailableError struct {
	Key string
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("model %q unavailable: %v", e.Key, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

func (e *UnavailableError) Is(target error) bool { return target == ErrUnavailable }
