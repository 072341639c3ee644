package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error codes.
const (
	ERR_OUT_OF_RANGE = "ERR_OUT_OF_RANGE"
)

// ErrOutOfRange matches, through errors.Is, every *Error carrying the ERR_OUT_OF_RANGE code.
var ErrOutOfRange = &Error{Type: "RangeError", Code: ERR_OUT_OF_RANGE, Message: "value out of range"}

type Error struct {
	Message     string
	Type        string
	Code        string
	Description string
}

func New(message string) *Error {
	return &Error{Message: message}
}

// NewRangeError reports a numeric option outside its accepted range.
func NewRangeError(name string, value any, accepted string) *Error {
	return &Error{
		Message:     fmt.Sprintf(`The value of "%s" is out of range. It must be %s. Received %v`, name, accepted, value),
		Type:        "RangeError",
		Code:        ERR_OUT_OF_RANGE,
		Description: accepted,
	}
}

// Err returns the error annotated with the caller's stack trace.
func (e *Error) Err() error {
	return errors.WithStack(e)
}

func (e *Error) Error() string {
	if e.Type == "" {
		return e.Message
	}
	if e.Code == "" {
		return e.Type + ": " + e.Message
	}
	return e.Type + " [" + e.Code + "]: " + e.Message
}

// Is reports whether target is an *Error with the same non-empty code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Code == "" {
		return false
	}
	return e.Code == t.Code
}
