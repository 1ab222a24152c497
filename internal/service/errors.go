package service

import (
	"errors"
	"fmt"
)

// InputError marks a failure the caller can correct: a bad date, a subtotal
// that doesn't add up, wrong credentials. Handlers return these as 4xx with
// the message intact. Anything else is an internal failure and must surface
// as a generic 500 — raw SQL or driver text never reaches a client.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string { return e.Msg }

func inputErr(format string, args ...interface{}) error {
	return &InputError{Msg: fmt.Sprintf(format, args...)}
}

// IsInputError reports whether err is caller-correctable.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}
