package response

import (
	"errors"
	"fmt"
)

// Error is a domain error that carries the HTTP status it should be reported with.
type Error struct {
	Code int
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Is(target error) bool {
	var t *Error
	ok := errors.As(target, &t)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Err.Error() == t.Err.Error()
}

func NewError(code int, err string) error {
	return &Error{code, errors.New(err)}
}

// Wrap adds detail to a domain error. errors.Is and errors.As still see base.
func Wrap(base error, detail string) error {
	return fmt.Errorf("%w: %s", base, detail)
}
