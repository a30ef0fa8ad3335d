package response

import (
	"errors"
)

// Error pairs a message with the HTTP status it should surface as. Domain
// packages declare sentinel values with NewError and handlers funnel them
// through pkg/handlerUtil.
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
