// Package errors defines the sentinel errors shared by the autocomplete
// packages and a small wrapper that attaches context to them.
package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidIndex  = errors.New("invalid index")
	ErrInvalidConfig = errors.New("invalid config")
)

// AppError attaches a human-readable message to one of the sentinels above.
type AppError struct {
	Err     error
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(sentinel error, message string) *AppError {
	return &AppError{
		Err:     sentinel,
		Message: message,
	}
}

func Newf(sentinel error, format string, args ...any) *AppError {
	return &AppError{
		Err:     sentinel,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsInvalidIndex reports whether err signals a corrupted or inconsistent
// index.
func IsInvalidIndex(err error) bool {
	return errors.Is(err, ErrInvalidIndex)
}
