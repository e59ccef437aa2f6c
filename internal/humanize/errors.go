package humanize

import (
	"context"
	"errors"
)

const (
	MsgEmptyText    = "Please enter some text to humanize."
	MsgTextTooShort = "Text must be at least 50 characters long for effective humanization."
	MsgTextRequired = "Text parameter is required and must be a string"
)

var (
	ErrIdenticalOutput     = errors.New("provider returned the input unchanged")
	ErrEmptyOutput         = errors.New("provider returned empty output")
	ErrAllStrategiesFailed = errors.New("all rewrite strategies failed")
)

// ValidationError is a request problem the caller must fix; it is never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

type fatalError struct{ err error }

func (e *fatalError) Error() string { return e.err.Error() }
func (e *fatalError) Unwrap() error { return e.err }

// Fatal marks err as stopping the strategy chain. Unmarked errors are recoverable.
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &fatalError{err: err}
}

// IsFatal reports whether err stops the chain, either explicitly or because the
// caller gave up.
func IsFatal(err error) bool {
	var f *fatalError
	if errors.As(err, &f) {
		return true
	}
	return errors.Is(err, context.Canceled)
}
