package humanizations

import "errors"

var (
	ErrUnauthenticated = errors.New("Please sign in to use the humanizer tool.")
	ErrNoCredits       = errors.New("You've used all your available credits. Please upgrade your plan.")
	ErrNotFound        = errors.New("humanization not found")
)

// RewriteError carries the rewriter's failure back to the caller unchanged.
type RewriteError struct {
	Err error
}

func (e *RewriteError) Error() string { return e.Err.Error() }
func (e *RewriteError) Unwrap() error { return e.Err }
