package profiles

import "errors"

var (
	ErrNotFound = errors.New("profile not found")
	// ErrLimitReached is returned by Consume when no credits remain.
	ErrLimitReached = errors.New("limit reached")
	ErrUnknownPlan  = errors.New("unknown plan")
)
