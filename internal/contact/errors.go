package contact

import "errors"

var (
	ErrMissingFields = errors.New("Name, email, and message are required fields")
	ErrInvalidEmail  = errors.New("Please enter a valid email address")
)
