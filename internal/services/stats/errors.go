package stats

import "errors"

// Stats-related errors
var (
	ErrInvalidUserID = errors.New("invalid user ID")
	ErrEmptyQuery    = errors.New("search query cannot be empty")
)
