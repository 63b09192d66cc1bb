package entry

import "errors"

// Entry-related errors
var (
	// Validation errors
	ErrInvalidEntryID    = errors.New("invalid entry ID")
	ErrInvalidUserID     = errors.New("invalid user ID")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
	ErrNoParagraphOrders = errors.New("at least one paragraph order is required")

	// Business logic errors
	ErrEntryNotFound     = errors.New("entry not found")
	ErrLabelNotFound     = errors.New("label not found")
	ErrParagraphNotFound = errors.New("one or more paragraphs do not exist")
)
