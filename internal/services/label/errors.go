package label

import "errors"

// Label-related errors
var (
	// Validation errors
	ErrEmptyName      = errors.New("name cannot be empty")
	ErrNameTooLong    = errors.New("name cannot exceed 50 characters")
	ErrInvalidLabelID = errors.New("invalid label ID")
	ErrInvalidUserID  = errors.New("invalid user ID")

	// Business logic errors
	ErrLabelNotFound = errors.New("label not found")
)
