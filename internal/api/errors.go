package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/lajournal/lajournal/internal/services/auth"
	"github.com/lajournal/lajournal/internal/services/entry"
	"github.com/lajournal/lajournal/internal/services/label"
	"github.com/lajournal/lajournal/internal/services/stats"
)

// statusForError maps service sentinel errors onto HTTP status codes.
// Anything unrecognized is a 500 and its message is not exposed.
func statusForError(err error) int {
	switch {
	case errors.Is(err, entry.ErrEntryNotFound),
		errors.Is(err, entry.ErrParagraphNotFound),
		errors.Is(err, entry.ErrLabelNotFound),
		errors.Is(err, label.ErrLabelNotFound),
		errors.Is(err, auth.ErrUserNotFound):
		return fiber.StatusNotFound

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrInvalidCredentials):
		return fiber.StatusUnauthorized

	case errors.Is(err, auth.ErrUsernameTaken):
		return fiber.StatusConflict

	case errors.Is(err, entry.ErrInvalidEntryID),
		errors.Is(err, entry.ErrInvalidUserID),
		errors.Is(err, entry.ErrInvalidRating),
		errors.Is(err, entry.ErrNoParagraphOrders),
		errors.Is(err, label.ErrInvalidLabelID),
		errors.Is(err, label.ErrInvalidUserID),
		errors.Is(err, label.ErrEmptyName),
		errors.Is(err, label.ErrNameTooLong),
		errors.Is(err, stats.ErrInvalidUserID),
		errors.Is(err, stats.ErrEmptyQuery),
		errors.Is(err, auth.ErrEmptyUsername),
		errors.Is(err, auth.ErrPasswordTooShort),
		errors.Is(err, auth.ErrPasswordNumeric),
		errors.Is(err, auth.ErrPasswordIncorrect):
		return fiber.StatusBadRequest
	}

	return fiber.StatusInternalServerError
}
