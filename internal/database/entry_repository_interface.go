package database

import (
	"context"

	"github.com/lajournal/lajournal/internal/models"
)

// EntryReader defines read operations for entries and their paragraphs.
type EntryReader interface {
	GetEntryByID(ctx context.Context, userID, entryID int) (*models.JournalEntry, error)
	ListEntries(ctx context.Context, userID int, search string, bookmarked *bool) ([]*models.JournalEntry, error)
	GetEntriesByIDs(ctx context.Context, userID int, ids []int) ([]*models.JournalEntry, error)
	GetParagraphs(ctx context.Context, entryID int) ([]*models.EntryParagraph, error)
	GetParagraphsWithLabels(ctx context.Context, entryID int) ([]*models.EntryParagraph, error)
	GetParagraphsByPositions(ctx context.Context, entryID int, positions []int) ([]*models.EntryParagraph, error)
}

// EntryWriter defines write operations for entries.
type EntryWriter interface {
	CreateEntry(ctx context.Context, e *models.JournalEntry) error
	UpdateEntry(ctx context.Context, e *models.JournalEntry) error
	SetEntryBookmark(ctx context.Context, entryID int, bookmarked bool) error
	DeleteEntry(ctx context.Context, entryID int) error
}

// ParagraphWriter defines write operations for an entry's paragraphs.
type ParagraphWriter interface {
	CreateParagraphs(ctx context.Context, entryID int, specs []models.ParagraphSpec) error
	UpdateParagraphContent(ctx context.Context, paragraphID int, content string) error
	DeleteParagraphsByPositions(ctx context.Context, entryID int, positions []int) error
	ClearEntryParagraphLabels(ctx context.Context, entryID int) error
}

// EntryRepository combines all entry-related operations.
type EntryRepository interface {
	EntryReader
	EntryWriter
	ParagraphWriter
}
