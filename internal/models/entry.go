package models

import "time"

// JournalEntry is a dated journal record owned by a single user.
// Paragraphs are owned by the entry and cascade-deleted with it.
type JournalEntry struct {
	ID           int
	UserID       int
	Title        string     // empty means untitled
	Date         time.Time  // calendar date, no time component
	Rating       *float64   // optional, 1..5 inclusive
	IsBookmarked bool
	Content      string     // optional free-form structured content (JSON text)
	Paragraphs   []*EntryParagraph
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ParagraphSpec is an incoming paragraph as supplied by a caller:
// a position and its text, before any row exists for it.
type ParagraphSpec struct {
	Position int
	Content  string
}

// EntryParagraph is an ordered text unit within an entry.
// Position defines the display sequence, ascending. Labels are the
// user-owned labels tagging this paragraph.
type EntryParagraph struct {
	ID       int
	EntryID  int
	Position int
	Content  string
	Labels   []*Label
}
