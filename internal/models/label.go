package models

import "time"

// Label is a user-defined tag applicable to paragraphs across entries.
// The association with paragraphs is many-to-many with set semantics.
type Label struct {
	ID          int
	UserID      int
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LabelParagraph pairs a paragraph with the entry it belongs to, for
// listing every paragraph a label is attached to.
type LabelParagraph struct {
	Paragraph *EntryParagraph
	Entry     *JournalEntry
}
