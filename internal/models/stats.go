package models

import "time"

// LabelUsage is a label together with the number of paragraphs it tags.
type LabelUsage struct {
	ID              int
	Name            string
	ParagraphsCount int
}

// EntryStats is the aggregate view of a user's journal.
// All counts are scoped to the user's own entries and labels.
type EntryStats struct {
	EntriesThisMonth      int
	EntriesThisYear       int
	TotalEntries          int
	LatestEntry           *JournalEntry // nil when the journal is empty
	TotalLabelsUsed       int
	MostUsedLabel         *LabelUsage // nil when no label tags a paragraph
	LabelsParagraphsCount []*LabelUsage
	BookmarkedEntries     int
}

// TimelinePoint is one bucket of the activity timeline: the truncated
// period start and the number of entries dated within it.
type TimelinePoint struct {
	Period time.Time
	Count  int
}

// Timeline buckets a user's full entry history by week, month and year.
// The three lists are independent and each is ordered by period ascending.
type Timeline struct {
	Week  []*TimelinePoint
	Month []*TimelinePoint
	Year  []*TimelinePoint
}

// SearchResult is one entry matched by a search, with the paragraphs
// whose content matched. Paragraphs is empty when only the title matched.
type SearchResult struct {
	Entry      *JournalEntry
	Paragraphs []*EntryParagraph
}
