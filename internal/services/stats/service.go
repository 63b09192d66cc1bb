// Package stats implements the query/stats engine: full-text-ish search
// across entries, summary statistics and time-bucketed activity
// timelines. Everything here is read-only over persisted state.
package stats

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/lajournal/lajournal/internal/database"
	"github.com/lajournal/lajournal/internal/models"
)

// Service defines the read-side operations over a user's journal
type Service interface {
	SearchEntries(ctx context.Context, userID int, query string) ([]*models.SearchResult, error)
	GetStats(ctx context.Context, userID int) (*models.EntryStats, error)
	GetTimeline(ctx context.Context, userID int) (*models.Timeline, error)
}

// service implements Service interface
type service struct {
	repo database.DataStore
	now  func() time.Time
}

// NewService creates a new stats service
func NewService(repo database.DataStore) Service {
	return &service{repo: repo, now: time.Now}
}

// NewServiceWithClock creates a stats service with a fixed clock.
// Calendar-relative counts (this month, this year) depend on "today",
// so tests pin it.
func NewServiceWithClock(repo database.DataStore, now func() time.Time) Service {
	return &service{repo: repo, now: now}
}

// SearchEntries performs a case-insensitive substring search over the
// user's paragraph contents and entry titles. The two result sources
// are unioned by entry: a title-only match contributes an entry with an
// empty paragraph list. Entries come back sorted by date descending,
// each entry's matching paragraphs by order ascending.
func (s *service) SearchEntries(ctx context.Context, userID int, query string) ([]*models.SearchResult, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}
	if query == "" {
		return nil, ErrEmptyQuery
	}

	paragraphs, err := s.repo.SearchParagraphs(ctx, userID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search paragraphs: %w", err)
	}

	matchesByEntry := make(map[int][]*models.EntryParagraph)
	var entryIDs []int
	for _, p := range paragraphs {
		if _, seen := matchesByEntry[p.EntryID]; !seen {
			entryIDs = append(entryIDs, p.EntryID)
		}
		matchesByEntry[p.EntryID] = append(matchesByEntry[p.EntryID], p)
	}

	entries, err := s.repo.GetEntriesByIDs(ctx, userID, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load matched entries: %w", err)
	}

	byTitle, err := s.repo.SearchEntriesByTitle(ctx, userID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search titles: %w", err)
	}
	for _, e := range byTitle {
		if _, seen := matchesByEntry[e.ID]; !seen {
			matchesByEntry[e.ID] = nil
			entries = append(entries, e)
		}
	}

	results := make([]*models.SearchResult, 0, len(entries))
	for _, e := range entries {
		results = append(results, &models.SearchResult{
			Entry:      e,
			Paragraphs: matchesByEntry[e.ID],
		})
	}

	// Newest first; matching paragraphs are already ordered by position.
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i].Entry, results[j].Entry
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		return a.ID > b.ID
	})

	return results, nil
}

// GetStats computes the aggregate view of the user's journal: calendar
// counts, the latest entry, label usage and the bookmark count.
func (s *service) GetStats(ctx context.Context, userID int) (*models.EntryStats, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}

	today := s.now()
	firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())

	thisMonth, err := s.repo.CountEntriesOnOrAfter(ctx, userID, firstOfMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to count entries this month: %w", err)
	}
	thisYear, err := s.repo.CountEntriesInYear(ctx, userID, today.Year())
	if err != nil {
		return nil, fmt.Errorf("failed to count entries this year: %w", err)
	}
	total, err := s.repo.CountEntries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count entries: %w", err)
	}
	bookmarked, err := s.repo.CountBookmarkedEntries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookmarked entries: %w", err)
	}
	latest, err := s.repo.LatestEntry(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest entry: %w", err)
	}
	usage, err := s.repo.LabelUsage(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load label usage: %w", err)
	}

	stats := &models.EntryStats{
		EntriesThisMonth:      thisMonth,
		EntriesThisYear:       thisYear,
		TotalEntries:          total,
		LatestEntry:           latest,
		TotalLabelsUsed:       len(usage),
		LabelsParagraphsCount: usage,
		BookmarkedEntries:     bookmarked,
	}
	if len(usage) > 0 {
		stats.MostUsedLabel = usage[0]
	}
	return stats, nil
}

// GetTimeline buckets the user's full entry history by week, month and
// year start. Each list covers all entries and is ordered by period
// ascending.
func (s *service) GetTimeline(ctx context.Context, userID int) (*models.Timeline, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}

	week, err := s.repo.TimelineByWeek(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to build week timeline: %w", err)
	}
	month, err := s.repo.TimelineByMonth(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to build month timeline: %w", err)
	}
	year, err := s.repo.TimelineByYear(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to build year timeline: %w", err)
	}

	return &models.Timeline{Week: week, Month: month, Year: year}, nil
}
