package database

import (
	"context"
	"time"

	"github.com/lajournal/lajournal/internal/models"
)

// StatsRepository defines the read-only aggregation and search queries
// used by the query/stats engine.
type StatsRepository interface {
	CountEntries(ctx context.Context, userID int) (int, error)
	CountEntriesOnOrAfter(ctx context.Context, userID int, date time.Time) (int, error)
	CountEntriesInYear(ctx context.Context, userID, year int) (int, error)
	CountBookmarkedEntries(ctx context.Context, userID int) (int, error)
	LatestEntry(ctx context.Context, userID int) (*models.JournalEntry, error)
	LabelUsage(ctx context.Context, userID int) ([]*models.LabelUsage, error)
	TimelineByWeek(ctx context.Context, userID int) ([]*models.TimelinePoint, error)
	TimelineByMonth(ctx context.Context, userID int) ([]*models.TimelinePoint, error)
	TimelineByYear(ctx context.Context, userID int) ([]*models.TimelinePoint, error)
	SearchParagraphs(ctx context.Context, userID int, query string) ([]*models.EntryParagraph, error)
	SearchEntriesByTitle(ctx context.Context, userID int, query string) ([]*models.JournalEntry, error)
}
