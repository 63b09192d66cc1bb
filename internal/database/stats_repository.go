package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lajournal/lajournal/internal/models"
)

// StatsRepo runs the aggregation and search queries behind the
// query/stats engine. It only ever reads.
type StatsRepo struct {
	db *sql.DB
}

// CountEntries returns the total number of entries a user owns.
func (r *StatsRepo) CountEntries(ctx context.Context, userID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM journal_entries WHERE user_id = ?`, userID).Scan(&count)
	return count, err
}

// CountEntriesOnOrAfter returns how many of a user's entries are dated
// on or after the given calendar date.
func (r *StatsRepo) CountEntriesOnOrAfter(ctx context.Context, userID int, date time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM journal_entries WHERE user_id = ? AND entry_date >= ?`,
		userID, formatDate(date)).Scan(&count)
	return count, err
}

// CountEntriesInYear returns how many of a user's entries fall in the
// given calendar year.
func (r *StatsRepo) CountEntriesInYear(ctx context.Context, userID, year int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM journal_entries
		 WHERE user_id = ? AND CAST(strftime('%Y', entry_date) AS INTEGER) = ?`,
		userID, year).Scan(&count)
	return count, err
}

// CountBookmarkedEntries returns how many of a user's entries are bookmarked.
func (r *StatsRepo) CountBookmarkedEntries(ctx context.Context, userID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM journal_entries WHERE user_id = ? AND is_bookmarked = 1`,
		userID).Scan(&count)
	return count, err
}

// LatestEntry returns the user's most recently created entry, or nil
// when the journal is empty.
func (r *StatsRepo) LatestEntry(ctx context.Context, userID int) (*models.JournalEntry, error) {
	entry, err := scanEntry(r.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM journal_entries
		 WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT 1`, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return entry, err
}

// LabelUsage returns the user's labels that tag at least one paragraph,
// with their paragraph counts, ordered by count descending. The order of
// labels with equal counts is unspecified.
func (r *StatsRepo) LabelUsage(ctx context.Context, userID int) ([]*models.LabelUsage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT l.id, l.name, COUNT(pl.paragraph_id) AS paragraphs_count
		FROM labels l
		INNER JOIN paragraph_labels pl ON pl.label_id = l.id
		WHERE l.user_id = ?
		GROUP BY l.id, l.name
		ORDER BY paragraphs_count DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usage []*models.LabelUsage
	for rows.Next() {
		u := &models.LabelUsage{}
		if err := rows.Scan(&u.ID, &u.Name, &u.ParagraphsCount); err != nil {
			return nil, err
		}
		usage = append(usage, u)
	}
	return usage, rows.Err()
}

// timeline groups the user's entries by a SQLite date expression over
// entry_date and returns one point per bucket, ordered by period ascending.
func (r *StatsRepo) timeline(ctx context.Context, userID int, bucketExpr string) ([]*models.TimelinePoint, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+bucketExpr+` AS period, COUNT(*) AS count
		FROM journal_entries
		WHERE user_id = ?
		GROUP BY period
		ORDER BY period
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []*models.TimelinePoint
	for rows.Next() {
		var period string
		point := &models.TimelinePoint{}
		if err := rows.Scan(&period, &point.Count); err != nil {
			return nil, err
		}
		if point.Period, err = parseDate(period); err != nil {
			return nil, err
		}
		points = append(points, point)
	}
	return points, rows.Err()
}

// TimelineByWeek buckets the user's entries by ISO week start (Monday).
// 'weekday 0' advances to the next Sunday, so stepping back six days
// lands on the Monday that starts the week.
func (r *StatsRepo) TimelineByWeek(ctx context.Context, userID int) ([]*models.TimelinePoint, error) {
	return r.timeline(ctx, userID, `date(entry_date, 'weekday 0', '-6 days')`)
}

// TimelineByMonth buckets the user's entries by first day of the month.
func (r *StatsRepo) TimelineByMonth(ctx context.Context, userID int) ([]*models.TimelinePoint, error) {
	return r.timeline(ctx, userID, `date(entry_date, 'start of month')`)
}

// TimelineByYear buckets the user's entries by first day of the year.
func (r *StatsRepo) TimelineByYear(ctx context.Context, userID int) ([]*models.TimelinePoint, error) {
	return r.timeline(ctx, userID, `date(entry_date, 'start of year')`)
}

// SearchParagraphs returns the user's paragraphs whose content contains
// the query, case-insensitively, ordered by entry and then position.
// instr over lowered text gives substring semantics without LIKE
// wildcard escaping.
func (r *StatsRepo) SearchParagraphs(ctx context.Context, userID int, query string) ([]*models.EntryParagraph, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.entry_id, p.position, p.content
		FROM entry_paragraphs p
		INNER JOIN journal_entries e ON e.id = p.entry_id
		WHERE e.user_id = ? AND instr(lower(p.content), lower(?)) > 0
		ORDER BY p.entry_id, p.position
	`, userID, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paragraphs []*models.EntryParagraph
	for rows.Next() {
		p := &models.EntryParagraph{}
		if err := rows.Scan(&p.ID, &p.EntryID, &p.Position, &p.Content); err != nil {
			return nil, err
		}
		paragraphs = append(paragraphs, p)
	}
	return paragraphs, rows.Err()
}

// SearchEntriesByTitle returns the user's entries whose title contains
// the query, case-insensitively.
func (r *StatsRepo) SearchEntriesByTitle(ctx context.Context, userID int, query string) ([]*models.JournalEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM journal_entries
		 WHERE user_id = ? AND instr(lower(coalesce(title, '')), lower(?)) > 0`,
		userID, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.JournalEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
