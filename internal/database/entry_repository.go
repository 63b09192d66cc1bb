package database

import (
	"context"
	"database/sql"
	"strings"

	"github.com/lajournal/lajournal/internal/models"
)

// EntryRepo provides data access for journal entries and their paragraphs.
type EntryRepo struct {
	db *sql.DB
}

const entryColumns = `id, user_id, title, entry_date, rating, is_bookmarked, content, created_at, updated_at`

// scanEntry scans one journal entry row from any row-shaped source.
func scanEntry(row interface{ Scan(...any) error }) (*models.JournalEntry, error) {
	var (
		e       models.JournalEntry
		title   sql.NullString
		date    string
		rating  sql.NullFloat64
		content sql.NullString
	)
	err := row.Scan(
		&e.ID, &e.UserID, &title, &date, &rating,
		&e.IsBookmarked, &content, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.Title = nullStringToString(title)
	e.Rating = nullFloat64ToPtr(rating)
	e.Content = nullStringToString(content)
	e.Date, err = parseDate(date)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a new entry and fills in its generated ID and timestamps.
func (r *EntryRepo) Create(ctx context.Context, e *models.JournalEntry) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO journal_entries (user_id, title, entry_date, rating, is_bookmarked, content)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.UserID, stringToNullString(e.Title), formatDate(e.Date),
		float64PtrToNull(e.Rating), e.IsBookmarked, stringToNullString(e.Content),
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	// Retrieve the created row to get timestamps
	created, err := scanEntry(r.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM journal_entries WHERE id = ?`, id))
	if err != nil {
		return err
	}
	*e = *created
	return nil
}

// GetByID retrieves an entry by ID, scoped to its owning user.
// Returns sql.ErrNoRows when the entry does not exist or belongs to
// a different user.
func (r *EntryRepo) GetByID(ctx context.Context, userID, entryID int) (*models.JournalEntry, error) {
	return scanEntry(r.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM journal_entries WHERE id = ? AND user_id = ?`,
		entryID, userID))
}

// List retrieves a user's entries ordered by date descending, newest
// first within the same day. An empty search matches everything; a
// non-nil bookmarked filters on the bookmark flag.
func (r *EntryRepo) List(ctx context.Context, userID int, search string, bookmarked *bool) ([]*models.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE user_id = ?`
	args := []any{userID}

	if search != "" {
		query += ` AND instr(lower(coalesce(title, '')), lower(?)) > 0`
		args = append(args, search)
	}
	if bookmarked != nil {
		query += ` AND is_bookmarked = ?`
		args = append(args, *bookmarked)
	}
	query += ` ORDER BY entry_date DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
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

// GetByIDs retrieves a set of the user's entries by ID, unordered.
func (r *EntryRepo) GetByIDs(ctx context.Context, userID int, ids []int) ([]*models.JournalEntry, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := []any{userID}
	for _, id := range ids {
		args = append(args, id)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM journal_entries
		 WHERE user_id = ? AND id IN (`+placeholders+`)`, args...)
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

// Update persists an entry's scalar attributes.
func (r *EntryRepo) Update(ctx context.Context, e *models.JournalEntry) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE journal_entries
		 SET title = ?, entry_date = ?, rating = ?, is_bookmarked = ?, content = ?,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		stringToNullString(e.Title), formatDate(e.Date), float64PtrToNull(e.Rating),
		e.IsBookmarked, stringToNullString(e.Content), e.ID,
	)
	return err
}

// SetBookmark sets the bookmark flag on an entry.
func (r *EntryRepo) SetBookmark(ctx context.Context, entryID int, bookmarked bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE journal_entries
		 SET is_bookmarked = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		bookmarked, entryID,
	)
	return err
}

// Delete removes an entry. Paragraphs and their label associations are
// removed by the CASCADE constraints.
func (r *EntryRepo) Delete(ctx context.Context, entryID int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM journal_entries WHERE id = ?`, entryID)
	return err
}

// GetParagraphs retrieves an entry's paragraphs ordered by position,
// without their labels.
func (r *EntryRepo) GetParagraphs(ctx context.Context, entryID int) ([]*models.EntryParagraph, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, entry_id, position, content FROM entry_paragraphs
		 WHERE entry_id = ? ORDER BY position`,
		entryID,
	)
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

// GetParagraphsWithLabels retrieves an entry's paragraphs ordered by
// position, each with its labels attached.
func (r *EntryRepo) GetParagraphsWithLabels(ctx context.Context, entryID int) ([]*models.EntryParagraph, error) {
	paragraphs, err := r.GetParagraphs(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if len(paragraphs) == 0 {
		return paragraphs, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT pl.paragraph_id, l.id, l.user_id, l.name, coalesce(l.description, ''), l.created_at, l.updated_at
		FROM paragraph_labels pl
		INNER JOIN labels l ON l.id = pl.label_id
		INNER JOIN entry_paragraphs p ON p.id = pl.paragraph_id
		WHERE p.entry_id = ?
		ORDER BY l.id
	`, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byParagraph := make(map[int][]*models.Label)
	for rows.Next() {
		var paragraphID int
		label := &models.Label{}
		if err := rows.Scan(&paragraphID, &label.ID, &label.UserID, &label.Name,
			&label.Description, &label.CreatedAt, &label.UpdatedAt); err != nil {
			return nil, err
		}
		byParagraph[paragraphID] = append(byParagraph[paragraphID], label)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, p := range paragraphs {
		p.Labels = byParagraph[p.ID]
	}
	return paragraphs, nil
}

// GetParagraphsByPositions retrieves the entry's paragraphs at the given
// positions. Positions with no paragraph are simply absent from the result.
func (r *EntryRepo) GetParagraphsByPositions(ctx context.Context, entryID int, positions []int) ([]*models.EntryParagraph, error) {
	if len(positions) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(positions)), ",")
	args := []any{entryID}
	for _, pos := range positions {
		args = append(args, pos)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, entry_id, position, content FROM entry_paragraphs
		 WHERE entry_id = ? AND position IN (`+placeholders+`)
		 ORDER BY position`, args...)
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

// CreateParagraphs batch-inserts paragraphs for an entry in one transaction.
func (r *EntryRepo) CreateParagraphs(ctx context.Context, entryID int, specs []models.ParagraphSpec) error {
	if len(specs) == 0 {
		return nil
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, spec := range specs {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO entry_paragraphs (entry_id, position, content) VALUES (?, ?, ?)`,
				entryID, spec.Position, spec.Content,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateParagraphContent replaces a paragraph's text in place.
func (r *EntryRepo) UpdateParagraphContent(ctx context.Context, paragraphID int, content string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE entry_paragraphs SET content = ? WHERE id = ?`,
		content, paragraphID,
	)
	return err
}

// DeleteParagraphsByPositions removes the entry's paragraphs at the given
// positions in one batch. Label associations go with them via CASCADE.
func (r *EntryRepo) DeleteParagraphsByPositions(ctx context.Context, entryID int, positions []int) error {
	if len(positions) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(positions)), ",")
	args := []any{entryID}
	for _, pos := range positions {
		args = append(args, pos)
	}

	_, err := r.db.ExecContext(ctx,
		`DELETE FROM entry_paragraphs WHERE entry_id = ? AND position IN (`+placeholders+`)`,
		args...)
	return err
}

// ClearEntryParagraphLabels removes every label association from all of
// an entry's paragraphs. The labels themselves are untouched.
func (r *EntryRepo) ClearEntryParagraphLabels(ctx context.Context, entryID int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM paragraph_labels
		 WHERE paragraph_id IN (SELECT id FROM entry_paragraphs WHERE entry_id = ?)`,
		entryID,
	)
	return err
}
