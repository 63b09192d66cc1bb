package database

import (
	"context"
	"database/sql"

	"github.com/lajournal/lajournal/internal/models"
)

// LabelRepo provides data access for labels and the paragraph-label
// association table.
type LabelRepo struct {
	db *sql.DB
}

const labelColumns = `id, user_id, name, coalesce(description, ''), created_at, updated_at`

func scanLabel(row interface{ Scan(...any) error }) (*models.Label, error) {
	label := &models.Label{}
	err := row.Scan(&label.ID, &label.UserID, &label.Name,
		&label.Description, &label.CreatedAt, &label.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return label, nil
}

// Create inserts a new label owned by the given user.
func (r *LabelRepo) Create(ctx context.Context, userID int, name, description string) (*models.Label, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO labels (user_id, name, description) VALUES (?, ?, ?)`,
		userID, name, stringToNullString(description),
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return scanLabel(r.db.QueryRowContext(ctx,
		`SELECT `+labelColumns+` FROM labels WHERE id = ?`, id))
}

// GetByID retrieves a label by ID, scoped to its owning user.
// Returns sql.ErrNoRows when missing or owned by a different user.
func (r *LabelRepo) GetByID(ctx context.Context, userID, labelID int) (*models.Label, error) {
	return scanLabel(r.db.QueryRowContext(ctx,
		`SELECT `+labelColumns+` FROM labels WHERE id = ? AND user_id = ?`,
		labelID, userID))
}

// ListByUser retrieves all of a user's labels, newest first.
func (r *LabelRepo) ListByUser(ctx context.Context, userID int) ([]*models.Label, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+labelColumns+` FROM labels WHERE user_id = ? ORDER BY id DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var labels []*models.Label
	for rows.Next() {
		label, err := scanLabel(rows)
		if err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}
	return labels, rows.Err()
}

// Update replaces a label's name and description.
func (r *LabelRepo) Update(ctx context.Context, labelID int, name, description string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE labels SET name = ?, description = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		name, stringToNullString(description), labelID,
	)
	return err
}

// Delete removes a label. Paragraph associations are removed by CASCADE;
// the paragraphs themselves are untouched.
func (r *LabelRepo) Delete(ctx context.Context, labelID int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM labels WHERE id = ?`, labelID)
	return err
}

// AddToParagraph associates a label with a paragraph. Adding an existing
// association is a no-op, which makes repeated assignment idempotent.
func (r *LabelRepo) AddToParagraph(ctx context.Context, paragraphID, labelID int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO paragraph_labels (paragraph_id, label_id) VALUES (?, ?)`,
		paragraphID, labelID,
	)
	return err
}

// RemoveFromParagraph removes the association between a label and a
// paragraph. Removing an absent association is a no-op, not an error.
func (r *LabelRepo) RemoveFromParagraph(ctx context.Context, paragraphID, labelID int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM paragraph_labels WHERE paragraph_id = ? AND label_id = ?`,
		paragraphID, labelID,
	)
	return err
}

// GetParagraphsForLabel retrieves every paragraph tagged with the label,
// each paired with its entry, ordered by entry date descending and then
// paragraph ID ascending.
func (r *LabelRepo) GetParagraphsForLabel(ctx context.Context, labelID int) ([]*models.LabelParagraph, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.entry_id, p.position, p.content,
		       e.id, e.user_id, e.title, e.entry_date, e.rating, e.is_bookmarked, e.content, e.created_at, e.updated_at
		FROM entry_paragraphs p
		INNER JOIN paragraph_labels pl ON pl.paragraph_id = p.id
		INNER JOIN journal_entries e ON e.id = p.entry_id
		WHERE pl.label_id = ?
		ORDER BY e.entry_date DESC, p.id
	`, labelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*models.LabelParagraph
	for rows.Next() {
		var (
			p       models.EntryParagraph
			e       models.JournalEntry
			title   sql.NullString
			date    string
			rating  sql.NullFloat64
			content sql.NullString
		)
		err := rows.Scan(
			&p.ID, &p.EntryID, &p.Position, &p.Content,
			&e.ID, &e.UserID, &title, &date, &rating,
			&e.IsBookmarked, &content, &e.CreatedAt, &e.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		e.Title = nullStringToString(title)
		e.Rating = nullFloat64ToPtr(rating)
		e.Content = nullStringToString(content)
		if e.Date, err = parseDate(date); err != nil {
			return nil, err
		}
		results = append(results, &models.LabelParagraph{Paragraph: &p, Entry: &e})
	}
	return results, rows.Err()
}
