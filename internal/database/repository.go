package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/lajournal/lajournal/internal/models"
)

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	*UserRepo
	*EntryRepo
	*LabelRepo
	*TokenRepo
	*StatsRepo
}

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		UserRepo:  &UserRepo{db: db},
		EntryRepo: &EntryRepo{db: db},
		LabelRepo: &LabelRepo{db: db},
		TokenRepo: &TokenRepo{db: db},
		StatsRepo: &StatsRepo{db: db},
	}
}

// Wrapper methods for UserRepo
func (r *Repository) CreateUser(ctx context.Context, username, email, firstName, lastName, passwordHash string) (*models.User, error) {
	return r.UserRepo.Create(ctx, username, email, firstName, lastName, passwordHash)
}

func (r *Repository) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	return r.UserRepo.GetByID(ctx, id)
}

func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.UserRepo.GetByUsername(ctx, username)
}

func (r *Repository) UpdateUserPassword(ctx context.Context, userID int, passwordHash string) error {
	return r.UserRepo.UpdatePassword(ctx, userID, passwordHash)
}

// Wrapper methods for EntryRepo
func (r *Repository) CreateEntry(ctx context.Context, e *models.JournalEntry) error {
	return r.EntryRepo.Create(ctx, e)
}

func (r *Repository) GetEntryByID(ctx context.Context, userID, entryID int) (*models.JournalEntry, error) {
	return r.EntryRepo.GetByID(ctx, userID, entryID)
}

func (r *Repository) ListEntries(ctx context.Context, userID int, search string, bookmarked *bool) ([]*models.JournalEntry, error) {
	return r.EntryRepo.List(ctx, userID, search, bookmarked)
}

func (r *Repository) GetEntriesByIDs(ctx context.Context, userID int, ids []int) ([]*models.JournalEntry, error) {
	return r.EntryRepo.GetByIDs(ctx, userID, ids)
}

func (r *Repository) UpdateEntry(ctx context.Context, e *models.JournalEntry) error {
	return r.EntryRepo.Update(ctx, e)
}

func (r *Repository) SetEntryBookmark(ctx context.Context, entryID int, bookmarked bool) error {
	return r.EntryRepo.SetBookmark(ctx, entryID, bookmarked)
}

func (r *Repository) DeleteEntry(ctx context.Context, entryID int) error {
	return r.EntryRepo.Delete(ctx, entryID)
}

func (r *Repository) GetParagraphs(ctx context.Context, entryID int) ([]*models.EntryParagraph, error) {
	return r.EntryRepo.GetParagraphs(ctx, entryID)
}

func (r *Repository) GetParagraphsWithLabels(ctx context.Context, entryID int) ([]*models.EntryParagraph, error) {
	return r.EntryRepo.GetParagraphsWithLabels(ctx, entryID)
}

func (r *Repository) GetParagraphsByPositions(ctx context.Context, entryID int, positions []int) ([]*models.EntryParagraph, error) {
	return r.EntryRepo.GetParagraphsByPositions(ctx, entryID, positions)
}

func (r *Repository) CreateParagraphs(ctx context.Context, entryID int, specs []models.ParagraphSpec) error {
	return r.EntryRepo.CreateParagraphs(ctx, entryID, specs)
}

func (r *Repository) UpdateParagraphContent(ctx context.Context, paragraphID int, content string) error {
	return r.EntryRepo.UpdateParagraphContent(ctx, paragraphID, content)
}

func (r *Repository) DeleteParagraphsByPositions(ctx context.Context, entryID int, positions []int) error {
	return r.EntryRepo.DeleteParagraphsByPositions(ctx, entryID, positions)
}

func (r *Repository) ClearEntryParagraphLabels(ctx context.Context, entryID int) error {
	return r.EntryRepo.ClearEntryParagraphLabels(ctx, entryID)
}

// Wrapper methods for LabelRepo
func (r *Repository) CreateLabel(ctx context.Context, userID int, name, description string) (*models.Label, error) {
	return r.LabelRepo.Create(ctx, userID, name, description)
}

func (r *Repository) GetLabelByID(ctx context.Context, userID, labelID int) (*models.Label, error) {
	return r.LabelRepo.GetByID(ctx, userID, labelID)
}

func (r *Repository) ListLabelsByUser(ctx context.Context, userID int) ([]*models.Label, error) {
	return r.LabelRepo.ListByUser(ctx, userID)
}

func (r *Repository) UpdateLabel(ctx context.Context, labelID int, name, description string) error {
	return r.LabelRepo.Update(ctx, labelID, name, description)
}

func (r *Repository) DeleteLabel(ctx context.Context, labelID int) error {
	return r.LabelRepo.Delete(ctx, labelID)
}

func (r *Repository) AddLabelToParagraph(ctx context.Context, paragraphID, labelID int) error {
	return r.LabelRepo.AddToParagraph(ctx, paragraphID, labelID)
}

func (r *Repository) RemoveLabelFromParagraph(ctx context.Context, paragraphID, labelID int) error {
	return r.LabelRepo.RemoveFromParagraph(ctx, paragraphID, labelID)
}

func (r *Repository) GetParagraphsForLabel(ctx context.Context, labelID int) ([]*models.LabelParagraph, error) {
	return r.LabelRepo.GetParagraphsForLabel(ctx, labelID)
}

// Wrapper methods for TokenRepo
func (r *Repository) SaveRefreshToken(ctx context.Context, jti string, userID int, expiresAt time.Time) error {
	return r.TokenRepo.Save(ctx, jti, userID, expiresAt)
}

func (r *Repository) GetRefreshToken(ctx context.Context, jti string) (*RefreshTokenRecord, error) {
	return r.TokenRepo.Get(ctx, jti)
}

func (r *Repository) RevokeRefreshToken(ctx context.Context, jti string) error {
	return r.TokenRepo.Revoke(ctx, jti)
}

func (r *Repository) RevokeAllRefreshTokens(ctx context.Context, userID int) error {
	return r.TokenRepo.RevokeAllForUser(ctx, userID)
}

func (r *Repository) DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) error {
	return r.TokenRepo.DeleteExpired(ctx, now)
}
