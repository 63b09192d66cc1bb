// Package entry implements the entry manager: creation, partial update
// with paragraph reconciliation, label assignment and deletion of
// journal entries.
package entry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lajournal/lajournal/internal/database"
	"github.com/lajournal/lajournal/internal/models"
)

// Service defines all entry-related business operations
type Service interface {
	// Read operations
	GetEntry(ctx context.Context, userID, entryID int) (*models.JournalEntry, error)
	ListEntries(ctx context.Context, userID int, search string, bookmarked *bool) ([]*models.JournalEntry, error)

	// Write operations
	CreateEntry(ctx context.Context, req CreateEntryRequest) (*models.JournalEntry, error)
	UpdateEntry(ctx context.Context, req UpdateEntryRequest) (*models.JournalEntry, error)
	DeleteEntry(ctx context.Context, userID, entryID int) error
	ToggleBookmark(ctx context.Context, userID, entryID int) (*models.JournalEntry, error)

	// Label management
	AssignLabel(ctx context.Context, req AssignLabelRequest) (*models.JournalEntry, error)
	RemoveLabel(ctx context.Context, req RemoveLabelRequest) (*models.JournalEntry, error)
}

// ParagraphInput is one paragraph spec supplied by the caller. Order
// values are expected to be unique within a request; duplicates yield
// undefined paragraph ordering but never an error.
type ParagraphInput struct {
	Order   int
	Content string
}

// CreateEntryRequest encapsulates all data needed to create an entry
type CreateEntryRequest struct {
	UserID       int
	Title        string
	Date         *time.Time // nil means today
	Rating       *float64
	IsBookmarked bool
	Content      string
	Paragraphs   []ParagraphInput
}

// UpdateEntryRequest encapsulates all data needed to update an entry.
// Fields with pointers are optional - nil means don't update. A nil
// Paragraphs slice leaves the paragraph set untouched; a non-nil slice
// (even empty) triggers reconciliation.
type UpdateEntryRequest struct {
	UserID       int
	EntryID      int
	Title        *string
	Date         *time.Time
	Rating       *float64
	IsBookmarked *bool
	Content      *string
	Paragraphs   []ParagraphInput
}

// AssignLabelRequest names the paragraphs of one entry, by order, that
// should all receive the label.
type AssignLabelRequest struct {
	UserID          int
	EntryID         int
	ParagraphOrders []int
	LabelID         int
}

// RemoveLabelRequest removes a label from a single paragraph.
type RemoveLabelRequest struct {
	UserID         int
	EntryID        int
	ParagraphOrder int
	LabelID        int
}

// service implements Service interface
type service struct {
	repo database.DataStore
}

// NewService creates a new entry service
func NewService(repo database.DataStore) Service {
	return &service{repo: repo}
}

// GetEntry retrieves one of the user's entries with its paragraphs and
// their labels attached.
func (s *service) GetEntry(ctx context.Context, userID, entryID int) (*models.JournalEntry, error) {
	if entryID <= 0 {
		return nil, ErrInvalidEntryID
	}
	return s.loadEntry(ctx, userID, entryID)
}

// ListEntries retrieves the user's entries ordered by date descending.
// Paragraphs are not attached to keep listings cheap.
func (s *service) ListEntries(ctx context.Context, userID int, search string, bookmarked *bool) ([]*models.JournalEntry, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}
	return s.repo.ListEntries(ctx, userID, search, bookmarked)
}

// CreateEntry creates an entry and bulk-creates its paragraphs.
func (s *service) CreateEntry(ctx context.Context, req CreateEntryRequest) (*models.JournalEntry, error) {
	if req.UserID <= 0 {
		return nil, ErrInvalidUserID
	}
	if err := validateRating(req.Rating); err != nil {
		return nil, err
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	e := &models.JournalEntry{
		UserID:       req.UserID,
		Title:        req.Title,
		Date:         date,
		Rating:       req.Rating,
		IsBookmarked: req.IsBookmarked,
		Content:      req.Content,
	}
	if err := s.repo.CreateEntry(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}

	if err := s.repo.CreateParagraphs(ctx, e.ID, toSpecs(req.Paragraphs)); err != nil {
		return nil, fmt.Errorf("failed to create paragraphs: %w", err)
	}

	return s.loadEntry(ctx, req.UserID, e.ID)
}

// UpdateEntry applies a partial update to the entry's scalar attributes
// and, when a paragraph list is supplied, reconciles the stored
// paragraphs against it by order value.
func (s *service) UpdateEntry(ctx context.Context, req UpdateEntryRequest) (*models.JournalEntry, error) {
	if err := validateRating(req.Rating); err != nil {
		return nil, err
	}

	e, err := s.getOwnedEntry(ctx, req.UserID, req.EntryID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		e.Title = *req.Title
	}
	if req.Date != nil {
		e.Date = *req.Date
	}
	if req.Rating != nil {
		e.Rating = req.Rating
	}
	if req.IsBookmarked != nil {
		e.IsBookmarked = *req.IsBookmarked
	}
	if req.Content != nil {
		e.Content = *req.Content
	}
	if err := s.repo.UpdateEntry(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}

	if req.Paragraphs != nil {
		if err := s.reconcileParagraphs(ctx, e.ID, req.Paragraphs); err != nil {
			return nil, err
		}
	}

	return s.loadEntry(ctx, req.UserID, req.EntryID)
}

// reconcileParagraphs matches incoming paragraph specs to existing
// paragraphs by order: matching orders are updated in place, new orders
// are batch-inserted, leftover orders are batch-deleted. When the
// incoming count differs from the existing count the correspondence
// between old paragraphs and labels is ambiguous, so every surviving
// paragraph's label set is cleared; on equal counts labels are kept.
func (s *service) reconcileParagraphs(ctx context.Context, entryID int, incoming []ParagraphInput) error {
	existing, err := s.repo.GetParagraphs(ctx, entryID)
	if err != nil {
		return fmt.Errorf("failed to load paragraphs: %w", err)
	}

	existingByOrder := make(map[int]*models.EntryParagraph, len(existing))
	for _, p := range existing {
		existingByOrder[p.Position] = p
	}

	clearLabels := len(incoming) != len(existing)
	if clearLabels {
		if err := s.repo.ClearEntryParagraphLabels(ctx, entryID); err != nil {
			return fmt.Errorf("failed to clear paragraph labels: %w", err)
		}
	}

	incomingOrders := make(map[int]bool, len(incoming))
	var toCreate []models.ParagraphSpec
	for _, in := range incoming {
		incomingOrders[in.Order] = true
		if p, ok := existingByOrder[in.Order]; ok {
			if err := s.repo.UpdateParagraphContent(ctx, p.ID, in.Content); err != nil {
				return fmt.Errorf("failed to update paragraph %d: %w", p.ID, err)
			}
		} else {
			toCreate = append(toCreate, models.ParagraphSpec{Position: in.Order, Content: in.Content})
		}
	}

	if err := s.repo.CreateParagraphs(ctx, entryID, toCreate); err != nil {
		return fmt.Errorf("failed to create paragraphs: %w", err)
	}

	var stale []int
	for _, p := range existing {
		if !incomingOrders[p.Position] {
			stale = append(stale, p.Position)
		}
	}
	if err := s.repo.DeleteParagraphsByPositions(ctx, entryID, stale); err != nil {
		return fmt.Errorf("failed to delete paragraphs: %w", err)
	}

	return nil
}

// DeleteEntry deletes the entry; its paragraphs and their label
// associations go with it, the labels themselves stay.
func (s *service) DeleteEntry(ctx context.Context, userID, entryID int) error {
	if _, err := s.getOwnedEntry(ctx, userID, entryID); err != nil {
		return err
	}
	if err := s.repo.DeleteEntry(ctx, entryID); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil
}

// ToggleBookmark flips the entry's bookmark flag and persists it.
func (s *service) ToggleBookmark(ctx context.Context, userID, entryID int) (*models.JournalEntry, error) {
	e, err := s.getOwnedEntry(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetEntryBookmark(ctx, entryID, !e.IsBookmarked); err != nil {
		return nil, fmt.Errorf("failed to toggle bookmark: %w", err)
	}
	return s.loadEntry(ctx, userID, entryID)
}

// AssignLabel adds the label to every named paragraph. The whole request
// fails with ErrParagraphNotFound when any order has no paragraph on the
// entry. Re-assigning an already present label is a no-op.
func (s *service) AssignLabel(ctx context.Context, req AssignLabelRequest) (*models.JournalEntry, error) {
	if len(req.ParagraphOrders) == 0 {
		return nil, ErrNoParagraphOrders
	}

	if _, err := s.getOwnedEntry(ctx, req.UserID, req.EntryID); err != nil {
		return nil, err
	}

	paragraphs, err := s.repo.GetParagraphsByPositions(ctx, req.EntryID, req.ParagraphOrders)
	if err != nil {
		return nil, fmt.Errorf("failed to load paragraphs: %w", err)
	}
	if len(paragraphs) != len(req.ParagraphOrders) {
		return nil, ErrParagraphNotFound
	}

	label, err := s.repo.GetLabelByID(ctx, req.UserID, req.LabelID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLabelNotFound
		}
		return nil, fmt.Errorf("failed to load label: %w", err)
	}

	for _, p := range paragraphs {
		if err := s.repo.AddLabelToParagraph(ctx, p.ID, label.ID); err != nil {
			return nil, fmt.Errorf("failed to assign label to paragraph %d: %w", p.ID, err)
		}
	}

	return s.loadEntry(ctx, req.UserID, req.EntryID)
}

// RemoveLabel removes the label from a single paragraph. Removing an
// association that does not exist is a no-op.
func (s *service) RemoveLabel(ctx context.Context, req RemoveLabelRequest) (*models.JournalEntry, error) {
	if _, err := s.getOwnedEntry(ctx, req.UserID, req.EntryID); err != nil {
		return nil, err
	}

	paragraphs, err := s.repo.GetParagraphsByPositions(ctx, req.EntryID, []int{req.ParagraphOrder})
	if err != nil {
		return nil, fmt.Errorf("failed to load paragraph: %w", err)
	}
	if len(paragraphs) == 0 {
		return nil, ErrParagraphNotFound
	}

	label, err := s.repo.GetLabelByID(ctx, req.UserID, req.LabelID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLabelNotFound
		}
		return nil, fmt.Errorf("failed to load label: %w", err)
	}

	if err := s.repo.RemoveLabelFromParagraph(ctx, paragraphs[0].ID, label.ID); err != nil {
		return nil, fmt.Errorf("failed to remove label: %w", err)
	}

	return s.loadEntry(ctx, req.UserID, req.EntryID)
}

// getOwnedEntry fetches the entry scoped to the user, mapping a miss to
// ErrEntryNotFound.
func (s *service) getOwnedEntry(ctx context.Context, userID, entryID int) (*models.JournalEntry, error) {
	e, err := s.repo.GetEntryByID(ctx, userID, entryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to load entry: %w", err)
	}
	return e, nil
}

// loadEntry returns the entry with paragraphs and labels attached.
func (s *service) loadEntry(ctx context.Context, userID, entryID int) (*models.JournalEntry, error) {
	e, err := s.getOwnedEntry(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}
	if e.Paragraphs, err = s.repo.GetParagraphsWithLabels(ctx, entryID); err != nil {
		return nil, fmt.Errorf("failed to load paragraphs: %w", err)
	}
	return e, nil
}

func validateRating(rating *float64) error {
	if rating != nil && (*rating < 1 || *rating > 5) {
		return ErrInvalidRating
	}
	return nil
}

func toSpecs(inputs []ParagraphInput) []models.ParagraphSpec {
	specs := make([]models.ParagraphSpec, 0, len(inputs))
	for _, in := range inputs {
		specs = append(specs, models.ParagraphSpec{Position: in.Order, Content: in.Content})
	}
	return specs
}
