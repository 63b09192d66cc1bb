// Package label implements CRUD on user-owned labels and the listing of
// paragraphs a label tags.
package label

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lajournal/lajournal/internal/database"
	"github.com/lajournal/lajournal/internal/models"
)

// Service defines all label-related business operations
type Service interface {
	// Read operations
	GetLabel(ctx context.Context, userID, labelID int) (*models.Label, error)
	ListLabels(ctx context.Context, userID int) ([]*models.Label, error)
	ListParagraphs(ctx context.Context, userID, labelID int) ([]*models.LabelParagraph, error)

	// Write operations
	CreateLabel(ctx context.Context, req CreateLabelRequest) (*models.Label, error)
	UpdateLabel(ctx context.Context, req UpdateLabelRequest) (*models.Label, error)
	DeleteLabel(ctx context.Context, userID, labelID int) error
}

// CreateLabelRequest encapsulates data for creating a label
type CreateLabelRequest struct {
	UserID      int
	Name        string
	Description string
}

// UpdateLabelRequest encapsulates data for updating a label.
// Name and Description replace the stored values.
type UpdateLabelRequest struct {
	UserID      int
	LabelID     int
	Name        string
	Description string
}

// service implements Service interface
type service struct {
	repo database.DataStore
}

// NewService creates a new label service
func NewService(repo database.DataStore) Service {
	return &service{repo: repo}
}

// GetLabel retrieves one of the user's labels
func (s *service) GetLabel(ctx context.Context, userID, labelID int) (*models.Label, error) {
	if labelID <= 0 {
		return nil, ErrInvalidLabelID
	}
	return s.getOwnedLabel(ctx, userID, labelID)
}

// ListLabels retrieves all of the user's labels, newest first
func (s *service) ListLabels(ctx context.Context, userID int) ([]*models.Label, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}
	return s.repo.ListLabelsByUser(ctx, userID)
}

// ListParagraphs retrieves every paragraph the label tags, paired with
// its entry, newest entries first.
func (s *service) ListParagraphs(ctx context.Context, userID, labelID int) ([]*models.LabelParagraph, error) {
	label, err := s.getOwnedLabel(ctx, userID, labelID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetParagraphsForLabel(ctx, label.ID)
}

// CreateLabel creates a new label with validation
func (s *service) CreateLabel(ctx context.Context, req CreateLabelRequest) (*models.Label, error) {
	if req.UserID <= 0 {
		return nil, ErrInvalidUserID
	}
	if err := validateName(req.Name); err != nil {
		return nil, err
	}

	label, err := s.repo.CreateLabel(ctx, req.UserID, req.Name, req.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to create label: %w", err)
	}
	return label, nil
}

// UpdateLabel replaces the label's name and description
func (s *service) UpdateLabel(ctx context.Context, req UpdateLabelRequest) (*models.Label, error) {
	if err := validateName(req.Name); err != nil {
		return nil, err
	}

	label, err := s.getOwnedLabel(ctx, req.UserID, req.LabelID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateLabel(ctx, label.ID, req.Name, req.Description); err != nil {
		return nil, fmt.Errorf("failed to update label: %w", err)
	}
	return s.repo.GetLabelByID(ctx, req.UserID, req.LabelID)
}

// DeleteLabel deletes the label. Paragraph associations disappear with
// it; paragraphs and entries are untouched.
func (s *service) DeleteLabel(ctx context.Context, userID, labelID int) error {
	label, err := s.getOwnedLabel(ctx, userID, labelID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteLabel(ctx, label.ID); err != nil {
		return fmt.Errorf("failed to delete label: %w", err)
	}
	return nil
}

func (s *service) getOwnedLabel(ctx context.Context, userID, labelID int) (*models.Label, error) {
	label, err := s.repo.GetLabelByID(ctx, userID, labelID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLabelNotFound
		}
		return nil, fmt.Errorf("failed to load label: %w", err)
	}
	return label, nil
}

func validateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > 50 {
		return ErrNameTooLong
	}
	return nil
}
