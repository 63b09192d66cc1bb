package database

import (
	"context"

	"github.com/lajournal/lajournal/internal/models"
)

// LabelReader defines read operations for labels.
type LabelReader interface {
	GetLabelByID(ctx context.Context, userID, labelID int) (*models.Label, error)
	ListLabelsByUser(ctx context.Context, userID int) ([]*models.Label, error)
	GetParagraphsForLabel(ctx context.Context, labelID int) ([]*models.LabelParagraph, error)
}

// LabelWriter defines write operations for labels.
type LabelWriter interface {
	CreateLabel(ctx context.Context, userID int, name, description string) (*models.Label, error)
	UpdateLabel(ctx context.Context, labelID int, name, description string) error
	DeleteLabel(ctx context.Context, labelID int) error
}

// ParagraphLabelManager defines operations for the paragraph-label association.
type ParagraphLabelManager interface {
	AddLabelToParagraph(ctx context.Context, paragraphID, labelID int) error
	RemoveLabelFromParagraph(ctx context.Context, paragraphID, labelID int) error
}

// LabelRepository combines all label-related operations.
type LabelRepository interface {
	LabelReader
	LabelWriter
	ParagraphLabelManager
}
