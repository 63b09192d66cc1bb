package label

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/lajournal/lajournal/internal/database"
	"github.com/lajournal/lajournal/internal/testutil"
)

func setup(t *testing.T) (*sql.DB, int, Service) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	userID := testutil.CreateTestUser(t, db, "tagger")
	return db, userID, NewService(database.NewRepository(db))
}

func TestCreateLabel(t *testing.T) {
	t.Parallel()

	_, userID, svc := setup(t)

	result, err := svc.CreateLabel(context.Background(), CreateLabelRequest{
		UserID:      userID,
		Name:        "Gratitude",
		Description: "Things I am thankful for",
	})

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.ID == 0 {
		t.Error("Expected label ID to be set")
	}
	if result.Name != "Gratitude" {
		t.Errorf("Expected name 'Gratitude', got '%s'", result.Name)
	}
	if result.Description != "Things I am thankful for" {
		t.Errorf("Expected description to be set, got '%s'", result.Description)
	}
}

func TestCreateLabel_EmptyName(t *testing.T) {
	t.Parallel()

	_, userID, svc := setup(t)

	_, err := svc.CreateLabel(context.Background(), CreateLabelRequest{
		UserID: userID,
		Name:   "",
	})
	if err != ErrEmptyName {
		t.Errorf("Expected ErrEmptyName, got %v", err)
	}
}

func TestCreateLabel_NameTooLong(t *testing.T) {
	t.Parallel()

	_, userID, svc := setup(t)

	_, err := svc.CreateLabel(context.Background(), CreateLabelRequest{
		UserID: userID,
		Name:   strings.Repeat("a", 51),
	})
	if err != ErrNameTooLong {
		t.Errorf("Expected ErrNameTooLong, got %v", err)
	}
}

func TestListLabels_NewestFirst(t *testing.T) {
	t.Parallel()

	db, userID, svc := setup(t)
	first := testutil.CreateTestLabel(t, db, userID, "first")
	second := testutil.CreateTestLabel(t, db, userID, "second")

	labels, err := svc.ListLabels(context.Background(), userID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(labels) != 2 {
		t.Fatalf("Expected 2 labels, got %d", len(labels))
	}
	if labels[0].ID != second || labels[1].ID != first {
		t.Errorf("Expected newest first, got %d then %d", labels[0].ID, labels[1].ID)
	}
}

func TestListLabels_ScopedToUser(t *testing.T) {
	t.Parallel()

	db, userID, svc := setup(t)
	otherID := testutil.CreateTestUser(t, db, "someone-else")
	testutil.CreateTestLabel(t, db, otherID, "not yours")

	labels, err := svc.ListLabels(context.Background(), userID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(labels) != 0 {
		t.Errorf("Expected no labels for user, got %d", len(labels))
	}
}

func TestUpdateLabel(t *testing.T) {
	t.Parallel()

	db, userID, svc := setup(t)
	labelID := testutil.CreateTestLabel(t, db, userID, "old name")

	updated, err := svc.UpdateLabel(context.Background(), UpdateLabelRequest{
		UserID:      userID,
		LabelID:     labelID,
		Name:        "new name",
		Description: "now described",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if updated.Name != "new name" || updated.Description != "now described" {
		t.Errorf("Expected updated fields, got %+v", updated)
	}
}

func TestUpdateLabel_NotOwned(t *testing.T) {
	t.Parallel()

	db, userID, svc := setup(t)
	otherID := testutil.CreateTestUser(t, db, "owner")
	labelID := testutil.CreateTestLabel(t, db, otherID, "private")

	_, err := svc.UpdateLabel(context.Background(), UpdateLabelRequest{
		UserID:  userID,
		LabelID: labelID,
		Name:    "hijack",
	})
	if err != ErrLabelNotFound {
		t.Errorf("Expected ErrLabelNotFound for another user's label, got %v", err)
	}
}

func TestDeleteLabel_KeepsParagraphs(t *testing.T) {
	t.Parallel()

	db, userID, svc := setup(t)
	entryID := testutil.CreateTestEntry(t, db, userID, "Tagged", time.Now())
	paragraphID := testutil.CreateTestParagraph(t, db, entryID, 1, "tagged text")
	labelID := testutil.CreateTestLabel(t, db, userID, "doomed")
	testutil.AttachLabel(t, db, paragraphID, labelID)

	if err := svc.DeleteLabel(context.Background(), userID, labelID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var associations int
	if err := db.QueryRow("SELECT COUNT(*) FROM paragraph_labels WHERE label_id = ?", labelID).Scan(&associations); err != nil {
		t.Fatalf("Failed to count associations: %v", err)
	}
	if associations != 0 {
		t.Errorf("Expected associations cascade-deleted, got %d", associations)
	}

	var paragraphs int
	if err := db.QueryRow("SELECT COUNT(*) FROM entry_paragraphs WHERE id = ?", paragraphID).Scan(&paragraphs); err != nil {
		t.Fatalf("Failed to count paragraphs: %v", err)
	}
	if paragraphs != 1 {
		t.Errorf("Expected paragraph to survive label deletion, got %d rows", paragraphs)
	}
}

func TestListParagraphs(t *testing.T) {
	t.Parallel()

	db, userID, svc := setup(t)

	older := testutil.CreateTestEntry(t, db, userID, "Older", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	newer := testutil.CreateTestEntry(t, db, userID, "Newer", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	p1 := testutil.CreateTestParagraph(t, db, older, 1, "old thought")
	p2 := testutil.CreateTestParagraph(t, db, newer, 1, "new thought")
	labelID := testutil.CreateTestLabel(t, db, userID, "threads")
	testutil.AttachLabel(t, db, p1, labelID)
	testutil.AttachLabel(t, db, p2, labelID)

	items, err := svc.ListParagraphs(context.Background(), userID, labelID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 tagged paragraphs, got %d", len(items))
	}
	if items[0].Entry.ID != newer {
		t.Errorf("Expected newest entry first, got entry %d", items[0].Entry.ID)
	}
	if items[0].Paragraph.Content != "new thought" {
		t.Errorf("Expected paragraph content, got '%s'", items[0].Paragraph.Content)
	}
}
