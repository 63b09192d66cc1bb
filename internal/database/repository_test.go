package database

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lajournal/lajournal/internal/models"
)

// setupTestDB creates an in-memory database and runs migrations
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// Enable foreign key constraints
	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	if err := RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}

func createUser(t *testing.T, repo *Repository, username string) *models.User {
	t.Helper()
	user, err := repo.CreateUser(context.Background(), username, "", "", "", "hash")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}

func TestCreateEntry_Roundtrip(t *testing.T) {
	t.Parallel()

	repo := NewRepository(setupTestDB(t))
	user := createUser(t, repo, "writer")

	rating := 4.0
	e := &models.JournalEntry{
		UserID:       user.ID,
		Title:        "First entry",
		Date:         time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Rating:       &rating,
		IsBookmarked: true,
		Content:      `{"mood":"good"}`,
	}
	if err := repo.CreateEntry(context.Background(), e); err != nil {
		t.Fatalf("Failed to create entry: %v", err)
	}
	if e.ID == 0 {
		t.Error("Expected entry ID to be set")
	}
	if e.CreatedAt.IsZero() || e.UpdatedAt.IsZero() {
		t.Error("Expected timestamps to be populated")
	}

	got, err := repo.GetEntryByID(context.Background(), user.ID, e.ID)
	if err != nil {
		t.Fatalf("Failed to load entry: %v", err)
	}
	if got.Title != "First entry" {
		t.Errorf("Expected title 'First entry', got '%s'", got.Title)
	}
	if got.Date.Format("2006-01-02") != "2024-05-01" {
		t.Errorf("Expected date 2024-05-01, got %v", got.Date)
	}
	if got.Rating == nil || *got.Rating != 4.0 {
		t.Errorf("Expected rating 4.0, got %v", got.Rating)
	}
	if !got.IsBookmarked {
		t.Error("Expected bookmark flag to persist")
	}
	if got.Content != `{"mood":"good"}` {
		t.Errorf("Expected content to persist, got '%s'", got.Content)
	}
}

func TestGetEntryByID_WrongUser(t *testing.T) {
	t.Parallel()

	repo := NewRepository(setupTestDB(t))
	owner := createUser(t, repo, "owner")
	intruder := createUser(t, repo, "intruder")

	e := &models.JournalEntry{UserID: owner.ID, Date: time.Now()}
	if err := repo.CreateEntry(context.Background(), e); err != nil {
		t.Fatalf("Failed to create entry: %v", err)
	}

	if _, err := repo.GetEntryByID(context.Background(), intruder.ID, e.ID); err != sql.ErrNoRows {
		t.Errorf("Expected sql.ErrNoRows for wrong user, got %v", err)
	}
}

func TestCreateParagraphs_Ordering(t *testing.T) {
	t.Parallel()

	repo := NewRepository(setupTestDB(t))
	user := createUser(t, repo, "writer")
	e := &models.JournalEntry{UserID: user.ID, Date: time.Now()}
	if err := repo.CreateEntry(context.Background(), e); err != nil {
		t.Fatalf("Failed to create entry: %v", err)
	}

	specs := []models.ParagraphSpec{
		{Position: 3, Content: "third"},
		{Position: 1, Content: "first"},
		{Position: 2, Content: "second"},
	}
	if err := repo.CreateParagraphs(context.Background(), e.ID, specs); err != nil {
		t.Fatalf("Failed to create paragraphs: %v", err)
	}

	paragraphs, err := repo.GetParagraphs(context.Background(), e.ID)
	if err != nil {
		t.Fatalf("Failed to load paragraphs: %v", err)
	}
	if len(paragraphs) != 3 {
		t.Fatalf("Expected 3 paragraphs, got %d", len(paragraphs))
	}
	for i, want := range []string{"first", "second", "third"} {
		if paragraphs[i].Content != want {
			t.Errorf("Position %d: expected '%s', got '%s'", i+1, want, paragraphs[i].Content)
		}
	}
}

func TestGetParagraphsWithLabels(t *testing.T) {
	t.Parallel()

	repo := NewRepository(setupTestDB(t))
	user := createUser(t, repo, "writer")
	e := &models.JournalEntry{UserID: user.ID, Date: time.Now()}
	if err := repo.CreateEntry(context.Background(), e); err != nil {
		t.Fatalf("Failed to create entry: %v", err)
	}
	if err := repo.CreateParagraphs(context.Background(), e.ID, []models.ParagraphSpec{
		{Position: 1, Content: "tagged"},
		{Position: 2, Content: "plain"},
	}); err != nil {
		t.Fatalf("Failed to create paragraphs: %v", err)
	}

	label, err := repo.CreateLabel(context.Background(), user.ID, "mood", "")
	if err != nil {
		t.Fatalf("Failed to create label: %v", err)
	}
	paragraphs, err := repo.GetParagraphs(context.Background(), e.ID)
	if err != nil {
		t.Fatalf("Failed to load paragraphs: %v", err)
	}
	if err := repo.AddLabelToParagraph(context.Background(), paragraphs[0].ID, label.ID); err != nil {
		t.Fatalf("Failed to attach label: %v", err)
	}

	withLabels, err := repo.GetParagraphsWithLabels(context.Background(), e.ID)
	if err != nil {
		t.Fatalf("Failed to load paragraphs with labels: %v", err)
	}
	if len(withLabels) != 2 {
		t.Fatalf("Expected 2 paragraphs, got %d", len(withLabels))
	}
	if len(withLabels[0].Labels) != 1 || withLabels[0].Labels[0].Name != "mood" {
		t.Errorf("Expected 'mood' label on first paragraph, got %+v", withLabels[0].Labels)
	}
	if len(withLabels[1].Labels) != 0 {
		t.Errorf("Expected no labels on second paragraph, got %d", len(withLabels[1].Labels))
	}
}

func TestAddLabelToParagraph_Idempotent(t *testing.T) {
	t.Parallel()

	repo := NewRepository(setupTestDB(t))
	user := createUser(t, repo, "writer")
	e := &models.JournalEntry{UserID: user.ID, Date: time.Now()}
	if err := repo.CreateEntry(context.Background(), e); err != nil {
		t.Fatalf("Failed to create entry: %v", err)
	}
	if err := repo.CreateParagraphs(context.Background(), e.ID, []models.ParagraphSpec{{Position: 1, Content: "x"}}); err != nil {
		t.Fatalf("Failed to create paragraph: %v", err)
	}
	paragraphs, err := repo.GetParagraphs(context.Background(), e.ID)
	if err != nil {
		t.Fatalf("Failed to load paragraphs: %v", err)
	}
	label, err := repo.CreateLabel(context.Background(), user.ID, "twice", "")
	if err != nil {
		t.Fatalf("Failed to create label: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := repo.AddLabelToParagraph(context.Background(), paragraphs[0].ID, label.ID); err != nil {
			t.Fatalf("Attach %d failed: %v", i+1, err)
		}
	}

	withLabels, err := repo.GetParagraphsWithLabels(context.Background(), e.ID)
	if err != nil {
		t.Fatalf("Failed to load paragraphs with labels: %v", err)
	}
	if len(withLabels[0].Labels) != 1 {
		t.Errorf("Expected a single association, got %d", len(withLabels[0].Labels))
	}
}

func TestClearEntryParagraphLabels(t *testing.T) {
	t.Parallel()

	repo := NewRepository(setupTestDB(t))
	user := createUser(t, repo, "writer")
	e := &models.JournalEntry{UserID: user.ID, Date: time.Now()}
	if err := repo.CreateEntry(context.Background(), e); err != nil {
		t.Fatalf("Failed to create entry: %v", err)
	}
	if err := repo.CreateParagraphs(context.Background(), e.ID, []models.ParagraphSpec{
		{Position: 1, Content: "a"},
		{Position: 2, Content: "b"},
	}); err != nil {
		t.Fatalf("Failed to create paragraphs: %v", err)
	}
	paragraphs, err := repo.GetParagraphs(context.Background(), e.ID)
	if err != nil {
		t.Fatalf("Failed to load paragraphs: %v", err)
	}
	label, err := repo.CreateLabel(context.Background(), user.ID, "wipe", "")
	if err != nil {
		t.Fatalf("Failed to create label: %v", err)
	}
	for _, p := range paragraphs {
		if err := repo.AddLabelToParagraph(context.Background(), p.ID, label.ID); err != nil {
			t.Fatalf("Failed to attach label: %v", err)
		}
	}

	if err := repo.ClearEntryParagraphLabels(context.Background(), e.ID); err != nil {
		t.Fatalf("Failed to clear labels: %v", err)
	}

	withLabels, err := repo.GetParagraphsWithLabels(context.Background(), e.ID)
	if err != nil {
		t.Fatalf("Failed to load paragraphs with labels: %v", err)
	}
	for _, p := range withLabels {
		if len(p.Labels) != 0 {
			t.Errorf("Expected paragraph %d cleared, got %d labels", p.Position, len(p.Labels))
		}
	}
}

func TestRefreshTokenLifecycle(t *testing.T) {
	t.Parallel()

	repo := NewRepository(setupTestDB(t))
	user := createUser(t, repo, "sessions")

	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	if err := repo.SaveRefreshToken(context.Background(), "jti-1", user.ID, expires); err != nil {
		t.Fatalf("Failed to save token: %v", err)
	}

	rec, err := repo.GetRefreshToken(context.Background(), "jti-1")
	if err != nil {
		t.Fatalf("Failed to load token: %v", err)
	}
	if rec.UserID != user.ID || rec.Revoked {
		t.Errorf("Unexpected record %+v", rec)
	}

	if err := repo.RevokeRefreshToken(context.Background(), "jti-1"); err != nil {
		t.Fatalf("Failed to revoke token: %v", err)
	}
	rec, err = repo.GetRefreshToken(context.Background(), "jti-1")
	if err != nil {
		t.Fatalf("Failed to reload token: %v", err)
	}
	if !rec.Revoked {
		t.Error("Expected token revoked")
	}

	if _, err := repo.GetRefreshToken(context.Background(), "unknown"); err != sql.ErrNoRows {
		t.Errorf("Expected sql.ErrNoRows for unknown jti, got %v", err)
	}
}

func TestDeleteExpiredRefreshTokens(t *testing.T) {
	t.Parallel()

	repo := NewRepository(setupTestDB(t))
	user := createUser(t, repo, "cleanup")

	now := time.Now().UTC()
	if err := repo.SaveRefreshToken(context.Background(), "stale", user.ID, now.Add(-time.Hour)); err != nil {
		t.Fatalf("Failed to save token: %v", err)
	}
	if err := repo.SaveRefreshToken(context.Background(), "fresh", user.ID, now.Add(time.Hour)); err != nil {
		t.Fatalf("Failed to save token: %v", err)
	}

	if err := repo.DeleteExpiredRefreshTokens(context.Background(), now); err != nil {
		t.Fatalf("Failed to delete expired tokens: %v", err)
	}

	if _, err := repo.GetRefreshToken(context.Background(), "stale"); err != sql.ErrNoRows {
		t.Errorf("Expected stale token gone, got %v", err)
	}
	if _, err := repo.GetRefreshToken(context.Background(), "fresh"); err != nil {
		t.Errorf("Expected fresh token kept, got %v", err)
	}
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	t.Parallel()

	repo := NewRepository(setupTestDB(t))
	createUser(t, repo, "unique")

	if _, err := repo.CreateUser(context.Background(), "unique", "", "", "", "hash"); err == nil {
		t.Error("Expected unique constraint violation")
	}
}
