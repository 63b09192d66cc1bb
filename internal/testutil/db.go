// Package testutil provides shared helpers for package tests: an
// in-memory database with the full schema and fixture builders.
package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lajournal/lajournal/internal/database"
)

// SetupTestDB creates an in-memory database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// Enable foreign key constraints (required for CASCADE deletions)
	_, err = db.ExecContext(context.Background(), "PRAGMA foreign_keys = ON")
	if err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	if err := database.RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return db
}

// CreateTestUser creates a test user and returns its ID
func CreateTestUser(t *testing.T, db *sql.DB, username string) int {
	t.Helper()
	result, err := db.Exec(
		"INSERT INTO users (username, password_hash) VALUES (?, ?)",
		username, "x",
	)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to get user ID: %v", err)
	}
	return int(id)
}

// CreateTestEntry creates a test entry for the user on the given date
// and returns its ID
func CreateTestEntry(t *testing.T, db *sql.DB, userID int, title string, date time.Time) int {
	t.Helper()
	result, err := db.Exec(
		"INSERT INTO journal_entries (user_id, title, entry_date) VALUES (?, ?, ?)",
		userID, title, date.Format("2006-01-02"),
	)
	if err != nil {
		t.Fatalf("Failed to create test entry: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to get entry ID: %v", err)
	}
	return int(id)
}

// CreateTestParagraph creates a paragraph on an entry and returns its ID
func CreateTestParagraph(t *testing.T, db *sql.DB, entryID, position int, content string) int {
	t.Helper()
	result, err := db.Exec(
		"INSERT INTO entry_paragraphs (entry_id, position, content) VALUES (?, ?, ?)",
		entryID, position, content,
	)
	if err != nil {
		t.Fatalf("Failed to create test paragraph: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to get paragraph ID: %v", err)
	}
	return int(id)
}

// CreateTestLabel creates a test label and returns its ID
func CreateTestLabel(t *testing.T, db *sql.DB, userID int, name string) int {
	t.Helper()
	result, err := db.Exec(
		"INSERT INTO labels (user_id, name) VALUES (?, ?)",
		userID, name,
	)
	if err != nil {
		t.Fatalf("Failed to create test label: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to get label ID: %v", err)
	}
	return int(id)
}

// AttachLabel attaches a label to a paragraph
func AttachLabel(t *testing.T, db *sql.DB, paragraphID, labelID int) {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO paragraph_labels (paragraph_id, label_id) VALUES (?, ?)",
		paragraphID, labelID,
	)
	if err != nil {
		t.Fatalf("Failed to attach label to paragraph: %v", err)
	}
}

// ParagraphLabelCount returns how many labels a paragraph carries
func ParagraphLabelCount(t *testing.T, db *sql.DB, paragraphID int) int {
	t.Helper()
	var count int
	err := db.QueryRow(
		"SELECT COUNT(*) FROM paragraph_labels WHERE paragraph_id = ?", paragraphID,
	).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count paragraph labels: %v", err)
	}
	return count
}
