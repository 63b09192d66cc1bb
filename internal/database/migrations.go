package database

import (
	"context"
	"database/sql"
)

// RunMigrations creates the database schema. All statements are
// idempotent so the migration can run on every startup.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL DEFAULT '',
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS journal_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		title TEXT,
		entry_date TEXT NOT NULL,
		rating REAL CHECK (rating IS NULL OR (rating >= 1 AND rating <= 5)),
		is_bookmarked BOOLEAN NOT NULL DEFAULT 0,
		content TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	-- No UNIQUE(entry_id, position): duplicate positions are the caller's
	-- bug and must degrade to undefined ordering, not a constraint error.
	CREATE TABLE IF NOT EXISTS entry_paragraphs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		entry_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		content TEXT NOT NULL,
		FOREIGN KEY (entry_id) REFERENCES journal_entries(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS labels (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		description TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS paragraph_labels (
		paragraph_id INTEGER NOT NULL,
		label_id INTEGER NOT NULL,
		PRIMARY KEY (paragraph_id, label_id),
		FOREIGN KEY (paragraph_id) REFERENCES entry_paragraphs(id) ON DELETE CASCADE,
		FOREIGN KEY (label_id) REFERENCES labels(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS refresh_tokens (
		jti TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_entries_user ON journal_entries(user_id, entry_date);
	CREATE INDEX IF NOT EXISTS idx_paragraphs_entry ON entry_paragraphs(entry_id, position);
	CREATE INDEX IF NOT EXISTS idx_labels_user ON labels(user_id);
	CREATE INDEX IF NOT EXISTS idx_paragraph_labels_label ON paragraph_labels(label_id);
	CREATE INDEX IF NOT EXISTS idx_refresh_tokens_user ON refresh_tokens(user_id);
	`

	_, err := db.ExecContext(ctx, schema)
	return err
}
