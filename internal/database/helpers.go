package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// dateLayout is how calendar dates are stored in the database. Keeping
// dates as ISO text lets SQLite's date functions bucket them directly.
const dateLayout = "2006-01-02"

// withTx executes a function within a database transaction.
// It automatically handles begin, rollback on error, and commit on success.
func withTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// formatDate renders a calendar date for storage, dropping any time component.
func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// parseDate converts a stored calendar date back to a time.Time.
func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// nullStringToString converts sql.NullString to string.
// Returns empty string if the value is not valid.
func nullStringToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// nullFloat64ToPtr converts sql.NullFloat64 to *float64.
// Returns nil if the value is not valid.
func nullFloat64ToPtr(nf sql.NullFloat64) *float64 {
	if nf.Valid {
		val := nf.Float64
		return &val
	}
	return nil
}

// stringToNullString converts an empty string to a SQL NULL.
func stringToNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// float64PtrToNull converts an optional float to its SQL representation.
func float64PtrToNull(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
