package activity

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"coachdash/internal/adapters/storage"
	domain "coachdash/internal/domain/activity"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Insert persists an activity entry.
// PRE: entry is valid
// POST: Entry is persisted
func (s *SQLiteStore) Insert(ctx context.Context, e domain.Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO activity_log (id, coach_id, action, resource_type, resource_id, summary, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.CoachID, string(e.Action), e.ResourceType, e.ResourceID, e.Summary,
		e.CreatedAt.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("insert activity entry: %w", err)
	}
	return nil
}

// ListRecent retrieves the most recent entries, newest first.
// PRE: limit > 0
// POST: Returns entries ordered by created_at desc
func (s *SQLiteStore) ListRecent(ctx context.Context, limit int) ([]domain.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, coach_id, action, resource_type, resource_id, summary, created_at
		 FROM activity_log ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]domain.Entry, error) {
	var entries []domain.Entry
	for rows.Next() {
		var e domain.Entry
		var action, createdAt string
		if err := rows.Scan(&e.ID, &e.CoachID, &action, &e.ResourceType, &e.ResourceID, &e.Summary, &createdAt); err != nil {
			return nil, fmt.Errorf("scan activity entry: %w", err)
		}
		e.Action = domain.Action(action)
		e.CreatedAt, _ = time.Parse(timeLayout, createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
