package activity

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"coachdash/internal/adapters/storage"
	domain "coachdash/internal/domain/activity"

	_ "modernc.org/sqlite"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// Each in-memory connection is its own database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := storage.MigrateDB(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// Feed rows reference a coach.
	if _, err := db.Exec(
		`INSERT INTO coach (id, email, first_name, last_name, password_hash, is_admin, failed_logins, created_at)
		 VALUES ('c1', 'head@example.club', 'Head', 'Coach', 'x', 1, 0, '2026-03-01T12:00:00Z')`); err != nil {
		t.Fatalf("seed coach: %v", err)
	}
	return NewSQLiteStore(db)
}

// TestSQLiteStore_InsertListRecent tests the append and newest-first read.
func TestSQLiteStore_InsertListRecent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		e := domain.Entry{
			ID:           fmt.Sprintf("a%d", i+1),
			CoachID:      "c1",
			Action:       domain.ActionCreate,
			ResourceType: domain.ResourcePlayer,
			ResourceID:   fmt.Sprintf("pl%d", i+1),
			Summary:      fmt.Sprintf("player added: Player %d", i+1),
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
		}
		if err := store.Insert(ctx, e); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	entries, err := store.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].ID != "a3" || entries[2].ID != "a1" {
		t.Errorf("expected newest first, got %s..%s", entries[0].ID, entries[2].ID)
	}
	if entries[0].Action != domain.ActionCreate {
		t.Errorf("action round trip: got %s", entries[0].Action)
	}
	if !entries[0].CreatedAt.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("created_at round trip: got %v", entries[0].CreatedAt)
	}
}

// TestSQLiteStore_ListRecent_Limit tests the row cap.
func TestSQLiteStore_ListRecent_Limit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		e := domain.Entry{
			ID:        fmt.Sprintf("a%d", i+1),
			CoachID:   "c1",
			Action:    domain.ActionLogin,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := store.Insert(ctx, e); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	entries, err := store.ListRecent(ctx, 2)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != "a5" {
		t.Errorf("expected the 2 newest, got %+v", entries)
	}
}

// TestSQLiteStore_ListRecent_Empty tests an empty feed.
func TestSQLiteStore_ListRecent_Empty(t *testing.T) {
	store := newTestStore(t)
	entries, err := store.ListRecent(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}
