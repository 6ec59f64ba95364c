package observation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"coachdash/internal/adapters/storage"
	domain "coachdash/internal/domain/observation"

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
	seed := []string{
		`INSERT INTO coach (id, email, first_name, last_name, password_hash, is_admin, failed_logins, created_at)
		 VALUES ('c1', 'head@example.club', 'Head', 'Coach', 'x', 1, 0, '2026-03-01T12:00:00Z')`,
		`INSERT INTO player (id, first_name, last_name, created_at) VALUES ('pl1', 'Jane', 'Doe', '2026-03-01T12:00:00Z')`,
		`INSERT INTO player (id, first_name, last_name, created_at) VALUES ('pl2', 'Sam', 'Adams', '2026-03-01T12:00:00Z')`,
	}
	for _, stmt := range seed {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return NewSQLiteStore(db)
}

func testObservation(id, playerID string, observed time.Time) domain.Observation {
	return domain.Observation{
		ID:              id,
		PlayerID:        playerID,
		CoachID:         "c1",
		Content:         "Observation " + id,
		ObservationDate: observed,
		CreatedAt:       observed,
	}
}

// TestSQLiteStore_InsertGet tests round-tripping an observation.
func TestSQLiteStore_InsertGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	observed := time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)

	if err := store.Insert(ctx, testObservation("o1", "pl1", observed)); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := store.GetByID(ctx, "o1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.PlayerID != "pl1" || got.CoachID != "c1" {
		t.Errorf("unexpected observation %+v", got)
	}
	if !got.ObservationDate.Equal(observed) {
		t.Errorf("observation_date round trip: got %v", got.ObservationDate)
	}

	_, err = store.GetByID(ctx, "ghost")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// TestSQLiteStore_ListByPlayerID tests per-player listing, newest
// observation date first.
func TestSQLiteStore_ListByPlayerID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		o := testObservation(fmt.Sprintf("o%d", i+1), "pl1", base.AddDate(0, 0, i))
		if err := store.Insert(ctx, o); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}
	if err := store.Insert(ctx, testObservation("other", "pl2", base)); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	observations, err := store.ListByPlayerID(ctx, "pl1")
	if err != nil {
		t.Fatalf("ListByPlayerID: %v", err)
	}
	if len(observations) != 3 {
		t.Fatalf("expected 3 observations, got %d", len(observations))
	}
	if observations[0].ID != "o3" || observations[2].ID != "o1" {
		t.Errorf("expected newest observation date first, got %s..%s", observations[0].ID, observations[2].ID)
	}
}

// TestSQLiteStore_ListRecent tests the dashboard feed read.
func TestSQLiteStore_ListRecent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		o := testObservation(fmt.Sprintf("o%d", i+1), "pl1", base.AddDate(0, 0, i))
		if err := store.Insert(ctx, o); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	observations, err := store.ListRecent(ctx, 2)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(observations) != 2 || observations[0].ID != "o4" {
		t.Errorf("expected 2 newest, got %+v", observations)
	}
}
