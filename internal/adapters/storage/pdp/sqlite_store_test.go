package pdp

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"coachdash/internal/adapters/storage"
	domain "coachdash/internal/domain/pdp"
)

var fixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// newTestStore opens a migrated in-memory database. A single connection
// is forced because each in-memory connection is its own database.
func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := storage.MigrateDB(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	seed := `
	INSERT INTO coach (id, email, created_at) VALUES ('c1', 'c1@example.club', '2026-03-01T12:00:00Z');
	INSERT INTO player (id, first_name, last_name, created_at) VALUES ('pl1', 'Jane', 'Doe', '2026-03-01T12:00:00Z');
	`
	if _, err := db.Exec(seed); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return NewSQLiteStore(db)
}

func testPlan(id string, active bool, createdAt time.Time) domain.Plan {
	return domain.Plan{
		ID:        id,
		PlayerID:  "pl1",
		CoachID:   "c1",
		Content:   "Plan " + id,
		Active:    active,
		StartDate: createdAt,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

// TestSQLiteStore_InsertGet tests the round trip.
func TestSQLiteStore_InsertGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Insert(ctx, testPlan("p1", true, fixedTime)); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := store.GetByID(ctx, "p1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.Active {
		t.Error("expected active plan")
	}
	if !got.StartDate.Equal(fixedTime) {
		t.Errorf("StartDate = %v, want %v", got.StartDate, fixedTime)
	}
	if !got.EndDate.IsZero() {
		t.Errorf("expected zero EndDate, got %v", got.EndDate)
	}
}

// TestSQLiteStore_GetByID_NotFound tests the typed error.
func TestSQLiteStore_GetByID_NotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetByID(context.Background(), "ghost")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// TestSQLiteStore_Deactivate tests supersession of an active row.
func TestSQLiteStore_Deactivate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Insert(ctx, testPlan("p1", true, fixedTime)); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	ended := fixedTime.Add(24 * time.Hour)
	if err := store.Deactivate(ctx, "p1", ended); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}

	got, err := store.GetByID(ctx, "p1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Active {
		t.Error("expected plan inactive")
	}
	if !got.EndDate.Equal(ended) {
		t.Errorf("EndDate = %v, want %v", got.EndDate, ended)
	}
}

// TestSQLiteStore_Deactivate_NotActive tests that deactivating an
// already-archived or missing plan reports not-found, not success.
func TestSQLiteStore_Deactivate_NotActive(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.Deactivate(ctx, "ghost", fixedTime)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing plan, got %v", err)
	}

	if err := store.Insert(ctx, testPlan("p1", true, fixedTime)); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := store.Deactivate(ctx, "p1", fixedTime); err != nil {
		t.Fatalf("first Deactivate: %v", err)
	}
	err = store.Deactivate(ctx, "p1", fixedTime)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for already-archived plan, got %v", err)
	}
}

// TestSQLiteStore_SecondActiveRejected tests that the partial unique
// index backs up the lifecycle invariant at the store level.
func TestSQLiteStore_SecondActiveRejected(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Insert(ctx, testPlan("p1", true, fixedTime)); err != nil {
		t.Fatalf("Insert p1: %v", err)
	}
	if err := store.Insert(ctx, testPlan("p2", true, fixedTime.Add(time.Hour))); err == nil {
		t.Fatal("expected second active insert to be rejected")
	}

	// Deactivate-then-insert, the lifecycle order, succeeds.
	if err := store.Deactivate(ctx, "p1", fixedTime.Add(time.Hour)); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	if err := store.Insert(ctx, testPlan("p2", true, fixedTime.Add(time.Hour))); err != nil {
		t.Fatalf("Insert p2 after deactivate: %v", err)
	}
}

// TestSQLiteStore_History tests newest-first ordering and active filtering.
func TestSQLiteStore_History(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Insert(ctx, testPlan("p1", false, fixedTime)); err != nil {
		t.Fatalf("Insert p1: %v", err)
	}
	if err := store.Insert(ctx, testPlan("p2", false, fixedTime.Add(time.Hour))); err != nil {
		t.Fatalf("Insert p2: %v", err)
	}
	if err := store.Insert(ctx, testPlan("p3", true, fixedTime.Add(2*time.Hour))); err != nil {
		t.Fatalf("Insert p3: %v", err)
	}

	history, err := store.ListByPlayerID(ctx, "pl1")
	if err != nil {
		t.Fatalf("ListByPlayerID: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 plans, got %d", len(history))
	}
	if history[0].ID != "p3" || history[2].ID != "p1" {
		t.Errorf("expected newest first, got %s..%s", history[0].ID, history[2].ID)
	}

	actives, err := store.ListActiveByPlayerID(ctx, "pl1")
	if err != nil {
		t.Fatalf("ListActiveByPlayerID: %v", err)
	}
	if len(actives) != 1 || actives[0].ID != "p3" {
		t.Errorf("expected only p3 active, got %+v", actives)
	}

	all, err := store.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected 1 active plan overall, got %d", len(all))
	}
}
