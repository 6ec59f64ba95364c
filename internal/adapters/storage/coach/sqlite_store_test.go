package coach

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"coachdash/internal/adapters/storage"
	domain "coachdash/internal/domain/coach"

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
	return NewSQLiteStore(db)
}

func testCoach(id, email string) domain.Coach {
	return domain.Coach{
		ID:        id,
		Email:     email,
		FirstName: "Test",
		LastName:  "Coach",
		IsAdmin:   false,
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

// TestSQLiteStore_SaveGet tests round-tripping a coach row.
func TestSQLiteStore_SaveGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	c := testCoach("c1", "head@example.club")
	c.IsAdmin = true
	if err := c.SetPassword("a-long-enough-password"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if err := store.Save(ctx, c); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.GetByID(ctx, "c1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Email != "head@example.club" || !got.IsAdmin {
		t.Errorf("unexpected coach %+v", got)
	}
	if err := got.CheckPassword("a-long-enough-password"); err != nil {
		t.Errorf("expected stored hash to verify: %v", err)
	}
	if !got.CreatedAt.Equal(c.CreatedAt) {
		t.Errorf("created_at round trip: got %v, want %v", got.CreatedAt, c.CreatedAt)
	}
}

// TestSQLiteStore_GetByEmail tests the login lookup.
func TestSQLiteStore_GetByEmail(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, testCoach("c1", "head@example.club")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.GetByEmail(ctx, "head@example.club")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.ID != "c1" {
		t.Errorf("expected c1, got %s", got.ID)
	}

	_, err = store.GetByEmail(ctx, "ghost@example.club")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// TestSQLiteStore_SaveUpdates tests the upsert path used by login
// lockout bookkeeping.
func TestSQLiteStore_SaveUpdates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	c := testCoach("c1", "head@example.club")
	if err := store.Save(ctx, c); err != nil {
		t.Fatalf("Save: %v", err)
	}

	c.FailedLogins = 3
	c.LockedUntil = time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC)
	if err := store.Save(ctx, c); err != nil {
		t.Fatalf("Save update: %v", err)
	}

	got, err := store.GetByID(ctx, "c1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.FailedLogins != 3 {
		t.Errorf("expected failed_logins 3, got %d", got.FailedLogins)
	}
	if !got.LockedUntil.Equal(c.LockedUntil) {
		t.Errorf("locked_until round trip: got %v", got.LockedUntil)
	}

	n, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Errorf("expected upsert, not a second row: count %d", n)
	}
}

// TestSQLiteStore_UniqueEmail tests that a second coach cannot reuse an email.
func TestSQLiteStore_UniqueEmail(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, testCoach("c1", "head@example.club")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(ctx, testCoach("c2", "head@example.club")); err == nil {
		t.Error("expected unique email constraint violation")
	}
}

// TestSQLiteStore_List tests ordering by last name.
func TestSQLiteStore_List(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a := testCoach("c1", "zola@example.club")
	a.LastName = "Zola"
	b := testCoach("c2", "adams@example.club")
	b.LastName = "Adams"
	for _, c := range []domain.Coach{a, b} {
		if err := store.Save(ctx, c); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	coaches, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(coaches) != 2 || coaches[0].LastName != "Adams" {
		t.Errorf("expected last-name order, got %+v", coaches)
	}
}
