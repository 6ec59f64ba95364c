package coach

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"coachdash/internal/adapters/storage"
	domain "coachdash/internal/domain/coach"
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

// GetByID retrieves a Coach by its ID.
// PRE: id is non-empty
// POST: Returns the coach, or storage.ErrNotFound if no row matches
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Coach, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, email, first_name, last_name, password_hash, is_admin, failed_logins, locked_until, created_at
		 FROM coach WHERE id = ?`, id)
	return scanCoach(row)
}

// GetByEmail retrieves a Coach by exact email match. Email is the login
// correlation key.
// PRE: email is non-empty
// POST: Returns the coach, or storage.ErrNotFound if no row matches
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.Coach, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, email, first_name, last_name, password_hash, is_admin, failed_logins, locked_until, created_at
		 FROM coach WHERE email = ?`, email)
	return scanCoach(row)
}

// Save persists a Coach to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, c domain.Coach) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO coach (id, email, first_name, last_name, password_hash, is_admin, failed_logins, locked_until, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   email=excluded.email, first_name=excluded.first_name, last_name=excluded.last_name,
		   password_hash=excluded.password_hash, is_admin=excluded.is_admin,
		   failed_logins=excluded.failed_logins, locked_until=excluded.locked_until`,
		c.ID, c.Email, c.FirstName, c.LastName, c.PasswordHash, boolToInt(c.IsAdmin),
		c.FailedLogins, nullTime(c.LockedUntil), c.CreatedAt.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("save coach: %w", err)
	}
	return nil
}

// List retrieves all coaches ordered by last name.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Coach, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, email, first_name, last_name, password_hash, is_admin, failed_logins, locked_until, created_at
		 FROM coach ORDER BY last_name, first_name`)
	if err != nil {
		return nil, fmt.Errorf("list coaches: %w", err)
	}
	defer rows.Close()

	var coaches []domain.Coach
	for rows.Next() {
		c, err := scanCoachFromRows(rows)
		if err != nil {
			return nil, err
		}
		coaches = append(coaches, c)
	}
	return coaches, rows.Err()
}

// Count returns the number of coach rows.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM coach`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count coaches: %w", err)
	}
	return n, nil
}

func scanCoach(row *sql.Row) (domain.Coach, error) {
	var c domain.Coach
	var isAdmin int
	var lockedUntil sql.NullString
	var createdAt string
	err := row.Scan(&c.ID, &c.Email, &c.FirstName, &c.LastName, &c.PasswordHash, &isAdmin, &c.FailedLogins, &lockedUntil, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coach{}, fmt.Errorf("coach: %w", storage.ErrNotFound)
	}
	if err != nil {
		return domain.Coach{}, fmt.Errorf("scan coach: %w", err)
	}
	c.IsAdmin = isAdmin != 0
	if lockedUntil.Valid {
		c.LockedUntil, _ = time.Parse(timeLayout, lockedUntil.String)
	}
	c.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	return c, nil
}

func scanCoachFromRows(rows *sql.Rows) (domain.Coach, error) {
	var c domain.Coach
	var isAdmin int
	var lockedUntil sql.NullString
	var createdAt string
	err := rows.Scan(&c.ID, &c.Email, &c.FirstName, &c.LastName, &c.PasswordHash, &isAdmin, &c.FailedLogins, &lockedUntil, &createdAt)
	if err != nil {
		return domain.Coach{}, fmt.Errorf("scan coach: %w", err)
	}
	c.IsAdmin = isAdmin != 0
	if lockedUntil.Valid {
		c.LockedUntil, _ = time.Parse(timeLayout, lockedUntil.String)
	}
	c.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	return c, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.Format(timeLayout)
}
