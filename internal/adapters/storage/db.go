package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound distinguishes a missing record from a store failure.
// Stores wrap sql.ErrNoRows with this sentinel so callers can branch on
// errors.Is without collapsing failures into empty results.
var ErrNotFound = errors.New("record not found")

// SQLDB is the database interface used by all stores.
// Both *sql.DB and *TimedDB satisfy this interface.
type SQLDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Compile-time check that *sql.DB satisfies SQLDB.
var _ SQLDB = (*sql.DB)(nil)

// migration is a single schema step. Migrations run in order inside a
// transaction and bump schema_version on success.
type migration struct {
	version int
	apply   func(tx *sql.Tx) error
}

var migrations = []migration{
	{version: 1, apply: applyBaseSchema},
	{version: 2, apply: applyActivePlanIndex},
}

// LatestSchemaVersion returns the version the database is migrated to.
func LatestSchemaVersion() int {
	return migrations[len(migrations)-1].version
}

// MigrateDB brings the database schema up to the latest version.
// PRE: db is a valid database connection
// POST: All pending migrations applied, schema_version updated, WAL mode enabled
func MigrateDB(db *sql.DB) error {
	// WAL for concurrent readers, FK enforcement for referential integrity
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER NOT NULL
	)`); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	current, err := SchemaVersion(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", m.version, err)
		}
		if err := m.apply(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", m.version, err)
		}
		if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed to clear version: %w", m.version, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", m.version); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed to record version: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d failed to commit: %w", m.version, err)
		}
	}
	return nil
}

// SchemaVersion returns the current schema version, 0 for a fresh database.
func SchemaVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// applyBaseSchema creates the core tables.
func applyBaseSchema(tx *sql.Tx) error {
	schema := `
	CREATE TABLE IF NOT EXISTS coach (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL DEFAULT '',
		is_admin INTEGER NOT NULL DEFAULT 0,
		failed_logins INTEGER NOT NULL DEFAULT 0,
		locked_until TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS player (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		position TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT
	);

	CREATE TABLE IF NOT EXISTS observation (
		id TEXT PRIMARY KEY,
		player_id TEXT NOT NULL,
		coach_id TEXT NOT NULL,
		content TEXT NOT NULL,
		observation_date TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT,
		FOREIGN KEY (player_id) REFERENCES player(id),
		FOREIGN KEY (coach_id) REFERENCES coach(id)
	);

	CREATE TABLE IF NOT EXISTS pdp (
		id TEXT PRIMARY KEY,
		player_id TEXT NOT NULL,
		coach_id TEXT NOT NULL,
		content TEXT NOT NULL,
		active INTEGER NOT NULL DEFAULT 1,
		start_date TEXT NOT NULL,
		end_date TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT,
		FOREIGN KEY (player_id) REFERENCES player(id),
		FOREIGN KEY (coach_id) REFERENCES coach(id)
	);

	CREATE TABLE IF NOT EXISTS activity_log (
		id TEXT PRIMARY KEY,
		coach_id TEXT NOT NULL,
		action TEXT NOT NULL,
		resource_type TEXT NOT NULL DEFAULT '',
		resource_id TEXT NOT NULL DEFAULT '',
		summary TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		FOREIGN KEY (coach_id) REFERENCES coach(id)
	);
	`
	_, err := tx.Exec(schema)
	return err
}

// applyActivePlanIndex enforces the single-active-plan rule in the store
// itself: a second active row for the same player is rejected by SQLite,
// so a concurrent deactivate-then-insert race cannot produce duplicates.
func applyActivePlanIndex(tx *sql.Tx) error {
	_, err := tx.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_pdp_one_active
		ON pdp(player_id) WHERE active = 1`)
	return err
}
