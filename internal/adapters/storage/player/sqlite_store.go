package player

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"coachdash/internal/adapters/storage"
	domain "coachdash/internal/domain/player"
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

// GetByID retrieves a Player by its ID.
// PRE: id is non-empty
// POST: Returns the player, or storage.ErrNotFound if no row matches
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Player, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, position, created_at, updated_at
		 FROM player WHERE id = ?`, id)
	return scanPlayer(row)
}

// Save persists a Player to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update); CreatedAt is never overwritten
func (s *SQLiteStore) Save(ctx context.Context, p domain.Player) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO player (id, first_name, last_name, position, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   first_name=excluded.first_name, last_name=excluded.last_name,
		   position=excluded.position, updated_at=excluded.updated_at`,
		p.ID, p.FirstName, p.LastName, p.Position,
		p.CreatedAt.Format(timeLayout), nullTime(p.UpdatedAt))
	if err != nil {
		return fmt.Errorf("save player: %w", err)
	}
	return nil
}

// List retrieves all players ordered by last name ascending, matching the
// roster ordering the dashboard presents.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Player, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, first_name, last_name, position, created_at, updated_at
		 FROM player ORDER BY last_name, first_name`)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	var players []domain.Player
	for rows.Next() {
		var p domain.Player
		var createdAt string
		var updatedAt sql.NullString
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Position, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		p.CreatedAt, _ = time.Parse(timeLayout, createdAt)
		if updatedAt.Valid {
			p.UpdatedAt, _ = time.Parse(timeLayout, updatedAt.String)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func scanPlayer(row *sql.Row) (domain.Player, error) {
	var p domain.Player
	var createdAt string
	var updatedAt sql.NullString
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Position, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Player{}, fmt.Errorf("player: %w", storage.ErrNotFound)
	}
	if err != nil {
		return domain.Player{}, fmt.Errorf("scan player: %w", err)
	}
	p.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	if updatedAt.Valid {
		p.UpdatedAt, _ = time.Parse(timeLayout, updatedAt.String)
	}
	return p, nil
}

func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.Format(timeLayout)
}
