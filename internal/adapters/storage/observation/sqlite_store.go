package observation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"coachdash/internal/adapters/storage"
	domain "coachdash/internal/domain/observation"
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

// GetByID retrieves an Observation by its ID.
// PRE: id is non-empty
// POST: Returns the observation, or storage.ErrNotFound if no row matches
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Observation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, player_id, coach_id, content, observation_date, created_at, updated_at
		 FROM observation WHERE id = ?`, id)
	return scanObservation(row)
}

// Insert persists a new Observation.
// PRE: entity has been validated
// POST: Entity is persisted; duplicate IDs are rejected by the store
func (s *SQLiteStore) Insert(ctx context.Context, o domain.Observation) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO observation (id, player_id, coach_id, content, observation_date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.PlayerID, o.CoachID, o.Content,
		o.ObservationDate.Format(timeLayout),
		o.CreatedAt.Format(timeLayout), nullTime(o.UpdatedAt))
	if err != nil {
		return fmt.Errorf("insert observation: %w", err)
	}
	return nil
}

// ListByPlayerID retrieves observations for a player, most recent
// observation date first.
// PRE: playerID is non-empty
// POST: Returns observations for the given player
func (s *SQLiteStore) ListByPlayerID(ctx context.Context, playerID string) ([]domain.Observation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, player_id, coach_id, content, observation_date, created_at, updated_at
		 FROM observation WHERE player_id = ? ORDER BY observation_date DESC, created_at DESC`, playerID)
	if err != nil {
		return nil, fmt.Errorf("list observations: %w", err)
	}
	defer rows.Close()
	return scanObservations(rows)
}

// ListRecent retrieves the most recently created observations across all
// players, up to limit rows.
// PRE: limit > 0
// POST: Returns observations ordered by created_at desc
func (s *SQLiteStore) ListRecent(ctx context.Context, limit int) ([]domain.Observation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, player_id, coach_id, content, observation_date, created_at, updated_at
		 FROM observation ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent observations: %w", err)
	}
	defer rows.Close()
	return scanObservations(rows)
}

func scanObservation(row *sql.Row) (domain.Observation, error) {
	var o domain.Observation
	var obsDate, createdAt string
	var updatedAt sql.NullString
	err := row.Scan(&o.ID, &o.PlayerID, &o.CoachID, &o.Content, &obsDate, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Observation{}, fmt.Errorf("observation: %w", storage.ErrNotFound)
	}
	if err != nil {
		return domain.Observation{}, fmt.Errorf("scan observation: %w", err)
	}
	o.ObservationDate, _ = time.Parse(timeLayout, obsDate)
	o.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	if updatedAt.Valid {
		o.UpdatedAt, _ = time.Parse(timeLayout, updatedAt.String)
	}
	return o, nil
}

func scanObservations(rows *sql.Rows) ([]domain.Observation, error) {
	var observations []domain.Observation
	for rows.Next() {
		var o domain.Observation
		var obsDate, createdAt string
		var updatedAt sql.NullString
		if err := rows.Scan(&o.ID, &o.PlayerID, &o.CoachID, &o.Content, &obsDate, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		o.ObservationDate, _ = time.Parse(timeLayout, obsDate)
		o.CreatedAt, _ = time.Parse(timeLayout, createdAt)
		if updatedAt.Valid {
			o.UpdatedAt, _ = time.Parse(timeLayout, updatedAt.String)
		}
		observations = append(observations, o)
	}
	return observations, rows.Err()
}

func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.Format(timeLayout)
}
