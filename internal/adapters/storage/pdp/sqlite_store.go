package pdp

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"coachdash/internal/adapters/storage"
	domain "coachdash/internal/domain/pdp"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// SQLiteStore implements Store using SQLite. The schema carries a
// partial unique index on (player_id) WHERE active = 1, so the store
// itself rejects a second active plan for the same player.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Plan by its ID.
// PRE: id is non-empty
// POST: Returns the plan, or storage.ErrNotFound if no row matches
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Plan, error) {
	row := s.db.QueryRowContext(ctx, selectPlan+` WHERE id = ?`, id)
	return scanPlan(row)
}

// Insert persists a new Plan.
// PRE: entity has been validated
// POST: Entity is persisted; a second active plan for the player is
// rejected by the unique index
func (s *SQLiteStore) Insert(ctx context.Context, p domain.Plan) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO pdp (id, player_id, coach_id, content, active, start_date, end_date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.PlayerID, p.CoachID, p.Content, boolToInt(p.Active),
		p.StartDate.Format(timeLayout), nullTime(p.EndDate),
		p.CreatedAt.Format(timeLayout), nullTime(p.UpdatedAt))
	if err != nil {
		return fmt.Errorf("insert plan: %w", err)
	}
	return nil
}

// Deactivate marks a single active plan as superseded.
// PRE: id is non-empty
// POST: Row has active=0, end_date and updated_at set to endedAt;
// storage.ErrNotFound if no active row with that id exists
func (s *SQLiteStore) Deactivate(ctx context.Context, id string, endedAt time.Time) error {
	ended := endedAt.Format(timeLayout)
	res, err := s.db.ExecContext(ctx,
		`UPDATE pdp SET active = 0, end_date = ?, updated_at = ? WHERE id = ? AND active = 1`,
		ended, ended, id)
	if err != nil {
		return fmt.Errorf("deactivate plan: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deactivate plan: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("active plan %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

// ListByPlayerID retrieves the full plan history for a player, newest
// first by creation time.
// PRE: playerID is non-empty
// POST: Returns all plans for the player, active and archival
func (s *SQLiteStore) ListByPlayerID(ctx context.Context, playerID string) ([]domain.Plan, error) {
	rows, err := s.db.QueryContext(ctx,
		selectPlan+` WHERE player_id = ? ORDER BY created_at DESC`, playerID)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()
	return scanPlans(rows)
}

// ListActiveByPlayerID retrieves the active plans for a player. Expected
// 0 or 1 rows; more than one means the invariant was violated before the
// unique index existed, and callers surface that rather than pick one.
func (s *SQLiteStore) ListActiveByPlayerID(ctx context.Context, playerID string) ([]domain.Plan, error) {
	rows, err := s.db.QueryContext(ctx,
		selectPlan+` WHERE player_id = ? AND active = 1 ORDER BY created_at DESC`, playerID)
	if err != nil {
		return nil, fmt.Errorf("list active plans: %w", err)
	}
	defer rows.Close()
	return scanPlans(rows)
}

// ListActive retrieves every active plan across all players, newest first.
func (s *SQLiteStore) ListActive(ctx context.Context) ([]domain.Plan, error) {
	rows, err := s.db.QueryContext(ctx,
		selectPlan+` WHERE active = 1 ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list active plans: %w", err)
	}
	defer rows.Close()
	return scanPlans(rows)
}

const selectPlan = `SELECT id, player_id, coach_id, content, active, start_date, end_date, created_at, updated_at FROM pdp`

func scanPlan(row *sql.Row) (domain.Plan, error) {
	var p domain.Plan
	var active int
	var startDate, createdAt string
	var endDate, updatedAt sql.NullString
	err := row.Scan(&p.ID, &p.PlayerID, &p.CoachID, &p.Content, &active, &startDate, &endDate, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Plan{}, fmt.Errorf("plan: %w", storage.ErrNotFound)
	}
	if err != nil {
		return domain.Plan{}, fmt.Errorf("scan plan: %w", err)
	}
	p.Active = active != 0
	p.StartDate, _ = time.Parse(timeLayout, startDate)
	p.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	if endDate.Valid {
		p.EndDate, _ = time.Parse(timeLayout, endDate.String)
	}
	if updatedAt.Valid {
		p.UpdatedAt, _ = time.Parse(timeLayout, updatedAt.String)
	}
	return p, nil
}

func scanPlans(rows *sql.Rows) ([]domain.Plan, error) {
	var plans []domain.Plan
	for rows.Next() {
		var p domain.Plan
		var active int
		var startDate, createdAt string
		var endDate, updatedAt sql.NullString
		if err := rows.Scan(&p.ID, &p.PlayerID, &p.CoachID, &p.Content, &active, &startDate, &endDate, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		p.Active = active != 0
		p.StartDate, _ = time.Parse(timeLayout, startDate)
		p.CreatedAt, _ = time.Parse(timeLayout, createdAt)
		if endDate.Valid {
			p.EndDate, _ = time.Parse(timeLayout, endDate.String)
		}
		if updatedAt.Valid {
			p.UpdatedAt, _ = time.Parse(timeLayout, updatedAt.String)
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
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
