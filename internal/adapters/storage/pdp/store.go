package pdp

import (
	"context"
	"time"

	domain "coachdash/internal/domain/pdp"
)

// Store persists development plan state. Deactivation and insertion are
// separate operations: the lifecycle orchestrator sequences them and
// reports partial progress when the sequence stops partway.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Plan, error)
	Insert(ctx context.Context, value domain.Plan) error
	Deactivate(ctx context.Context, id string, endedAt time.Time) error
	ListByPlayerID(ctx context.Context, playerID string) ([]domain.Plan, error)
	ListActiveByPlayerID(ctx context.Context, playerID string) ([]domain.Plan, error)
	ListActive(ctx context.Context) ([]domain.Plan, error)
}
