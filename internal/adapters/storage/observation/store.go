package observation

import (
	"context"

	domain "coachdash/internal/domain/observation"
)

// Store persists Observation state. Observations are append-only, so the
// interface deliberately has no update or delete operations.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Observation, error)
	Insert(ctx context.Context, value domain.Observation) error
	ListByPlayerID(ctx context.Context, playerID string) ([]domain.Observation, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Observation, error)
}
