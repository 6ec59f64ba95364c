package projections

import (
	"context"

	domainActivity "coachdash/internal/domain/activity"
	domainCoach "coachdash/internal/domain/coach"
	domainObservation "coachdash/internal/domain/observation"
	domainPDP "coachdash/internal/domain/pdp"
	domainPlayer "coachdash/internal/domain/player"
)

// PlayerStore interface for player queries.
type PlayerStore interface {
	GetByID(ctx context.Context, id string) (domainPlayer.Player, error)
	List(ctx context.Context) ([]domainPlayer.Player, error)
}

// ObservationStore interface for observation queries.
type ObservationStore interface {
	ListByPlayerID(ctx context.Context, playerID string) ([]domainObservation.Observation, error)
	ListRecent(ctx context.Context, limit int) ([]domainObservation.Observation, error)
}

// PlanStore interface for development plan queries.
type PlanStore interface {
	ListByPlayerID(ctx context.Context, playerID string) ([]domainPDP.Plan, error)
	ListActiveByPlayerID(ctx context.Context, playerID string) ([]domainPDP.Plan, error)
	ListActive(ctx context.Context) ([]domainPDP.Plan, error)
}

// CoachStore interface for coach registry queries.
type CoachStore interface {
	GetByEmail(ctx context.Context, email string) (domainCoach.Coach, error)
	List(ctx context.Context) ([]domainCoach.Coach, error)
}

// ActivityStore interface for activity feed queries.
type ActivityStore interface {
	ListRecent(ctx context.Context, limit int) ([]domainActivity.Entry, error)
}
