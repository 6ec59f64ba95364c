package projections

import (
	"context"

	"coachdash/internal/domain/pdp"
)

// GetPlanHistoryQuery carries query parameters.
type GetPlanHistoryQuery struct {
	PlayerID string
}

// GetPlanHistoryDeps holds dependencies for GetPlanHistory.
type GetPlanHistoryDeps struct {
	PlanStore PlanStore
}

// QueryGetPlanHistory returns a player's full development plan history,
// newest first by creation time. Pure read: restartable, no side effects.
// PRE: PlayerID is non-empty
// POST: Returns all plans for the player ordered by created_at desc
func QueryGetPlanHistory(ctx context.Context, query GetPlanHistoryQuery, deps GetPlanHistoryDeps) ([]pdp.Plan, error) {
	return deps.PlanStore.ListByPlayerID(ctx, query.PlayerID)
}
