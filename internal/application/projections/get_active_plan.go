package projections

import (
	"context"

	"coachdash/internal/domain/pdp"
)

// GetActivePlanQuery carries query parameters.
type GetActivePlanQuery struct {
	PlayerID string
}

// GetActivePlanDeps holds dependencies for GetActivePlan.
type GetActivePlanDeps struct {
	PlanStore PlanStore
}

// QueryGetActivePlan returns the unique plan currently in effect for a
// player. When no plan is active it returns pdp.ErrNoActivePlan. When
// more than one row is active — possible only through inconsistency that
// predates the store-level constraint — it returns
// pdp.ErrMultipleActivePlans rather than silently picking one, so the
// caller can decide to repair by re-running the lifecycle.
// PRE: PlayerID is non-empty
// POST: Returns exactly one active plan or a classified error; no side effects
func QueryGetActivePlan(ctx context.Context, query GetActivePlanQuery, deps GetActivePlanDeps) (pdp.Plan, error) {
	actives, err := deps.PlanStore.ListActiveByPlayerID(ctx, query.PlayerID)
	if err != nil {
		return pdp.Plan{}, err
	}
	switch len(actives) {
	case 0:
		return pdp.Plan{}, pdp.ErrNoActivePlan
	case 1:
		return actives[0], nil
	default:
		return pdp.Plan{}, pdp.ErrMultipleActivePlans
	}
}
