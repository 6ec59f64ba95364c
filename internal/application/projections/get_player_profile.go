package projections

import (
	"context"
	"errors"

	"coachdash/internal/domain/observation"
	"coachdash/internal/domain/pdp"
)

// GetPlayerProfileQuery carries query parameters.
type GetPlayerProfileQuery struct {
	PlayerID string
}

// GetPlayerProfileResult carries the query result.
type GetPlayerProfileResult struct {
	PlayerID     string
	FirstName    string
	LastName     string
	DisplayName  string
	Position     string
	Observations []observation.Observation // observation_date desc
	ActivePlan   *pdp.Plan                 // nil when no plan is in effect
	PlanCount    int                       // total plans ever, including archival
}

// GetPlayerProfileDeps holds dependencies for GetPlayerProfile.
type GetPlayerProfileDeps struct {
	PlayerStore      PlayerStore
	ObservationStore ObservationStore
	PlanStore        PlanStore
}

// QueryGetPlayerProfile retrieves a player together with their
// observations and plan state, as the player detail screen shows them.
// A player with multiple active plans surfaces pdp.ErrMultipleActivePlans
// rather than an arbitrary pick.
// PRE: Valid player ID
// POST: Returns player details with observations and plan summary
func QueryGetPlayerProfile(ctx context.Context, query GetPlayerProfileQuery, deps GetPlayerProfileDeps) (GetPlayerProfileResult, error) {
	p, err := deps.PlayerStore.GetByID(ctx, query.PlayerID)
	if err != nil {
		return GetPlayerProfileResult{}, err
	}

	result := GetPlayerProfileResult{
		PlayerID:    p.ID,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		DisplayName: p.DisplayName(),
		Position:    p.Position,
	}

	observations, err := deps.ObservationStore.ListByPlayerID(ctx, p.ID)
	if err != nil {
		return GetPlayerProfileResult{}, err
	}
	result.Observations = observations

	history, err := deps.PlanStore.ListByPlayerID(ctx, p.ID)
	if err != nil {
		return GetPlayerProfileResult{}, err
	}
	result.PlanCount = len(history)

	active, err := QueryGetActivePlan(ctx, GetActivePlanQuery{PlayerID: p.ID}, GetActivePlanDeps{PlanStore: deps.PlanStore})
	switch {
	case err == nil:
		result.ActivePlan = &active
	case errors.Is(err, pdp.ErrNoActivePlan):
		// no plan in effect is a normal profile state
	default:
		return GetPlayerProfileResult{}, err
	}

	return result, nil
}
