package projections

import (
	"context"

	"coachdash/internal/domain/activity"
	"coachdash/internal/domain/observation"
	"coachdash/internal/domain/pdp"
	"coachdash/internal/domain/player"
)

// Default limits for the dashboard feed sections.
const (
	DefaultObservationLimit = 100
	DefaultActivityLimit    = 50
)

// GetDashboardQuery carries query parameters.
type GetDashboardQuery struct {
	ObservationLimit int // 0 means DefaultObservationLimit
	ActivityLimit    int // 0 means DefaultActivityLimit
}

// GetDashboardResult carries the query result: everything the landing
// screen shows in one read.
type GetDashboardResult struct {
	Players            []player.Player           // roster, last name asc
	RecentObservations []observation.Observation // created_at desc
	ActivePlans        []pdp.Plan                // one per player barring inconsistency
	RecentActivity     []activity.Entry          // created_at desc
}

// GetDashboardDeps holds dependencies for GetDashboard.
type GetDashboardDeps struct {
	PlayerStore      PlayerStore
	ObservationStore ObservationStore
	PlanStore        PlanStore
	ActivityStore    ActivityStore
}

// QueryGetDashboard assembles the coaching staff landing view. Pure
// read; store errors propagate rather than degrade into empty sections.
// PRE: stores are wired
// POST: Returns all four dashboard sections
func QueryGetDashboard(ctx context.Context, query GetDashboardQuery, deps GetDashboardDeps) (GetDashboardResult, error) {
	obsLimit := query.ObservationLimit
	if obsLimit <= 0 {
		obsLimit = DefaultObservationLimit
	}
	actLimit := query.ActivityLimit
	if actLimit <= 0 {
		actLimit = DefaultActivityLimit
	}

	var result GetDashboardResult

	players, err := deps.PlayerStore.List(ctx)
	if err != nil {
		return GetDashboardResult{}, err
	}
	result.Players = players

	observations, err := deps.ObservationStore.ListRecent(ctx, obsLimit)
	if err != nil {
		return GetDashboardResult{}, err
	}
	result.RecentObservations = observations

	plans, err := deps.PlanStore.ListActive(ctx)
	if err != nil {
		return GetDashboardResult{}, err
	}
	result.ActivePlans = plans

	entries, err := deps.ActivityStore.ListRecent(ctx, actLimit)
	if err != nil {
		return GetDashboardResult{}, err
	}
	result.RecentActivity = entries

	return result, nil
}
