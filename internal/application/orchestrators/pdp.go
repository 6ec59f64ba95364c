package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"coachdash/internal/domain/activity"
	"coachdash/internal/domain/pdp"
)

// PlanStoreForOrchestrator defines the store interface needed by plan orchestrators.
type PlanStoreForOrchestrator interface {
	ListActiveByPlayerID(ctx context.Context, playerID string) ([]pdp.Plan, error)
	Deactivate(ctx context.Context, id string, endedAt time.Time) error
	Insert(ctx context.Context, p pdp.Plan) error
}

// PlanMetrics receives plan lifecycle counters. Satisfied by
// *metrics.Collector; may be nil.
type PlanMetrics interface {
	RecordPlanCreated()
	RecordPlanPartialFailure()
}

// CreateActivePlanInput carries input for the create-active-plan orchestrator.
// Creating a first plan and replacing an existing one are the same
// operation: any currently active plan is superseded, then the new one
// is inserted active.
type CreateActivePlanInput struct {
	PlayerID  string
	Content   string
	AuthorID  string    // CoachID of the coach writing the plan
	StartDate time.Time // zero means "now"
}

// CreateActivePlanDeps holds dependencies for CreateActivePlan.
type CreateActivePlanDeps struct {
	PlanStore     PlanStoreForOrchestrator
	ActivityStore ActivityStoreForOrchestrator // optional: nil skips the activity feed
	Metrics       PlanMetrics                  // optional
	GenerateID    func() string
	Now           func() time.Time
}

// ExecuteCreateActivePlan supersedes any active plans for the player and
// inserts a replacement.
// PRE: PlayerID, Content, AuthorID must be non-empty
// POST: Exactly one active plan exists for the player; prior plans carry
// end_date = supersession time
// INVARIANT: at most one active plan per player
//
// The deactivate-then-insert sequence is not atomic. If it stops partway
// the orchestrator returns *pdp.PartialLifecycleError and leaves the store
// as-is: the caller must re-read state before retrying. It never silently
// loses a deactivation and never hides a second active row.
func ExecuteCreateActivePlan(ctx context.Context, input CreateActivePlanInput, deps CreateActivePlanDeps) (pdp.Plan, error) {
	now := deps.Now()
	startDate := input.StartDate
	if startDate.IsZero() {
		startDate = now
	}

	plan := pdp.Plan{
		ID:        deps.GenerateID(),
		PlayerID:  input.PlayerID,
		CoachID:   input.AuthorID,
		Content:   input.Content,
		Active:    true,
		StartDate: startDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	// Validate before touching the store so bad input can never leave a
	// player with no active plan.
	if err := plan.Validate(); err != nil {
		return pdp.Plan{}, err
	}

	// Expected 0 or 1 active rows, but prior inconsistency may have left
	// more; every one of them is superseded.
	actives, err := deps.PlanStore.ListActiveByPlayerID(ctx, input.PlayerID)
	if err != nil {
		return pdp.Plan{}, fmt.Errorf("read active plans: %w", err)
	}

	for i, old := range actives {
		if err := deps.PlanStore.Deactivate(ctx, old.ID, now); err != nil {
			if deps.Metrics != nil {
				deps.Metrics.RecordPlanPartialFailure()
			}
			slog.Error("pdp_event", "event", "lifecycle_partial", "player_id", input.PlayerID,
				"deactivated", i, "of", len(actives), "error", err.Error())
			return pdp.Plan{}, &pdp.PartialLifecycleError{
				PlayerID:    input.PlayerID,
				Deactivated: i,
				Inserted:    false,
				Err:         err,
			}
		}
	}

	if err := deps.PlanStore.Insert(ctx, plan); err != nil {
		if len(actives) == 0 {
			// Nothing was deactivated, so nothing was half-applied.
			return pdp.Plan{}, fmt.Errorf("insert plan: %w", err)
		}
		if deps.Metrics != nil {
			deps.Metrics.RecordPlanPartialFailure()
		}
		slog.Error("pdp_event", "event", "lifecycle_partial", "player_id", input.PlayerID,
			"deactivated", len(actives), "error", err.Error())
		return pdp.Plan{}, &pdp.PartialLifecycleError{
			PlayerID:    input.PlayerID,
			Deactivated: len(actives),
			Inserted:    false,
			Err:         err,
		}
	}

	if deps.Metrics != nil {
		deps.Metrics.RecordPlanCreated()
	}
	if deps.ActivityStore != nil {
		recordActivity(ctx, deps.ActivityStore, activity.Entry{
			ID:           deps.GenerateID(),
			CoachID:      input.AuthorID,
			Action:       activity.ActionCreate,
			ResourceType: activity.ResourcePlan,
			ResourceID:   plan.ID,
			Summary:      "development plan created",
			CreatedAt:    now,
		})
	}

	slog.Info("pdp_event", "event", "plan_created", "plan_id", plan.ID,
		"player_id", plan.PlayerID, "author_id", plan.CoachID, "superseded", len(actives))
	return plan, nil
}
