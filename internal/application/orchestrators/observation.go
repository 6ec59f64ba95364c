package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"coachdash/internal/domain/activity"
	"coachdash/internal/domain/observation"
)

// ObservationStoreForOrchestrator defines the store interface needed by
// observation orchestrators. Append-only: insert, never update.
type ObservationStoreForOrchestrator interface {
	Insert(ctx context.Context, o observation.Observation) error
}

// CreateObservationInput carries input for the create observation orchestrator.
type CreateObservationInput struct {
	PlayerID        string
	Content         string
	AuthorID        string    // CoachID of the coach recording the observation
	ObservationDate time.Time // zero means "now"
}

// CreateObservationDeps holds dependencies for CreateObservation.
type CreateObservationDeps struct {
	ObservationStore ObservationStoreForOrchestrator
	ActivityStore    ActivityStoreForOrchestrator // optional
	GenerateID       func() string
	Now              func() time.Time
}

// ExecuteCreateObservation records a new observation on a player.
// PRE: PlayerID, Content, and AuthorID must be non-empty
// POST: Observation created with generated ID and timestamps
func ExecuteCreateObservation(ctx context.Context, input CreateObservationInput, deps CreateObservationDeps) (observation.Observation, error) {
	if input.AuthorID == "" {
		return observation.Observation{}, errors.New("author ID is required")
	}

	now := deps.Now()
	obsDate := input.ObservationDate
	if obsDate.IsZero() {
		obsDate = now
	}

	obs := observation.Observation{
		ID:              deps.GenerateID(),
		PlayerID:        input.PlayerID,
		CoachID:         input.AuthorID,
		Content:         input.Content,
		ObservationDate: obsDate,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := obs.Validate(); err != nil {
		return observation.Observation{}, err
	}

	if err := deps.ObservationStore.Insert(ctx, obs); err != nil {
		return observation.Observation{}, err
	}

	if deps.ActivityStore != nil {
		recordActivity(ctx, deps.ActivityStore, activity.Entry{
			ID:           deps.GenerateID(),
			CoachID:      input.AuthorID,
			Action:       activity.ActionCreate,
			ResourceType: activity.ResourceObservation,
			ResourceID:   obs.ID,
			Summary:      "observation recorded",
			CreatedAt:    now,
		})
	}

	slog.Info("observation_event", "event", "observation_created", "observation_id", obs.ID, "player_id", obs.PlayerID, "author_id", obs.CoachID)
	return obs, nil
}
