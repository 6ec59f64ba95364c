package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"coachdash/internal/domain/activity"
	"coachdash/internal/domain/player"
)

// PlayerStoreForOrchestrator defines the store interface needed by player orchestrators.
type PlayerStoreForOrchestrator interface {
	GetByID(ctx context.Context, id string) (player.Player, error)
	Save(ctx context.Context, p player.Player) error
}

// --- Create Player ---

// CreatePlayerInput carries input for the create player orchestrator.
type CreatePlayerInput struct {
	FirstName string
	LastName  string
	Position  string
	AuthorID  string // CoachID of the coach adding the player
}

// CreatePlayerDeps holds dependencies for CreatePlayer.
type CreatePlayerDeps struct {
	PlayerStore   PlayerStoreForOrchestrator
	ActivityStore ActivityStoreForOrchestrator // optional
	GenerateID    func() string
	Now           func() time.Time
}

// ExecuteCreatePlayer adds a player to the roster.
// PRE: FirstName, LastName, AuthorID must be non-empty
// POST: Player created with generated immutable ID
func ExecuteCreatePlayer(ctx context.Context, input CreatePlayerInput, deps CreatePlayerDeps) (player.Player, error) {
	if input.AuthorID == "" {
		return player.Player{}, errors.New("author ID is required")
	}

	now := deps.Now()
	p := player.Player{
		ID:        deps.GenerateID(),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Position:  input.Position,
		CreatedAt: now,
	}

	if err := p.Validate(); err != nil {
		return player.Player{}, err
	}

	if err := deps.PlayerStore.Save(ctx, p); err != nil {
		return player.Player{}, err
	}

	if deps.ActivityStore != nil {
		recordActivity(ctx, deps.ActivityStore, activity.Entry{
			ID:           deps.GenerateID(),
			CoachID:      input.AuthorID,
			Action:       activity.ActionCreate,
			ResourceType: activity.ResourcePlayer,
			ResourceID:   p.ID,
			Summary:      "player added: " + p.DisplayName(),
			CreatedAt:    now,
		})
	}

	slog.Info("player_event", "event", "player_created", "player_id", p.ID, "author_id", input.AuthorID)
	return p, nil
}

// --- Update Player ---

// UpdatePlayerInput carries input for the update player orchestrator.
// The ID is immutable; name and position are the mutable attributes.
type UpdatePlayerInput struct {
	PlayerID  string
	FirstName string
	LastName  string
	Position  string
	AuthorID  string
}

// UpdatePlayerDeps holds dependencies for UpdatePlayer.
type UpdatePlayerDeps struct {
	PlayerStore   PlayerStoreForOrchestrator
	ActivityStore ActivityStoreForOrchestrator // optional
	GenerateID    func() string
	Now           func() time.Time
}

// ExecuteUpdatePlayer updates a player's mutable attributes.
// PRE: PlayerID must be non-empty; player must exist
// POST: Player attributes and UpdatedAt updated
func ExecuteUpdatePlayer(ctx context.Context, input UpdatePlayerInput, deps UpdatePlayerDeps) (player.Player, error) {
	if input.PlayerID == "" {
		return player.Player{}, errors.New("player ID is required")
	}

	p, err := deps.PlayerStore.GetByID(ctx, input.PlayerID)
	if err != nil {
		return player.Player{}, err
	}

	p.FirstName = input.FirstName
	p.LastName = input.LastName
	p.Position = input.Position
	p.UpdatedAt = deps.Now()

	if err := p.Validate(); err != nil {
		return player.Player{}, err
	}

	if err := deps.PlayerStore.Save(ctx, p); err != nil {
		return player.Player{}, err
	}

	if deps.ActivityStore != nil {
		recordActivity(ctx, deps.ActivityStore, activity.Entry{
			ID:           deps.GenerateID(),
			CoachID:      input.AuthorID,
			Action:       activity.ActionUpdate,
			ResourceType: activity.ResourcePlayer,
			ResourceID:   p.ID,
			Summary:      "player updated: " + p.DisplayName(),
			CreatedAt:    p.UpdatedAt,
		})
	}

	slog.Info("player_event", "event", "player_updated", "player_id", p.ID, "author_id", input.AuthorID)
	return p, nil
}
