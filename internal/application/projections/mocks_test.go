package projections

import (
	"context"
	"fmt"
	"time"

	"coachdash/internal/adapters/storage"
	"coachdash/internal/domain/activity"
	"coachdash/internal/domain/coach"
	"coachdash/internal/domain/observation"
	"coachdash/internal/domain/pdp"
	"coachdash/internal/domain/player"
)

var fixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// mockPlayerStore implements PlayerStore over a map.
type mockPlayerStore struct {
	players map[string]player.Player
	err     error
}

func (m *mockPlayerStore) GetByID(_ context.Context, id string) (player.Player, error) {
	if m.err != nil {
		return player.Player{}, m.err
	}
	p, ok := m.players[id]
	if !ok {
		return player.Player{}, fmt.Errorf("player: %w", storage.ErrNotFound)
	}
	return p, nil
}

func (m *mockPlayerStore) List(_ context.Context) ([]player.Player, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []player.Player
	for _, p := range m.players {
		out = append(out, p)
	}
	return out, nil
}

// mockObservationStore implements ObservationStore over a slice.
type mockObservationStore struct {
	observations []observation.Observation
	err          error
}

func (m *mockObservationStore) ListByPlayerID(_ context.Context, playerID string) ([]observation.Observation, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []observation.Observation
	for _, o := range m.observations {
		if o.PlayerID == playerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockObservationStore) ListRecent(_ context.Context, limit int) ([]observation.Observation, error) {
	if m.err != nil {
		return nil, m.err
	}
	if limit > len(m.observations) {
		limit = len(m.observations)
	}
	return m.observations[:limit], nil
}

// mockPlanStore implements PlanStore over a slice.
type mockPlanStore struct {
	plans []pdp.Plan
	err   error
}

func (m *mockPlanStore) ListByPlayerID(_ context.Context, playerID string) ([]pdp.Plan, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []pdp.Plan
	for _, p := range m.plans {
		if p.PlayerID == playerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPlanStore) ListActiveByPlayerID(_ context.Context, playerID string) ([]pdp.Plan, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []pdp.Plan
	for _, p := range m.plans {
		if p.PlayerID == playerID && p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPlanStore) ListActive(_ context.Context) ([]pdp.Plan, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []pdp.Plan
	for _, p := range m.plans {
		if p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

// mockCoachStore implements CoachStore over a map keyed by email.
type mockCoachStore struct {
	coaches map[string]coach.Coach
}

func (m *mockCoachStore) GetByEmail(_ context.Context, email string) (coach.Coach, error) {
	c, ok := m.coaches[email]
	if !ok {
		return coach.Coach{}, fmt.Errorf("coach: %w", storage.ErrNotFound)
	}
	return c, nil
}

func (m *mockCoachStore) List(_ context.Context) ([]coach.Coach, error) {
	var out []coach.Coach
	for _, c := range m.coaches {
		out = append(out, c)
	}
	return out, nil
}

// mockActivityStore implements ActivityStore over a slice.
type mockActivityStore struct {
	entries []activity.Entry
	err     error
}

func (m *mockActivityStore) ListRecent(_ context.Context, limit int) ([]activity.Entry, error) {
	if m.err != nil {
		return nil, m.err
	}
	if limit > len(m.entries) {
		limit = len(m.entries)
	}
	return m.entries[:limit], nil
}
