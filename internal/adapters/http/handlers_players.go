package web

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"coachdash/internal/adapters/storage"
	"coachdash/internal/application/listutil"
	"coachdash/internal/application/orchestrators"
	"coachdash/internal/application/projections"
	"coachdash/internal/domain/observation"
	"coachdash/internal/domain/pdp"
	"coachdash/internal/domain/player"
)

// handlePlayers handles GET/POST for /api/players
func (s *Server) handlePlayers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		if _, ok := requireSession(w, r); !ok {
			return
		}
		result, err := projections.QueryListPlayers(ctx, projections.ListPlayersQuery{
			Params: listutil.ParseListParams(r.URL.Query(), projections.PlayerSortColumns, projections.PlayerFilterKeys),
		}, projections.ListPlayersDeps{
			PlayerStore: s.stores.PlayerStore,
		})
		if err != nil {
			internalError(w, err)
			return
		}
		if result.Players == nil {
			result.Players = []player.Player{}
		}
		writeJSON(w, http.StatusOK, result)
		return
	}

	if r.Method == "POST" {
		sess, ok := requireSession(w, r)
		if !ok {
			return
		}
		var input struct {
			FirstName string `json:"FirstName"`
			LastName  string `json:"LastName"`
			Position  string `json:"Position"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		p, err := orchestrators.ExecuteCreatePlayer(ctx, orchestrators.CreatePlayerInput{
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Position:  input.Position,
			AuthorID:  sess.CoachID,
		}, orchestrators.CreatePlayerDeps{
			PlayerStore:   s.stores.PlayerStore,
			ActivityStore: s.stores.ActivityStore,
			GenerateID:    generateID,
			Now:           timeNow,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusCreated, p)
		return
	}

	http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
}

// handlePlayerSubtree dispatches /api/players/:id[/...] requests.
// Subresources: observations, pdp, pdp/history.
func (s *Server) handlePlayerSubtree(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	// parts[0]="api", parts[1]="players", parts[2]=id, parts[3:]=subresource
	if len(parts) < 3 || parts[2] == "" {
		http.Error(w, "invalid path", http.StatusBadRequest)
		return
	}
	playerID := parts[2]

	switch {
	case len(parts) == 3:
		s.handlePlayer(w, r, playerID)
	case len(parts) == 4 && parts[3] == "observations":
		s.handlePlayerObservations(w, r, playerID)
	case len(parts) == 4 && parts[3] == "pdp":
		s.handlePlayerPlan(w, r, playerID)
	case len(parts) == 5 && parts[3] == "pdp" && parts[4] == "history":
		s.handlePlayerPlanHistory(w, r, playerID)
	default:
		http.NotFound(w, r)
	}
}

// handlePlayer handles GET (profile) and PUT (update) for a single player.
func (s *Server) handlePlayer(w http.ResponseWriter, r *http.Request, playerID string) {
	ctx := r.Context()

	if r.Method == "GET" {
		if _, ok := requireSession(w, r); !ok {
			return
		}
		result, err := projections.QueryGetPlayerProfile(ctx, projections.GetPlayerProfileQuery{
			PlayerID: playerID,
		}, projections.GetPlayerProfileDeps{
			PlayerStore:      s.stores.PlayerStore,
			ObservationStore: s.stores.ObservationStore,
			PlanStore:        s.stores.PlanStore,
		})
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrNotFound):
				http.Error(w, "player not found", http.StatusNotFound)
			case errors.Is(err, pdp.ErrMultipleActivePlans):
				http.Error(w, err.Error(), http.StatusConflict)
			default:
				internalError(w, err)
			}
			return
		}
		writeJSON(w, http.StatusOK, result)
		return
	}

	if r.Method == "PUT" {
		sess, ok := requireSession(w, r)
		if !ok {
			return
		}
		var input struct {
			FirstName string `json:"FirstName"`
			LastName  string `json:"LastName"`
			Position  string `json:"Position"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		p, err := orchestrators.ExecuteUpdatePlayer(ctx, orchestrators.UpdatePlayerInput{
			PlayerID:  playerID,
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Position:  input.Position,
			AuthorID:  sess.CoachID,
		}, orchestrators.UpdatePlayerDeps{
			PlayerStore:   s.stores.PlayerStore,
			ActivityStore: s.stores.ActivityStore,
			GenerateID:    generateID,
			Now:           timeNow,
		})
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "player not found", http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, p)
		return
	}

	http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
}

// observationResponse is an observation plus its content rendered for
// display.
type observationResponse struct {
	observation.Observation
	ContentHTML string
}

func observationResponses(observations []observation.Observation) []observationResponse {
	out := make([]observationResponse, 0, len(observations))
	for _, o := range observations {
		out = append(out, observationResponse{Observation: o, ContentHTML: renderMarkdown(o.Content)})
	}
	return out
}

// handlePlayerObservations handles GET (list, newest first) and POST
// (append) for /api/players/:id/observations. Observations are
// append-only: there is no update or delete route.
func (s *Server) handlePlayerObservations(w http.ResponseWriter, r *http.Request, playerID string) {
	ctx := r.Context()

	if r.Method == "GET" {
		if _, ok := requireSession(w, r); !ok {
			return
		}
		observations, err := s.stores.ObservationStore.ListByPlayerID(ctx, playerID)
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, observationResponses(observations))
		return
	}

	if r.Method == "POST" {
		sess, ok := requireSession(w, r)
		if !ok {
			return
		}
		var input struct {
			Content         string `json:"Content"`
			ObservationDate string `json:"ObservationDate"` // YYYY-MM-DD, optional
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		var obsDate time.Time
		if input.ObservationDate != "" {
			var err error
			obsDate, err = time.Parse("2006-01-02", input.ObservationDate)
			if err != nil {
				http.Error(w, "ObservationDate must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
		}
		o, err := orchestrators.ExecuteCreateObservation(ctx, orchestrators.CreateObservationInput{
			PlayerID:        playerID,
			Content:         input.Content,
			AuthorID:        sess.CoachID,
			ObservationDate: obsDate,
		}, orchestrators.CreateObservationDeps{
			ObservationStore: s.stores.ObservationStore,
			ActivityStore:    s.stores.ActivityStore,
			GenerateID:       generateID,
			Now:              timeNow,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusCreated, o)
		return
	}

	http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
}

// planResponse is a plan plus its content rendered for display.
type planResponse struct {
	pdp.Plan
	ContentHTML string
}

// handlePlayerPlan handles GET (the one active plan) and POST
// (create-or-replace) for /api/players/:id/pdp.
func (s *Server) handlePlayerPlan(w http.ResponseWriter, r *http.Request, playerID string) {
	ctx := r.Context()

	if r.Method == "GET" {
		if _, ok := requireSession(w, r); !ok {
			return
		}
		plan, err := projections.QueryGetActivePlan(ctx, projections.GetActivePlanQuery{
			PlayerID: playerID,
		}, projections.GetActivePlanDeps{
			PlanStore: s.stores.PlanStore,
		})
		if err != nil {
			switch {
			case errors.Is(err, pdp.ErrNoActivePlan):
				http.Error(w, "no active development plan", http.StatusNotFound)
			case errors.Is(err, pdp.ErrMultipleActivePlans):
				// The invariant is observed violated; report, never pick one.
				http.Error(w, err.Error(), http.StatusConflict)
			default:
				internalError(w, err)
			}
			return
		}
		writeJSON(w, http.StatusOK, planResponse{Plan: plan, ContentHTML: renderMarkdown(plan.Content)})
		return
	}

	if r.Method == "POST" {
		sess, ok := requireSession(w, r)
		if !ok {
			return
		}
		var input struct {
			Content   string `json:"Content"`
			StartDate string `json:"StartDate"` // YYYY-MM-DD, optional
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		var startDate time.Time
		if input.StartDate != "" {
			var err error
			startDate, err = time.Parse("2006-01-02", input.StartDate)
			if err != nil {
				http.Error(w, "StartDate must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
		}
		plan, err := orchestrators.ExecuteCreateActivePlan(ctx, orchestrators.CreateActivePlanInput{
			PlayerID:  playerID,
			Content:   input.Content,
			AuthorID:  sess.CoachID,
			StartDate: startDate,
		}, orchestrators.CreateActivePlanDeps{
			PlanStore:     s.stores.PlanStore,
			ActivityStore: s.stores.ActivityStore,
			Metrics:       s.planMetrics(),
			GenerateID:    generateID,
			Now:           timeNow,
		})
		if err != nil {
			var partial *pdp.PartialLifecycleError
			if errors.As(err, &partial) {
				// The store may hold a half-applied supersession. The
				// client must re-read plan state before retrying.
				writeJSON(w, http.StatusInternalServerError, map[string]any{
					"Error":       "plan replacement did not complete",
					"Deactivated": partial.Deactivated,
					"Inserted":    partial.Inserted,
					"Retryable":   true,
				})
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusCreated, planResponse{Plan: plan, ContentHTML: renderMarkdown(plan.Content)})
		return
	}

	http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
}

// handlePlayerPlanHistory handles GET /api/players/:id/pdp/history:
// every plan ever written for the player, newest first.
func (s *Server) handlePlayerPlanHistory(w http.ResponseWriter, r *http.Request, playerID string) {
	if r.Method != "GET" {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireSession(w, r); !ok {
		return
	}
	plans, err := projections.QueryGetPlanHistory(r.Context(), projections.GetPlanHistoryQuery{
		PlayerID: playerID,
	}, projections.GetPlanHistoryDeps{
		PlanStore: s.stores.PlanStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	if plans == nil {
		writeJSON(w, http.StatusOK, []struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, plans)
}
