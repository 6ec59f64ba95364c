package web

import (
	"errors"
	"net/http"
	"time"

	"coachdash/internal/application/orchestrators"
	"coachdash/internal/domain/activity"
)

// coachResponse is the registry view of a coach. The password hash and
// lockout bookkeeping never leave the server.
type coachResponse struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Role      string
	CreatedAt time.Time
}

// handleCoaches handles GET/POST for /api/coaches. Admin only: the coach
// registry is where roles come from.
func (s *Server) handleCoaches(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		if _, ok := requireAdmin(w, r); !ok {
			return
		}
		coaches, err := s.stores.CoachStore.List(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		out := make([]coachResponse, 0, len(coaches))
		for _, c := range coaches {
			out = append(out, coachResponse{
				ID:        c.ID,
				Email:     c.Email,
				FirstName: c.FirstName,
				LastName:  c.LastName,
				Role:      c.Role(),
				CreatedAt: c.CreatedAt,
			})
		}
		writeJSON(w, http.StatusOK, out)
		return
	}

	if r.Method == "POST" {
		sess, ok := requireAdmin(w, r)
		if !ok {
			return
		}
		var input struct {
			Email     string `json:"Email"`
			FirstName string `json:"FirstName"`
			LastName  string `json:"LastName"`
			Password  string `json:"Password"`
			IsAdmin   bool   `json:"IsAdmin"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		id, err := orchestrators.ExecuteCreateCoach(ctx, orchestrators.CreateCoachInput{
			Email:     input.Email,
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Password:  input.Password,
			IsAdmin:   input.IsAdmin,
		}, orchestrators.CreateCoachDeps{
			CoachStore:  s.stores.CoachStore,
			EmailSender: s.sender,
			EmailFrom:   s.emailFrom,
			GenerateID:  generateID,
			Now:         timeNow,
		})
		if err != nil {
			if errors.Is(err, orchestrators.ErrEmailAlreadyExists) {
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		s.recordActivity(ctx, activity.Entry{
			ID:           generateID(),
			CoachID:      sess.CoachID,
			Action:       activity.ActionCreate,
			ResourceType: activity.ResourceCoach,
			ResourceID:   id,
			Summary:      "coach account created for " + input.Email,
			CreatedAt:    timeNow(),
		})

		writeJSON(w, http.StatusCreated, map[string]string{"ID": id})
		return
	}

	http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
}
