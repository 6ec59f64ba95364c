package activity

import (
	"errors"
	"time"
)

// Action represents what happened.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionLogin  Action = "login"
	ActionLogout Action = "logout"
)

// Resource type constants for activity entries.
const (
	ResourcePlayer      = "player"
	ResourceObservation = "observation"
	ResourcePlan        = "pdp"
	ResourceCoach       = "coach"
)

// Entry is a single row in the staff activity feed: who did what to
// which resource. Append-only.
type Entry struct {
	ID           string
	CoachID      string
	Action       Action
	ResourceType string
	ResourceID   string
	Summary      string
	CreatedAt    time.Time
}

// Validate checks if the Entry has valid data.
// PRE: Entry struct is populated
// POST: Returns nil if valid, error otherwise
func (e *Entry) Validate() error {
	if e.CoachID == "" {
		return errors.New("activity entry requires a coach ID")
	}
	if e.Action == "" {
		return errors.New("activity entry requires an action")
	}
	if e.CreatedAt.IsZero() {
		return errors.New("created_at must be set")
	}
	return nil
}
