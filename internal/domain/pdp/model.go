package pdp

import (
	"errors"
	"fmt"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxContentLength = 4000
)

// Domain errors
var (
	ErrEmptyPlayerID = errors.New("player ID is required")
	ErrEmptyCoachID  = errors.New("coach ID is required")
	ErrEmptyContent  = errors.New("plan content cannot be empty")

	// ErrNoActivePlan is returned when a player has no plan in effect.
	ErrNoActivePlan = errors.New("player has no active development plan")

	// ErrMultipleActivePlans is returned when a read observes more than one
	// active plan for a player. The violation is reported, never repaired
	// silently, so callers can choose to re-run the lifecycle.
	ErrMultipleActivePlans = errors.New("player has multiple active development plans")

	// ErrPlanInactive is returned on attempts to modify a superseded plan.
	// Inactive plans are archival records.
	ErrPlanInactive = errors.New("inactive development plan is immutable")
)

// Plan is a player development plan (PDP). A plan is created active;
// when superseded it transitions to inactive with EndDate set, and from
// then on is an immutable archival record.
//
// INVARIANT: for any player, at most one Plan has Active=true.
type Plan struct {
	ID        string
	PlayerID  string
	CoachID   string // authoring coach
	Content   string
	Active    bool
	StartDate time.Time
	EndDate   time.Time // zero until superseded
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks if the Plan has valid data.
// PRE: Plan struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Plan) Validate() error {
	if p.PlayerID == "" {
		return ErrEmptyPlayerID
	}
	if p.CoachID == "" {
		return ErrEmptyCoachID
	}
	if p.Content == "" {
		return ErrEmptyContent
	}
	if len(p.Content) > MaxContentLength {
		return errors.New("plan content cannot exceed 4000 characters")
	}
	if p.StartDate.IsZero() {
		return errors.New("start_date must be set")
	}
	if p.CreatedAt.IsZero() {
		return errors.New("created_at must be set")
	}
	return nil
}

// Supersede transitions an active plan to its archival state.
// PRE: Plan is active
// POST: Active is false, EndDate and UpdatedAt are set to endedAt
func (p *Plan) Supersede(endedAt time.Time) error {
	if !p.Active {
		return ErrPlanInactive
	}
	p.Active = false
	p.EndDate = endedAt
	p.UpdatedAt = endedAt
	return nil
}

// PartialLifecycleError reports a deactivate-then-insert sequence that
// stopped partway. The store state is consistent but incomplete: callers
// must re-read before retrying. No rollback has been attempted.
type PartialLifecycleError struct {
	PlayerID    string
	Deactivated int  // plans already marked inactive before the failure
	Inserted    bool // whether the replacement plan was written
	Err         error
}

// Error implements the error interface.
func (e *PartialLifecycleError) Error() string {
	return fmt.Sprintf("plan lifecycle for player %s partially applied (deactivated=%d, inserted=%t): %v",
		e.PlayerID, e.Deactivated, e.Inserted, e.Err)
}

// Unwrap exposes the underlying store error.
func (e *PartialLifecycleError) Unwrap() error {
	return e.Err
}
