package observation

import (
	"errors"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxContentLength = 2000
)

// Domain errors
var (
	ErrEmptyPlayerID = errors.New("player ID is required")
	ErrEmptyCoachID  = errors.New("coach ID is required")
	ErrEmptyContent  = errors.New("observation content cannot be empty")
)

// Observation is a free-text note a coach wrote about a player on a
// given date. Observations are append-only: there is no edit or delete
// path once recorded.
type Observation struct {
	ID              string
	PlayerID        string
	CoachID         string // authoring coach
	Content         string
	ObservationDate time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate checks if the Observation has valid data.
// PRE: Observation struct is populated
// POST: Returns nil if valid, error otherwise
func (o *Observation) Validate() error {
	if o.PlayerID == "" {
		return ErrEmptyPlayerID
	}
	if o.CoachID == "" {
		return ErrEmptyCoachID
	}
	if o.Content == "" {
		return ErrEmptyContent
	}
	if len(o.Content) > MaxContentLength {
		return errors.New("observation content cannot exceed 2000 characters")
	}
	if o.ObservationDate.IsZero() {
		return errors.New("observation_date must be set")
	}
	if o.CreatedAt.IsZero() {
		return errors.New("created_at must be set")
	}
	return nil
}
