package player

import (
	"errors"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength     = 100
	MaxPositionLength = 50
)

// Domain errors
var (
	ErrEmptyFirstName = errors.New("player first name cannot be empty")
	ErrEmptyLastName  = errors.New("player last name cannot be empty")
)

// Player represents an athlete tracked by the coaching staff.
// Players are created by a coach action and never hard-deleted.
type Player struct {
	ID        string
	FirstName string
	LastName  string
	Position  string // optional, e.g. "Midfielder"
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName returns the player's full name for presentation.
// INVARIANT: Player fields are not mutated
func (p *Player) DisplayName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Validate checks if the Player has valid data.
// PRE: Player struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Player) Validate() error {
	if strings.TrimSpace(p.FirstName) == "" {
		return ErrEmptyFirstName
	}
	if strings.TrimSpace(p.LastName) == "" {
		return ErrEmptyLastName
	}
	if len(p.FirstName) > MaxNameLength || len(p.LastName) > MaxNameLength {
		return errors.New("player name cannot exceed 100 characters")
	}
	if len(p.Position) > MaxPositionLength {
		return errors.New("player position cannot exceed 50 characters")
	}
	if p.CreatedAt.IsZero() {
		return errors.New("created_at must be set")
	}
	return nil
}
