package coach

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Max length constants for user-editable fields.
const (
	MaxEmailLength = 254
)

// Role constants. Role is derived from the IsAdmin flag, never stored
// as a free-form string.
const (
	RoleAdmin = "admin"
	RoleCoach = "coach"
)

// Domain errors
var (
	ErrEmptyEmail       = errors.New("email cannot be empty")
	ErrInvalidEmail     = errors.New("email must contain '@'")
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrPasswordTooShort = errors.New("password must be at least 12 characters")
	ErrWrongPassword    = errors.New("incorrect password")
)

// Coach holds state for a coaching-staff principal. The email is the
// login correlation key and must be unique.
type Coach struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	IsAdmin      bool
	FailedLogins int
	LockedUntil  time.Time
	CreatedAt    time.Time
}

// Role derives the coach's role from the IsAdmin flag.
// INVARIANT: Coach fields are not mutated
func (c *Coach) Role() string {
	if c.IsAdmin {
		return RoleAdmin
	}
	return RoleCoach
}

// DisplayName returns the coach's full name for presentation.
// INVARIANT: Coach fields are not mutated
func (c *Coach) DisplayName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Validate checks if the Coach has valid data.
// PRE: Coach struct is populated
// POST: Returns nil if valid, error otherwise
func (c *Coach) Validate() error {
	if strings.TrimSpace(c.Email) == "" {
		return ErrEmptyEmail
	}
	if len(c.Email) > MaxEmailLength {
		return errors.New("email cannot exceed 254 characters")
	}
	if !strings.Contains(c.Email, "@") {
		return ErrInvalidEmail
	}
	return nil
}

// SetPassword hashes and stores a password using bcrypt with cost 12.
// PRE: plaintext is non-empty and >= 12 characters
// POST: PasswordHash is set to bcrypt hash
func (c *Coach) SetPassword(plaintext string) error {
	if plaintext == "" {
		return ErrEmptyPassword
	}
	if len(plaintext) < 12 {
		return ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), 12)
	if err != nil {
		return err
	}
	c.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// PRE: PasswordHash is set
// INVARIANT: Coach fields are not mutated
func (c *Coach) CheckPassword(plaintext string) error {
	if c.PasswordHash == "" {
		return ErrWrongPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(plaintext)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

// IsLocked returns true if the coach account is currently locked out.
// INVARIANT: Coach fields are not mutated
func (c *Coach) IsLocked() bool {
	if c.LockedUntil.IsZero() {
		return false
	}
	return time.Now().Before(c.LockedUntil)
}

// RecordFailedLogin increments the failed login counter and locks the account after 5 failures.
// PRE: Coach exists
// POST: FailedLogins incremented; LockedUntil set if >= 5 failures
func (c *Coach) RecordFailedLogin() {
	c.FailedLogins++
	if c.FailedLogins >= 5 {
		c.LockedUntil = time.Now().Add(15 * time.Minute)
	}
}

// ResetFailedLogins clears the failed login counter and lock.
// PRE: Coach exists
// POST: FailedLogins is 0, LockedUntil is zero
func (c *Coach) ResetFailedLogins() {
	c.FailedLogins = 0
	c.LockedUntil = time.Time{}
}
