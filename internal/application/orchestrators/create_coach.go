package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"coachdash/internal/adapters/email"
	"coachdash/internal/domain/coach"
)

// CoachStoreForCreate defines the store interface needed by CreateCoach.
type CoachStoreForCreate interface {
	GetByEmail(ctx context.Context, email string) (coach.Coach, error)
	Save(ctx context.Context, c coach.Coach) error
	Count(ctx context.Context) (int, error)
}

// CreateCoachInput carries input for the orchestrator.
type CreateCoachInput struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
	IsAdmin   bool
}

// CreateCoachDeps holds dependencies for CreateCoach.
type CreateCoachDeps struct {
	CoachStore  CoachStoreForCreate
	EmailSender email.Sender // optional: nil skips the invite email
	EmailFrom   string
	GenerateID  func() string
	Now         func() time.Time
}

var ErrEmailAlreadyExists = errors.New("a coach with this email already exists")

// ExecuteCreateCoach coordinates coach account creation and sends an
// invite email when a sender is configured.
// PRE: Valid email, password >= 12 chars
// POST: Coach created with hashed password
// INVARIANT: Email must be unique
func ExecuteCreateCoach(ctx context.Context, input CreateCoachInput, deps CreateCoachDeps) (string, error) {
	if input.Email == "" {
		return "", errors.New("email cannot be empty")
	}
	if input.Password == "" {
		return "", errors.New("password cannot be empty")
	}

	// Check if email already exists
	if _, err := deps.CoachStore.GetByEmail(ctx, input.Email); err == nil {
		return "", ErrEmailAlreadyExists
	}

	c := coach.Coach{
		ID:        deps.GenerateID(),
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		IsAdmin:   input.IsAdmin,
		CreatedAt: deps.Now(),
	}

	if err := c.Validate(); err != nil {
		return "", err
	}

	// Set password (handles hashing and length validation)
	if err := c.SetPassword(input.Password); err != nil {
		return "", err
	}

	if err := deps.CoachStore.Save(ctx, c); err != nil {
		return "", err
	}

	if deps.EmailSender != nil {
		sendCoachInvite(ctx, deps, c)
	}

	slog.Info("auth_event", "event", "coach_created", "email", input.Email, "role", c.Role())
	return c.ID, nil
}

// sendCoachInvite emails the new coach their sign-in address. Delivery
// failure does not fail the creation; the admin can resend manually.
func sendCoachInvite(ctx context.Context, deps CreateCoachDeps, c coach.Coach) {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>A coaching dashboard account has been created for <strong>%s</strong>. Sign in with the password your administrator shared with you, then change it.</p>",
		c.FirstName, c.Email)
	_, err := deps.EmailSender.Send(ctx, email.SendRequest{
		To:      []string{c.Email},
		From:    deps.EmailFrom,
		Subject: "Your coaching dashboard account",
		HTML:    body,
	})
	if err != nil {
		slog.Warn("auth_event", "event", "invite_email_failed", "email", c.Email, "error", err.Error())
	}
}

// ExecuteSeedAdmin creates a default admin coach if no coaches exist.
// PRE: Database is initialized
// POST: Admin coach created if count == 0
func ExecuteSeedAdmin(ctx context.Context, deps CreateCoachDeps, adminEmail, adminPassword string) error {
	count, err := deps.CoachStore.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil // Coaches already exist, skip seeding
	}

	_, err = ExecuteCreateCoach(ctx, CreateCoachInput{
		Email:     adminEmail,
		FirstName: "Admin",
		LastName:  "Coach",
		Password:  adminPassword,
		IsAdmin:   true,
	}, deps)
	if err != nil {
		return err
	}

	slog.Info("auth_event", "event", "admin_seeded", "email", adminEmail)
	return nil
}
