package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"coachdash/internal/domain/coach"
)

// CoachStoreForLogin defines the store interface needed by Login.
type CoachStoreForLogin interface {
	GetByEmail(ctx context.Context, email string) (coach.Coach, error)
	Save(ctx context.Context, c coach.Coach) error
}

// LoginMetrics receives auth counters. Satisfied by *metrics.Collector;
// may be nil.
type LoginMetrics interface {
	RecordLoginFailed()
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult carries the result of a successful login. Role is derived
// from the coach's is_admin flag at this single point; callers cache it
// in the session and must not re-derive it elsewhere.
type LoginResult struct {
	CoachID string
	Email   string
	Name    string
	Role    string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	CoachStore CoachStoreForLogin
	Metrics    LoginMetrics // optional
}

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountLocked      = errors.New("account is locked due to too many failed attempts")
)

// ExecuteLogin validates credentials and resolves the coach's role for
// session creation. An email with no coach row is indistinguishable from
// a wrong password to the caller.
// PRE: Valid email and password provided
// POST: Returns coach info on success, records failed login on failure
// INVARIANT: Account must not be locked
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	if input.Email == "" || input.Password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	c, err := deps.CoachStore.GetByEmail(ctx, input.Email)
	if err != nil {
		recordLoginFailure(deps.Metrics)
		slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "not_found")
		return LoginResult{}, ErrInvalidCredentials
	}

	if c.IsLocked() {
		slog.Info("auth_event", "event", "login_blocked", "email", input.Email, "reason", "locked")
		return LoginResult{}, ErrAccountLocked
	}

	if err := c.CheckPassword(input.Password); err != nil {
		c.RecordFailedLogin()
		_ = deps.CoachStore.Save(ctx, c)
		recordLoginFailure(deps.Metrics)
		slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "wrong_password", "failed_logins", c.FailedLogins)
		return LoginResult{}, ErrInvalidCredentials
	}

	// Successful login — reset failed attempts
	c.ResetFailedLogins()
	_ = deps.CoachStore.Save(ctx, c)

	slog.Info("auth_event", "event", "login_success", "email", input.Email, "role", c.Role())

	return LoginResult{
		CoachID: c.ID,
		Email:   c.Email,
		Name:    c.DisplayName(),
		Role:    c.Role(),
	}, nil
}

func recordLoginFailure(m LoginMetrics) {
	if m != nil {
		m.RecordLoginFailed()
	}
}
