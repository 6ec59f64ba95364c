package projections

import (
	"context"
	"fmt"
)

// ResolveRoleQuery carries query parameters.
type ResolveRoleQuery struct {
	Email string
}

// ResolveRoleDeps holds dependencies for ResolveRole.
type ResolveRoleDeps struct {
	CoachStore CoachStore
}

// QueryResolveRole maps an authenticated email to a role by exact-match
// lookup in the coach registry. An email with no coach row resolves to
// no role at all (wrapped storage.ErrNotFound): the caller must treat
// the principal as unauthenticated and deny access.
//
// This lookup runs once per session establishment; the result is cached
// in the server-side session and invalidated when the session ends. It
// is never consulted per-request.
// PRE: email is non-empty
// POST: Returns coach.RoleAdmin or coach.RoleCoach, or an error
func QueryResolveRole(ctx context.Context, query ResolveRoleQuery, deps ResolveRoleDeps) (string, error) {
	c, err := deps.CoachStore.GetByEmail(ctx, query.Email)
	if err != nil {
		return "", fmt.Errorf("resolve role for %s: %w", query.Email, err)
	}
	return c.Role(), nil
}
