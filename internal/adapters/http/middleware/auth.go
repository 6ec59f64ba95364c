package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"net/url"
	"sync"
	"time"

	domainCoach "coachdash/internal/domain/coach"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const sessionContextKey contextKey = "session"

// Session represents an authenticated coach session. The role was
// resolved from the coach registry exactly once, when the session was
// established; it lives and dies with the session. Deleting the session
// is the role-cache invalidation — there is no separate role cache that
// could go stale.
type Session struct {
	CoachID   string
	Email     string
	Name      string
	Role      string
	CreatedAt time.Time
}

// SessionStore is an in-memory session store.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]Session),
	}
}

// Create stores a new session and returns the token.
// PRE: coachID, email, role are non-empty
// POST: Session is stored, token is returned
func (ss *SessionStore) Create(coachID, email, name, role string) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.sessions[token] = Session{
		CoachID:   coachID,
		Email:     email,
		Name:      name,
		Role:      role,
		CreatedAt: time.Now(),
	}
	return token, nil
}

// Get retrieves a session by token.
// PRE: token is non-empty
// POST: Returns session if valid and not expired
func (ss *SessionStore) Get(token string) (Session, bool) {
	ss.mu.RLock()
	session, ok := ss.sessions[token]
	ss.mu.RUnlock()
	if !ok {
		return Session{}, false
	}
	// Sessions expire after 24 hours
	if time.Since(session.CreatedAt) > 24*time.Hour {
		ss.Delete(token)
		return Session{}, false
	}
	return session, true
}

// Delete removes a session by token. This is the session-change
// invalidation point: the cached role disappears with the session,
// synchronously, before the call returns.
// PRE: token is non-empty
// POST: Session with given token is removed
func (ss *SessionStore) Delete(token string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	delete(ss.sessions, token)
}

// DeleteByCoachID removes every session belonging to a coach. Used when
// an admin changes a coach's admin flag so no session keeps the old role.
// PRE: coachID is non-empty
// POST: No session for the coach remains
func (ss *SessionStore) DeleteByCoachID(coachID string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	for token, session := range ss.sessions {
		if session.CoachID == coachID {
			delete(ss.sessions, token)
		}
	}
}

const sessionCookieName = "coachdash_session"

// SecureCookies controls the Secure flag on session cookies. Set true in
// production (HTTPS), left false for local development.
var SecureCookies = false

// LoginPath is where unauthenticated requests are sent. The originally
// requested path travels in the redirect query parameter so sign-in can
// return there.
const LoginPath = "/login"

// DefaultAreaPath is where authenticated-but-insufficient requests are
// sent instead of an error page.
const DefaultAreaPath = "/"

// Decision is the access gate's verdict for a request.
type Decision int

const (
	// DecisionAllow lets the request through.
	DecisionAllow Decision = iota
	// DecisionRedirectLogin sends the principal to sign-in, preserving
	// the requested path.
	DecisionRedirectLogin
	// DecisionRedirectHome sends an authenticated principal with an
	// insufficient role to the default area.
	DecisionRedirectHome
)

// Authorize is the pure access-gate decision: no session means sign-in;
// an admin-only resource with a non-admin role means the default area;
// anything else is allowed. requiredRole is empty for resources any
// signed-in coach may view.
// PRE: session is valid when ok is true
// POST: Returns exactly one Decision; no side effects
func Authorize(session Session, ok bool, requiredRole string) Decision {
	if !ok {
		return DecisionRedirectLogin
	}
	if requiredRole == domainCoach.RoleAdmin && session.Role != domainCoach.RoleAdmin {
		return DecisionRedirectHome
	}
	return DecisionAllow
}

// Auth returns middleware that extracts the session from the cookie and sets it in context.
// It does NOT block unauthenticated requests — use RequireAuth or RequireAdmin for that.
func Auth(sessions *SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionCookieName)
			if err == nil && cookie.Value != "" {
				if session, ok := sessions.Get(cookie.Value); ok {
					ctx := context.WithValue(r.Context(), sessionContextKey, session)
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth returns middleware that blocks unauthenticated requests,
// preserving the requested path for the post-login redirect.
func RequireAuth(next http.Handler) http.Handler {
	return requireRole(next, "")
}

// RequireAdmin returns middleware that blocks requests lacking the admin role.
func RequireAdmin(next http.Handler) http.Handler {
	return requireRole(next, domainCoach.RoleAdmin)
}

func requireRole(next http.Handler, requiredRole string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := GetSessionFromContext(r.Context())
		switch Authorize(session, ok, requiredRole) {
		case DecisionRedirectLogin:
			target := LoginPath + "?redirect=" + url.QueryEscape(r.URL.RequestURI())
			http.Redirect(w, r, target, http.StatusSeeOther)
		case DecisionRedirectHome:
			http.Redirect(w, r, DefaultAreaPath, http.StatusSeeOther)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

// GetSessionFromContext extracts the session from the request context.
func GetSessionFromContext(ctx context.Context) (Session, bool) {
	session, ok := ctx.Value(sessionContextKey).(Session)
	return session, ok
}

// SetSessionCookie sets the session cookie on the response.
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   86400, // 24 hours
	})
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   -1,
	})
}

// SessionToken extracts the raw session token from the request cookie.
func SessionToken(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// IsAdmin checks if the current session has the admin role.
func IsAdmin(ctx context.Context) bool {
	session, ok := GetSessionFromContext(ctx)
	return ok && session.Role == domainCoach.RoleAdmin
}

// ContextWithSession returns a context with the given session set.
// Intended for use in tests.
func ContextWithSession(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}

func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
