// Package guard decides whether protected console views may run. It is the
// client-side gate in front of every authenticated surface: nothing guarded
// executes before the stored session has been checked against the BFF.
package guard

import (
	"context"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"backoffice/internal/bff"
	"backoffice/internal/platform/logger"
	"backoffice/internal/session"
	"backoffice/pkg/domain"
)

// State is the guard's position in its check lifecycle.
type State string

const (
	// StateChecking means no verdict yet; protected content must not run.
	StateChecking State = "checking"
	// StateAuthenticated means the stored token was verified by the BFF.
	StateAuthenticated State = "authenticated"
	// StateUnauthenticated is terminal for this check; the operator goes
	// back to login.
	StateUnauthenticated State = "unauthenticated"
)

// Verifier is the slice of the auth API the guard needs.
type Verifier interface {
	Verify(ctx context.Context) bff.VerifyResult
}

// Guard verifies the stored session before protected content runs.
type Guard struct {
	store session.Store
	auth  Verifier
	log   *logger.Logger

	mu    sync.Mutex
	state State
	user  *domain.User
}

// New creates a guard in the Checking state.
func New(store session.Store, auth Verifier, log *logger.Logger) *Guard {
	return &Guard{
		store: store,
		auth:  auth,
		log:   log,
		state: StateChecking,
	}
}

// State returns the current guard state.
func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// User returns the cached profile restored on a successful check, if any.
func (g *Guard) User() *domain.User {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.user
}

// Check runs the state machine to a verdict. With no stored token it
// settles on Unauthenticated without touching the network. With a token it
// asks the BFF; a rejected or unreachable verification clears the session.
func (g *Guard) Check(ctx context.Context) State {
	g.set(StateChecking, nil)

	s, err := g.store.Get(ctx)
	if err != nil {
		g.log.Warn("session store unreadable, treating as signed out", logger.Context{
			"errorMessage": err.Error(),
		})
		g.set(StateUnauthenticated, nil)
		return StateUnauthenticated
	}
	if s == nil || s.AccessToken == "" {
		g.set(StateUnauthenticated, nil)
		return StateUnauthenticated
	}

	if !looksLikeJWT(s.AccessToken) {
		g.log.Warn("stored token is not a JWT, clearing session", nil)
		g.clear(ctx)
		g.set(StateUnauthenticated, nil)
		return StateUnauthenticated
	}

	res := g.auth.Verify(ctx)
	if !res.Success {
		g.log.Info("token verification failed", logger.Context{"message": res.Message})
		g.clear(ctx)
		g.set(StateUnauthenticated, nil)
		return StateUnauthenticated
	}

	// A corrupt cached profile is logged but does not flip the verdict.
	if s.UserErr != nil {
		g.log.Warn("cached profile unreadable, continuing without it", logger.Context{
			"errorMessage": s.UserErr.Error(),
		})
	}
	g.set(StateAuthenticated, s.User)
	return StateAuthenticated
}

func (g *Guard) set(state State, user *domain.User) {
	g.mu.Lock()
	g.state = state
	g.user = user
	g.mu.Unlock()
}

func (g *Guard) clear(ctx context.Context) {
	if err := g.store.Clear(ctx); err != nil {
		g.log.Error("failed to clear session", logger.Context{"errorMessage": err.Error()})
	}
}

// looksLikeJWT is the offline sanity check: a token that does not even parse
// as a JWT compact form is treated as absent, sparing a doomed round trip.
// No signature or expiry is checked here; that is the server's job.
func looksLikeJWT(token string) bool {
	_, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	return err == nil
}
