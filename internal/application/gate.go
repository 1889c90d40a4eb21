package application

import "github.com/lavanderia/laundries-cli/internal/domain"

// DecisionKind is the outcome of a gate check.
type DecisionKind int

const (
	// DecisionPending: hydration has not finished, no verdict yet.
	DecisionPending DecisionKind = iota
	// DecisionAllow admits the request.
	DecisionAllow
	// DecisionRedirectLogin sends the caller to the login route.
	DecisionRedirectLogin
	// DecisionRedirectLanding sends the caller to their role's default
	// landing. Role denials fail open to home, never to an error page.
	DecisionRedirectLanding
)

// Decision carries the verdict plus where to go instead and where the
// caller originally wanted to be, so a successful login can return
// there.
type Decision struct {
	Kind       DecisionKind
	RedirectTo string
	From       string
}

// Gate performs route-level admission control against the session
// state: an authentication check and a role-membership check, composed
// around every protected command.
type Gate struct {
	sessions *SessionService
}

func NewGate(sessions *SessionService) *Gate {
	return &Gate{sessions: sessions}
}

// RequireAuth admits any authenticated session. While state is still
// hydrating the decision is pending; an unauthenticated caller is
// redirected to login with the requested route captured.
func (g *Gate) RequireAuth(from string) Decision {
	snapshot := g.sessions.Snapshot()

	if snapshot.IsInitializing {
		return Decision{Kind: DecisionPending, From: from}
	}

	if !snapshot.IsAuthenticated {
		return Decision{Kind: DecisionRedirectLogin, RedirectTo: RouteLogin, From: from}
	}

	return Decision{Kind: DecisionAllow, From: from}
}

// RequireRole admits a session whose role is in the allow-list. A
// missing user redirects to login; a role outside the list redirects to
// that role's own default landing.
func (g *Gate) RequireRole(from string, allowed ...domain.Role) Decision {
	snapshot := g.sessions.Snapshot()

	if snapshot.IsInitializing {
		return Decision{Kind: DecisionPending, From: from}
	}

	user := snapshot.Session.User
	if user == (domain.User{}) {
		return Decision{Kind: DecisionRedirectLogin, RedirectTo: RouteLogin, From: from}
	}

	if !user.Role.Member(allowed) {
		return Decision{Kind: DecisionRedirectLanding, RedirectTo: ViewFor(user.Role).Landing, From: from}
	}

	return Decision{Kind: DecisionAllow, From: from}
}
