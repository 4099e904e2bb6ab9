// Package gate decides whether protected surfaces may render, based solely
// on the session store it watches.
package gate

import "admincore.org/internal/session"

// Decision is the access outcome for a protected surface.
type Decision int

const (
	// Pending means the startup session restore has not completed yet;
	// callers render a loading state.
	Pending Decision = iota
	// Denied means there is no live session; callers redirect to login.
	Denied
	// Granted means protected content may render.
	Granted
)

func (d Decision) String() string {
	switch d {
	case Pending:
		return "pending"
	case Denied:
		return "denied"
	case Granted:
		return "granted"
	default:
		return "unknown"
	}
}

// Gate evaluates access against a session store.
type Gate struct {
	sessions *session.Store
}

// New constructs a gate over the given session store.
func New(sessions *session.Store) *Gate {
	return &Gate{sessions: sessions}
}

// Decide returns the current access decision. Pending is only ever observed
// before the one-shot restore completes; after that the outcome tracks the
// live session, so a logout flips Granted to Denied on the next evaluation.
func (g *Gate) Decide() Decision {
	if g == nil || g.sessions == nil {
		return Denied
	}
	if !g.sessions.Restored() {
		return Pending
	}
	if _, ok := g.sessions.Current(); !ok {
		return Denied
	}
	return Granted
}
