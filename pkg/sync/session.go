package sync

import (
	"sync"

	"github.com/Pradeep-10x/synapse-cli/pkg/logger"
)

// Session is the client-side record of the authenticated user. Exactly
// one session is live per client instance.
type Session struct {
	UserID      string
	Username    string
	DisplayName string
	Token       string
}

// Connector is the connection lifecycle the guard drives. Satisfied by
// realtime.Client.
type Connector interface {
	Connect(sessionID, token string) error
	Disconnect() error
}

// SessionGuard binds the realtime connection lifecycle to the session
// lifecycle: connect when a session begins, disconnect exactly once
// when it ends. Every async continuation captures the epoch at issue
// time and checks it on arrival, so responses that outlive their
// session are discarded instead of resurrecting cleared state.
type SessionGuard struct {
	mu      sync.Mutex
	conn    Connector
	current *Session
	epoch   uint64
}

// NewSessionGuard creates a guard over the given connector
func NewSessionGuard(conn Connector) *SessionGuard {
	return &SessionGuard{conn: conn}
}

// Begin installs a session and connects. A repeated Begin for the same
// user is a no-op at the transport level (Connect is idempotent); a
// Begin for a different user ends the old session first.
func (g *SessionGuard) Begin(s *Session) error {
	g.mu.Lock()
	if g.current != nil && g.current.UserID != s.UserID {
		g.endLocked()
	}
	g.current = s
	g.epoch++
	g.mu.Unlock()

	logger.Debug("Session started", "user_id", s.UserID)
	return g.conn.Connect(s.UserID, s.Token)
}

// End tears the session down. Safe to call when no session is live;
// disconnect runs at most once per login-logout cycle.
func (g *SessionGuard) End() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.endLocked()
}

func (g *SessionGuard) endLocked() {
	if g.current == nil {
		return
	}
	logger.Debug("Session ended", "user_id", g.current.UserID)
	g.current = nil
	g.epoch++
	_ = g.conn.Disconnect()
}

// Current returns the live session, or nil
func (g *SessionGuard) Current() *Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current
}

// Epoch returns the current session epoch. Capture it before issuing
// an async call and pass it to StillCurrent when the result arrives.
func (g *SessionGuard) Epoch() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.epoch
}

// StillCurrent reports whether a result issued at the given epoch is
// still safe to apply.
func (g *SessionGuard) StillCurrent(epoch uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current != nil && g.epoch == epoch
}
