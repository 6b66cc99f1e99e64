package sync

import (
	"testing"
)

// fakeConnector records lifecycle calls for the guard tests
type fakeConnector struct {
	connects    int
	disconnects int
	lastSession string
	lastToken   string
}

func (f *fakeConnector) Connect(sessionID, token string) error {
	f.connects++
	f.lastSession = sessionID
	f.lastToken = token
	return nil
}

func (f *fakeConnector) Disconnect() error {
	f.disconnects++
	return nil
}

func TestBeginConnects(t *testing.T) {
	conn := &fakeConnector{}
	g := NewSessionGuard(conn)

	err := g.Begin(&Session{UserID: "u1", Token: "tok"})
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	if conn.connects != 1 {
		t.Errorf("connects = %d, want 1", conn.connects)
	}
	if conn.lastSession != "u1" || conn.lastToken != "tok" {
		t.Errorf("connected with (%s, %s), want (u1, tok)", conn.lastSession, conn.lastToken)
	}
	if g.Current() == nil || g.Current().UserID != "u1" {
		t.Error("Current should return the live session")
	}
}

func TestEndDisconnectsOnce(t *testing.T) {
	conn := &fakeConnector{}
	g := NewSessionGuard(conn)

	_ = g.Begin(&Session{UserID: "u1"})

	g.End()
	g.End()
	g.End()

	if conn.disconnects != 1 {
		t.Errorf("disconnects = %d, want exactly 1 per login-logout cycle", conn.disconnects)
	}
	if g.Current() != nil {
		t.Error("no session should be live after End")
	}
}

func TestEndWithoutSession(t *testing.T) {
	conn := &fakeConnector{}
	g := NewSessionGuard(conn)

	g.End()

	if conn.disconnects != 0 {
		t.Errorf("disconnects = %d, want 0 when nothing was live", conn.disconnects)
	}
}

func TestBeginDifferentUserTearsDownOldSession(t *testing.T) {
	conn := &fakeConnector{}
	g := NewSessionGuard(conn)

	_ = g.Begin(&Session{UserID: "u1"})
	_ = g.Begin(&Session{UserID: "u2"})

	if conn.disconnects != 1 {
		t.Errorf("disconnects = %d, want 1 (old session torn down)", conn.disconnects)
	}
	if conn.connects != 2 {
		t.Errorf("connects = %d, want 2", conn.connects)
	}
	if g.Current().UserID != "u2" {
		t.Errorf("Current().UserID = %s, want u2", g.Current().UserID)
	}
}

func TestBeginSameUserKeepsSession(t *testing.T) {
	conn := &fakeConnector{}
	g := NewSessionGuard(conn)

	_ = g.Begin(&Session{UserID: "u1"})
	_ = g.Begin(&Session{UserID: "u1"})

	if conn.disconnects != 0 {
		t.Errorf("disconnects = %d, want 0 for a repeated Begin of the same user", conn.disconnects)
	}
}

func TestEpochInvalidatesOldResults(t *testing.T) {
	conn := &fakeConnector{}
	g := NewSessionGuard(conn)

	_ = g.Begin(&Session{UserID: "u1"})
	epoch := g.Epoch()

	if !g.StillCurrent(epoch) {
		t.Error("epoch captured during the session should be current")
	}

	g.End()

	if g.StillCurrent(epoch) {
		t.Error("a result issued before End must be discarded")
	}
}

func TestEpochAcrossRelogin(t *testing.T) {
	conn := &fakeConnector{}
	g := NewSessionGuard(conn)

	_ = g.Begin(&Session{UserID: "u1"})
	oldEpoch := g.Epoch()

	g.End()
	_ = g.Begin(&Session{UserID: "u1"})

	if g.StillCurrent(oldEpoch) {
		t.Error("a result from the previous login must not apply to the new one")
	}
	if !g.StillCurrent(g.Epoch()) {
		t.Error("the new session's own epoch should be current")
	}
}

func TestStillCurrentWithoutSession(t *testing.T) {
	g := NewSessionGuard(&fakeConnector{})

	if g.StillCurrent(0) {
		t.Error("nothing is current when no session is live")
	}
}
