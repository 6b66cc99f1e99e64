package realtime

import (
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	json "github.com/json-iterator/go"
)

var upgrader = websocket.Upgrader{}

// echoServer is a minimal realtime endpoint for the tests: it records
// connections and lets the test push frames to the latest client.
type echoServer struct {
	*httptest.Server

	mu       sync.Mutex
	conns    []*websocket.Conn
	sessions []string
	received []Message
}

func newEchoServer(t *testing.T) *echoServer {
	t.Helper()
	s := &echoServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		s.mu.Lock()
		s.conns = append(s.conns, conn)
		s.sessions = append(s.sessions, r.URL.Query().Get("session_id"))
		s.mu.Unlock()

		for {
			var msg Message
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			s.mu.Lock()
			s.received = append(s.received, msg)
			s.mu.Unlock()
		}
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *echoServer) config(t *testing.T) Config {
	t.Helper()
	u, err := url.Parse(s.URL)
	if err != nil {
		t.Fatalf("parse server url: %v", err)
	}
	host, portStr, _ := net.SplitHostPort(u.Host)
	port, _ := strconv.Atoi(portStr)

	cfg := DefaultConfig()
	cfg.Host = host
	cfg.Port = port
	cfg.Path = "/"
	cfg.ConnectTimeoutMs = 2000
	cfg.HeartbeatIntervalMs = 60000
	cfg.ReconnectBaseDelayMs = 10
	cfg.ReconnectMaxDelayMs = 40
	return cfg
}

func (s *echoServer) connCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

func (s *echoServer) push(t *testing.T, msg Message) {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.conns) == 0 {
		t.Fatal("no client connected")
	}
	if err := s.conns[len(s.conns)-1].WriteJSON(msg); err != nil {
		t.Fatalf("push failed: %v", err)
	}
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestNewClientInitialState(t *testing.T) {
	c := NewClient(DefaultConfig())

	if c.State() != StateDisconnected {
		t.Errorf("initial state = %s, want disconnected", c.State())
	}
	if c.IsConnected() {
		t.Error("new client should not report connected")
	}
	if c.SessionID() != "" {
		t.Error("new client should have no session")
	}
}

func TestConnectionStateString(t *testing.T) {
	tests := []struct {
		state ConnectionState
		want  string
	}{
		{StateDisconnected, "disconnected"},
		{StateConnecting, "connecting"},
		{StateConnected, "connected"},
		{StateReconnecting, "reconnecting"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestProductionConfig(t *testing.T) {
	cfg := ProductionConfig("realtime.example.com")

	if cfg.Host != "realtime.example.com" {
		t.Errorf("Host = %q", cfg.Host)
	}
	if !cfg.UseTLS || cfg.Port != 443 {
		t.Error("production config should use TLS on 443")
	}
	if cfg.MaxReconnectAttempts != DefaultConfig().MaxReconnectAttempts {
		t.Error("retry budget should match the default")
	}
}

func TestOnUnsubscribe(t *testing.T) {
	c := NewClient(DefaultConfig())

	calls := 0
	unsub := c.On(MessageTypeNotification, func(json.RawMessage) { calls++ })

	c.dispatch(Message{Type: MessageTypeNotification})
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}

	unsub()
	c.dispatch(Message{Type: MessageTypeNotification})
	if calls != 1 {
		t.Errorf("calls after unsubscribe = %d, want 1", calls)
	}
}

func TestDispatchOrder(t *testing.T) {
	c := NewClient(DefaultConfig())

	var got []string
	c.On(MessageTypeNotification, func(p json.RawMessage) {
		var id string
		_ = json.Unmarshal(p, &id)
		got = append(got, id)
	})

	for _, id := range []string{"a", "b", "c"} {
		payload, _ := json.Marshal(id)
		c.dispatch(Message{Type: MessageTypeNotification, Payload: payload})
	}

	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("delivery order = %v, want [a b c]", got)
	}
}

func TestOnStateChange(t *testing.T) {
	c := NewClient(DefaultConfig())

	var states []ConnectionState
	unsub := c.OnStateChange(func(s ConnectionState) { states = append(states, s) })

	c.setState(StateConnecting)
	c.setState(StateConnecting) // no-op, same state
	c.setState(StateConnected)

	if len(states) != 2 || states[0] != StateConnecting || states[1] != StateConnected {
		t.Errorf("notified states = %v, want [connecting connected]", states)
	}

	unsub()
	c.setState(StateDisconnected)
	if len(states) != 2 {
		t.Error("unsubscribed listener was notified")
	}
}

func TestConnectAnnouncesAndReceives(t *testing.T) {
	server := newEchoServer(t)
	c := NewClient(server.config(t))

	received := make(chan json.RawMessage, 1)
	c.On(MessageTypeNotification, func(p json.RawMessage) { received <- p })

	if err := c.Connect("session-1", "tok"); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer c.Disconnect()

	if c.State() != StateConnected {
		t.Errorf("state = %s, want connected", c.State())
	}
	if c.SessionID() != "session-1" {
		t.Errorf("SessionID = %q", c.SessionID())
	}

	// The client announces itself right after the handshake.
	waitFor(t, 2*time.Second, func() bool {
		server.mu.Lock()
		defer server.mu.Unlock()
		return len(server.received) > 0
	})
	server.mu.Lock()
	announce := server.received[0]
	session := server.sessions[0]
	server.mu.Unlock()

	if announce.Type != MessageTypeAnnounceOnline {
		t.Errorf("first frame type = %s, want announce_online", announce.Type)
	}
	if session != "session-1" {
		t.Errorf("session_id query param = %q, want session-1", session)
	}

	// Push flows back to the listener.
	payload, _ := json.Marshal(NotificationPayload{ID: "n1"})
	server.push(t, Message{Type: MessageTypeNotification, Payload: payload})

	select {
	case <-received:
	case <-time.After(2 * time.Second):
		t.Fatal("pushed notification never reached the listener")
	}
}

func TestConnectIdempotentSameSession(t *testing.T) {
	server := newEchoServer(t)
	c := NewClient(server.config(t))

	if err := c.Connect("session-1", "tok"); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer c.Disconnect()

	if err := c.Connect("session-1", "tok"); err != nil {
		t.Fatalf("repeated Connect failed: %v", err)
	}

	if n := server.connCount(); n != 1 {
		t.Errorf("server saw %d connections, want 1", n)
	}
}

func TestConnectDifferentSessionRedials(t *testing.T) {
	server := newEchoServer(t)
	c := NewClient(server.config(t))

	if err := c.Connect("session-1", "tok1"); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	if err := c.Connect("session-2", "tok2"); err != nil {
		t.Fatalf("Connect with new session failed: %v", err)
	}
	defer c.Disconnect()

	if n := server.connCount(); n != 2 {
		t.Errorf("server saw %d connections, want 2", n)
	}
	if c.SessionID() != "session-2" {
		t.Errorf("SessionID = %q, want session-2", c.SessionID())
	}
}

func TestDisconnectIdempotent(t *testing.T) {
	server := newEchoServer(t)
	c := NewClient(server.config(t))

	if err := c.Connect("session-1", "tok"); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	if err := c.Disconnect(); err != nil {
		t.Errorf("Disconnect failed: %v", err)
	}
	if err := c.Disconnect(); err != nil {
		t.Errorf("second Disconnect failed: %v", err)
	}
	if err := c.Disconnect(); err != nil {
		t.Errorf("third Disconnect failed: %v", err)
	}

	if c.State() != StateDisconnected {
		t.Errorf("state = %s, want disconnected", c.State())
	}
	if c.SessionID() != "" {
		t.Error("session should be cleared after Disconnect")
	}
}

func TestDisconnectWithoutConnect(t *testing.T) {
	c := NewClient(DefaultConfig())

	if err := c.Disconnect(); err != nil {
		t.Errorf("Disconnect of an idle client failed: %v", err)
	}
	if c.State() != StateDisconnected {
		t.Errorf("state = %s, want disconnected", c.State())
	}
}

func TestConnectFailureExhaustsRetries(t *testing.T) {
	// A closed port: dial fails instantly.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	cfg := DefaultConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = port
	cfg.ConnectTimeoutMs = 200
	cfg.ReconnectBaseDelayMs = 1
	cfg.ReconnectMaxDelayMs = 5
	cfg.MaxReconnectAttempts = 0

	c := NewClient(cfg)

	var mu sync.Mutex
	var states []ConnectionState
	c.OnStateChange(func(s ConnectionState) {
		mu.Lock()
		states = append(states, s)
		mu.Unlock()
	})

	if err := c.Connect("session-1", "tok"); err == nil {
		t.Fatal("Connect to a dead port should fail")
	}

	// Exhausted retry budget lands in Disconnected.
	waitFor(t, 3*time.Second, func() bool {
		return c.State() == StateDisconnected
	})

	mu.Lock()
	defer mu.Unlock()
	sawReconnecting := false
	for _, s := range states {
		if s == StateReconnecting {
			sawReconnecting = true
		}
	}
	if !sawReconnecting {
		t.Errorf("states = %v, want a reconnecting transition before giving up", states)
	}
}

func TestSendWhileDisconnected(t *testing.T) {
	c := NewClient(DefaultConfig())

	if err := c.Send(MessageTypeHeartbeat, nil); err == nil {
		t.Error("Send without a connection should fail")
	}
}

func TestStatsCountMessages(t *testing.T) {
	server := newEchoServer(t)
	c := NewClient(server.config(t))

	if err := c.Connect("session-1", "tok"); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer c.Disconnect()

	// The announce frame counts as sent.
	waitFor(t, 2*time.Second, func() bool {
		return c.GetStats().MessagesSent >= 1
	})

	server.push(t, Message{Type: MessageTypePong})
	waitFor(t, 2*time.Second, func() bool {
		return c.GetStats().MessagesReceived >= 1
	})
}
