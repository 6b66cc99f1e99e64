package realtime

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Pradeep-10x/synapse-cli/pkg/logger"
	"github.com/gorilla/websocket"
	json "github.com/json-iterator/go"
)

// Message is a single frame on the realtime channel
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Config holds realtime client configuration
type Config struct {
	Host                 string
	Port                 int
	Path                 string
	UseTLS               bool
	ConnectTimeoutMs     int
	HeartbeatIntervalMs  int
	ReconnectBaseDelayMs int
	ReconnectMaxDelayMs  int
	MaxReconnectAttempts int
}

// DefaultConfig returns a development configuration
func DefaultConfig() Config {
	return Config{
		Host:                 "localhost",
		Port:                 8090,
		Path:                 "/api/v1/ws",
		UseTLS:               false,
		ConnectTimeoutMs:     15000,
		HeartbeatIntervalMs:  30000,
		ReconnectBaseDelayMs: 2000,
		ReconnectMaxDelayMs:  30000,
		MaxReconnectAttempts: 5,
	}
}

// ProductionConfig returns a production configuration
func ProductionConfig(host string) Config {
	cfg := DefaultConfig()
	cfg.Host = host
	cfg.Port = 443
	cfg.UseTLS = true
	cfg.ReconnectMaxDelayMs = 60000
	return cfg
}

// ConnectionState represents the state of the realtime connection
type ConnectionState int

const (
	StateDisconnected ConnectionState = iota
	StateConnecting
	StateConnected
	StateReconnecting
)

func (s ConnectionState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateReconnecting:
		return "reconnecting"
	default:
		return "disconnected"
	}
}

// ConnectionStats holds connection statistics
type ConnectionStats struct {
	MessagesReceived int64
	MessagesSent     int64
	ReconnectCount   int
	LastError        string
	ConnectedAt      time.Time
	DisconnectedAt   time.Time
}

// Client owns the single realtime connection for the session. At most
// one live connection exists per session; Connect with a different
// session id tears the old one down and dials fresh.
type Client struct {
	config Config

	mu        sync.RWMutex
	conn      *websocket.Conn
	sessionID string
	token     string
	ctx       context.Context
	cancel    context.CancelFunc

	state atomic.Value // ConnectionState

	reconnectAttempts int
	reconnectDelay    int

	listenersMu    sync.RWMutex
	listeners      map[MessageType]map[int]func(json.RawMessage)
	stateListeners map[int]func(ConnectionState)
	nextListenerID int

	statsLock sync.RWMutex
	stats     ConnectionStats
}

// NewClient creates a new realtime client
func NewClient(config Config) *Client {
	client := &Client{
		config:         config,
		listeners:      make(map[MessageType]map[int]func(json.RawMessage)),
		stateListeners: make(map[int]func(ConnectionState)),
		reconnectDelay: config.ReconnectBaseDelayMs,
	}
	client.state.Store(StateDisconnected)
	return client
}

// Connect establishes the realtime connection for the given session.
// Calling it while a connection for the same session is live is a
// no-op; a different session id replaces the connection.
func (c *Client) Connect(sessionID, token string) error {
	c.mu.Lock()
	if c.conn != nil {
		if c.sessionID == sessionID {
			c.mu.Unlock()
			return nil
		}
		// Never let the channel carry a stale identity.
		c.mu.Unlock()
		c.Disconnect()
		c.mu.Lock()
	}
	c.sessionID = sessionID
	c.token = token
	ctx, cancel := context.WithCancel(context.Background())
	c.ctx = ctx
	c.cancel = cancel
	c.mu.Unlock()

	c.setState(StateConnecting)

	conn, err := c.dial(ctx)
	if err != nil {
		c.recordError(err.Error())
		// A failed handshake goes through the same bounded retry path
		// as a mid-session drop.
		go c.reconnectLoop(ctx)
		return err
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	c.onConnected(ctx)

	logger.Debug("Realtime connected", "host", c.config.Host, "port", c.config.Port, "session_id", sessionID)
	return nil
}

// Disconnect closes the connection and releases all resources. Safe to
// call any number of times, including when nothing is connected.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.sessionID = ""
	c.token = ""
	c.mu.Unlock()

	if c.getState() != StateDisconnected {
		c.setState(StateDisconnected)
		c.recordDisconnected()
		logger.Debug("Realtime disconnected")
	}
	return nil
}

// IsConnected returns true if the connection is established
func (c *Client) IsConnected() bool {
	return c.getState() == StateConnected
}

// State returns the current connection state
func (c *Client) State() ConnectionState {
	return c.getState()
}

// SessionID returns the session the connection is bound to, or "" when
// disconnected.
func (c *Client) SessionID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionID
}

// On subscribes to a message type and returns an unsubscribe function
func (c *Client) On(msgType MessageType, callback func(json.RawMessage)) func() {
	c.listenersMu.Lock()
	id := c.nextListenerID
	c.nextListenerID++
	if c.listeners[msgType] == nil {
		c.listeners[msgType] = make(map[int]func(json.RawMessage))
	}
	c.listeners[msgType][id] = callback
	c.listenersMu.Unlock()

	return func() {
		c.listenersMu.Lock()
		defer c.listenersMu.Unlock()
		delete(c.listeners[msgType], id)
	}
}

// OnStateChange subscribes to connection state transitions and returns
// an unsubscribe function. Used for the offline indicator and for
// resync-on-reconnect.
func (c *Client) OnStateChange(callback func(ConnectionState)) func() {
	c.listenersMu.Lock()
	id := c.nextListenerID
	c.nextListenerID++
	c.stateListeners[id] = callback
	c.listenersMu.Unlock()

	return func() {
		c.listenersMu.Lock()
		defer c.listenersMu.Unlock()
		delete(c.stateListeners, id)
	}
}

// Send sends a message to the server
func (c *Client) Send(msgType MessageType, payload interface{}) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("not connected")
	}

	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		raw = data
	}

	data, err := json.Marshal(Message{Type: msgType, Payload: raw})
	if err != nil {
		return err
	}

	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return err
	}

	c.recordMessageSent()
	return nil
}

// GetStats returns connection statistics
func (c *Client) GetStats() ConnectionStats {
	c.statsLock.RLock()
	defer c.statsLock.RUnlock()
	return c.stats
}

// Private methods

func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	scheme := "ws"
	if c.config.UseTLS {
		scheme = "wss"
	}

	u := url.URL{
		Scheme: scheme,
		Host:   fmt.Sprintf("%s:%d", c.config.Host, c.config.Port),
		Path:   c.config.Path,
	}

	c.mu.RLock()
	sessionID, token := c.sessionID, c.token
	c.mu.RUnlock()

	q := u.Query()
	q.Set("session_id", sessionID)
	if token != "" {
		q.Set("token", token)
	}
	u.RawQuery = q.Encode()

	// Bounded handshake: a hung dial becomes a retry, not a stall.
	timeout := time.Duration(c.config.ConnectTimeoutMs) * time.Millisecond
	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, u.String(), nil)
	return conn, err
}

// onConnected runs the side effects of entering Connected: announce the
// local session online and restart the read/heartbeat loops.
func (c *Client) onConnected(ctx context.Context) {
	c.setState(StateConnected)
	c.reconnectAttempts = 0
	c.reconnectDelay = c.config.ReconnectBaseDelayMs
	c.recordConnected()

	c.mu.RLock()
	sessionID := c.sessionID
	c.mu.RUnlock()

	if err := c.Send(MessageTypeAnnounceOnline, AnnouncePayload{SessionID: sessionID}); err != nil {
		logger.Debug("Failed to announce online", "error", err)
	}

	go c.readLoop(ctx)
	go c.heartbeatLoop(ctx)
}

func (c *Client) readLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		c.mu.RLock()
		conn := c.conn
		c.mu.RUnlock()

		if conn == nil {
			return
		}

		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			select {
			case <-ctx.Done():
				// Disconnect() closed the socket under us; not a drop.
				return
			default:
			}
			c.recordError(err.Error())
			logger.Error("Realtime read error", "error", err)
			go c.reconnectLoop(ctx)
			return
		}

		c.recordMessageReceived()
		c.dispatch(msg)
	}
}

// dispatch delivers a message to its listeners synchronously, so
// events are observed in arrival order.
func (c *Client) dispatch(msg Message) {
	c.listenersMu.RLock()
	callbacks := make([]func(json.RawMessage), 0, len(c.listeners[msg.Type]))
	for _, cb := range c.listeners[msg.Type] {
		callbacks = append(callbacks, cb)
	}
	c.listenersMu.RUnlock()

	for _, callback := range callbacks {
		callback(msg.Payload)
	}
}

func (c *Client) heartbeatLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Duration(c.config.HeartbeatIntervalMs) * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if c.IsConnected() {
				if err := c.Send(MessageTypeHeartbeat, nil); err != nil {
					logger.Debug("Failed to send heartbeat", "error", err)
				}
			}
		}
	}
}

// reconnectLoop retries the dial with exponential backoff and jitter.
// Exhausting the retry budget lands in Disconnected, which the UI
// shows as a degraded/offline indicator.
func (c *Client) reconnectLoop(ctx context.Context) {
	c.mu.Lock()
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.mu.Unlock()

	c.setState(StateReconnecting)
	c.recordDisconnected()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if c.config.MaxReconnectAttempts >= 0 && c.reconnectAttempts >= c.config.MaxReconnectAttempts {
			logger.Error("Max reconnection attempts reached", "attempts", c.reconnectAttempts)
			c.setState(StateDisconnected)
			return
		}

		backoff := time.Duration(c.reconnectDelay) * time.Millisecond
		jitter := time.Duration(rand.Intn(1000)) * time.Millisecond
		waitTime := backoff + jitter

		logger.Debug("Reconnecting realtime channel", "attempt", c.reconnectAttempts+1, "wait_ms", waitTime.Milliseconds())

		select {
		case <-ctx.Done():
			return
		case <-time.After(waitTime):
		}

		conn, err := c.dial(ctx)
		if err != nil {
			c.reconnectAttempts++
			// Exponential backoff: 2x each time, capped at max
			c.reconnectDelay = int(math.Min(
				float64(c.reconnectDelay*2),
				float64(c.config.ReconnectMaxDelayMs),
			))
			continue
		}

		c.mu.Lock()
		c.conn = conn
		c.mu.Unlock()

		c.statsLock.Lock()
		c.stats.ReconnectCount++
		c.statsLock.Unlock()

		c.onConnected(ctx)

		logger.Debug("Realtime reconnected")
		return
	}
}

func (c *Client) setState(state ConnectionState) {
	if c.state.Swap(state) == state {
		return
	}

	c.listenersMu.RLock()
	callbacks := make([]func(ConnectionState), 0, len(c.stateListeners))
	for _, cb := range c.stateListeners {
		callbacks = append(callbacks, cb)
	}
	c.listenersMu.RUnlock()

	for _, callback := range callbacks {
		callback(state)
	}
}

func (c *Client) getState() ConnectionState {
	return c.state.Load().(ConnectionState)
}

func (c *Client) recordMessageReceived() {
	c.statsLock.Lock()
	c.stats.MessagesReceived++
	c.statsLock.Unlock()
}

func (c *Client) recordMessageSent() {
	c.statsLock.Lock()
	c.stats.MessagesSent++
	c.statsLock.Unlock()
}

func (c *Client) recordError(errMsg string) {
	c.statsLock.Lock()
	c.stats.LastError = errMsg
	c.statsLock.Unlock()
}

func (c *Client) recordConnected() {
	c.statsLock.Lock()
	c.stats.ConnectedAt = time.Now()
	c.statsLock.Unlock()
}

func (c *Client) recordDisconnected() {
	c.statsLock.Lock()
	c.stats.DisconnectedAt = time.Now()
	c.statsLock.Unlock()
}
