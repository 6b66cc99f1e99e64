package realtime

import (
	"time"
)

// MessageType represents the type of realtime message
type MessageType string

const (
	MessageTypePeerOnline     MessageType = "peer_online"
	MessageTypePeerOffline    MessageType = "peer_offline"
	MessageTypeNotification   MessageType = "notification"
	MessageTypeAnnounceOnline MessageType = "announce_online"
	MessageTypeHeartbeat      MessageType = "heartbeat"
	MessageTypePong           MessageType = "pong"
	MessageTypeError          MessageType = "error"
)

// PresencePayload is the payload of peer_online/peer_offline events
type PresencePayload struct {
	UserID   string `json:"user_id"`
	Username string `json:"username,omitempty"`
	Status   string `json:"status"`
}

// NotificationPayload is the payload of notification push events
type NotificationPayload struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	SourceID  string    `json:"source_id"`
	TargetID  string    `json:"target_id,omitempty"`
	Message   string    `json:"message,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// AnnouncePayload is sent after every (re)connect to mark the local
// session online
type AnnouncePayload struct {
	SessionID string `json:"session_id"`
}
