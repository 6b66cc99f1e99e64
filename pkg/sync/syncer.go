package sync

import (
	"github.com/Pradeep-10x/synapse-cli/pkg/api"
	"github.com/Pradeep-10x/synapse-cli/pkg/logger"
	"github.com/Pradeep-10x/synapse-cli/pkg/realtime"
	json "github.com/json-iterator/go"
)

// Syncer wires the realtime channel into the presence registry and the
// notification mirror, and keeps both honest across reconnects: a
// fresh snapshot of each is pulled whenever the connection comes back,
// and the presence set is cleared whenever it goes away.
type Syncer struct {
	rt            *realtime.Client
	guard         *SessionGuard
	Presence      *PresenceRegistry
	Notifications *NotificationMirror

	fetchPresence      func() ([]string, error)
	fetchNotifications func() ([]api.Notification, error)

	unsubs []func()
}

// NewSyncer creates a syncer over the given client and guard. The
// fetch functions pull authoritative snapshots for resync.
func NewSyncer(
	rt *realtime.Client,
	guard *SessionGuard,
	fetchPresence func() ([]string, error),
	fetchNotifications func() ([]api.Notification, error),
) *Syncer {
	return &Syncer{
		rt:                 rt,
		guard:              guard,
		Presence:           NewPresenceRegistry(),
		Notifications:      NewNotificationMirror(),
		fetchPresence:      fetchPresence,
		fetchNotifications: fetchNotifications,
	}
}

// Start subscribes to push events and state transitions. Call Stop to
// release the subscriptions.
func (s *Syncer) Start() {
	s.unsubs = append(s.unsubs,
		s.rt.On(realtime.MessageTypePeerOnline, s.handlePeerOnline),
		s.rt.On(realtime.MessageTypePeerOffline, s.handlePeerOffline),
		s.rt.On(realtime.MessageTypeNotification, s.handleNotification),
		s.rt.OnStateChange(s.handleStateChange),
	)
}

// Stop unsubscribes from the realtime client
func (s *Syncer) Stop() {
	for _, unsub := range s.unsubs {
		unsub()
	}
	s.unsubs = nil
}

func (s *Syncer) handlePeerOnline(payload json.RawMessage) {
	var p realtime.PresencePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		logger.Error("Invalid peer_online payload", "error", err)
		return
	}
	s.Presence.MarkOnline(p.UserID)
}

func (s *Syncer) handlePeerOffline(payload json.RawMessage) {
	var p realtime.PresencePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		logger.Error("Invalid peer_offline payload", "error", err)
		return
	}
	s.Presence.MarkOffline(p.UserID)
}

func (s *Syncer) handleNotification(payload json.RawMessage) {
	var p realtime.NotificationPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		logger.Error("Invalid notification payload", "error", err)
		return
	}

	inserted := s.Notifications.OnPush(api.Notification{
		ID:        p.ID,
		Kind:      p.Kind,
		SourceID:  p.SourceID,
		TargetID:  p.TargetID,
		Message:   p.Message,
		IsRead:    p.IsRead,
		CreatedAt: p.CreatedAt,
	})
	if !inserted {
		logger.Debug("Duplicate notification push suppressed", "id", p.ID)
	}
}

func (s *Syncer) handleStateChange(state realtime.ConnectionState) {
	switch state {
	case realtime.StateConnected:
		go s.Resync()
	case realtime.StateDisconnected, realtime.StateReconnecting:
		// Without a live channel peer-offline events are lost, so the
		// set is unknowable rather than empty-but-stale.
		s.Presence.Clear()
	}
}

// Resync pulls authoritative snapshots of presence and notifications.
// Results that arrive after the issuing session has ended are
// discarded, never applied.
func (s *Syncer) Resync() {
	epoch := s.guard.Epoch()

	if s.fetchPresence != nil {
		ids, err := s.fetchPresence()
		if err != nil {
			logger.Error("Presence resync failed", "error", err)
		} else if s.guard.StillCurrent(epoch) {
			s.Presence.Resync(ids)
		} else {
			logger.Debug("Discarding stale presence snapshot")
		}
	}

	if s.fetchNotifications != nil {
		if !s.guard.StillCurrent(epoch) {
			return
		}
		err := s.Notifications.Pull(func() ([]api.Notification, error) {
			records, err := s.fetchNotifications()
			if err != nil {
				return nil, err
			}
			if !s.guard.StillCurrent(epoch) {
				logger.Debug("Discarding stale notification snapshot")
				return nil, errStaleSession
			}
			return records, nil
		})
		if err != nil && err != errStaleSession {
			logger.Error("Notification resync failed", "error", err)
		}
	}
}
