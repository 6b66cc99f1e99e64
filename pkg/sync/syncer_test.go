package sync

import (
	"testing"
	"time"

	"github.com/Pradeep-10x/synapse-cli/pkg/api"
	"github.com/Pradeep-10x/synapse-cli/pkg/realtime"
	json "github.com/json-iterator/go"
)

func newTestSyncer(t *testing.T, presence []string, notifications []api.Notification) (*Syncer, *SessionGuard) {
	t.Helper()

	guard := NewSessionGuard(&fakeConnector{})
	s := NewSyncer(
		realtime.NewClient(realtime.DefaultConfig()),
		guard,
		func() ([]string, error) { return presence, nil },
		func() ([]api.Notification, error) { return notifications, nil },
	)
	return s, guard
}

func TestHandlePeerOnlineAndOffline(t *testing.T) {
	s, _ := newTestSyncer(t, nil, nil)

	payload, _ := json.Marshal(realtime.PresencePayload{UserID: "u1", Status: "online"})
	s.handlePeerOnline(payload)

	if !s.Presence.IsOnline("u1") {
		t.Error("peer_online should mark the peer online")
	}

	payload, _ = json.Marshal(realtime.PresencePayload{UserID: "u1", Status: "offline"})
	s.handlePeerOffline(payload)

	if s.Presence.IsOnline("u1") {
		t.Error("peer_offline should mark the peer offline")
	}
}

func TestHandlePeerOnlineBadPayload(t *testing.T) {
	s, _ := newTestSyncer(t, nil, nil)

	s.handlePeerOnline([]byte(`{invalid`))

	if s.Presence.Len() != 0 {
		t.Error("malformed payload should be dropped")
	}
}

func TestHandleNotificationFeedsMirror(t *testing.T) {
	s, _ := newTestSyncer(t, nil, nil)

	payload, _ := json.Marshal(realtime.NotificationPayload{
		ID:        "n1",
		Kind:      api.NotificationKindFollow,
		SourceID:  "u2",
		CreatedAt: time.Now(),
	})
	s.handleNotification(payload)
	s.handleNotification(payload) // duplicate push

	if s.Notifications.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (duplicate suppressed)", s.Notifications.Len())
	}
	if s.Notifications.UnreadCount() != 1 {
		t.Errorf("UnreadCount() = %d, want 1", s.Notifications.UnreadCount())
	}
}

func TestResyncAppliesSnapshots(t *testing.T) {
	s, guard := newTestSyncer(t,
		[]string{"u1", "u2"},
		[]api.Notification{{ID: "n1", IsRead: false}},
	)

	// Stale local state from before a reconnect.
	s.Presence.MarkOnline("ghost")

	_ = guard.Begin(&Session{UserID: "me"})
	s.Resync()

	if s.Presence.IsOnline("ghost") {
		t.Error("resync should drop peers missing from the snapshot")
	}
	if !s.Presence.IsOnline("u1") || !s.Presence.IsOnline("u2") {
		t.Error("resync should install the snapshot peers")
	}
	if s.Notifications.Len() != 1 {
		t.Errorf("notification mirror Len() = %d, want 1", s.Notifications.Len())
	}
}

func TestResyncDiscardsStaleResults(t *testing.T) {
	s, guard := newTestSyncer(t, []string{"u1"}, []api.Notification{{ID: "n1"}})

	// No session is live, so any snapshot that comes back is stale.
	guard.End()
	s.Resync()

	if s.Presence.Len() != 0 {
		t.Error("a snapshot without a live session must be discarded")
	}
	if s.Notifications.Len() != 0 {
		t.Error("a notification snapshot without a live session must be discarded")
	}
}

func TestStateChangeClearsPresence(t *testing.T) {
	s, _ := newTestSyncer(t, nil, nil)

	s.Presence.MarkOnline("u1")

	s.handleStateChange(realtime.StateDisconnected)
	if s.Presence.Len() != 0 {
		t.Error("disconnect should clear the presence set")
	}

	s.Presence.MarkOnline("u2")
	s.handleStateChange(realtime.StateReconnecting)
	if s.Presence.Len() != 0 {
		t.Error("reconnecting should clear the presence set")
	}
}

func TestStartStopSubscribes(t *testing.T) {
	s, _ := newTestSyncer(t, nil, nil)

	s.Start()
	if len(s.unsubs) == 0 {
		t.Error("Start should register subscriptions")
	}

	s.Stop()
	if s.unsubs != nil {
		t.Error("Stop should release subscriptions")
	}
}
