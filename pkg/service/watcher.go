package service

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Pradeep-10x/synapse-cli/pkg/api"
	"github.com/Pradeep-10x/synapse-cli/pkg/formatter"
	"github.com/Pradeep-10x/synapse-cli/pkg/logger"
	"github.com/Pradeep-10x/synapse-cli/pkg/realtime"
	syncpkg "github.com/Pradeep-10x/synapse-cli/pkg/sync"
	json "github.com/json-iterator/go"
)

// WatcherService runs the live session: it connects the realtime
// channel, keeps the presence registry and notification mirror in
// sync, and prints pushes as they arrive until interrupted.
type WatcherService struct {
	rt     *realtime.Client
	guard  *syncpkg.SessionGuard
	syncer *syncpkg.Syncer
}

// NewWatcherService creates a watcher over the shared realtime client
func NewWatcherService() *WatcherService {
	rt := realtime.GetClient()
	guard := syncpkg.NewSessionGuard(rt)
	syncer := syncpkg.NewSyncer(rt, guard,
		func() ([]string, error) {
			snapshot, err := api.GetPresenceSnapshot()
			if err != nil {
				return nil, err
			}
			return snapshot.OnlineUserIDs, nil
		},
		func() ([]api.Notification, error) {
			resp, err := api.GetNotifications(1, 50, false)
			if err != nil {
				return nil, err
			}
			return resp.Notifications, nil
		},
	)
	return &WatcherService{rt: rt, guard: guard, syncer: syncer}
}

// Watch streams realtime events to the terminal until ctx is done or
// an interrupt arrives. Presence changes and notifications both show.
func (ws *WatcherService) Watch(ctx context.Context) error {
	if err := RequireSession(); err != nil {
		return err
	}

	creds, err := CurrentSessionCreds()
	if err != nil {
		return err
	}

	ws.syncer.Start()
	defer ws.syncer.Stop()

	unsubs := []func(){
		ws.rt.On(realtime.MessageTypePeerOnline, func(payload json.RawMessage) {
			var p realtime.PresencePayload
			if err := json.Unmarshal(payload, &p); err != nil {
				return
			}
			formatter.PrintSuccess("🟢 %s is now online", peerName(p))
		}),
		ws.rt.On(realtime.MessageTypePeerOffline, func(payload json.RawMessage) {
			var p realtime.PresencePayload
			if err := json.Unmarshal(payload, &p); err != nil {
				return
			}
			fmt.Printf("⚪ %s went offline\n", peerName(p))
		}),
		ws.rt.On(realtime.MessageTypeNotification, func(payload json.RawMessage) {
			var p realtime.NotificationPayload
			if err := json.Unmarshal(payload, &p); err != nil {
				return
			}
			fmt.Println(FormatNotification(api.Notification{
				ID:        p.ID,
				Kind:      p.Kind,
				SourceID:  p.SourceID,
				TargetID:  p.TargetID,
				Message:   p.Message,
				IsRead:    p.IsRead,
				CreatedAt: p.CreatedAt,
			}))
		}),
		ws.rt.OnStateChange(func(state realtime.ConnectionState) {
			switch state {
			case realtime.StateConnected:
				formatter.PrintInfo("Connected.")
			case realtime.StateReconnecting:
				formatter.PrintWarning("Connection lost, reconnecting...")
			case realtime.StateDisconnected:
				formatter.PrintWarning("Disconnected.")
			}
		}),
	}
	defer func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}()

	session := &syncpkg.Session{
		UserID:      creds.UserID,
		Username:    creds.Username,
		DisplayName: creds.DisplayName,
		Token:       creds.AccessToken,
	}
	if err := ws.guard.Begin(session); err != nil {
		return fmt.Errorf("failed to connect realtime channel: %w", err)
	}
	defer ws.guard.End()

	formatter.PrintInfo("Watching for live updates (Ctrl+C to stop)...")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-ctx.Done():
		logger.Debug("Watch context cancelled")
	case <-sigCh:
		fmt.Println()
		logger.Debug("Watch interrupted")
	}

	fmt.Println("Stopped watching.")
	return nil
}

// OnlinePeers returns the registry's current view, for inspection
// while watching.
func (ws *WatcherService) OnlinePeers() []string {
	return ws.syncer.Presence.Snapshot()
}

func peerName(p realtime.PresencePayload) string {
	if p.Username != "" {
		return p.Username
	}
	return p.UserID
}
