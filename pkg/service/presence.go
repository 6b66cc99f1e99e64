package service

import (
	"fmt"

	"github.com/Pradeep-10x/synapse-cli/pkg/api"
	"github.com/Pradeep-10x/synapse-cli/pkg/formatter"
	"github.com/Pradeep-10x/synapse-cli/pkg/logger"
)

// PresenceService exposes who-is-online queries and the user's own
// activity status.
type PresenceService struct{}

// NewPresenceService creates a new presence service
func NewPresenceService() *PresenceService {
	return &PresenceService{}
}

// ShowOnlineUsers fetches and displays the current presence snapshot
func (ps *PresenceService) ShowOnlineUsers() error {
	if err := RequireSession(); err != nil {
		return err
	}

	logger.Debug("Fetching presence snapshot")

	snapshot, err := api.GetPresenceSnapshot()
	if err != nil {
		return fmt.Errorf("failed to fetch presence: %w", err)
	}

	if len(snapshot.OnlineUserIDs) == 0 {
		fmt.Println("Nobody online right now.")
		return nil
	}

	formatter.PrintInfo("🟢 %d user%s online", len(snapshot.OnlineUserIDs), pluralize(len(snapshot.OnlineUserIDs)))
	for _, id := range snapshot.OnlineUserIDs {
		fmt.Printf("  %s\n", id)
	}
	return nil
}

// ShowActivityStatus displays the current user's own activity status
func (ps *PresenceService) ShowActivityStatus() error {
	if err := RequireSession(); err != nil {
		return err
	}

	status, err := api.GetActivityStatus()
	if err != nil {
		return fmt.Errorf("failed to fetch activity status: %w", err)
	}

	switch status.Status {
	case "online":
		formatter.PrintSuccess("🟢 online")
	case "away":
		formatter.PrintWarning("🟡 away")
	default:
		fmt.Println("⚪ offline")
	}
	if status.StatusText != "" {
		fmt.Printf("  %s\n", status.StatusText)
	}
	if status.LastSeen != "" {
		fmt.Printf("  last seen: %s\n", status.LastSeen)
	}
	return nil
}

// SetActivityStatus updates the user's own activity status
func (ps *PresenceService) SetActivityStatus(status string) error {
	if err := RequireSession(); err != nil {
		return err
	}

	switch status {
	case "online", "away", "offline":
	default:
		return fmt.Errorf("invalid status %q (want online, away, or offline)", status)
	}

	result, err := api.SetActivityStatus(status)
	if err != nil {
		return fmt.Errorf("failed to update activity status: %w", err)
	}

	formatter.PrintSuccess("✓ Status set to %s", result.Status)
	return nil
}
