package api

import (
	"fmt"

	"github.com/Pradeep-10x/synapse-cli/pkg/client"
	"github.com/Pradeep-10x/synapse-cli/pkg/logger"
)

// PresenceSnapshot is the authoritative set of currently online peers.
// It is pulled on cold start and after every reconnect, since a missed
// offline push would otherwise leave a stale entry behind forever.
type PresenceSnapshot struct {
	OnlineUserIDs []string `json:"online_user_ids"`
	FetchedAt     string   `json:"fetched_at"`
}

// GetPresenceSnapshot retrieves the ids of peers currently online
func GetPresenceSnapshot() (*PresenceSnapshot, error) {
	logger.Debug("Fetching presence snapshot")

	var response PresenceSnapshot
	resp, err := client.GetClient().
		R().
		SetResult(&response).
		Get("/api/v1/presence/online")

	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to fetch presence snapshot: %s", resp.Status())
	}

	return &response, nil
}

// ActivityStatus represents the user's own presence status
type ActivityStatus struct {
	Status     string `json:"status"` // online, away, offline
	StatusText string `json:"status_text"`
	LastSeen   string `json:"last_seen"`
	IsVisible  bool   `json:"is_visible"`
	UpdatedAt  string `json:"updated_at"`
}

// GetActivityStatus retrieves the current user's activity status
func GetActivityStatus() (*ActivityStatus, error) {
	logger.Debug("Getting activity status")

	var result ActivityStatus
	resp, err := client.GetClient().
		R().
		SetResult(&result).
		Get("/api/v1/users/me/status")

	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to get activity status: %s", resp.Status())
	}

	return &result, nil
}

// SetActivityStatus updates the user's activity status
func SetActivityStatus(status string) (*ActivityStatus, error) {
	logger.Debug("Setting activity status", "status", status)

	request := map[string]string{
		"status": status,
	}

	var result ActivityStatus
	resp, err := client.GetClient().
		R().
		SetBody(request).
		SetResult(&result).
		Post("/api/v1/users/me/status")

	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to set activity status: %s", resp.Status())
	}

	return &result, nil
}
