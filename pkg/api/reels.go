package api

import (
	"fmt"

	"github.com/Pradeep-10x/synapse-cli/pkg/client"
	"github.com/Pradeep-10x/synapse-cli/pkg/logger"
)

// GetReels retrieves the reels feed with pagination
func GetReels(page, pageSize int) (*ReelListResponse, error) {
	logger.Debug("Fetching reels", "page", page)

	var response ReelListResponse

	resp, err := client.GetClient().
		R().
		SetQueryParams(map[string]string{
			"page":      fmt.Sprintf("%d", page),
			"page_size": fmt.Sprintf("%d", pageSize),
		}).
		SetResult(&response).
		Get("/api/v1/reels")

	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to fetch reels: %s", resp.Status())
	}

	return &response, nil
}

// GetUserReels retrieves a user's reels
func GetUserReels(userID string, page, pageSize int) (*ReelListResponse, error) {
	logger.Debug("Fetching user reels", "user_id", userID, "page", page)

	var response ReelListResponse

	resp, err := client.GetClient().
		R().
		SetQueryParams(map[string]string{
			"page":      fmt.Sprintf("%d", page),
			"page_size": fmt.Sprintf("%d", pageSize),
		}).
		SetResult(&response).
		Get(fmt.Sprintf("/api/v1/users/%s/reels", userID))

	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to fetch user reels: %s", resp.Status())
	}

	return &response, nil
}
