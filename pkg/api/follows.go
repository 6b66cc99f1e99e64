package api

import (
	"fmt"

	"github.com/Pradeep-10x/synapse-cli/pkg/client"
	"github.com/Pradeep-10x/synapse-cli/pkg/logger"
)

// FollowResult carries the authoritative follow edge state after a
// follow/unfollow call.
type FollowResult struct {
	Following     bool `json:"following"`
	FollowerCount int  `json:"follower_count"`
}

// FollowUser follows a user
func FollowUser(userID string) (*FollowResult, error) {
	logger.Debug("Following user", "user_id", userID)

	var result FollowResult
	resp, err := client.GetClient().
		R().
		SetResult(&result).
		Post(fmt.Sprintf("/api/v1/users/%s/follow", userID))

	if err != nil {
		return nil, fmt.Errorf("failed to follow user: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to follow user: %s", resp.Status())
	}

	return &result, nil
}

// UnfollowUser unfollows a user
func UnfollowUser(userID string) (*FollowResult, error) {
	logger.Debug("Unfollowing user", "user_id", userID)

	var result FollowResult
	resp, err := client.GetClient().
		R().
		SetResult(&result).
		Delete(fmt.Sprintf("/api/v1/users/%s/follow", userID))

	if err != nil {
		return nil, fmt.Errorf("failed to unfollow user: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to unfollow user: %s", resp.Status())
	}

	return &result, nil
}

// GetFollowers retrieves a user's followers
func GetFollowers(userID string, page, pageSize int) (*UserListResponse, error) {
	logger.Debug("Fetching followers", "user_id", userID, "page", page)

	var response UserListResponse
	resp, err := client.GetClient().
		R().
		SetQueryParams(map[string]string{
			"page":      fmt.Sprintf("%d", page),
			"page_size": fmt.Sprintf("%d", pageSize),
		}).
		SetResult(&response).
		Get(fmt.Sprintf("/api/v1/users/%s/followers", userID))

	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to fetch followers: %s", resp.Status())
	}

	return &response, nil
}

// GetFollowing retrieves the users a user follows
func GetFollowing(userID string, page, pageSize int) (*UserListResponse, error) {
	logger.Debug("Fetching following", "user_id", userID, "page", page)

	var response UserListResponse
	resp, err := client.GetClient().
		R().
		SetQueryParams(map[string]string{
			"page":      fmt.Sprintf("%d", page),
			"page_size": fmt.Sprintf("%d", pageSize),
		}).
		SetResult(&response).
		Get(fmt.Sprintf("/api/v1/users/%s/following", userID))

	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to fetch following: %s", resp.Status())
	}

	return &response, nil
}
