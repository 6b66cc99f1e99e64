package api

import (
	"fmt"

	"github.com/Pradeep-10x/synapse-cli/pkg/client"
	"github.com/Pradeep-10x/synapse-cli/pkg/logger"
	json "github.com/json-iterator/go"
)

// GetUserProfile retrieves a user's public profile by username
func GetUserProfile(username string) (*User, error) {
	logger.Debug("Fetching user profile", "username", username)

	resp, err := client.GetClient().
		R().
		Get(fmt.Sprintf("/api/v1/users/%s", username))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var profileResp ProfileResponse
	if err := json.Unmarshal(resp.Body(), &profileResp); err != nil {
		return nil, err
	}

	return &profileResp.User, nil
}

// ProfileUpdate holds the editable profile fields
type ProfileUpdate struct {
	DisplayName string `json:"display_name,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Location    string `json:"location,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	CoverURL    string `json:"cover_url,omitempty"`
	IsPrivate   *bool  `json:"is_private,omitempty"`
}

// UpdateProfile updates the current user's profile
func UpdateProfile(update ProfileUpdate) (*User, error) {
	logger.Debug("Updating profile")

	resp, err := client.GetClient().
		R().
		SetBody(update).
		Patch("/api/v1/users/me")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var profileResp ProfileResponse
	if err := json.Unmarshal(resp.Body(), &profileResp); err != nil {
		return nil, err
	}

	logger.Debug("Profile updated", "username", profileResp.User.Username)
	return &profileResp.User, nil
}

// SearchUsers searches for users by name or username
func SearchUsers(query string, page, pageSize int) (*UserListResponse, error) {
	logger.Debug("Searching users", "query", query, "page", page)

	var response UserListResponse

	resp, err := client.GetClient().
		R().
		SetQueryParams(map[string]string{
			"q":         query,
			"page":      fmt.Sprintf("%d", page),
			"page_size": fmt.Sprintf("%d", pageSize),
		}).
		SetResult(&response).
		Get("/api/v1/users/search")

	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to search users: %s", resp.Status())
	}

	return &response, nil
}

// SearchPosts searches for posts with a query
func SearchPosts(query string, page, pageSize int) (*FeedResponse, error) {
	logger.Debug("Searching posts", "query", query, "page", page)

	var response FeedResponse

	resp, err := client.GetClient().
		R().
		SetQueryParams(map[string]string{
			"q":         query,
			"page":      fmt.Sprintf("%d", page),
			"page_size": fmt.Sprintf("%d", pageSize),
		}).
		SetResult(&response).
		Get("/api/v1/posts/search")

	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to search posts: %s", resp.Status())
	}

	return &response, nil
}
