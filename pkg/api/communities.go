package api

import (
	"fmt"

	"github.com/Pradeep-10x/synapse-cli/pkg/client"
	"github.com/Pradeep-10x/synapse-cli/pkg/logger"
)

// ListCommunities retrieves communities with pagination
func ListCommunities(page, pageSize int) (*CommunityListResponse, error) {
	logger.Debug("Fetching communities", "page", page)

	var response CommunityListResponse

	resp, err := client.GetClient().
		R().
		SetQueryParams(map[string]string{
			"page":      fmt.Sprintf("%d", page),
			"page_size": fmt.Sprintf("%d", pageSize),
		}).
		SetResult(&response).
		Get("/api/v1/communities")

	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to fetch communities: %s", resp.Status())
	}

	return &response, nil
}

// GetCommunity retrieves a single community
func GetCommunity(communityID string) (*Community, error) {
	logger.Debug("Fetching community", "community_id", communityID)

	var response struct {
		Community Community `json:"community"`
	}

	resp, err := client.GetClient().
		R().
		SetResult(&response).
		Get(fmt.Sprintf("/api/v1/communities/%s", communityID))

	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to fetch community: %s", resp.Status())
	}

	return &response.Community, nil
}

// JoinResult carries the authoritative membership state after a
// join/leave call.
type JoinResult struct {
	IsMember    bool `json:"is_member"`
	MemberCount int  `json:"member_count"`
}

// JoinCommunity joins a community
func JoinCommunity(communityID string) (*JoinResult, error) {
	logger.Debug("Joining community", "community_id", communityID)

	var result JoinResult
	resp, err := client.GetClient().
		R().
		SetResult(&result).
		Post(fmt.Sprintf("/api/v1/communities/%s/join", communityID))

	if err != nil {
		return nil, fmt.Errorf("failed to join community: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to join community: %s", resp.Status())
	}

	return &result, nil
}

// LeaveCommunity leaves a community
func LeaveCommunity(communityID string) (*JoinResult, error) {
	logger.Debug("Leaving community", "community_id", communityID)

	var result JoinResult
	resp, err := client.GetClient().
		R().
		SetResult(&result).
		Delete(fmt.Sprintf("/api/v1/communities/%s/join", communityID))

	if err != nil {
		return nil, fmt.Errorf("failed to leave community: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to leave community: %s", resp.Status())
	}

	return &result, nil
}

// GetCommunityFeed retrieves the posts in a community
func GetCommunityFeed(communityID string, page, pageSize int) (*FeedResponse, error) {
	logger.Debug("Fetching community feed", "community_id", communityID, "page", page)

	var response FeedResponse

	resp, err := client.GetClient().
		R().
		SetQueryParams(map[string]string{
			"page":      fmt.Sprintf("%d", page),
			"page_size": fmt.Sprintf("%d", pageSize),
		}).
		SetResult(&response).
		Get(fmt.Sprintf("/api/v1/communities/%s/posts", communityID))

	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to fetch community feed: %s", resp.Status())
	}

	return &response, nil
}
