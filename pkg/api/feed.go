package api

import (
	"fmt"

	"github.com/Pradeep-10x/synapse-cli/pkg/client"
	"github.com/Pradeep-10x/synapse-cli/pkg/logger"
)

// GetFeed retrieves a feed by type ("home", "explore", "community") with pagination
func GetFeed(feedType string, page, pageSize int) (*FeedResponse, error) {
	logger.Debug("Fetching feed", "type", feedType, "page", page)

	var response FeedResponse

	resp, err := client.GetClient().
		R().
		SetQueryParams(map[string]string{
			"page":      fmt.Sprintf("%d", page),
			"page_size": fmt.Sprintf("%d", pageSize),
		}).
		SetResult(&response).
		Get(fmt.Sprintf("/api/v1/feed/%s", feedType))

	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to fetch feed: %s", resp.Status())
	}

	return &response, nil
}

// GetPost retrieves a single post by id
func GetPost(postID string) (*Post, error) {
	logger.Debug("Fetching post", "post_id", postID)

	var response struct {
		Post Post `json:"post"`
	}

	resp, err := client.GetClient().
		R().
		SetResult(&response).
		Get(fmt.Sprintf("/api/v1/posts/%s", postID))

	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to fetch post: %s", resp.Status())
	}

	return &response.Post, nil
}

// CreatePost publishes a new post
func CreatePost(content, communityID string) (*Post, error) {
	logger.Debug("Creating post", "community_id", communityID)

	req := map[string]string{
		"content": content,
	}
	if communityID != "" {
		req["community_id"] = communityID
	}

	var response struct {
		Post Post `json:"post"`
	}

	resp, err := client.GetClient().
		R().
		SetBody(req).
		SetResult(&response).
		Post("/api/v1/posts")

	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to create post: %s", resp.Status())
	}

	return &response.Post, nil
}

// DeletePost removes one of the user's own posts
func DeletePost(postID string) error {
	logger.Debug("Deleting post", "post_id", postID)

	resp, err := client.GetClient().
		R().
		Delete(fmt.Sprintf("/api/v1/posts/%s", postID))

	if err != nil {
		return err
	}

	if !resp.IsSuccess() {
		return fmt.Errorf("failed to delete post: %s", resp.Status())
	}

	return nil
}
