package api

import (
	"fmt"

	"github.com/Pradeep-10x/synapse-cli/pkg/client"
	"github.com/Pradeep-10x/synapse-cli/pkg/logger"
)

// CommentResult carries the authoritative comment count after an
// add/delete call.
type CommentResult struct {
	Comment      *Comment `json:"comment,omitempty"`
	CommentCount int      `json:"comment_count"`
}

// GetComments retrieves comments on a post with pagination
func GetComments(postID string, page, pageSize int) (*CommentListResponse, error) {
	logger.Debug("Fetching comments", "post_id", postID, "page", page)

	var response CommentListResponse

	resp, err := client.GetClient().
		R().
		SetQueryParams(map[string]string{
			"page":      fmt.Sprintf("%d", page),
			"page_size": fmt.Sprintf("%d", pageSize),
		}).
		SetResult(&response).
		Get(fmt.Sprintf("/api/v1/posts/%s/comments", postID))

	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to fetch comments: %s", resp.Status())
	}

	return &response, nil
}

// AddComment adds a comment to a post
func AddComment(postID, content string) (*CommentResult, error) {
	logger.Debug("Adding comment", "post_id", postID)

	req := map[string]string{
		"content": content,
	}

	var result CommentResult
	resp, err := client.GetClient().
		R().
		SetBody(req).
		SetResult(&result).
		Post(fmt.Sprintf("/api/v1/posts/%s/comments", postID))

	if err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to add comment: %s", resp.Status())
	}

	return &result, nil
}

// DeleteComment deletes a comment
func DeleteComment(commentID string) (*CommentResult, error) {
	logger.Debug("Deleting comment", "comment_id", commentID)

	var result CommentResult
	resp, err := client.GetClient().
		R().
		SetResult(&result).
		Delete(fmt.Sprintf("/api/v1/comments/%s", commentID))

	if err != nil {
		return nil, fmt.Errorf("failed to delete comment: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to delete comment: %s", resp.Status())
	}

	return &result, nil
}
