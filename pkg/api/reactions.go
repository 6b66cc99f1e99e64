package api

import (
	"fmt"

	"github.com/Pradeep-10x/synapse-cli/pkg/client"
	"github.com/Pradeep-10x/synapse-cli/pkg/logger"
)

// ReactionResult carries the server-authoritative state after a
// like/unlike call. Toggles are not idempotent against concurrent
// edits from other sessions, so callers reconcile to these values.
type ReactionResult struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

// LikePost likes a post and returns the authoritative like state
func LikePost(postID string) (*ReactionResult, error) {
	logger.Debug("Liking post", "post_id", postID)

	var result ReactionResult
	resp, err := client.GetClient().
		R().
		SetResult(&result).
		Post(fmt.Sprintf("/api/v1/posts/%s/like", postID))

	if err != nil {
		return nil, fmt.Errorf("failed to like post: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to like post: %s", resp.Status())
	}

	return &result, nil
}

// UnlikePost removes a like from a post
func UnlikePost(postID string) (*ReactionResult, error) {
	logger.Debug("Unliking post", "post_id", postID)

	var result ReactionResult
	resp, err := client.GetClient().
		R().
		SetResult(&result).
		Delete(fmt.Sprintf("/api/v1/posts/%s/like", postID))

	if err != nil {
		return nil, fmt.Errorf("failed to unlike post: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to unlike post: %s", resp.Status())
	}

	return &result, nil
}

// LikeComment likes a comment
func LikeComment(commentID string) (*ReactionResult, error) {
	logger.Debug("Liking comment", "comment_id", commentID)

	var result ReactionResult
	resp, err := client.GetClient().
		R().
		SetResult(&result).
		Post(fmt.Sprintf("/api/v1/comments/%s/like", commentID))

	if err != nil {
		return nil, fmt.Errorf("failed to like comment: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to like comment: %s", resp.Status())
	}

	return &result, nil
}

// UnlikeComment removes a like from a comment
func UnlikeComment(commentID string) (*ReactionResult, error) {
	logger.Debug("Unliking comment", "comment_id", commentID)

	var result ReactionResult
	resp, err := client.GetClient().
		R().
		SetResult(&result).
		Delete(fmt.Sprintf("/api/v1/comments/%s/like", commentID))

	if err != nil {
		return nil, fmt.Errorf("failed to unlike comment: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to unlike comment: %s", resp.Status())
	}

	return &result, nil
}

// LikeReel likes a reel
func LikeReel(reelID string) (*ReactionResult, error) {
	logger.Debug("Liking reel", "reel_id", reelID)

	var result ReactionResult
	resp, err := client.GetClient().
		R().
		SetResult(&result).
		Post(fmt.Sprintf("/api/v1/reels/%s/like", reelID))

	if err != nil {
		return nil, fmt.Errorf("failed to like reel: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to like reel: %s", resp.Status())
	}

	return &result, nil
}

// UnlikeReel removes a like from a reel
func UnlikeReel(reelID string) (*ReactionResult, error) {
	logger.Debug("Unliking reel", "reel_id", reelID)

	var result ReactionResult
	resp, err := client.GetClient().
		R().
		SetResult(&result).
		Delete(fmt.Sprintf("/api/v1/reels/%s/like", reelID))

	if err != nil {
		return nil, fmt.Errorf("failed to unlike reel: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to unlike reel: %s", resp.Status())
	}

	return &result, nil
}
