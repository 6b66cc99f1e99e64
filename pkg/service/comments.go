package service

import (
	"fmt"
	"strings"

	"github.com/Pradeep-10x/synapse-cli/pkg/api"
	"github.com/Pradeep-10x/synapse-cli/pkg/formatter"
)

// CommentService handles comment creation and removal
type CommentService struct{}

// NewCommentService creates a new comment service
func NewCommentService() *CommentService {
	return &CommentService{}
}

// AddComment posts a comment on the given post
func (cs *CommentService) AddComment(postID, content string) error {
	if err := RequireSession(); err != nil {
		return err
	}

	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("comment cannot be empty")
	}

	result, err := api.AddComment(postID, content)
	if err != nil {
		return fmt.Errorf("failed to add comment: %w", err)
	}

	formatter.PrintSuccess("✓ Comment added (%d total)", result.CommentCount)
	return nil
}

// DeleteComment removes a comment the user owns
func (cs *CommentService) DeleteComment(commentID string) error {
	if err := RequireSession(); err != nil {
		return err
	}

	result, err := api.DeleteComment(commentID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	formatter.PrintSuccess("✓ Comment deleted (%d remaining)", result.CommentCount)
	return nil
}

// ShowComments displays the comments on a post
func (cs *CommentService) ShowComments(postID string, page int) error {
	if err := RequireSession(); err != nil {
		return err
	}

	result, err := api.GetComments(postID, page, 20)
	if err != nil {
		return fmt.Errorf("failed to fetch comments: %w", err)
	}

	if len(result.Comments) == 0 {
		fmt.Println("No comments yet.")
		return nil
	}

	fmt.Printf("Comments (%d):\n", result.CommentCount)
	for _, c := range result.Comments {
		username := "unknown"
		if c.User != nil {
			username = c.User.Username
		}
		likeInfo := ""
		if c.LikeCount > 0 {
			likeInfo = fmt.Sprintf("  ♥ %d", c.LikeCount)
		}
		fmt.Printf("%s @%s: %s%s\n", c.ID, username, c.Content, likeInfo)
	}
	return nil
}
