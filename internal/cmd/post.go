package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Pradeep-10x/synapse-cli/pkg/api"
	"github.com/Pradeep-10x/synapse-cli/pkg/formatter"
	"github.com/Pradeep-10x/synapse-cli/pkg/prompter"
	"github.com/Pradeep-10x/synapse-cli/pkg/service"
)

var postCommunityID string

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Create and manage posts",
}

var postCreateCmd = &cobra.Command{
	Use:   "create [content]",
	Short: "Create a new post",
	RunE: func(cmd *cobra.Command, args []string) error {
		content := strings.Join(args, " ")
		if content == "" {
			var err error
			content, err = prompter.PromptMultilineString("What's on your mind?", 50)
			if err != nil {
				return err
			}
		}

		feedSvc := service.NewFeedService()
		return feedSvc.CreatePost(content, postCommunityID)
	},
}

var postShowCmd = &cobra.Command{
	Use:   "show <post-id>",
	Short: "Show a post with its comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		feedSvc := service.NewFeedService()
		return feedSvc.ShowPost(args[0])
	},
}

var postDeleteCmd = &cobra.Command{
	Use:   "delete <post-id>",
	Short: "Delete one of your posts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		confirmed, err := prompter.PromptConfirm(fmt.Sprintf("Delete post %s?", args[0]))
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := api.DeletePost(args[0]); err != nil {
			return fmt.Errorf("failed to delete post: %w", err)
		}
		formatter.PrintSuccess("✓ Post deleted")
		return nil
	},
}

var postLikeCmd = &cobra.Command{
	Use:   "like <post-id>",
	Short: "Like or unlike a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		feedSvc := service.NewFeedService()
		return feedSvc.ToggleLike(args[0])
	},
}

func init() {
	postCreateCmd.Flags().StringVarP(&postCommunityID, "community", "c", "", "Post to a community")

	postCmd.AddCommand(postCreateCmd)
	postCmd.AddCommand(postShowCmd)
	postCmd.AddCommand(postDeleteCmd)
	postCmd.AddCommand(postLikeCmd)
}
