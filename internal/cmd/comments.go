package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Pradeep-10x/synapse-cli/pkg/prompter"
	"github.com/Pradeep-10x/synapse-cli/pkg/service"
)

var commentPage int

var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Comment on posts",
}

var commentAddCmd = &cobra.Command{
	Use:   "add <post-id> [content]",
	Short: "Add a comment to a post",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content := strings.Join(args[1:], " ")
		if content == "" {
			var err error
			content, err = prompter.PromptString("Comment: ")
			if err != nil {
				return err
			}
		}

		commentSvc := service.NewCommentService()
		return commentSvc.AddComment(args[0], content)
	},
}

var commentListCmd = &cobra.Command{
	Use:   "list <post-id>",
	Short: "List comments on a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		commentSvc := service.NewCommentService()
		return commentSvc.ShowComments(args[0], commentPage)
	},
}

var commentDeleteCmd = &cobra.Command{
	Use:   "delete <comment-id>",
	Short: "Delete one of your comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		commentSvc := service.NewCommentService()
		return commentSvc.DeleteComment(args[0])
	},
}

func init() {
	commentListCmd.Flags().IntVarP(&commentPage, "page", "p", 1, "Page number")

	commentCmd.AddCommand(commentAddCmd)
	commentCmd.AddCommand(commentListCmd)
	commentCmd.AddCommand(commentDeleteCmd)
}
