package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Pradeep-10x/synapse-cli/pkg/service"
)

var (
	followersPage int
	followingPage int
)

var followCmd = &cobra.Command{
	Use:   "follow <username>",
	Short: "Follow or unfollow a user",
	Long:  "Follows the user if you don't already, unfollows otherwise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		socialSvc := service.NewSocialService()
		return socialSvc.ToggleFollow(args[0])
	},
}

var followersCmd = &cobra.Command{
	Use:   "followers <user-id>",
	Short: "List a user's followers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		socialSvc := service.NewSocialService()
		return socialSvc.ShowFollowers(args[0], followersPage)
	},
}

var followingCmd = &cobra.Command{
	Use:   "following <user-id>",
	Short: "List who a user follows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		socialSvc := service.NewSocialService()
		return socialSvc.ShowFollowing(args[0], followingPage)
	},
}

func init() {
	followersCmd.Flags().IntVarP(&followersPage, "page", "p", 1, "Page number")
	followingCmd.Flags().IntVarP(&followingPage, "page", "p", 1, "Page number")
}
