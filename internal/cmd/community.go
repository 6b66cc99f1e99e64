package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Pradeep-10x/synapse-cli/pkg/service"
)

var communityPage int

var communityCmd = &cobra.Command{
	Use:   "community",
	Short: "Browse and join communities",
}

var communityListCmd = &cobra.Command{
	Use:   "list",
	Short: "List communities",
	RunE: func(cmd *cobra.Command, args []string) error {
		communitySvc := service.NewCommunityService()
		return communitySvc.ListCommunities(communityPage)
	},
}

var communityShowCmd = &cobra.Command{
	Use:   "show <community-id>",
	Short: "Show a community and its recent posts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		communitySvc := service.NewCommunityService()
		return communitySvc.ShowCommunity(args[0])
	},
}

var communityJoinCmd = &cobra.Command{
	Use:   "join <community-id>",
	Short: "Join or leave a community",
	Long:  "Joins the community if you're not a member, leaves otherwise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		communitySvc := service.NewCommunityService()
		return communitySvc.ToggleMembership(args[0])
	},
}

func init() {
	communityListCmd.Flags().IntVarP(&communityPage, "page", "p", 1, "Page number")

	communityCmd.AddCommand(communityListCmd)
	communityCmd.AddCommand(communityShowCmd)
	communityCmd.AddCommand(communityJoinCmd)
}
