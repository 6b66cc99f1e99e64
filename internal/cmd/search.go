package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Pradeep-10x/synapse-cli/pkg/service"
)

var searchPage int

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search users and posts",
}

var searchUsersCmd = &cobra.Command{
	Use:   "users <query>",
	Short: "Search for users",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profileSvc := service.NewProfileService()
		return profileSvc.SearchUsers(strings.Join(args, " "), searchPage)
	},
}

var searchPostsCmd = &cobra.Command{
	Use:   "posts <query>",
	Short: "Search for posts",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profileSvc := service.NewProfileService()
		return profileSvc.SearchPosts(strings.Join(args, " "), searchPage)
	},
}

func init() {
	searchCmd.PersistentFlags().IntVarP(&searchPage, "page", "p", 1, "Page number")

	searchCmd.AddCommand(searchUsersCmd)
	searchCmd.AddCommand(searchPostsCmd)
}
