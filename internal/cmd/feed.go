package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Pradeep-10x/synapse-cli/pkg/service"
)

var (
	feedType     string
	feedPage     int
	feedPageSize int
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Browse your feed",
	Long:  "Show posts from people and communities you follow",
	RunE: func(cmd *cobra.Command, args []string) error {
		feedSvc := service.NewFeedService()
		return feedSvc.ShowFeed(feedType, feedPage, feedPageSize)
	},
}

func init() {
	feedCmd.Flags().StringVarP(&feedType, "type", "t", "home", "Feed type: home, discover, trending")
	feedCmd.Flags().IntVarP(&feedPage, "page", "p", 1, "Page number")
	feedCmd.Flags().IntVar(&feedPageSize, "page-size", 20, "Posts per page")
}
