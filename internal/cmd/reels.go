package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Pradeep-10x/synapse-cli/pkg/service"
)

var (
	reelsPage int
	reelsUser string
)

var reelsCmd = &cobra.Command{
	Use:   "reels",
	Short: "Browse short videos",
	RunE: func(cmd *cobra.Command, args []string) error {
		reelSvc := service.NewReelService()
		if reelsUser != "" {
			return reelSvc.ShowUserReels(reelsUser, reelsPage)
		}
		return reelSvc.ShowReels(reelsPage)
	},
}

func init() {
	reelsCmd.Flags().IntVarP(&reelsPage, "page", "p", 1, "Page number")
	reelsCmd.Flags().StringVarP(&reelsUser, "user", "u", "", "Show reels by a specific user")
}
