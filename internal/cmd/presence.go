package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Pradeep-10x/synapse-cli/pkg/service"
)

var presenceCmd = &cobra.Command{
	Use:   "presence",
	Short: "See who is online",
	RunE: func(cmd *cobra.Command, args []string) error {
		presenceSvc := service.NewPresenceService()
		return presenceSvc.ShowOnlineUsers()
	},
}

var presenceStatusCmd = &cobra.Command{
	Use:   "status [online|away|offline]",
	Short: "Show or set your activity status",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		presenceSvc := service.NewPresenceService()
		if len(args) == 0 {
			return presenceSvc.ShowActivityStatus()
		}
		return presenceSvc.SetActivityStatus(args[0])
	},
}

func init() {
	presenceCmd.AddCommand(presenceStatusCmd)
}
