package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Pradeep-10x/synapse-cli/pkg/service"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream live presence and notification updates",
	Long: `Connect to the realtime channel and print presence changes and
notifications as they happen. The connection reconnects automatically
with backoff if it drops. Press Ctrl+C to stop.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		watcherSvc := service.NewWatcherService()
		return watcherSvc.Watch(context.Background())
	},
}
