package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Pradeep-10x/synapse-cli/pkg/service"
)

var (
	notifLimit      int
	notifUnreadOnly bool
)

var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"notifs"},
	Short:   "View and manage notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		notifSvc := service.NewNotificationService()
		return notifSvc.ShowNotifications(notifLimit, notifUnreadOnly)
	},
}

var notifUnreadCmd = &cobra.Command{
	Use:   "unread",
	Short: "Show the unread notification count",
	RunE: func(cmd *cobra.Command, args []string) error {
		notifSvc := service.NewNotificationService()
		return notifSvc.ShowUnreadCount()
	},
}

var notifReadCmd = &cobra.Command{
	Use:   "read <notification-id>",
	Short: "Mark a notification as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		notifSvc := service.NewNotificationService()
		return notifSvc.MarkRead(args[0])
	},
}

var notifReadAllCmd = &cobra.Command{
	Use:   "read-all",
	Short: "Mark all notifications as read",
	RunE: func(cmd *cobra.Command, args []string) error {
		notifSvc := service.NewNotificationService()
		return notifSvc.MarkAllRead()
	},
}

var notifClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		notifSvc := service.NewNotificationService()
		return notifSvc.ClearAll()
	},
}

func init() {
	notificationsCmd.Flags().IntVarP(&notifLimit, "limit", "n", 20, "Number of notifications to show")
	notificationsCmd.Flags().BoolVarP(&notifUnreadOnly, "unread", "u", false, "Show only unread notifications")

	notificationsCmd.AddCommand(notifUnreadCmd)
	notificationsCmd.AddCommand(notifReadCmd)
	notificationsCmd.AddCommand(notifReadAllCmd)
	notificationsCmd.AddCommand(notifClearCmd)
}
