package service

import (
	"fmt"
	"time"

	"github.com/Pradeep-10x/synapse-cli/pkg/api"
	"github.com/Pradeep-10x/synapse-cli/pkg/formatter"
	"github.com/Pradeep-10x/synapse-cli/pkg/logger"
	syncpkg "github.com/Pradeep-10x/synapse-cli/pkg/sync"
)

// NotificationService keeps a local mirror of the user's notification
// feed and exposes the read/unread operations on top of it.
type NotificationService struct {
	mirror *syncpkg.NotificationMirror
}

// NewNotificationService creates a new notification service
func NewNotificationService() *NotificationService {
	return &NotificationService{
		mirror: syncpkg.NewNotificationMirror(),
	}
}

// Mirror exposes the underlying mirror for realtime wiring
func (ns *NotificationService) Mirror() *syncpkg.NotificationMirror {
	return ns.mirror
}

// ShowNotifications fetches and displays recent notifications
func (ns *NotificationService) ShowNotifications(limit int, unreadOnly bool) error {
	if err := RequireSession(); err != nil {
		return err
	}

	logger.Debug("Fetching notifications", "limit", limit, "unread_only", unreadOnly)

	if err := ns.mirror.Pull(func() ([]api.Notification, error) {
		resp, err := api.GetNotifications(1, limit, unreadOnly)
		if err != nil {
			return nil, err
		}
		return resp.Notifications, nil
	}); err != nil {
		return fmt.Errorf("failed to fetch notifications: %w", err)
	}

	records := ns.mirror.Records()
	if len(records) == 0 {
		fmt.Println("No notifications.")
		return nil
	}

	unread := ns.mirror.UnreadCount()
	if unread > 0 {
		formatter.PrintInfo("🔔 %d unread", unread)
	}

	for _, n := range records {
		fmt.Println(FormatNotification(n))
	}
	return nil
}

// ShowUnreadCount displays the unread notification count
func (ns *NotificationService) ShowUnreadCount() error {
	if err := RequireSession(); err != nil {
		return err
	}

	count, err := api.GetUnreadCount()
	if err != nil {
		return fmt.Errorf("failed to fetch unread count: %w", err)
	}

	if count == 0 {
		fmt.Println("No unread notifications.")
	} else {
		fmt.Printf("%d unread notification%s\n", count, pluralize(count))
	}
	return nil
}

// MarkRead marks a single notification as read
func (ns *NotificationService) MarkRead(notificationID string) error {
	if err := RequireSession(); err != nil {
		return err
	}

	if err := api.MarkNotificationAsRead(notificationID); err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}

	formatter.PrintSuccess("✓ Marked as read")
	return nil
}

// MarkAllRead marks every notification as read. The local mirror
// flips immediately; if persisting fails after retries the mirror
// rolls back and the error surfaces.
func (ns *NotificationService) MarkAllRead() error {
	if err := RequireSession(); err != nil {
		return err
	}

	if ns.mirror.Len() == 0 {
		if err := ns.mirror.Pull(func() ([]api.Notification, error) {
			resp, err := api.GetNotifications(1, 50, false)
			if err != nil {
				return nil, err
			}
			return resp.Notifications, nil
		}); err != nil {
			return fmt.Errorf("failed to fetch notifications: %w", err)
		}
	}

	if err := ns.mirror.MarkAllRead(api.MarkAllNotificationsAsRead); err != nil {
		formatter.PrintError("%v", err)
		return err
	}

	formatter.PrintSuccess("✓ All notifications marked as read")
	return nil
}

// ClearAll deletes every notification
func (ns *NotificationService) ClearAll() error {
	if err := RequireSession(); err != nil {
		return err
	}

	if err := api.ClearNotifications(); err != nil {
		return fmt.Errorf("failed to clear notifications: %w", err)
	}

	ns.mirror.Clear()
	formatter.PrintSuccess("✓ Notifications cleared")
	return nil
}

// FormatNotification renders one notification for terminal display
func FormatNotification(n api.Notification) string {
	icon := notificationIcon(n.Kind)

	marker := " "
	if !n.IsRead {
		marker = formatter.Info.Sprint("●")
	}

	username := "someone"
	if n.Source != nil {
		username = "@" + n.Source.Username
	}

	msg := n.Message
	if msg == "" {
		msg = defaultNotificationMessage(n.Kind, username)
	}

	return fmt.Sprintf("%s %s %s  %s", marker, icon, msg, relativeTime(n.CreatedAt))
}

func notificationIcon(kind string) string {
	switch kind {
	case api.NotificationKindLike:
		return "♥"
	case api.NotificationKindComment:
		return "💬"
	case api.NotificationKindFollow:
		return "👤"
	case api.NotificationKindMention:
		return "＠"
	case api.NotificationKindReel:
		return "🎬"
	case api.NotificationKindStory:
		return "📖"
	default:
		return "🔔"
	}
}

func defaultNotificationMessage(kind, username string) string {
	switch kind {
	case api.NotificationKindLike:
		return fmt.Sprintf("%s liked your post", username)
	case api.NotificationKindComment:
		return fmt.Sprintf("%s commented on your post", username)
	case api.NotificationKindFollow:
		return fmt.Sprintf("%s started following you", username)
	case api.NotificationKindMention:
		return fmt.Sprintf("%s mentioned you", username)
	default:
		return fmt.Sprintf("%s sent you a notification", username)
	}
}

func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return t.Format("Jan 2")
	}
}

func pluralize(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
