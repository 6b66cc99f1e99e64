package api

import (
	"fmt"

	"github.com/Pradeep-10x/synapse-cli/pkg/client"
	"github.com/Pradeep-10x/synapse-cli/pkg/logger"
)

// GetNotifications retrieves notifications with pagination, newest first
func GetNotifications(page, pageSize int, unreadOnly bool) (*NotificationListResponse, error) {
	logger.Debug("Fetching notifications", "page", page, "unread_only", unreadOnly)

	params := map[string]string{
		"page":      fmt.Sprintf("%d", page),
		"page_size": fmt.Sprintf("%d", pageSize),
	}
	if unreadOnly {
		params["unread_only"] = "true"
	}

	var response NotificationListResponse

	resp, err := client.GetClient().
		R().
		SetQueryParams(params).
		SetResult(&response).
		Get("/api/v1/notifications")

	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to fetch notifications: %s", resp.Status())
	}

	return &response, nil
}

// GetUnreadCount retrieves the count of unread notifications
func GetUnreadCount() (int, error) {
	logger.Debug("Fetching unread notification count")

	var response struct {
		UnreadCount int `json:"unread_count"`
	}

	resp, err := client.GetClient().
		R().
		SetResult(&response).
		Get("/api/v1/notifications/unread/count")

	if err != nil {
		return 0, err
	}

	if !resp.IsSuccess() {
		return 0, fmt.Errorf("failed to fetch unread count: %s", resp.Status())
	}

	return response.UnreadCount, nil
}

// MarkNotificationAsRead marks a single notification as read
func MarkNotificationAsRead(notificationID string) error {
	logger.Debug("Marking notification as read", "notification_id", notificationID)

	resp, err := client.GetClient().
		R().
		Patch(fmt.Sprintf("/api/v1/notifications/%s/read", notificationID))

	if err != nil {
		return err
	}

	if !resp.IsSuccess() {
		return fmt.Errorf("failed to mark notification as read: %s", resp.Status())
	}

	return nil
}

// MarkAllNotificationsAsRead marks all notifications as read
func MarkAllNotificationsAsRead() error {
	logger.Debug("Marking all notifications as read")

	resp, err := client.GetClient().
		R().
		Patch("/api/v1/notifications/read-all")

	if err != nil {
		return err
	}

	if !resp.IsSuccess() {
		return fmt.Errorf("failed to mark all notifications as read: %s", resp.Status())
	}

	return nil
}

// ClearNotifications deletes all notifications
func ClearNotifications() error {
	logger.Debug("Clearing notifications")

	resp, err := client.GetClient().
		R().
		Delete("/api/v1/notifications")

	if err != nil {
		return err
	}

	if !resp.IsSuccess() {
		return fmt.Errorf("failed to clear notifications: %s", resp.Status())
	}

	return nil
}
