package domain

import "time"

// NotificationType classifies in-app notifications.
type NotificationType string

const (
	NotificationInfo            NotificationType = "INFO"
	NotificationNewTicket       NotificationType = "NEW_TICKET"
	NotificationNewResponse     NotificationType = "NEW_RESPONSE"
	NotificationStatusChanged   NotificationType = "STATUS_CHANGED"
	NotificationTicketAssigned  NotificationType = "TICKET_ASSIGNED"
	NotificationRatingRequested NotificationType = "RATING_REQUESTED"
	NotificationWarning         NotificationType = "WARNING"
	NotificationUrgent          NotificationType = "URGENT"
)

// Notification is a per-user inbox record created by workflow events.
// After creation only IsRead/ReadAt may change.
type Notification struct {
	ID        int64
	Title     string
	Message   string
	Type      NotificationType
	IsRead    bool
	ActionURL *string
	UserID    string
	TicketID  *int64
	CreatedAt time.Time
	ReadAt    *time.Time
}
