package dto

import (
	"time"

	"github.com/mabat-platform/support-service/internal/domain"
)

// NotificationResponse represents one inbox entry.
type NotificationResponse struct {
	ID        int64                   `json:"id"`
	Title     string                  `json:"title"`
	Message   string                  `json:"message"`
	Type      domain.NotificationType `json:"type"`
	IsRead    bool                    `json:"is_read"`
	ActionURL *string                 `json:"action_url,omitempty"`
	TicketID  *int64                  `json:"ticket_id,omitempty"`
	CreatedAt time.Time               `json:"created_at"`
	ReadAt    *time.Time              `json:"read_at,omitempty"`
}

// NewNotificationResponse maps a domain notification onto its API projection.
func NewNotificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		IsRead:    n.IsRead,
		ActionURL: n.ActionURL,
		TicketID:  n.TicketID,
		CreatedAt: n.CreatedAt,
		ReadAt:    n.ReadAt,
	}
}
