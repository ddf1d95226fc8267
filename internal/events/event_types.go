package events

import (
	"time"

	"github.com/mabat-platform/support-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketResponseAdded EventType = "ticket_response_added"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketAssigned      EventType = "ticket_assigned"
	EventTicketRated         EventType = "ticket_rated"
)

// Event represents a domain event emitted by the workflow service.
type Event struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	TicketID  int64           `json:"ticket_id"`
	ActorID   string          `json:"actor_id"`
	ActorRole domain.UserType `json:"actor_role"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   interface{}     `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	CreatorID  string                `json:"creator_id"`
	CategoryID int64                 `json:"category_id"`
	HotelID    *int64                `json:"hotel_id,omitempty"`
	Priority   domain.TicketPriority `json:"priority"`
	Title      string                `json:"title"`
}

// TicketResponseAddedPayload payload.
type TicketResponseAddedPayload struct {
	ResponseID      int64  `json:"response_id"`
	ResponderID     string `json:"responder_id"`
	ResponderName   string `json:"responder_name"`
	IsStaffResponse bool   `json:"is_staff_response"`
	CreatorID       string `json:"creator_id"`
	AutoEscalated   bool   `json:"auto_escalated"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
	CreatorID string              `json:"creator_id"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	AssigneeID   string `json:"assignee_id"`
	AssigneeName string `json:"assignee_name"`
	CreatorID    string `json:"creator_id"`
	TicketTitle  string `json:"ticket_title"`
}

// TicketRatedPayload payload.
type TicketRatedPayload struct {
	Rating         int     `json:"rating"`
	SupportAgentID *string `json:"support_agent_id,omitempty"`
}
