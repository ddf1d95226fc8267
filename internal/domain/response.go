package domain

import "time"

// TicketResponse is one message in a ticket conversation. Responses are
// append-only and displayed in createdAt ascending order.
type TicketResponse struct {
	ID              int64
	TicketID        int64
	Message         string
	ResponderID     string
	ResponderName   string
	IsStaffResponse bool
	CreatedAt       time.Time
}
