package domain

import "time"

// TicketRating captures the creator's feedback once a ticket reaches a
// terminal status. At most one rating exists per ticket.
type TicketRating struct {
	ID                    int64
	TicketID              int64
	Rating                int
	Comment               *string
	WasSolutionHelpful    *bool
	ResponseSpeedRating   *int
	ProfessionalismRating *int
	RaterID               string
	SupportAgentID        *string
	CreatedAt             time.Time
}
