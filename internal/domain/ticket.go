package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

// Valid reports whether the value is a known status.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// Terminal reports whether a ticket in this status may be rated.
func (s TicketStatus) Terminal() bool {
	return s == TicketStatusResolved || s == TicketStatusClosed
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "LOW"
	TicketPriorityMedium TicketPriority = "MEDIUM"
	TicketPriorityHigh   TicketPriority = "HIGH"
)

// Valid reports whether the value is a known priority.
func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh:
		return true
	}
	return false
}

// Ticket is the aggregate for hotel-booking support requests.
// Version increments on every mutation and guards concurrent updates.
type Ticket struct {
	ID                 int64
	Title              string
	Description        string
	Status             TicketStatus
	Priority           TicketPriority
	BookingReferenceID *string
	CreatorID          string
	CreatorName        string
	CategoryID         int64
	AssigneeID         *string
	AssignedAt         *time.Time
	HotelID            *int64
	InternalNotes      *string
	Version            int64
	CreatedAt          time.Time
	UpdatedAt          *time.Time
	ClosedAt           *time.Time
}
