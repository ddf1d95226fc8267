package domain

// TicketCategory is immutable reference data; every ticket points at one.
type TicketCategory struct {
	ID          int64
	Name        string
	Description string
}
