package domain

import "time"

// Hotel represents a property registered on the booking platform. Its
// support team is the set of users whose HotelID points here.
type Hotel struct {
	ID        int64
	Name      string
	NameEn    string
	Address   *string
	City      *string
	Phone     *string
	Email     *string
	IsActive  bool
	OwnerID   *string
	CreatedAt time.Time
}
