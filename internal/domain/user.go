package domain

import "time"

// UserType enumerates the account roles in the support system.
type UserType string

const (
	UserTypeEndUser      UserType = "END_USER"
	UserTypeHotelOwner   UserType = "HOTEL_OWNER"
	UserTypeHotelSupport UserType = "HOTEL_SUPPORT"
	UserTypeMabatSupport UserType = "MABAT_SUPPORT"
	UserTypeAdmin        UserType = "ADMIN"
)

// Valid reports whether the value is a known user type.
func (t UserType) Valid() bool {
	switch t {
	case UserTypeEndUser, UserTypeHotelOwner, UserTypeHotelSupport, UserTypeMabatSupport, UserTypeAdmin:
		return true
	}
	return false
}

// IsStaff reports whether the role may act on tickets beyond its own.
func (t UserType) IsStaff() bool {
	return t == UserTypeHotelSupport || t == UserTypeMabatSupport || t == UserTypeAdmin
}

// IsHotelScoped reports whether the role is bound to a single hotel.
func (t UserType) IsHotelScoped() bool {
	return t == UserTypeHotelOwner || t == UserTypeHotelSupport
}

// User models every account in the system; UserType distinguishes
// end-users, hotel staff, platform support and administrators. HotelID
// is populated only for hotel-scoped roles.
type User struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	UserType     UserType
	HotelID      *int64
	IsActive     bool
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}
