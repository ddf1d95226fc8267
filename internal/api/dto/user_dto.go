package dto

// CreateUserRequest payload for admin account provisioning.
type CreateUserRequest struct {
	FullName string `json:"full_name" validate:"required,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	UserType string `json:"user_type" validate:"required,oneof=END_USER HOTEL_OWNER HOTEL_SUPPORT MABAT_SUPPORT ADMIN"`
	HotelID  *int64 `json:"hotel_id,omitempty" validate:"omitempty,gt=0"`
}

// SetUserActiveRequest payload.
type SetUserActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}
