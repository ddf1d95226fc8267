package dto

import (
	"time"

	"github.com/mabat-platform/support-service/internal/domain"
)

// HotelRequest payload for create and update.
type HotelRequest struct {
	Name     string  `json:"name" validate:"required,max=200"`
	NameEn   string  `json:"name_en" validate:"required,max=200"`
	Address  *string `json:"address,omitempty" validate:"omitempty,max=300"`
	City     *string `json:"city,omitempty" validate:"omitempty,max=100"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	IsActive bool    `json:"is_active"`
	OwnerID  *string `json:"owner_id,omitempty" validate:"omitempty,uuid4"`
}

// HotelResponse represents a hotel record.
type HotelResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	NameEn    string    `json:"name_en"`
	Address   *string   `json:"address,omitempty"`
	City      *string   `json:"city,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Email     *string   `json:"email,omitempty"`
	IsActive  bool      `json:"is_active"`
	OwnerID   *string   `json:"owner_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewHotelResponse maps a domain hotel onto its API projection.
func NewHotelResponse(hotel *domain.Hotel) HotelResponse {
	return HotelResponse{
		ID:        hotel.ID,
		Name:      hotel.Name,
		NameEn:    hotel.NameEn,
		Address:   hotel.Address,
		City:      hotel.City,
		Phone:     hotel.Phone,
		Email:     hotel.Email,
		IsActive:  hotel.IsActive,
		OwnerID:   hotel.OwnerID,
		CreatedAt: hotel.CreatedAt,
	}
}
