package dto

import (
	"time"

	"github.com/mabat-platform/support-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title              string                `json:"title" validate:"required,max=200"`
	Description        string                `json:"description" validate:"required,max=2000"`
	CategoryID         int64                 `json:"category_id" validate:"required,gt=0"`
	BookingReferenceID *string               `json:"booking_reference_id,omitempty" validate:"omitempty,max=100"`
	Priority           domain.TicketPriority `json:"priority,omitempty" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	HotelID            *int64                `json:"hotel_id,omitempty" validate:"omitempty,gt=0"`
}

// CreateResponseRequest payload for thread messages.
type CreateResponseRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

// UpdateStatusRequest payload. ExpectedVersion, when present, must
// match the version the client last read.
type UpdateStatusRequest struct {
	Status          domain.TicketStatus `json:"status" validate:"required,oneof=OPEN IN_PROGRESS RESOLVED CLOSED"`
	ExpectedVersion *int64              `json:"expected_version,omitempty" validate:"omitempty,gt=0"`
}

// AssignTicketRequest payload.
type AssignTicketRequest struct {
	AssigneeID      string `json:"assignee_id" validate:"required,uuid4"`
	ExpectedVersion *int64 `json:"expected_version,omitempty" validate:"omitempty,gt=0"`
}

// RateTicketRequest payload.
type RateTicketRequest struct {
	Rating                int     `json:"rating" validate:"required,min=1,max=5"`
	Comment               *string `json:"comment,omitempty" validate:"omitempty,max=2000"`
	WasSolutionHelpful    *bool   `json:"was_solution_helpful,omitempty"`
	ResponseSpeedRating   *int    `json:"response_speed_rating,omitempty" validate:"omitempty,min=1,max=5"`
	ProfessionalismRating *int    `json:"professionalism_rating,omitempty" validate:"omitempty,min=1,max=5"`
}

// TicketSummary response for list views.
type TicketSummary struct {
	ID                 int64                 `json:"id"`
	Title              string                `json:"title"`
	Status             domain.TicketStatus   `json:"status"`
	Priority           domain.TicketPriority `json:"priority"`
	BookingReferenceID *string               `json:"booking_reference_id,omitempty"`
	CreatorName        string                `json:"creator_name"`
	CategoryID         int64                 `json:"category_id"`
	AssigneeID         *string               `json:"assignee_id,omitempty"`
	HotelID            *int64                `json:"hotel_id,omitempty"`
	Version            int64                 `json:"version"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          *time.Time            `json:"updated_at,omitempty"`
}

// TicketDetailResponse provides full ticket info with its thread.
type TicketDetailResponse struct {
	ID                 int64                   `json:"id"`
	Title              string                  `json:"title"`
	Description        string                  `json:"description"`
	Status             domain.TicketStatus     `json:"status"`
	Priority           domain.TicketPriority   `json:"priority"`
	BookingReferenceID *string                 `json:"booking_reference_id,omitempty"`
	CreatorID          string                  `json:"creator_id"`
	CreatorName        string                  `json:"creator_name"`
	CategoryID         int64                   `json:"category_id"`
	AssigneeID         *string                 `json:"assignee_id,omitempty"`
	AssignedAt         *time.Time              `json:"assigned_at,omitempty"`
	HotelID            *int64                  `json:"hotel_id,omitempty"`
	InternalNotes      *string                 `json:"internal_notes,omitempty"`
	Version            int64                   `json:"version"`
	CreatedAt          time.Time               `json:"created_at"`
	UpdatedAt          *time.Time              `json:"updated_at,omitempty"`
	ClosedAt           *time.Time              `json:"closed_at,omitempty"`
	Responses          []TicketThreadResponse  `json:"responses"`
}

// TicketThreadResponse represents one message in a ticket thread.
type TicketThreadResponse struct {
	ID              int64     `json:"id"`
	Message         string    `json:"message"`
	ResponderID     string    `json:"responder_id"`
	ResponderName   string    `json:"responder_name"`
	IsStaffResponse bool      `json:"is_staff_response"`
	CreatedAt       time.Time `json:"created_at"`
}

// RatingResponse represents a submitted rating.
type RatingResponse struct {
	ID                    int64     `json:"id"`
	TicketID              int64     `json:"ticket_id"`
	Rating                int       `json:"rating"`
	Comment               *string   `json:"comment,omitempty"`
	WasSolutionHelpful    *bool     `json:"was_solution_helpful,omitempty"`
	ResponseSpeedRating   *int      `json:"response_speed_rating,omitempty"`
	ProfessionalismRating *int      `json:"professionalism_rating,omitempty"`
	SupportAgentID        *string   `json:"support_agent_id,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
}

// CategoryResponse represents a ticket category.
type CategoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
