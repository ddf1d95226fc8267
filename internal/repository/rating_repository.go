package repository

import (
	"context"

	"github.com/mabat-platform/support-service/internal/domain"
)

// TicketRatingRepository stores one rating per ticket; the unique index
// on ticket_id backs the at-most-once invariant.
type TicketRatingRepository interface {
	Create(ctx context.Context, rating *domain.TicketRating) error
	GetByTicket(ctx context.Context, ticketID int64) (*domain.TicketRating, error)
}

type ticketRatingRepository struct {
	db DB
}

// NewTicketRatingRepository instantiates repository.
func NewTicketRatingRepository(db DB) TicketRatingRepository {
	return &ticketRatingRepository{db: db}
}

func (r *ticketRatingRepository) Create(ctx context.Context, rating *domain.TicketRating) error {
	const query = `
        INSERT INTO ticket_ratings (ticket_id, rating, comment, was_solution_helpful,
            response_speed_rating, professionalism_rating, rater_user_id, support_agent_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at`
	return r.db.QueryRow(ctx, query,
		rating.TicketID,
		rating.Rating,
		rating.Comment,
		rating.WasSolutionHelpful,
		rating.ResponseSpeedRating,
		rating.ProfessionalismRating,
		rating.RaterID,
		rating.SupportAgentID,
	).Scan(&rating.ID, &rating.CreatedAt)
}

func (r *ticketRatingRepository) GetByTicket(ctx context.Context, ticketID int64) (*domain.TicketRating, error) {
	const query = `
        SELECT id, ticket_id, rating, comment, was_solution_helpful,
               response_speed_rating, professionalism_rating, rater_user_id, support_agent_id, created_at
        FROM ticket_ratings WHERE ticket_id=$1`
	var rating domain.TicketRating
	if err := r.db.QueryRow(ctx, query, ticketID).Scan(
		&rating.ID,
		&rating.TicketID,
		&rating.Rating,
		&rating.Comment,
		&rating.WasSolutionHelpful,
		&rating.ResponseSpeedRating,
		&rating.ProfessionalismRating,
		&rating.RaterID,
		&rating.SupportAgentID,
		&rating.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &rating, nil
}
