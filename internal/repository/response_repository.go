package repository

import (
	"context"

	"github.com/mabat-platform/support-service/internal/domain"
)

// TicketResponseRepository stores the append-only conversation thread.
type TicketResponseRepository interface {
	Create(ctx context.Context, response *domain.TicketResponse) error
	ListByTicket(ctx context.Context, ticketID int64) ([]domain.TicketResponse, error)
}

type ticketResponseRepository struct {
	db DB
}

// NewTicketResponseRepository instantiates repository.
func NewTicketResponseRepository(db DB) TicketResponseRepository {
	return &ticketResponseRepository{db: db}
}

func (r *ticketResponseRepository) Create(ctx context.Context, response *domain.TicketResponse) error {
	const query = `
        INSERT INTO ticket_responses (ticket_id, message, responder_user_id, responder_name, is_staff_response)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`
	return r.db.QueryRow(ctx, query,
		response.TicketID,
		response.Message,
		response.ResponderID,
		response.ResponderName,
		response.IsStaffResponse,
	).Scan(&response.ID, &response.CreatedAt)
}

func (r *ticketResponseRepository) ListByTicket(ctx context.Context, ticketID int64) ([]domain.TicketResponse, error) {
	const query = `
        SELECT id, ticket_id, message, responder_user_id, responder_name, is_staff_response, created_at
        FROM ticket_responses WHERE ticket_id=$1
        ORDER BY created_at ASC, id ASC`
	rows, err := r.db.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TicketResponse
	for rows.Next() {
		var response domain.TicketResponse
		if err := rows.Scan(
			&response.ID,
			&response.TicketID,
			&response.Message,
			&response.ResponderID,
			&response.ResponderName,
			&response.IsStaffResponse,
			&response.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, response)
	}
	return result, rows.Err()
}
