package repository

import (
	"context"

	"github.com/mabat-platform/support-service/internal/domain"
)

// CategoryRepository provides access to ticket categories.
type CategoryRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TicketCategory, error)
	List(ctx context.Context) ([]domain.TicketCategory, error)
	Upsert(ctx context.Context, category *domain.TicketCategory) error
}

type categoryRepository struct {
	db DB
}

// NewCategoryRepository instantiates repository.
func NewCategoryRepository(db DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*domain.TicketCategory, error) {
	const query = `SELECT id, name, description FROM ticket_categories WHERE id=$1`
	var category domain.TicketCategory
	if err := r.db.QueryRow(ctx, query, id).Scan(&category.ID, &category.Name, &category.Description); err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]domain.TicketCategory, error) {
	const query = `SELECT id, name, description FROM ticket_categories ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TicketCategory
	for rows.Next() {
		var category domain.TicketCategory
		if err := rows.Scan(&category.ID, &category.Name, &category.Description); err != nil {
			return nil, err
		}
		result = append(result, category)
	}
	return result, rows.Err()
}

// Upsert inserts a category with a fixed id, leaving existing rows
// untouched so bootstrap seeding stays idempotent.
func (r *categoryRepository) Upsert(ctx context.Context, category *domain.TicketCategory) error {
	const query = `
        INSERT INTO ticket_categories (id, name, description)
        VALUES ($1, $2, $3)
        ON CONFLICT (id) DO NOTHING`
	_, err := r.db.Exec(ctx, query, category.ID, category.Name, category.Description)
	return err
}
