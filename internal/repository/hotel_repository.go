package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/mabat-platform/support-service/internal/domain"
)

// HotelFilter captures hotel listing parameters.
type HotelFilter struct {
	Active *bool
	Limit  int
	Offset int
}

// HotelRepository provides access to registered hotels.
type HotelRepository interface {
	Create(ctx context.Context, hotel *domain.Hotel) error
	Update(ctx context.Context, hotel *domain.Hotel) error
	GetByID(ctx context.Context, id int64) (*domain.Hotel, error)
	List(ctx context.Context, filter HotelFilter) ([]domain.Hotel, error)
	Count(ctx context.Context) (int64, error)
}

type hotelRepository struct {
	db DB
}

// NewHotelRepository instantiates repository.
func NewHotelRepository(db DB) HotelRepository {
	return &hotelRepository{db: db}
}

const hotelColumns = `id, name, name_en, address, city, phone, email, is_active, owner_user_id, created_at`

func (r *hotelRepository) Create(ctx context.Context, hotel *domain.Hotel) error {
	const query = `
        INSERT INTO hotels (name, name_en, address, city, phone, email, is_active, owner_user_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at`
	return r.db.QueryRow(ctx, query,
		hotel.Name,
		hotel.NameEn,
		hotel.Address,
		hotel.City,
		hotel.Phone,
		hotel.Email,
		hotel.IsActive,
		hotel.OwnerID,
	).Scan(&hotel.ID, &hotel.CreatedAt)
}

func (r *hotelRepository) Update(ctx context.Context, hotel *domain.Hotel) error {
	const query = `
        UPDATE hotels SET name=$1, name_en=$2, address=$3, city=$4, phone=$5, email=$6, is_active=$7, owner_user_id=$8
        WHERE id=$9`
	cmd, err := r.db.Exec(ctx, query,
		hotel.Name,
		hotel.NameEn,
		hotel.Address,
		hotel.City,
		hotel.Phone,
		hotel.Email,
		hotel.IsActive,
		hotel.OwnerID,
		hotel.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *hotelRepository) GetByID(ctx context.Context, id int64) (*domain.Hotel, error) {
	query := `SELECT ` + hotelColumns + ` FROM hotels WHERE id=$1`
	var hotel domain.Hotel
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&hotel.ID,
		&hotel.Name,
		&hotel.NameEn,
		&hotel.Address,
		&hotel.City,
		&hotel.Phone,
		&hotel.Email,
		&hotel.IsActive,
		&hotel.OwnerID,
		&hotel.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &hotel, nil
}

func (r *hotelRepository) List(ctx context.Context, filter HotelFilter) ([]domain.Hotel, error) {
	base := `SELECT ` + hotelColumns + ` FROM hotels`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Active != nil {
		args = append(args, *filter.Active)
		clauses = append(clauses, fmt.Sprintf("is_active=$%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Hotel
	for rows.Next() {
		var hotel domain.Hotel
		if err := rows.Scan(
			&hotel.ID,
			&hotel.Name,
			&hotel.NameEn,
			&hotel.Address,
			&hotel.City,
			&hotel.Phone,
			&hotel.Email,
			&hotel.IsActive,
			&hotel.OwnerID,
			&hotel.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, hotel)
	}
	return result, rows.Err()
}

func (r *hotelRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM hotels`).Scan(&count)
	return count, err
}
