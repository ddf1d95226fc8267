package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrVersionConflict is returned when an update loses an optimistic
// concurrency race: the row exists but its version moved on.
var ErrVersionConflict = errors.New("version conflict")

// DB is the querying surface shared by *pgxpool.Pool and pgx.Tx, so the
// same repository code runs standalone or inside a transaction.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories bundles every repository bound to one DB handle.
type Repositories struct {
	Users         UserRepository
	Hotels        HotelRepository
	Categories    CategoryRepository
	Tickets       TicketRepository
	Responses     TicketResponseRepository
	Notifications NotificationRepository
	Ratings       TicketRatingRepository
}

// NewRepositories builds the bundle over a pool or transaction.
func NewRepositories(db DB) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(db),
		Hotels:        NewHotelRepository(db),
		Categories:    NewCategoryRepository(db),
		Tickets:       NewTicketRepository(db),
		Responses:     NewTicketResponseRepository(db),
		Notifications: NewNotificationRepository(db),
		Ratings:       NewTicketRatingRepository(db),
	}
}

// TxRunner executes multi-entity mutations atomically.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(r *Repositories) error) error
}

type txManager struct {
	pool *pgxpool.Pool
}

// NewTxManager creates a pgx-backed TxRunner.
func NewTxManager(pool *pgxpool.Pool) TxRunner {
	return &txManager{pool: pool}
}

// WithinTx begins a transaction, runs fn over tx-bound repositories and
// commits; any error rolls the whole unit back.
func (m *txManager) WithinTx(ctx context.Context, fn func(r *Repositories) error) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := fn(NewRepositories(tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
