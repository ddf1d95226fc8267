package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/mabat-platform/support-service/internal/auth"
	"github.com/mabat-platform/support-service/internal/config"
	"github.com/mabat-platform/support-service/internal/domain"
	"github.com/mabat-platform/support-service/internal/repository"
)

// seedCategories are the fixed hotel-booking issue categories, ids 1-8.
var seedCategories = []domain.TicketCategory{
	{ID: 1, Name: "Check-in Issue", Description: "Problems related to check-in process or room access"},
	{ID: 2, Name: "Extension Request (4h to 6h)", Description: "Request to extend hourly booking from 4 hours to 6 hours"},
	{ID: 3, Name: "Overnight Booking Issue", Description: "Issues with full day bookings (8:00 PM to 12:00 PM next day)"},
	{ID: 4, Name: "Hourly Booking (4h) Issue", Description: "Problems with 4-hour time slot bookings"},
	{ID: 5, Name: "Hourly Booking (6h) Issue", Description: "Problems with 6-hour time slot bookings"},
	{ID: 6, Name: "Payment & Billing", Description: "Payment issues, refunds, or billing questions"},
	{ID: 7, Name: "Cancellation & Refund", Description: "Booking cancellation and refund requests"},
	{ID: 8, Name: "General Inquiry", Description: "General questions about the booking system"},
}

// Bootstrap seeds reference data and the default administrator account.
// It runs once at process start and is safe to repeat.
func Bootstrap(ctx context.Context, repos *repository.Repositories, cfg config.BootstrapConfig, bcryptCost int, logger *zap.Logger) error {
	if cfg.SeedCategories {
		for i := range seedCategories {
			if err := repos.Categories.Upsert(ctx, &seedCategories[i]); err != nil {
				return err
			}
		}
		logger.Info("ticket categories seeded", zap.Int("count", len(seedCategories)))
	}

	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		logger.Warn("bootstrap admin credentials not configured; skipping admin creation")
		return nil
	}

	_, err := repos.Users.GetByEmail(ctx, cfg.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(cfg.AdminPassword, bcryptCost)
	if err != nil {
		return err
	}
	admin := &domain.User{
		ID:           uuid.NewString(),
		FullName:     cfg.AdminFullName,
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		UserType:     domain.UserTypeAdmin,
		IsActive:     true,
	}
	if err := repos.Users.Create(ctx, admin); err != nil {
		return err
	}
	logger.Info("default admin account created", zap.String("email", cfg.AdminEmail))
	return nil
}
