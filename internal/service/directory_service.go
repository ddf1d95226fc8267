package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mabat-platform/support-service/internal/auth"
	"github.com/mabat-platform/support-service/internal/config"
	"github.com/mabat-platform/support-service/internal/domain"
	"github.com/mabat-platform/support-service/internal/repository"
	apperrors "github.com/mabat-platform/support-service/pkg/util/errorutil"
)

// DirectoryService covers hotel and account administration.
type DirectoryService struct {
	users      repository.UserRepository
	hotels     repository.HotelRepository
	bcryptCost int
}

// NewDirectoryService builds the service.
func NewDirectoryService(cfg config.Config, users repository.UserRepository, hotels repository.HotelRepository) *DirectoryService {
	return &DirectoryService{
		users:      users,
		hotels:     hotels,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// HotelInput describes hotel create/update payload.
type HotelInput struct {
	Name     string
	NameEn   string
	Address  *string
	City     *string
	Phone    *string
	Email    *string
	IsActive bool
	OwnerID  *string
}

// UserCreateInput describes an admin-created account.
type UserCreateInput struct {
	FullName string
	Email    string
	Password string
	UserType domain.UserType
	HotelID  *int64
}

// CreateHotel registers a new hotel.
func (s *DirectoryService) CreateHotel(ctx context.Context, caller *domain.User, input HotelInput) (*domain.Hotel, error) {
	if !auth.Can(caller.UserType, auth.CapManageHotels) {
		return nil, apperrors.NewForbidden("hotel management requires an administrator")
	}
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.NameEn) == "" {
		return nil, apperrors.NewValidationError("hotel name required in both languages", nil)
	}
	if err := s.validateOwner(ctx, input.OwnerID); err != nil {
		return nil, err
	}

	hotel := &domain.Hotel{
		Name:     strings.TrimSpace(input.Name),
		NameEn:   strings.TrimSpace(input.NameEn),
		Address:  input.Address,
		City:     input.City,
		Phone:    input.Phone,
		Email:    input.Email,
		IsActive: input.IsActive,
		OwnerID:  input.OwnerID,
	}
	if err := s.hotels.Create(ctx, hotel); err != nil {
		return nil, apperrors.MapError(err)
	}
	return hotel, nil
}

// UpdateHotel modifies an existing hotel.
func (s *DirectoryService) UpdateHotel(ctx context.Context, caller *domain.User, hotelID int64, input HotelInput) (*domain.Hotel, error) {
	if !auth.Can(caller.UserType, auth.CapManageHotels) {
		return nil, apperrors.NewForbidden("hotel management requires an administrator")
	}
	hotel, err := s.hotels.GetByID(ctx, hotelID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("hotel", map[string]any{"hotel_id": hotelID})
		}
		return nil, apperrors.MapError(err)
	}
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.NameEn) == "" {
		return nil, apperrors.NewValidationError("hotel name required in both languages", nil)
	}
	if err := s.validateOwner(ctx, input.OwnerID); err != nil {
		return nil, err
	}

	hotel.Name = strings.TrimSpace(input.Name)
	hotel.NameEn = strings.TrimSpace(input.NameEn)
	hotel.Address = input.Address
	hotel.City = input.City
	hotel.Phone = input.Phone
	hotel.Email = input.Email
	hotel.IsActive = input.IsActive
	hotel.OwnerID = input.OwnerID

	if err := s.hotels.Update(ctx, hotel); err != nil {
		return nil, apperrors.MapError(err)
	}
	return hotel, nil
}

// ListHotels returns registered hotels.
func (s *DirectoryService) ListHotels(ctx context.Context, caller *domain.User, activeOnly bool, limit, offset int) ([]domain.Hotel, error) {
	if !auth.Can(caller.UserType, auth.CapManageHotels) {
		return nil, apperrors.NewForbidden("hotel management requires an administrator")
	}
	filter := repository.HotelFilter{Limit: limit, Offset: offset}
	if activeOnly {
		active := true
		filter.Active = &active
	}
	hotels, err := s.hotels.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return hotels, nil
}

// CreateUser provisions an account of any type. Hotel-scoped roles must
// reference an existing hotel; other roles must not carry one.
func (s *DirectoryService) CreateUser(ctx context.Context, caller *domain.User, input UserCreateInput) (*domain.User, error) {
	if !auth.Can(caller.UserType, auth.CapManageUsers) {
		return nil, apperrors.NewForbidden("user management requires an administrator")
	}
	fullName := strings.TrimSpace(input.FullName)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if fullName == "" || email == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("full name, email and password required", nil)
	}
	if !input.UserType.Valid() {
		return nil, apperrors.NewValidationError("unknown user type", map[string]any{"user_type": input.UserType})
	}

	hotelID := input.HotelID
	if input.UserType.IsHotelScoped() {
		if hotelID == nil {
			return nil, apperrors.NewValidationError("hotel required for hotel-scoped roles", nil)
		}
		if _, err := s.hotels.GetByID(ctx, *hotelID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("hotel", map[string]any{"hotel_id": *hotelID})
			}
			return nil, apperrors.MapError(err)
		}
	} else {
		hotelID = nil
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
		UserType:     input.UserType,
		HotelID:      hotelID,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// SetUserActive enables or disables an account.
func (s *DirectoryService) SetUserActive(ctx context.Context, caller *domain.User, userID string, active bool) (*domain.User, error) {
	if !auth.Can(caller.UserType, auth.CapManageUsers) {
		return nil, apperrors.NewForbidden("user management requires an administrator")
	}
	if caller.ID == userID && !active {
		return nil, apperrors.NewConflict("cannot deactivate your own account", nil)
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, apperrors.MapError(err)
	}
	user.IsActive = active
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// ListUsers returns accounts matching the filter.
func (s *DirectoryService) ListUsers(ctx context.Context, caller *domain.User, filter repository.UserFilter) ([]domain.User, error) {
	if !auth.Can(caller.UserType, auth.CapManageUsers) {
		return nil, apperrors.NewForbidden("user management requires an administrator")
	}
	users, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

func (s *DirectoryService) validateOwner(ctx context.Context, ownerID *string) error {
	if ownerID == nil {
		return nil
	}
	owner, err := s.users.GetByID(ctx, *ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("owner", map[string]any{"user_id": *ownerID})
		}
		return apperrors.MapError(err)
	}
	if owner.UserType != domain.UserTypeHotelOwner {
		return apperrors.NewValidationError("owner must be a hotel owner account", map[string]any{"user_type": owner.UserType})
	}
	return nil
}
