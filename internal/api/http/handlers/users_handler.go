package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mabat-platform/support-service/internal/api/dto"
	"github.com/mabat-platform/support-service/internal/auth"
	"github.com/mabat-platform/support-service/internal/domain"
	"github.com/mabat-platform/support-service/internal/repository"
	"github.com/mabat-platform/support-service/internal/service"
	apperrors "github.com/mabat-platform/support-service/pkg/util/errorutil"
)

// UsersHandler manages admin account endpoints.
type UsersHandler struct {
	service *service.DirectoryService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(directoryService *service.DirectoryService) *UsersHandler {
	return &UsersHandler{service: directoryService}
}

// CreateUser POST /admin/users.
func (h *UsersHandler) CreateUser(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, err := h.service.CreateUser(c.UserContext(), principal.User, service.UserCreateInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		UserType: domain.UserType(req.UserType),
		HotelID:  req.HotelID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// SetUserActive PATCH /admin/users/:id/active.
func (h *UsersHandler) SetUserActive(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.SetUserActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.IsActive == nil {
		return apperrors.NewValidationError("is_active required", nil)
	}

	user, err := h.service.SetUserActive(c.UserContext(), principal.User, c.Params("id"), *req.IsActive)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// ListUsers GET /admin/users.
func (h *UsersHandler) ListUsers(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	filter := repository.UserFilter{
		Limit:  parseInt(c.Query("page_size"), 20),
		Offset: (parseInt(c.Query("page"), 1) - 1) * parseInt(c.Query("page_size"), 20),
	}
	if typeStr := c.Query("user_type"); typeStr != "" {
		userType := domain.UserType(typeStr)
		if userType.Valid() {
			filter.UserType = &userType
		}
	}

	users, err := h.service.ListUsers(c.UserContext(), principal.User, filter)
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
