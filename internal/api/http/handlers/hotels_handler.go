package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/mabat-platform/support-service/internal/api/dto"
	"github.com/mabat-platform/support-service/internal/auth"
	"github.com/mabat-platform/support-service/internal/service"
	apperrors "github.com/mabat-platform/support-service/pkg/util/errorutil"
)

// HotelsHandler manages admin hotel endpoints.
type HotelsHandler struct {
	service *service.DirectoryService
}

// NewHotelsHandler constructs handler.
func NewHotelsHandler(directoryService *service.DirectoryService) *HotelsHandler {
	return &HotelsHandler{service: directoryService}
}

// CreateHotel POST /admin/hotels.
func (h *HotelsHandler) CreateHotel(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.HotelRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	hotel, err := h.service.CreateHotel(c.UserContext(), principal.User, hotelInput(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewHotelResponse(hotel)})
}

// UpdateHotel PUT /admin/hotels/:id.
func (h *HotelsHandler) UpdateHotel(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	hotelID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || hotelID <= 0 {
		return apperrors.NewValidationError("invalid hotel id", nil)
	}
	var req dto.HotelRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	hotel, err := h.service.UpdateHotel(c.UserContext(), principal.User, hotelID, hotelInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewHotelResponse(hotel)})
}

// ListHotels GET /admin/hotels.
func (h *HotelsHandler) ListHotels(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	activeOnly := c.QueryBool("active_only", false)

	hotels, err := h.service.ListHotels(c.UserContext(), principal.User, activeOnly, pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}
	items := make([]dto.HotelResponse, 0, len(hotels))
	for i := range hotels {
		items = append(items, dto.NewHotelResponse(&hotels[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func hotelInput(req dto.HotelRequest) service.HotelInput {
	return service.HotelInput{
		Name:     req.Name,
		NameEn:   req.NameEn,
		Address:  req.Address,
		City:     req.City,
		Phone:    req.Phone,
		Email:    req.Email,
		IsActive: req.IsActive,
		OwnerID:  req.OwnerID,
	}
}
