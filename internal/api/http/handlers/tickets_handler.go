package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mabat-platform/support-service/internal/api/dto"
	"github.com/mabat-platform/support-service/internal/auth"
	"github.com/mabat-platform/support-service/internal/domain"
	"github.com/mabat-platform/support-service/internal/service"
	apperrors "github.com/mabat-platform/support-service/pkg/util/errorutil"
)

// TicketsHandler manages ticket workflow endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	ticket, err := h.service.CreateTicket(c.UserContext(), principal.User, service.TicketCreateInput{
		Title:              req.Title,
		Description:        req.Description,
		CategoryID:         req.CategoryID,
		BookingReferenceID: req.BookingReferenceID,
		Priority:           req.Priority,
		HotelID:            req.HotelID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	tickets, err := h.service.ListTickets(c.UserContext(), principal.User, parseTicketQuery(c))
	if err != nil {
		return err
	}
	items := make([]dto.TicketSummary, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketSummary(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticketID, err := parseTicketID(c)
	if err != nil {
		return err
	}

	ticket, responses, err := h.service.GetTicket(c.UserContext(), principal.User, ticketID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket, responses)})
}

// AddResponse POST /tickets/:id/responses.
func (h *TicketsHandler) AddResponse(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticketID, err := parseTicketID(c)
	if err != nil {
		return err
	}
	var req dto.CreateResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	response, err := h.service.AddResponse(c.UserContext(), principal.User, ticketID, req.Message)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": threadResponse(response)})
}

// UpdateStatus PATCH /tickets/:id/status.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticketID, err := parseTicketID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	ticket, err := h.service.UpdateStatus(c.UserContext(), principal.User, ticketID, req.Status, req.ExpectedVersion)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// AssignTicket POST /tickets/:id/assign.
func (h *TicketsHandler) AssignTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticketID, err := parseTicketID(c)
	if err != nil {
		return err
	}
	var req dto.AssignTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	ticket, err := h.service.AssignTicket(c.UserContext(), principal.User, ticketID, req.AssigneeID, req.ExpectedVersion)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// RateTicket POST /tickets/:id/rating.
func (h *TicketsHandler) RateTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticketID, err := parseTicketID(c)
	if err != nil {
		return err
	}
	var req dto.RateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	rating, err := h.service.RateTicket(c.UserContext(), principal.User, ticketID, service.TicketRatingInput{
		Rating:                req.Rating,
		Comment:               req.Comment,
		WasSolutionHelpful:    req.WasSolutionHelpful,
		ResponseSpeedRating:   req.ResponseSpeedRating,
		ProfessionalismRating: req.ProfessionalismRating,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ratingResponse(rating)})
}

// ListCategories GET /categories.
func (h *TicketsHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		items = append(items, dto.CategoryResponse{
			ID:          category.ID,
			Name:        category.Name,
			Description: category.Description,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

func parseTicketID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid ticket id", nil)
	}
	return id, nil
}

func parseTicketQuery(c *fiber.Ctx) service.TicketListFilter {
	filter := service.TicketListFilter{}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		filter.SearchTerm = &search
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.TicketStatus(strings.ToUpper(strings.TrimSpace(statusStr)))
		if status.Valid() {
			filter.Status = &status
		}
	}
	if priorityStr := c.Query("priority"); priorityStr != "" {
		priority := domain.TicketPriority(strings.ToUpper(strings.TrimSpace(priorityStr)))
		if priority.Valid() {
			filter.Priority = &priority
		}
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func ticketSummary(ticket *domain.Ticket) dto.TicketSummary {
	return dto.TicketSummary{
		ID:                 ticket.ID,
		Title:              ticket.Title,
		Status:             ticket.Status,
		Priority:           ticket.Priority,
		BookingReferenceID: ticket.BookingReferenceID,
		CreatorName:        ticket.CreatorName,
		CategoryID:         ticket.CategoryID,
		AssigneeID:         ticket.AssigneeID,
		HotelID:            ticket.HotelID,
		Version:            ticket.Version,
		CreatedAt:          ticket.CreatedAt,
		UpdatedAt:          ticket.UpdatedAt,
	}
}

func ticketDetail(ticket *domain.Ticket, responses []domain.TicketResponse) dto.TicketDetailResponse {
	thread := make([]dto.TicketThreadResponse, 0, len(responses))
	for i := range responses {
		thread = append(thread, threadResponse(&responses[i]))
	}
	return dto.TicketDetailResponse{
		ID:                 ticket.ID,
		Title:              ticket.Title,
		Description:        ticket.Description,
		Status:             ticket.Status,
		Priority:           ticket.Priority,
		BookingReferenceID: ticket.BookingReferenceID,
		CreatorID:          ticket.CreatorID,
		CreatorName:        ticket.CreatorName,
		CategoryID:         ticket.CategoryID,
		AssigneeID:         ticket.AssigneeID,
		AssignedAt:         ticket.AssignedAt,
		HotelID:            ticket.HotelID,
		InternalNotes:      ticket.InternalNotes,
		Version:            ticket.Version,
		CreatedAt:          ticket.CreatedAt,
		UpdatedAt:          ticket.UpdatedAt,
		ClosedAt:           ticket.ClosedAt,
		Responses:          thread,
	}
}

func threadResponse(response *domain.TicketResponse) dto.TicketThreadResponse {
	return dto.TicketThreadResponse{
		ID:              response.ID,
		Message:         response.Message,
		ResponderID:     response.ResponderID,
		ResponderName:   response.ResponderName,
		IsStaffResponse: response.IsStaffResponse,
		CreatedAt:       response.CreatedAt,
	}
}

func ratingResponse(rating *domain.TicketRating) dto.RatingResponse {
	return dto.RatingResponse{
		ID:                    rating.ID,
		TicketID:              rating.TicketID,
		Rating:                rating.Rating,
		Comment:               rating.Comment,
		WasSolutionHelpful:    rating.WasSolutionHelpful,
		ResponseSpeedRating:   rating.ResponseSpeedRating,
		ProfessionalismRating: rating.ProfessionalismRating,
		SupportAgentID:        rating.SupportAgentID,
		CreatedAt:             rating.CreatedAt,
	}
}
