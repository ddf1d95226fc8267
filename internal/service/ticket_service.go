package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mabat-platform/support-service/internal/auth"
	"github.com/mabat-platform/support-service/internal/domain"
	"github.com/mabat-platform/support-service/internal/events"
	"github.com/mabat-platform/support-service/internal/repository"
	apperrors "github.com/mabat-platform/support-service/pkg/util/errorutil"
)

const (
	maxTitleLen = 200
	maxTextLen  = 2000
	minRating   = 1
	maxRating   = 5
)

// TicketService owns the ticket workflow: creation, visibility,
// responses, status transitions, assignment and rating.
type TicketService struct {
	tickets    repository.TicketRepository
	responses  repository.TicketResponseRepository
	categories repository.CategoryRepository
	hotels     repository.HotelRepository
	users      repository.UserRepository
	ratings    repository.TicketRatingRepository
	tx         repository.TxRunner
	dispatcher events.Dispatcher
}

// TicketDependencies bundles repositories for the ticket service.
type TicketDependencies struct {
	TicketRepo   repository.TicketRepository
	ResponseRepo repository.TicketResponseRepository
	CategoryRepo repository.CategoryRepository
	HotelRepo    repository.HotelRepository
	UserRepo     repository.UserRepository
	RatingRepo   repository.TicketRatingRepository
	Tx           repository.TxRunner
	Dispatcher   events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		responses:  deps.ResponseRepo,
		categories: deps.CategoryRepo,
		hotels:     deps.HotelRepo,
		users:      deps.UserRepo,
		ratings:    deps.RatingRepo,
		tx:         deps.Tx,
		dispatcher: deps.Dispatcher,
	}
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title              string
	Description        string
	CategoryID         int64
	BookingReferenceID *string
	Priority           domain.TicketPriority
	HotelID            *int64
}

// TicketListFilter describes listing filters; visibility scoping happens
// before these are applied.
type TicketListFilter struct {
	SearchTerm *string
	Status     *domain.TicketStatus
	Priority   *domain.TicketPriority
	Limit      int
	Offset     int
}

// TicketRatingInput describes rating payload.
type TicketRatingInput struct {
	Rating                int
	Comment               *string
	WasSolutionHelpful    *bool
	ResponseSpeedRating   *int
	ProfessionalismRating *int
}

// CreateTicket opens a new ticket for the caller.
func (s *TicketService) CreateTicket(ctx context.Context, caller *domain.User, input TicketCreateInput) (*domain.Ticket, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, apperrors.NewValidationError("title and description required", nil)
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return nil, apperrors.NewValidationError("title too long", map[string]any{"max": maxTitleLen})
	}
	if utf8.RuneCountInString(description) > maxTextLen {
		return nil, apperrors.NewValidationError("description too long", map[string]any{"max": maxTextLen})
	}
	if input.Priority != "" && !input.Priority.Valid() {
		return nil, apperrors.NewValidationError("unknown priority", map[string]any{"priority": input.Priority})
	}

	if _, err := s.categories.GetByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("category", map[string]any{"category_id": input.CategoryID})
		}
		return nil, apperrors.MapError(err)
	}
	if input.HotelID != nil {
		if _, err := s.hotels.GetByID(ctx, *input.HotelID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("hotel", map[string]any{"hotel_id": *input.HotelID})
			}
			return nil, apperrors.MapError(err)
		}
	}

	ticket := &domain.Ticket{
		Title:              title,
		Description:        description,
		Status:             domain.TicketStatusOpen,
		Priority:           input.Priority,
		BookingReferenceID: input.BookingReferenceID,
		CreatorID:          caller.ID,
		CreatorName:        caller.FullName,
		CategoryID:         input.CategoryID,
		HotelID:            input.HotelID,
	}
	if ticket.Priority == "" {
		ticket.Priority = domain.TicketPriorityMedium
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, caller, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			CreatorID:  ticket.CreatorID,
			CategoryID: ticket.CategoryID,
			HotelID:    ticket.HotelID,
			Priority:   ticket.Priority,
			Title:      ticket.Title,
		},
	})
	return ticket, nil
}

// ListTickets returns tickets visible to the caller, newest first.
// The caller's visibility scope is fixed before any search or filter
// predicate is considered.
func (s *TicketService) ListTickets(ctx context.Context, caller *domain.User, filter TicketListFilter) ([]domain.Ticket, error) {
	repoFilter := repository.TicketFilter{
		SearchTerm: filter.SearchTerm,
		Status:     filter.Status,
		Priority:   filter.Priority,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}

	switch {
	case auth.Can(caller.UserType, auth.CapViewAllTickets):
		// unscoped
	case auth.Can(caller.UserType, auth.CapViewHotelTickets):
		if caller.HotelID == nil {
			return []domain.Ticket{}, nil
		}
		repoFilter.HotelID = caller.HotelID
	default:
		creatorID := caller.ID
		repoFilter.CreatorID = &creatorID
	}

	tickets, err := s.tickets.ListWithFilter(ctx, repoFilter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !auth.Can(caller.UserType, auth.CapViewInternalNotes) {
		for i := range tickets {
			tickets[i].InternalNotes = nil
		}
	}
	return tickets, nil
}

// GetTicket fetches one ticket with its conversation thread. Internal
// notes are stripped from the projection unless the caller's role may
// see them; this applies even when access is otherwise granted.
func (s *TicketService) GetTicket(ctx context.Context, caller *domain.User, ticketID int64) (*domain.Ticket, []domain.TicketResponse, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, nil, err
	}
	if !s.canAccessTicket(caller, ticket) {
		return nil, nil, apperrors.NewForbidden("access denied")
	}

	responses, err := s.responses.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}

	if !auth.Can(caller.UserType, auth.CapViewInternalNotes) {
		projected := *ticket
		projected.InternalNotes = nil
		return &projected, responses, nil
	}
	return ticket, responses, nil
}

// AddResponse appends a message to the ticket thread. A staff response
// on an Open ticket escalates it to InProgress; both writes commit in
// one transaction.
func (s *TicketService) AddResponse(ctx context.Context, caller *domain.User, ticketID int64, message string) (*domain.TicketResponse, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperrors.NewValidationError("message required", nil)
	}
	if utf8.RuneCountInString(message) > maxTextLen {
		return nil, apperrors.NewValidationError("message too long", map[string]any{"max": maxTextLen})
	}

	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !s.canAccessTicket(caller, ticket) {
		return nil, apperrors.NewForbidden("access denied")
	}
	if ticket.Status == domain.TicketStatusClosed {
		return nil, apperrors.NewConflict("ticket is closed", map[string]any{"ticket_id": ticket.ID})
	}

	isStaff := caller.UserType.IsStaff()
	response := &domain.TicketResponse{
		TicketID:        ticket.ID,
		Message:         message,
		ResponderID:     caller.ID,
		ResponderName:   caller.FullName,
		IsStaffResponse: isStaff,
	}

	now := time.Now().UTC()
	autoEscalated := isStaff && ticket.Status == domain.TicketStatusOpen

	err = s.tx.WithinTx(ctx, func(r *repository.Repositories) error {
		if err := r.Responses.Create(ctx, response); err != nil {
			return err
		}
		ticket.UpdatedAt = &now
		if autoEscalated {
			ticket.Status = domain.TicketStatusInProgress
		}
		return r.Tickets.Update(ctx, ticket)
	})
	if err != nil {
		return nil, mapUpdateError(err)
	}

	s.publishEvent(ctx, caller, events.Event{
		Type:     events.EventTicketResponseAdded,
		TicketID: ticket.ID,
		Payload: events.TicketResponseAddedPayload{
			ResponseID:      response.ID,
			ResponderID:     caller.ID,
			ResponderName:   caller.FullName,
			IsStaffResponse: isStaff,
			CreatorID:       ticket.CreatorID,
			AutoEscalated:   autoEscalated,
		},
	})
	return response, nil
}

// explicitTransitions maps allowed status changes for staff roles.
// Leaving Closed is handled separately: it requires the reopen
// capability held only by administrators.
var explicitTransitions = map[domain.TicketStatus][]domain.TicketStatus{
	domain.TicketStatusOpen:       {domain.TicketStatusInProgress, domain.TicketStatusResolved, domain.TicketStatusClosed},
	domain.TicketStatusInProgress: {domain.TicketStatusResolved, domain.TicketStatusClosed, domain.TicketStatusOpen},
	domain.TicketStatusResolved:   {domain.TicketStatusClosed, domain.TicketStatusInProgress},
	domain.TicketStatusClosed:     {},
}

func transitionAllowed(current, next domain.TicketStatus) bool {
	for _, candidate := range explicitTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// UpdateStatus moves a ticket through its lifecycle. expectedVersion,
// when supplied, must match the version the caller last read.
func (s *TicketService) UpdateStatus(ctx context.Context, caller *domain.User, ticketID int64, newStatus domain.TicketStatus, expectedVersion *int64) (*domain.Ticket, error) {
	if !newStatus.Valid() {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": newStatus})
	}

	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	isAssignee := ticket.AssigneeID != nil && *ticket.AssigneeID == caller.ID
	if !auth.Can(caller.UserType, auth.CapUpdateStatus) && !isAssignee {
		return nil, apperrors.NewForbidden("status change requires a support role")
	}
	if !s.canAccessTicket(caller, ticket) {
		return nil, apperrors.NewForbidden("access denied")
	}

	if ticket.Status == domain.TicketStatusClosed {
		if !auth.Can(caller.UserType, auth.CapReopenClosed) {
			return nil, apperrors.NewForbidden("reopening a closed ticket requires an administrator")
		}
		if newStatus == domain.TicketStatusClosed {
			return nil, apperrors.NewInvalidTransition("ticket already closed", nil)
		}
	} else if !transitionAllowed(ticket.Status, newStatus) {
		return nil, apperrors.NewInvalidTransition("transition not allowed", map[string]any{
			"from": ticket.Status,
			"to":   newStatus,
		})
	}

	if expectedVersion != nil && *expectedVersion != ticket.Version {
		return nil, apperrors.NewConflict("ticket was modified concurrently", map[string]any{"version": ticket.Version})
	}

	now := time.Now().UTC()
	oldStatus := ticket.Status
	ticket.Status = newStatus
	ticket.UpdatedAt = &now
	if newStatus == domain.TicketStatusClosed {
		ticket.ClosedAt = &now
	} else if ticket.ClosedAt != nil {
		ticket.ClosedAt = nil
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, mapUpdateError(err)
	}

	s.publishEvent(ctx, caller, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
			CreatorID: ticket.CreatorID,
		},
	})
	return ticket, nil
}

// AssignTicket hands a ticket to a support agent. Hotel-scoped agents
// may only take tickets of their own hotel; platform support and
// administrators are hotel-agnostic.
func (s *TicketService) AssignTicket(ctx context.Context, caller *domain.User, ticketID int64, assigneeID string, expectedVersion *int64) (*domain.Ticket, error) {
	if !auth.Can(caller.UserType, auth.CapAssign) {
		return nil, apperrors.NewForbidden("assignment requires a support role")
	}

	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !s.canAccessTicket(caller, ticket) {
		return nil, apperrors.NewForbidden("access denied")
	}

	assignee, err := s.users.GetByID(ctx, assigneeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("assignee", map[string]any{"user_id": assigneeID})
		}
		return nil, apperrors.MapError(err)
	}
	if !assignee.IsActive {
		return nil, apperrors.NewValidationError("assignee is inactive", map[string]any{"user_id": assigneeID})
	}
	if !assignee.UserType.IsStaff() {
		return nil, apperrors.NewValidationError("assignee cannot handle tickets", map[string]any{"user_type": assignee.UserType})
	}
	if ticket.HotelID != nil && assignee.UserType == domain.UserTypeHotelSupport {
		if assignee.HotelID == nil || *assignee.HotelID != *ticket.HotelID {
			return nil, apperrors.NewValidationError("assignee belongs to a different hotel", map[string]any{
				"ticket_hotel_id": *ticket.HotelID,
			})
		}
	}

	if expectedVersion != nil && *expectedVersion != ticket.Version {
		return nil, apperrors.NewConflict("ticket was modified concurrently", map[string]any{"version": ticket.Version})
	}

	now := time.Now().UTC()
	ticket.AssigneeID = &assignee.ID
	ticket.AssignedAt = &now
	ticket.UpdatedAt = &now

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, mapUpdateError(err)
	}

	s.publishEvent(ctx, caller, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		Payload: events.TicketAssignedPayload{
			AssigneeID:   assignee.ID,
			AssigneeName: assignee.FullName,
			CreatorID:    ticket.CreatorID,
			TicketTitle:  ticket.Title,
		},
	})
	return ticket, nil
}

// RateTicket records the creator's one-time rating of a resolved or
// closed ticket. The support agent on the rating is snapshotted from
// the current assignee.
func (s *TicketService) RateTicket(ctx context.Context, caller *domain.User, ticketID int64, input TicketRatingInput) (*domain.TicketRating, error) {
	if input.Rating < minRating || input.Rating > maxRating {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5", map[string]any{"rating": input.Rating})
	}
	for _, sub := range []*int{input.ResponseSpeedRating, input.ProfessionalismRating} {
		if sub != nil && (*sub < minRating || *sub > maxRating) {
			return nil, apperrors.NewValidationError("sub-rating must be between 1 and 5", nil)
		}
	}

	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.CreatorID != caller.ID {
		return nil, apperrors.NewForbidden("only the ticket creator may rate it")
	}
	if !ticket.Status.Terminal() {
		return nil, apperrors.NewConflict("ticket is not resolved yet", map[string]any{"status": ticket.Status})
	}

	if _, err := s.ratings.GetByTicket(ctx, ticket.ID); err == nil {
		return nil, apperrors.NewConflict("ticket already rated", map[string]any{"ticket_id": ticket.ID})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	rating := &domain.TicketRating{
		TicketID:              ticket.ID,
		Rating:                input.Rating,
		Comment:               input.Comment,
		WasSolutionHelpful:    input.WasSolutionHelpful,
		ResponseSpeedRating:   input.ResponseSpeedRating,
		ProfessionalismRating: input.ProfessionalismRating,
		RaterID:               caller.ID,
		SupportAgentID:        ticket.AssigneeID,
	}
	if err := s.ratings.Create(ctx, rating); err != nil {
		// unique index on ticket_id catches the race between the
		// existence check and the insert
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, caller, events.Event{
		Type:     events.EventTicketRated,
		TicketID: ticket.ID,
		Payload: events.TicketRatedPayload{
			Rating:         rating.Rating,
			SupportAgentID: rating.SupportAgentID,
		},
	})
	return rating, nil
}

// ListCategories returns the fixed category reference data.
func (s *TicketService) ListCategories(ctx context.Context) ([]domain.TicketCategory, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return categories, nil
}

func (s *TicketService) loadTicket(ctx context.Context, ticketID int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// canAccessTicket is the single visibility predicate: creator, assigned
// agent, the ticket hotel's team, or a role that sees everything.
func (s *TicketService) canAccessTicket(caller *domain.User, ticket *domain.Ticket) bool {
	if auth.Can(caller.UserType, auth.CapViewAllTickets) {
		return true
	}
	if ticket.CreatorID == caller.ID {
		return true
	}
	if ticket.AssigneeID != nil && *ticket.AssigneeID == caller.ID {
		return true
	}
	if auth.Can(caller.UserType, auth.CapViewHotelTickets) &&
		caller.HotelID != nil && ticket.HotelID != nil && *caller.HotelID == *ticket.HotelID {
		return true
	}
	return false
}

func mapUpdateError(err error) error {
	if errors.Is(err, repository.ErrVersionConflict) {
		return apperrors.NewConflict("ticket was modified concurrently", nil)
	}
	return apperrors.MapError(err)
}

func (s *TicketService) publishEvent(ctx context.Context, actor *domain.User, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	event.ActorID = actor.ID
	event.ActorRole = actor.UserType
	_ = s.dispatcher.Publish(ctx, event)
}
