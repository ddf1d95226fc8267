package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/mabat-platform/support-service/internal/domain"
	"github.com/mabat-platform/support-service/internal/events"
	"github.com/mabat-platform/support-service/internal/repository"
	apperrors "github.com/mabat-platform/support-service/pkg/util/errorutil"
)

// NotificationService turns workflow events into per-user notification
// records and serves the notification inbox. Emission failures are
// logged and swallowed; they must never fail the triggering mutation.
type NotificationService struct {
	notifications repository.NotificationRepository
	hotels        repository.HotelRepository
	dispatcher    events.Dispatcher
	logger        *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(notifications repository.NotificationRepository, hotels repository.HotelRepository, dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		hotels:        hotels,
		dispatcher:    dispatcher,
		logger:        logger,
	}
}

// RegisterHandlers subscribes to workflow events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketResponseAdded, n.handleResponseAdded)
	n.dispatcher.Subscribe(events.EventTicketStatusChanged, n.handleStatusChanged)
	n.dispatcher.Subscribe(events.EventTicketAssigned, n.handleTicketAssigned)
}

func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok {
		return nil
	}
	if payload.HotelID == nil {
		return nil
	}
	hotel, err := n.hotels.GetByID(ctx, *payload.HotelID)
	if err != nil || hotel.OwnerID == nil {
		return nil
	}
	n.emit(ctx, &domain.Notification{
		Title:     "New support ticket",
		Message:   fmt.Sprintf("A new ticket was opened for %s: %s", hotel.NameEn, payload.Title),
		Type:      domain.NotificationNewTicket,
		UserID:    *hotel.OwnerID,
		TicketID:  &event.TicketID,
		ActionURL: ticketURL(event.TicketID),
	})
	return nil
}

func (n *NotificationService) handleResponseAdded(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketResponseAddedPayload)
	if !ok {
		return nil
	}
	if !payload.IsStaffResponse || payload.CreatorID == payload.ResponderID {
		return nil
	}
	n.emit(ctx, &domain.Notification{
		Title:     "New response on your ticket",
		Message:   fmt.Sprintf("%s replied to your support ticket", payload.ResponderName),
		Type:      domain.NotificationNewResponse,
		UserID:    payload.CreatorID,
		TicketID:  &event.TicketID,
		ActionURL: ticketURL(event.TicketID),
	})
	return nil
}

func (n *NotificationService) handleStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketStatusChangedPayload)
	if !ok {
		return nil
	}
	n.emit(ctx, &domain.Notification{
		Title:     "Ticket status updated",
		Message:   fmt.Sprintf("Your ticket moved from %s to %s", payload.OldStatus, payload.NewStatus),
		Type:      domain.NotificationStatusChanged,
		UserID:    payload.CreatorID,
		TicketID:  &event.TicketID,
		ActionURL: ticketURL(event.TicketID),
	})
	if payload.NewStatus == domain.TicketStatusResolved {
		n.emit(ctx, &domain.Notification{
			Title:     "How did we do?",
			Message:   "Your ticket was resolved. Please rate the support you received.",
			Type:      domain.NotificationRatingRequested,
			UserID:    payload.CreatorID,
			TicketID:  &event.TicketID,
			ActionURL: ticketURL(event.TicketID),
		})
	}
	return nil
}

func (n *NotificationService) handleTicketAssigned(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketAssignedPayload)
	if !ok {
		return nil
	}
	n.emit(ctx, &domain.Notification{
		Title:     "Ticket assigned to you",
		Message:   fmt.Sprintf("You were assigned the ticket: %s", payload.TicketTitle),
		Type:      domain.NotificationTicketAssigned,
		UserID:    payload.AssigneeID,
		TicketID:  &event.TicketID,
		ActionURL: ticketURL(event.TicketID),
	})
	return nil
}

func (n *NotificationService) emit(ctx context.Context, notification *domain.Notification) {
	if err := n.notifications.Create(ctx, notification); err != nil {
		n.logger.Warn("failed to persist notification",
			zap.String("recipient", notification.UserID),
			zap.Error(err))
	}
}

func ticketURL(ticketID int64) *string {
	url := fmt.Sprintf("/tickets/%d", ticketID)
	return &url
}

// ListNotifications returns the caller's inbox, newest first.
func (n *NotificationService) ListNotifications(ctx context.Context, caller *domain.User, unreadOnly bool, limit, offset int) ([]domain.Notification, error) {
	list, err := n.notifications.ListByUser(ctx, caller.ID, repository.NotificationFilter{
		UnreadOnly: unreadOnly,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// MarkRead flips a single notification to read for its recipient.
func (n *NotificationService) MarkRead(ctx context.Context, caller *domain.User, notificationID int64) error {
	err := n.notifications.MarkRead(ctx, notificationID, caller.ID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("notification", map[string]any{"notification_id": notificationID})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// UnreadCount returns the caller's unread notification count.
func (n *NotificationService) UnreadCount(ctx context.Context, caller *domain.User) (int64, error) {
	count, err := n.notifications.CountUnread(ctx, caller.ID)
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	return count, nil
}
