package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mabat-platform/support-service/internal/domain"
	"github.com/mabat-platform/support-service/internal/events"
	"github.com/mabat-platform/support-service/internal/repository"
)

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []domain.Notification
	nextID        int64
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{nextID: 1}
}

func (f *fakeNotificationRepo) Create(_ context.Context, notification *domain.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	notification.ID = f.nextID
	f.nextID++
	f.notifications = append(f.notifications, *notification)
	return nil
}

func (f *fakeNotificationRepo) ListByUser(_ context.Context, userID string, filter repository.NotificationFilter) ([]domain.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Notification
	for _, n := range f.notifications {
		if n.UserID != userID {
			continue
		}
		if filter.UnreadOnly && n.IsRead {
			continue
		}
		result = append(result, n)
	}
	return result, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id int64, userID string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.notifications {
		if f.notifications[i].ID == id && f.notifications[i].UserID == userID {
			f.notifications[i].IsRead = true
			f.notifications[i].ReadAt = &at
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeNotificationRepo) CountUnread(_ context.Context, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, n := range f.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

type notificationFixture struct {
	service       *NotificationService
	notifications *fakeNotificationRepo
	hotels        *fakeHotelRepo
	dispatcher    events.Dispatcher
}

func newNotificationFixture(t *testing.T) *notificationFixture {
	t.Helper()

	notifications := newFakeNotificationRepo()
	hotels := newFakeHotelRepo()

	owner := "owner-1"
	hotel := &domain.Hotel{Name: "מלון הים", NameEn: "Sea Hotel", IsActive: true, OwnerID: &owner}
	require.NoError(t, hotels.Create(context.Background(), hotel))

	dispatcher := events.NewInMemoryDispatcher()
	svc := NewNotificationService(notifications, hotels, dispatcher, zap.NewNop())
	svc.RegisterHandlers()

	return &notificationFixture{
		service:       svc,
		notifications: notifications,
		hotels:        hotels,
		dispatcher:    dispatcher,
	}
}

func TestTicketCreatedNotifiesHotelOwner(t *testing.T) {
	f := newNotificationFixture(t)

	hid := int64(1)
	err := f.dispatcher.Publish(context.Background(), events.Event{
		Type:     events.EventTicketCreated,
		TicketID: 42,
		Payload: events.TicketCreatedPayload{
			CreatorID: "user-1",
			HotelID:   &hid,
			Title:     "Key card broken",
		},
	})
	require.NoError(t, err)

	owner := &domain.User{ID: "owner-1", UserType: domain.UserTypeHotelOwner}
	inbox, err := f.service.ListNotifications(context.Background(), owner, false, 10, 0)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, domain.NotificationNewTicket, inbox[0].Type)
	require.NotNil(t, inbox[0].TicketID)
	assert.Equal(t, int64(42), *inbox[0].TicketID)
}

func TestStaffResponseNotifiesCreator(t *testing.T) {
	f := newNotificationFixture(t)

	err := f.dispatcher.Publish(context.Background(), events.Event{
		Type:     events.EventTicketResponseAdded,
		TicketID: 7,
		Payload: events.TicketResponseAddedPayload{
			ResponderID:     "agent-1",
			ResponderName:   "Agent",
			IsStaffResponse: true,
			CreatorID:       "user-1",
		},
	})
	require.NoError(t, err)

	// a user's own response produces no notification
	err = f.dispatcher.Publish(context.Background(), events.Event{
		Type:     events.EventTicketResponseAdded,
		TicketID: 7,
		Payload: events.TicketResponseAddedPayload{
			ResponderID:     "user-1",
			IsStaffResponse: false,
			CreatorID:       "user-1",
		},
	})
	require.NoError(t, err)

	creator := &domain.User{ID: "user-1", UserType: domain.UserTypeEndUser}
	inbox, err := f.service.ListNotifications(context.Background(), creator, false, 10, 0)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, domain.NotificationNewResponse, inbox[0].Type)
}

func TestResolvedStatusRequestsRating(t *testing.T) {
	f := newNotificationFixture(t)

	err := f.dispatcher.Publish(context.Background(), events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: 7,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: domain.TicketStatusInProgress,
			NewStatus: domain.TicketStatusResolved,
			CreatorID: "user-1",
		},
	})
	require.NoError(t, err)

	creator := &domain.User{ID: "user-1", UserType: domain.UserTypeEndUser}
	inbox, err := f.service.ListNotifications(context.Background(), creator, false, 10, 0)
	require.NoError(t, err)
	require.Len(t, inbox, 2)

	types := []domain.NotificationType{inbox[0].Type, inbox[1].Type}
	assert.Contains(t, types, domain.NotificationStatusChanged)
	assert.Contains(t, types, domain.NotificationRatingRequested)
}

func TestMarkReadAndUnreadCount(t *testing.T) {
	f := newNotificationFixture(t)

	err := f.dispatcher.Publish(context.Background(), events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: 7,
		Payload: events.TicketAssignedPayload{
			AssigneeID:  "agent-1",
			TicketTitle: "Key card broken",
		},
	})
	require.NoError(t, err)

	agent := &domain.User{ID: "agent-1", UserType: domain.UserTypeMabatSupport}
	count, err := f.service.UnreadCount(context.Background(), agent)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	inbox, err := f.service.ListNotifications(context.Background(), agent, true, 10, 0)
	require.NoError(t, err)
	require.Len(t, inbox, 1)

	require.NoError(t, f.service.MarkRead(context.Background(), agent, inbox[0].ID))

	count, err = f.service.UnreadCount(context.Background(), agent)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// someone else's notification stays untouchable
	stranger := &domain.User{ID: "stranger", UserType: domain.UserTypeEndUser}
	err = f.service.MarkRead(context.Background(), stranger, inbox[0].ID)
	assert.Error(t, err)
}
