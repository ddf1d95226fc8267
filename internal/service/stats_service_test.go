package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mabat-platform/support-service/internal/domain"
)

func TestDashboardAggregates(t *testing.T) {
	tickets := newFakeTicketRepo()
	users := newFakeUserRepo()
	hotels := newFakeHotelRepo()

	require.NoError(t, users.Create(context.Background(), testUser("u1", domain.UserTypeEndUser, nil)))
	require.NoError(t, users.Create(context.Background(), testUser("adm", domain.UserTypeAdmin, nil)))
	require.NoError(t, hotels.Create(context.Background(), &domain.Hotel{Name: "מלון", NameEn: "Hotel", IsActive: true}))

	require.NoError(t, tickets.Create(context.Background(), &domain.Ticket{Title: "a", Status: domain.TicketStatusOpen}))
	require.NoError(t, tickets.Create(context.Background(), &domain.Ticket{Title: "b", Status: domain.TicketStatusInProgress}))
	require.NoError(t, tickets.Create(context.Background(), &domain.Ticket{Title: "c", Status: domain.TicketStatusClosed}))

	svc := NewStatsService(tickets, users, hotels, nil, time.Minute, 10, zap.NewNop())

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalTickets)
	assert.Equal(t, int64(2), stats.OpenTickets)
	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.TotalHotels)
	assert.Equal(t, int64(1), stats.UsersByType[domain.UserTypeEndUser])
	assert.Equal(t, int64(1), stats.UsersByType[domain.UserTypeAdmin])
	assert.Equal(t, int64(0), stats.UsersByType[domain.UserTypeHotelSupport])
	assert.Len(t, stats.RecentTickets, 3)
}
