package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mabat-platform/support-service/internal/domain"
	"github.com/mabat-platform/support-service/internal/repository"
	apperrors "github.com/mabat-platform/support-service/pkg/util/errorutil"
)

const statsCacheKey = "dashboard:stats"

// DashboardStats aggregates the admin control-panel numbers.
type DashboardStats struct {
	TotalTickets  int64                     `json:"total_tickets"`
	OpenTickets   int64                     `json:"open_tickets"`
	TotalUsers    int64                     `json:"total_users"`
	TotalHotels   int64                     `json:"total_hotels"`
	UsersByType   map[domain.UserType]int64 `json:"users_by_type"`
	RecentTickets []domain.Ticket           `json:"recent_tickets"`
}

// StatsService computes dashboard statistics, caching them briefly in
// Redis since every admin page view requests the same aggregates.
type StatsService struct {
	tickets       repository.TicketRepository
	users         repository.UserRepository
	hotels        repository.HotelRepository
	cache         *redis.Client
	cacheTTL      time.Duration
	recentTickets int
	logger        *zap.Logger
}

// NewStatsService creates the service; cache may be nil.
func NewStatsService(tickets repository.TicketRepository, users repository.UserRepository, hotels repository.HotelRepository, cache *redis.Client, cacheTTL time.Duration, recentTickets int, logger *zap.Logger) *StatsService {
	if recentTickets <= 0 {
		recentTickets = 10
	}
	return &StatsService{
		tickets:       tickets,
		users:         users,
		hotels:        hotels,
		cache:         cache,
		cacheTTL:      cacheTTL,
		recentTickets: recentTickets,
		logger:        logger,
	}
}

// Dashboard returns the aggregate statistics, served from cache when fresh.
func (s *StatsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	stats := &DashboardStats{}
	var err error

	if stats.TotalTickets, err = s.tickets.Count(ctx); err != nil {
		return nil, apperrors.MapError(err)
	}
	if stats.OpenTickets, err = s.tickets.CountByStatuses(ctx, domain.TicketStatusOpen, domain.TicketStatusInProgress); err != nil {
		return nil, apperrors.MapError(err)
	}
	if stats.TotalUsers, err = s.users.Count(ctx); err != nil {
		return nil, apperrors.MapError(err)
	}
	if stats.TotalHotels, err = s.hotels.Count(ctx); err != nil {
		return nil, apperrors.MapError(err)
	}

	counts, err := s.users.CountByType(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	stats.UsersByType = map[domain.UserType]int64{
		domain.UserTypeEndUser:      0,
		domain.UserTypeHotelOwner:   0,
		domain.UserTypeHotelSupport: 0,
		domain.UserTypeMabatSupport: 0,
		domain.UserTypeAdmin:        0,
	}
	for userType, count := range counts {
		stats.UsersByType[userType] = count
	}

	if stats.RecentTickets, err = s.tickets.ListRecent(ctx, s.recentTickets); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.toCache(ctx, stats)
	return stats, nil
}

func (s *StatsService) fromCache(ctx context.Context) *DashboardStats {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var stats DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil
	}
	return &stats
}

func (s *StatsService) toCache(ctx context.Context, stats *DashboardStats) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, statsCacheKey, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Debug("stats cache write failed", zap.Error(err))
	}
}
