package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mabat-platform/support-service/internal/auth"
	"github.com/mabat-platform/support-service/internal/config"
	"github.com/mabat-platform/support-service/internal/domain"
	"github.com/mabat-platform/support-service/internal/repository"
)

type memCategoryRepo struct {
	categories map[int64]domain.TicketCategory
	upserts    int
}

func (m *memCategoryRepo) GetByID(_ context.Context, id int64) (*domain.TicketCategory, error) {
	category, ok := m.categories[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &category, nil
}

func (m *memCategoryRepo) List(_ context.Context) ([]domain.TicketCategory, error) {
	var result []domain.TicketCategory
	for _, category := range m.categories {
		result = append(result, category)
	}
	return result, nil
}

func (m *memCategoryRepo) Upsert(_ context.Context, category *domain.TicketCategory) error {
	m.upserts++
	if _, ok := m.categories[category.ID]; !ok {
		m.categories[category.ID] = *category
	}
	return nil
}

type memUserRepo struct {
	users map[string]domain.User
}

func (m *memUserRepo) Create(_ context.Context, user *domain.User) error {
	m.users[user.ID] = *user
	return nil
}

func (m *memUserRepo) Update(_ context.Context, user *domain.User) error {
	m.users[user.ID] = *user
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			copied := user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memUserRepo) List(_ context.Context, _ repository.UserFilter) ([]domain.User, error) {
	return nil, nil
}

func (m *memUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

func (m *memUserRepo) CountByType(_ context.Context) (map[domain.UserType]int64, error) {
	return nil, nil
}

func (m *memUserRepo) TouchLastLogin(_ context.Context, _ string, _ time.Time) error {
	return nil
}

func TestBootstrapSeedsCategoriesAndAdmin(t *testing.T) {
	categories := &memCategoryRepo{categories: make(map[int64]domain.TicketCategory)}
	users := &memUserRepo{users: make(map[string]domain.User)}
	repos := &repository.Repositories{Categories: categories, Users: users}

	cfg := config.BootstrapConfig{
		SeedCategories: true,
		AdminEmail:     "admin@mabat.com",
		AdminPassword:  "s3cret-pass",
		AdminFullName:  "Platform Administrator",
	}

	require.NoError(t, Bootstrap(context.Background(), repos, cfg, 4, zap.NewNop()))

	assert.Len(t, categories.categories, 8)
	assert.Equal(t, "Check-in Issue", categories.categories[1].Name)
	assert.Equal(t, "General Inquiry", categories.categories[8].Name)

	admin, err := users.GetByEmail(context.Background(), "admin@mabat.com")
	require.NoError(t, err)
	assert.Equal(t, domain.UserTypeAdmin, admin.UserType)
	assert.True(t, admin.IsActive)
	require.NoError(t, auth.ComparePassword(admin.PasswordHash, "s3cret-pass"))
}

func TestBootstrapIsIdempotent(t *testing.T) {
	categories := &memCategoryRepo{categories: make(map[int64]domain.TicketCategory)}
	users := &memUserRepo{users: make(map[string]domain.User)}
	repos := &repository.Repositories{Categories: categories, Users: users}

	cfg := config.BootstrapConfig{
		SeedCategories: true,
		AdminEmail:     "admin@mabat.com",
		AdminPassword:  "s3cret-pass",
		AdminFullName:  "Platform Administrator",
	}

	require.NoError(t, Bootstrap(context.Background(), repos, cfg, 4, zap.NewNop()))
	require.NoError(t, Bootstrap(context.Background(), repos, cfg, 4, zap.NewNop()))

	assert.Len(t, categories.categories, 8)
	assert.Len(t, users.users, 1)
}

func TestBootstrapSkipsAdminWithoutPassword(t *testing.T) {
	categories := &memCategoryRepo{categories: make(map[int64]domain.TicketCategory)}
	users := &memUserRepo{users: make(map[string]domain.User)}
	repos := &repository.Repositories{Categories: categories, Users: users}

	cfg := config.BootstrapConfig{SeedCategories: false, AdminEmail: "admin@mabat.com"}

	require.NoError(t, Bootstrap(context.Background(), repos, cfg, 4, zap.NewNop()))
	assert.Empty(t, users.users)
	assert.Zero(t, categories.upserts)
}
