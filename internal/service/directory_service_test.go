package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mabat-platform/support-service/internal/config"
	"github.com/mabat-platform/support-service/internal/domain"
	"github.com/mabat-platform/support-service/internal/repository"
	apperrors "github.com/mabat-platform/support-service/pkg/util/errorutil"
)

func newDirectoryFixture() (*DirectoryService, *fakeUserRepo, *fakeHotelRepo) {
	users := newFakeUserRepo()
	hotels := newFakeHotelRepo()
	cfg := config.Config{Auth: config.AuthConfig{BcryptCost: 4}}
	return NewDirectoryService(cfg, users, hotels), users, hotels
}

func adminUser() *domain.User {
	return &domain.User{ID: "adm", UserType: domain.UserTypeAdmin, IsActive: true}
}

func TestCreateHotelRequiresAdmin(t *testing.T) {
	svc, _, _ := newDirectoryFixture()

	support := &domain.User{ID: "ms", UserType: domain.UserTypeMabatSupport, IsActive: true}
	_, err := svc.CreateHotel(context.Background(), support, HotelInput{Name: "מלון", NameEn: "Hotel", IsActive: true})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))

	hotel, err := svc.CreateHotel(context.Background(), adminUser(), HotelInput{Name: "מלון", NameEn: "Hotel", IsActive: true})
	require.NoError(t, err)
	assert.NotZero(t, hotel.ID)
}

func TestCreateHotelValidatesOwner(t *testing.T) {
	svc, users, _ := newDirectoryFixture()

	endUser := &domain.User{ID: "u1", UserType: domain.UserTypeEndUser, IsActive: true}
	require.NoError(t, users.Create(context.Background(), endUser))

	ownerID := "u1"
	_, err := svc.CreateHotel(context.Background(), adminUser(), HotelInput{
		Name: "מלון", NameEn: "Hotel", IsActive: true, OwnerID: &ownerID,
	})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))

	missing := "nobody"
	_, err = svc.CreateHotel(context.Background(), adminUser(), HotelInput{
		Name: "מלון", NameEn: "Hotel", IsActive: true, OwnerID: &missing,
	})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestCreateUserHotelScoping(t *testing.T) {
	svc, _, hotels := newDirectoryFixture()

	hotel := &domain.Hotel{Name: "מלון", NameEn: "Hotel", IsActive: true}
	require.NoError(t, hotels.Create(context.Background(), hotel))

	// hotel-scoped role without a hotel
	_, err := svc.CreateUser(context.Background(), adminUser(), UserCreateInput{
		FullName: "Agent", Email: "agent@example.com", Password: "s3cret-pass",
		UserType: domain.UserTypeHotelSupport,
	})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))

	hid := hotel.ID
	user, err := svc.CreateUser(context.Background(), adminUser(), UserCreateInput{
		FullName: "Agent", Email: "agent@example.com", Password: "s3cret-pass",
		UserType: domain.UserTypeHotelSupport, HotelID: &hid,
	})
	require.NoError(t, err)
	require.NotNil(t, user.HotelID)
	assert.Equal(t, hid, *user.HotelID)

	// platform roles never carry a hotel
	other, err := svc.CreateUser(context.Background(), adminUser(), UserCreateInput{
		FullName: "Support", Email: "support@example.com", Password: "s3cret-pass",
		UserType: domain.UserTypeMabatSupport, HotelID: &hid,
	})
	require.NoError(t, err)
	assert.Nil(t, other.HotelID)
}

func TestSetUserActive(t *testing.T) {
	svc, users, _ := newDirectoryFixture()

	admin := adminUser()
	require.NoError(t, users.Create(context.Background(), admin))
	target := &domain.User{ID: "u1", UserType: domain.UserTypeEndUser, IsActive: true}
	require.NoError(t, users.Create(context.Background(), target))

	updated, err := svc.SetUserActive(context.Background(), admin, target.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	// admins cannot lock themselves out
	_, err = svc.SetUserActive(context.Background(), admin, admin.ID, false)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))
}

func TestListUsersFilterByType(t *testing.T) {
	svc, users, _ := newDirectoryFixture()

	require.NoError(t, users.Create(context.Background(), &domain.User{ID: "u1", UserType: domain.UserTypeEndUser, IsActive: true}))
	require.NoError(t, users.Create(context.Background(), &domain.User{ID: "ms", UserType: domain.UserTypeMabatSupport, IsActive: true}))

	userType := domain.UserTypeEndUser
	list, err := svc.ListUsers(context.Background(), adminUser(), repository.UserFilter{UserType: &userType})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "u1", list[0].ID)
}
