package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mabat-platform/support-service/internal/config"
	"github.com/mabat-platform/support-service/internal/domain"
	apperrors "github.com/mabat-platform/support-service/pkg/util/errorutil"
)

func newAuthService(users *fakeUserRepo) *AuthService {
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 30,
			BcryptCost:            4,
		},
	}
	return NewAuthService(cfg, users)
}

func TestRegisterCreatesEndUser(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users)

	user, token, _, err := svc.Register(context.Background(), "Dana Levi", "Dana@Example.com ", "s3cret-pass")
	require.NoError(t, err)

	assert.Equal(t, domain.UserTypeEndUser, user.UserType)
	assert.Equal(t, "dana@example.com", user.Email)
	assert.True(t, user.IsActive)
	assert.NotEmpty(t, user.ID)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.UserTypeEndUser, claims.UserType)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users)

	_, _, _, err := svc.Register(context.Background(), "Dana", "dana@example.com", "s3cret-pass")
	require.NoError(t, err)

	_, _, _, err = svc.Register(context.Background(), "Other", "dana@example.com", "another-pass")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))
}

func TestLoginFlow(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users)

	registered, _, _, err := svc.Register(context.Background(), "Dana", "dana@example.com", "s3cret-pass")
	require.NoError(t, err)

	user, token, _, err := svc.Login(context.Background(), "DANA@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, token)
	assert.NotNil(t, user.LastLoginAt)

	_, _, _, err = svc.Login(context.Background(), "dana@example.com", "wrong")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeUnauthorized))

	_, _, _, err = svc.Login(context.Background(), "nobody@example.com", "s3cret-pass")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeUnauthorized))
}

func TestLoginDisabledAccount(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users)

	user, _, _, err := svc.Register(context.Background(), "Dana", "dana@example.com", "s3cret-pass")
	require.NoError(t, err)

	user.IsActive = false
	require.NoError(t, users.Update(context.Background(), user))

	_, _, _, err = svc.Login(context.Background(), "dana@example.com", "s3cret-pass")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))
}
