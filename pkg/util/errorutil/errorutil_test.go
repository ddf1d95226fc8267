package errorutil

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsCarryStatus(t *testing.T) {
	cases := []struct {
		err    error
		code   string
		status int
	}{
		{NewValidationError("bad", nil), CodeValidation, http.StatusBadRequest},
		{NewNotFound("ticket", nil), CodeNotFound, http.StatusNotFound},
		{NewUnauthorized("nope"), CodeUnauthorized, http.StatusUnauthorized},
		{NewForbidden("nope"), CodeForbidden, http.StatusForbidden},
		{NewInvalidTransition("nope", nil), CodeInvalidTransition, http.StatusUnprocessableEntity},
		{NewConflict("nope", nil), CodeConflict, http.StatusConflict},
		{NewInternalError(errors.New("boom")), CodeInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		var domainErr *DomainError
		require.ErrorAs(t, tc.err, &domainErr)
		assert.Equal(t, tc.code, domainErr.Code)
		assert.Equal(t, tc.status, domainErr.HTTPStatus)
	}
}

func TestToDomainErrorMapsPersistenceErrors(t *testing.T) {
	notFound := ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, CodeNotFound, notFound.Code)

	unique := ToDomainError(&pgconn.PgError{Code: "23505"})
	assert.Equal(t, CodeConflict, unique.Code)

	other := ToDomainError(errors.New("boom"))
	assert.Equal(t, CodeInternal, other.Code)

	passthrough := ToDomainError(NewForbidden("denied"))
	assert.Equal(t, CodeForbidden, passthrough.Code)

	assert.Nil(t, ToDomainError(nil))
}

func TestIsCode(t *testing.T) {
	err := NewConflict("already rated", nil)
	assert.True(t, IsCode(err, CodeConflict))
	assert.False(t, IsCode(err, CodeNotFound))
	assert.False(t, IsCode(errors.New("plain"), CodeConflict))
}
