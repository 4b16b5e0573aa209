package logic

import (
	"context"
	"testing"

	"github.com/blues/crowdhub/internal/database/databasetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureUserAndAuthenticate(t *testing.T) {
	db := databasetest.New(t)
	l := NewUserLogic(db)
	ctx := context.Background()

	user, created, err := l.EnsureUser(ctx, "Ana", " Ana@Example.com ", "correct horse")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.NotEqual(t, "correct horse", user.PasswordHash)

	again, created, err := l.EnsureUser(ctx, "Ana", "ana@example.com", "other")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, user.Id, again.Id)

	got, err := l.Authenticate(ctx, "ANA@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, user.Id, got.Id)

	_, err = l.Authenticate(ctx, "ana@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = l.Authenticate(ctx, "nobody@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetUser(t *testing.T) {
	db := databasetest.New(t)
	l := NewUserLogic(db)
	id := seedUser(t, db, "u@example.com")

	u, err := l.GetUser(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "u@example.com", u.Email)

	_, err = l.GetUser(context.Background(), id+100)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
