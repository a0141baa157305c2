package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curtain_store/internal/models"
)

func TestLoginVerifyLogout(t *testing.T) {
	users := NewUserService(newFakeUserRepo())
	tokens := &fakeTokens{}
	auth := NewAuthService(users, tokens, time.Hour)
	ctx := context.Background()

	require.NoError(t, users.CreateUser(ctx, &models.User{Username: "admin", Email: "admin@example.com", Role: "super_admin"}, "change-me-now"))

	token, user, err := auth.Login(ctx, "admin", "change-me-now")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "admin", user.Username)

	verified, err := auth.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, verified.ID)

	_, err = auth.Verify(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	require.NoError(t, auth.Logout(ctx, token))
	_, err = auth.Verify(ctx, token)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, _, err = auth.Login(ctx, "admin", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
