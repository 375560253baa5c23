package services

import (
	"context"
	"testing"
	"time"

	"hotelbook/constants"
	"hotelbook/errors"
	"hotelbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginStoresTokenAndResolvesUser(t *testing.T) {
	env := newTestEnv(t, BookingPolicy{})
	ctx := context.Background()
	sess := NewStoreSession(env.local, "")

	res, err := env.auth.Login(ctx, sess, "Guest@Hotel.com ", "guest123")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, constants.KeyToken, sess.Key())

	stored, err := sess.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, res.Token, stored)

	user, err := env.auth.CurrentUser(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)
	assert.Equal(t, constants.RoleGuest, user.Role)
}

func TestLoginInvalidCredentials(t *testing.T) {
	env := newTestEnv(t, BookingPolicy{})
	ctx := context.Background()
	sess := NewStoreSession(env.local, "")

	_, err := env.auth.Login(ctx, sess, "guest@hotel.com", "wrong")
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidCredentials))
	assert.Contains(t, err.Error(), "invalid credentials")

	_, err = env.auth.Login(ctx, sess, "nobody@hotel.com", "guest123")
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidCredentials))

	token, err := sess.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestCurrentUserFailsAfterLogout(t *testing.T) {
	env := newTestEnv(t, BookingPolicy{})
	ctx := context.Background()
	sess := env.login(t, "admin@hotel.com", "admin123")

	_, err := env.auth.CurrentUser(ctx, sess)
	require.NoError(t, err)

	require.NoError(t, env.auth.Logout(ctx, sess))
	user, err := env.auth.CurrentUser(ctx, sess)
	assert.Nil(t, user)
	assert.True(t, errors.HasCode(err, errors.ErrCodeUnauthorized))
}

func TestCurrentUserRejectsForgedToken(t *testing.T) {
	env := newTestEnv(t, BookingPolicy{})
	ctx := context.Background()
	sess := NewStoreSession(env.local, "forged")

	other := NewTokenService("another-secret", time.Hour)
	forged, err := other.Generate(UserInfo{UserId: 1, Role: constants.RoleAdmin})
	require.NoError(t, err)
	require.NoError(t, sess.Save(ctx, forged))

	_, err = env.auth.CurrentUser(ctx, sess)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidToken))

	require.NoError(t, sess.Save(ctx, "not-a-token"))
	_, err = env.auth.CurrentUser(ctx, sess)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidToken))
}

func TestExpiredToken(t *testing.T) {
	tokens := NewTokenService("s", -time.Minute)
	tok, err := tokens.Generate(UserInfo{UserId: 3, Role: constants.RoleGuest})
	require.NoError(t, err)
	_, err = tokens.Parse(tok)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidToken))
}

func TestCurrentUserFailsWhenUserDeleted(t *testing.T) {
	env := newTestEnv(t, BookingPolicy{})
	ctx := context.Background()
	sess := env.login(t, "guest@hotel.com", "guest123")

	require.NoError(t, env.users.Delete(ctx, 3))
	_, err := env.auth.CurrentUser(ctx, sess)
	assert.True(t, errors.HasCode(err, errors.ErrCodeUnauthorized))
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t, BookingPolicy{})
	ctx := context.Background()

	user, err := env.auth.Register(ctx, RegisterInput{Email: "new@guest.io", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, constants.RoleGuest, user.Role)
	assert.Equal(t, "new", user.Name)
	assert.NotEqual(t, "secret1", user.Password)

	_, err = env.auth.Register(ctx, RegisterInput{Email: "NEW@guest.io", Password: "secret1"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeUserExists))

	sess := NewStoreSession(env.local, "new")
	_, err = env.auth.Login(ctx, sess, "new@guest.io", "secret1")
	assert.NoError(t, err)
}

func TestSeedIsIdempotent(t *testing.T) {
	env := newTestEnv(t, BookingPolicy{})
	ctx := context.Background()
	_, err := env.users.Create(ctx, models.User{Email: "x@y.zz", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, SeedStore(ctx, env.primary, env.users))
	all, err := env.users.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)
}
