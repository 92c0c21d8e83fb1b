package auth

import (
	"context"
	"testing"
	"time"

	"github.com/RaikyD/wb-shipping-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(testutil.NewStore(), time.Hour)

	_, err := svc.Register(ctx, " Staff@Example.com ", "s3cret")
	require.NoError(t, err)

	sess, err := svc.Login(ctx, "staff@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, "staff@example.com", sess.Email)

	got, err := svc.Authenticate(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, got.UserID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc := NewService(testutil.NewStore(), time.Hour)
	_, err := svc.Register(ctx, "a@b.c", "right")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "a@b.c", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@b.c", "right")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateExpiredSession(t *testing.T) {
	ctx := context.Background()
	svc := NewService(testutil.NewStore(), time.Minute)
	_, err := svc.Register(ctx, "a@b.c", "pw")
	require.NoError(t, err)
	sess, err := svc.Login(ctx, "a@b.c", "pw")
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	_, err = svc.Authenticate(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrSessionExpired)

	_, err = svc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.Authenticate(ctx, "unknown")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGenerateTokenIsUnique(t *testing.T) {
	a, err := GenerateToken()
	require.NoError(t, err)
	b, err := GenerateToken()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 43)
}
