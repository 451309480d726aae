package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backoffice-hq/backoffice/internal/auth"
)

func newIssuer(t *testing.T, secret string) (*auth.TokenIssuer, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return auth.NewTokenIssuer(secret, client, 15*time.Minute, time.Hour), mr
}

func TestAccessTokenRoundTrip(t *testing.T) {
	issuer, _ := newIssuer(t, "secret-a")

	token, err := issuer.IssueAccessToken("42", "admin", []string{"dashboard:read"})
	require.NoError(t, err)

	claims, err := issuer.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, []string{"dashboard:read"}, claims.Permissions)
	assert.NotEmpty(t, claims.ID)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	issuerA, _ := newIssuer(t, "secret-a")
	issuerB, _ := newIssuer(t, "secret-b")

	token, err := issuerA.IssueAccessToken("42", "admin", nil)
	require.NoError(t, err)

	_, err = issuerB.ParseAccessToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAccessTokenGarbage(t *testing.T) {
	issuer, _ := newIssuer(t, "secret-a")
	_, err := issuer.ParseAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestRefreshTokenLifecycle(t *testing.T) {
	issuer, mr := newIssuer(t, "secret-a")
	ctx := context.Background()

	token, err := issuer.IssueRefreshToken(ctx, "42")
	require.NoError(t, err)
	require.True(t, mr.Exists("refresh:"+token))

	// Tokens expire with the configured TTL.
	ttl := mr.TTL("refresh:" + token)
	assert.Equal(t, time.Hour, ttl)

	require.NoError(t, issuer.RevokeRefreshToken(ctx, token))
	assert.False(t, mr.Exists("refresh:"+token))

	// Revoking an unknown token is not an error.
	require.NoError(t, issuer.RevokeRefreshToken(ctx, "missing"))
}
