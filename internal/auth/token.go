package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const tokenIssuer = "backoffice"

// ErrInvalidToken indicates the token failed validation.
var ErrInvalidToken = errors.New("auth: invalid token")

// Claims carried by the access token. Permissions hold the identifiers the
// client uses for UI gating; server-side enforcement must not rely on them
// alone.
type Claims struct {
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

// TokenIssuer signs HS256 access tokens and registers opaque refresh tokens
// in Redis so logout can revoke them. There is no refresh endpoint; issuance
// and revocation only.
type TokenIssuer struct {
	secret     []byte
	redis      *redis.Client
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenIssuer constructs a TokenIssuer.
func NewTokenIssuer(secret string, client *redis.Client, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:     []byte(secret),
		redis:      client,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// IssueAccessToken signs a JWT for the given user, role, and permission set.
func (t *TokenIssuer) IssueAccessToken(userID, role string, permissions []string) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Role:        role,
		Permissions: permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.accessTTL)),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// ParseAccessToken verifies the token signature and required claims.
func (t *TokenIssuer) ParseAccessToken(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(tok *jwt.Token) (any, error) {
		if tok.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Issuer != tokenIssuer {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// IssueRefreshToken stores an opaque token in Redis under the refresh TTL.
func (t *TokenIssuer) IssueRefreshToken(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	if err := t.redis.Set(ctx, refreshKey(token), userID, t.refreshTTL).Err(); err != nil {
		return "", fmt.Errorf("auth: store refresh token: %w", err)
	}
	return token, nil
}

// RevokeRefreshToken deletes a refresh token record.
func (t *TokenIssuer) RevokeRefreshToken(ctx context.Context, token string) error {
	if err := t.redis.Del(ctx, refreshKey(token)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}

func refreshKey(token string) string {
	return "refresh:" + token
}
