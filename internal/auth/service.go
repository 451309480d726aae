package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/backoffice-hq/backoffice/internal/access"
	"github.com/backoffice-hq/backoffice/internal/platform/httpx"
	"github.com/backoffice-hq/backoffice/internal/roles"
)

// UserInfo is the user block of the login response.
type UserInfo struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// LoginResult is the full login response payload.
type LoginResult struct {
	User         UserInfo `json:"user"`
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
}

// Service wraps authentication business rules.
type Service struct {
	users    UserStore
	roles    roles.Store
	resolver *access.Resolver
	tokens   *TokenIssuer
}

// NewService constructs a new Service.
func NewService(users UserStore, roleStore roles.Store, resolver *access.Resolver, tokens *TokenIssuer) *Service {
	return &Service{users: users, roles: roleStore, resolver: resolver, tokens: tokens}
}

// Login validates credentials against the requested role and assembles the
// login response. The role must exist; credentials must match an account
// holding that role. The user's permission set is the role's resolved
// identifier list.
func (s *Service) Login(ctx context.Context, email, password, roleName string) (*LoginResult, error) {
	role, err := s.roles.GetByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return nil, httpx.Wrap(httpx.ErrInvalidInput, "Invalid role")
		}
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !strings.EqualFold(user.Role, role.Name) {
		return nil, ErrInvalidCredentials
	}

	permissions, err := s.resolver.EffectivePermissions(ctx, roleName)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.tokens.IssueAccessToken(user.ID, role.Name, permissions)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.IssueRefreshToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		User: UserInfo{
			ID:          user.ID,
			Email:       user.Email,
			Name:        user.Name,
			Role:        user.Role,
			Permissions: permissions,
		},
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout revokes the supplied refresh token. An empty token is a no-op.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.tokens.RevokeRefreshToken(ctx, refreshToken)
}
