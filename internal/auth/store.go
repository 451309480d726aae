package auth

import (
	"context"
	"strings"

	"github.com/backoffice-hq/backoffice/internal/platform/httpx"
)

// ErrInvalidCredentials indicates login failure. Unknown accounts, wrong
// passwords, and role mismatches all collapse into this one error.
var ErrInvalidCredentials = httpx.Wrap(httpx.ErrUnauthorized, "Invalid credentials")

// UserStore resolves accounts by email.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// MemoryUserStore is a fixed in-memory account directory keyed by email,
// case-insensitively.
type MemoryUserStore struct {
	byEmail map[string]User
}

// NewMemoryUserStore builds a store from the given accounts.
func NewMemoryUserStore(users ...User) *MemoryUserStore {
	s := &MemoryUserStore{byEmail: make(map[string]User, len(users))}
	for _, u := range users {
		s.byEmail[strings.ToLower(u.Email)] = u
	}
	return s
}

// FindByEmail returns the account registered under the given email.
func (s *MemoryUserStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}
