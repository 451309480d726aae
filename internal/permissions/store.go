package permissions

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/backoffice-hq/backoffice/internal/platform/httpx"
)

// Store defines the persistence contract for permissions. List returns
// records in creation order.
type Store interface {
	List(ctx context.Context) ([]Permission, error)
	Get(ctx context.Context, id string) (Permission, error)
	Create(ctx context.Context, in CreateInput) (Permission, error)
	Update(ctx context.Context, id string, in UpdateInput) (Permission, error)
	Delete(ctx context.Context, id string) error
}

func errNotFound() error {
	return httpx.Wrap(httpx.ErrNotFound, "Permission not found")
}

func errDuplicateIdentifier() error {
	return httpx.Wrap(httpx.ErrConflict, "Identifier must be unique")
}

func errMissingFields() error {
	return httpx.Wrap(httpx.ErrInvalidInput, "Name, identifier, and type are required")
}

// MemoryStore is a mutex-guarded in-memory permission store. It is the
// reference backend; Repository provides the PostgreSQL equivalent.
type MemoryStore struct {
	mu      sync.RWMutex
	records []Permission
	byIdent map[string]string // identifier -> id
	nextID  int64
	now     func() time.Time
}

// NewMemoryStore builds a store pre-populated with the given records. ID
// assignment continues after the highest numeric seed id.
func NewMemoryStore(seed ...Permission) *MemoryStore {
	s := &MemoryStore{
		records: make([]Permission, 0, len(seed)),
		byIdent: make(map[string]string, len(seed)),
		nextID:  1,
		now:     time.Now,
	}
	for _, p := range seed {
		s.records = append(s.records, p)
		s.byIdent[p.Identifier] = p.ID
		if n, err := strconv.ParseInt(p.ID, 10, 64); err == nil && n >= s.nextID {
			s.nextID = n + 1
		}
	}
	return s
}

// List returns all permissions in creation order.
func (s *MemoryStore) List(ctx context.Context) ([]Permission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Permission, len(s.records))
	copy(out, s.records)
	return out, nil
}

// Get returns the permission with the given id.
func (s *MemoryStore) Get(ctx context.Context, id string) (Permission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.records {
		if p.ID == id {
			return p, nil
		}
	}
	return Permission{}, errNotFound()
}

// Create validates and appends a new permission. The identifier uniqueness
// check runs under the write lock, so racing creates admit one winner.
func (s *MemoryStore) Create(ctx context.Context, in CreateInput) (Permission, error) {
	if in.Name == "" || in.Identifier == "" || !in.Type.Valid() {
		return Permission{}, errMissingFields()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byIdent[in.Identifier]; exists {
		return Permission{}, errDuplicateIdentifier()
	}

	now := s.now().UTC()
	p := Permission{
		ID:          strconv.FormatInt(s.nextID, 10),
		Name:        in.Name,
		Identifier:  in.Identifier,
		Type:        in.Type,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.nextID++
	s.records = append(s.records, p)
	s.byIdent[p.Identifier] = p.ID
	return p, nil
}

// Update merges the supplied fields over the stored record and refreshes
// UpdatedAt. An identifier change is re-validated against all other records.
func (s *MemoryStore) Update(ctx context.Context, id string, in UpdateInput) (Permission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, p := range s.records {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return Permission{}, errNotFound()
	}

	// Validate every supplied field before mutating anything; a rejected
	// update must leave both the record and the identifier index untouched.
	p := s.records[idx]
	if in.Name != nil && *in.Name == "" {
		return Permission{}, errMissingFields()
	}
	if in.Identifier != nil && *in.Identifier == "" {
		return Permission{}, errMissingFields()
	}
	if in.Type != nil && !in.Type.Valid() {
		return Permission{}, errMissingFields()
	}
	if in.Identifier != nil && *in.Identifier != p.Identifier {
		if owner, exists := s.byIdent[*in.Identifier]; exists && owner != id {
			return Permission{}, errDuplicateIdentifier()
		}
	}

	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Identifier != nil && *in.Identifier != p.Identifier {
		delete(s.byIdent, p.Identifier)
		p.Identifier = *in.Identifier
		s.byIdent[p.Identifier] = id
	}
	if in.Type != nil {
		p.Type = *in.Type
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	p.UpdatedAt = s.now().UTC()
	s.records[idx] = p
	return p, nil
}

// Delete removes the permission with the given id. Role references to the
// deleted id are left in place; access resolution tolerates them.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.records {
		if p.ID == id {
			delete(s.byIdent, p.Identifier)
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return errNotFound()
}
