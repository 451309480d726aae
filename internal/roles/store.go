package roles

import (
	"context"
	"slices"
	"strconv"
	"sync"
	"time"

	"golang.org/x/text/cases"

	"github.com/backoffice-hq/backoffice/internal/platform/httpx"
)

// Store defines the persistence contract for roles. Role names are unique
// case-insensitively; GetByName matches accordingly. The reference contract
// exposes no delete.
type Store interface {
	List(ctx context.Context) ([]Role, error)
	Get(ctx context.Context, id string) (Role, error)
	GetByName(ctx context.Context, name string) (Role, error)
	Create(ctx context.Context, in CreateInput) (Role, error)
	Update(ctx context.Context, id string, in UpdateInput) (Role, error)
}

// nameKey normalizes a role name into its case-insensitive uniqueness key.
func nameKey(name string) string {
	return cases.Fold().String(name)
}

func errNotFound() error {
	return httpx.Wrap(httpx.ErrNotFound, "Role not found")
}

func errDuplicateName() error {
	return httpx.Wrap(httpx.ErrConflict, "Role name must be unique")
}

func errNameRequired() error {
	return httpx.Wrap(httpx.ErrInvalidInput, "Name is required")
}

// MemoryStore is a mutex-guarded in-memory role store.
type MemoryStore struct {
	mu      sync.RWMutex
	records []Role
	byName  map[string]string // folded name -> id
	nextID  int64
	now     func() time.Time
}

// NewMemoryStore builds a store pre-populated with the given records. ID
// assignment continues after the highest numeric seed id.
func NewMemoryStore(seed ...Role) *MemoryStore {
	s := &MemoryStore{
		records: make([]Role, 0, len(seed)),
		byName:  make(map[string]string, len(seed)),
		nextID:  1,
		now:     time.Now,
	}
	for _, r := range seed {
		if r.PermissionIDs == nil {
			r.PermissionIDs = []string{}
		}
		s.records = append(s.records, r)
		s.byName[nameKey(r.Name)] = r.ID
		if n, err := strconv.ParseInt(r.ID, 10, 64); err == nil && n >= s.nextID {
			s.nextID = n + 1
		}
	}
	return s
}

// List returns all roles in creation order.
func (s *MemoryStore) List(ctx context.Context) ([]Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Role, len(s.records))
	for i, r := range s.records {
		out[i] = cloneRole(r)
	}
	return out, nil
}

// Get returns the role with the given id.
func (s *MemoryStore) Get(ctx context.Context, id string) (Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if r.ID == id {
			return cloneRole(r), nil
		}
	}
	return Role{}, errNotFound()
}

// GetByName returns the role whose name matches case-insensitively.
func (s *MemoryStore) GetByName(ctx context.Context, name string) (Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byName[nameKey(name)]
	if !ok {
		return Role{}, errNotFound()
	}
	for _, r := range s.records {
		if r.ID == id {
			return cloneRole(r), nil
		}
	}
	return Role{}, errNotFound()
}

// Create validates and appends a new role. The name uniqueness check runs
// under the write lock, so racing creates admit one winner.
func (s *MemoryStore) Create(ctx context.Context, in CreateInput) (Role, error) {
	if in.Name == "" {
		return Role{}, errNameRequired()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := nameKey(in.Name)
	if _, exists := s.byName[key]; exists {
		return Role{}, errDuplicateName()
	}

	permissionIDs := slices.Clone(in.PermissionIDs)
	if permissionIDs == nil {
		permissionIDs = []string{}
	}

	now := s.now().UTC()
	r := Role{
		ID:            strconv.FormatInt(s.nextID, 10),
		Name:          in.Name,
		Description:   in.Description,
		PermissionIDs: permissionIDs,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.nextID++
	s.records = append(s.records, r)
	s.byName[key] = r.ID
	return r, nil
}

// Update merges the supplied fields over the stored record and refreshes
// UpdatedAt. A name change is re-validated case-insensitively unless it only
// changes letter case.
func (s *MemoryStore) Update(ctx context.Context, id string, in UpdateInput) (Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, r := range s.records {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return Role{}, errNotFound()
	}

	r := s.records[idx]
	if in.Name != nil && *in.Name != r.Name {
		if *in.Name == "" {
			return Role{}, errNameRequired()
		}
		key := nameKey(*in.Name)
		if owner, exists := s.byName[key]; exists && owner != id {
			return Role{}, errDuplicateName()
		}
		delete(s.byName, nameKey(r.Name))
		r.Name = *in.Name
		s.byName[key] = id
	}
	if in.Description != nil {
		r.Description = *in.Description
	}
	if in.PermissionIDs != nil {
		ids := slices.Clone(*in.PermissionIDs)
		if ids == nil {
			ids = []string{}
		}
		r.PermissionIDs = ids
	}
	r.UpdatedAt = s.now().UTC()
	s.records[idx] = r
	return cloneRole(r), nil
}

func cloneRole(r Role) Role {
	r.PermissionIDs = slices.Clone(r.PermissionIDs)
	return r
}
