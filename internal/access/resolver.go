// Package access computes the effective permission set granted by a role.
package access

import (
	"context"
	"errors"

	"github.com/backoffice-hq/backoffice/internal/permissions"
	"github.com/backoffice-hq/backoffice/internal/platform/httpx"
	"github.com/backoffice-hq/backoffice/internal/roles"
)

// Resolver expands a role name into the flat list of permission identifiers
// a user receives at login.
type Resolver struct {
	roles       roles.Store
	permissions permissions.Store
}

// NewResolver constructs a Resolver over the two stores.
func NewResolver(roleStore roles.Store, permissionStore permissions.Store) *Resolver {
	return &Resolver{roles: roleStore, permissions: permissionStore}
}

// EffectivePermissions returns the permission identifiers granted by the
// named role, preserving the role's declared order. An unknown role yields an
// empty set rather than an error, and references to deleted permissions are
// skipped silently.
func (r *Resolver) EffectivePermissions(ctx context.Context, roleName string) ([]string, error) {
	role, err := r.roles.GetByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return []string{}, nil
		}
		return nil, err
	}

	all, err := r.permissions.List(ctx)
	if err != nil {
		return nil, err
	}
	identifierByID := make(map[string]string, len(all))
	for _, p := range all {
		identifierByID[p.ID] = p.Identifier
	}

	identifiers := make([]string, 0, len(role.PermissionIDs))
	for _, id := range role.PermissionIDs {
		if identifier, ok := identifierByID[id]; ok {
			identifiers = append(identifiers, identifier)
		}
	}
	return identifiers, nil
}
