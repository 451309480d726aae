package access_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backoffice-hq/backoffice/internal/access"
	"github.com/backoffice-hq/backoffice/internal/permissions"
	"github.com/backoffice-hq/backoffice/internal/roles"
)

func fixtureStores(roleSeed []roles.Role) (*roles.MemoryStore, *permissions.MemoryStore) {
	permStore := permissions.NewMemoryStore(
		permissions.Permission{ID: "1", Name: "Dashboard Access", Identifier: "dashboard:read", Type: permissions.TypePage},
		permissions.Permission{ID: "2", Name: "User Management", Identifier: "users:read", Type: permissions.TypePage},
		permissions.Permission{ID: "3", Name: "Create User", Identifier: "users:create", Type: permissions.TypeAction},
	)
	return roles.NewMemoryStore(roleSeed...), permStore
}

func TestEffectivePermissionsPreservesOrder(t *testing.T) {
	roleStore, permStore := fixtureStores([]roles.Role{
		{ID: "1", Name: "ops", PermissionIDs: []string{"3", "1"}},
	})
	resolver := access.NewResolver(roleStore, permStore)

	got, err := resolver.EffectivePermissions(context.Background(), "ops")
	require.NoError(t, err)
	assert.Equal(t, []string{"users:create", "dashboard:read"}, got)
}

func TestEffectivePermissionsSkipsDanglingReferences(t *testing.T) {
	roleStore, permStore := fixtureStores([]roles.Role{
		{ID: "1", Name: "ops", PermissionIDs: []string{"1", "99", "2"}},
	})
	resolver := access.NewResolver(roleStore, permStore)

	got, err := resolver.EffectivePermissions(context.Background(), "ops")
	require.NoError(t, err)
	assert.Equal(t, []string{"dashboard:read", "users:read"}, got)
}

func TestEffectivePermissionsUnknownRole(t *testing.T) {
	roleStore, permStore := fixtureStores(nil)
	resolver := access.NewResolver(roleStore, permStore)

	got, err := resolver.EffectivePermissions(context.Background(), "ghost")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestEffectivePermissionsCaseInsensitiveRoleName(t *testing.T) {
	roleStore, permStore := fixtureStores([]roles.Role{
		{ID: "1", Name: "admin", PermissionIDs: []string{"1", "2"}},
	})
	resolver := access.NewResolver(roleStore, permStore)

	got, err := resolver.EffectivePermissions(context.Background(), "ADMIN")
	require.NoError(t, err)
	assert.Equal(t, []string{"dashboard:read", "users:read"}, got)
}

func TestEffectivePermissionsKeepsDuplicates(t *testing.T) {
	roleStore, permStore := fixtureStores([]roles.Role{
		{ID: "1", Name: "dup", PermissionIDs: []string{"1", "1"}},
	})
	resolver := access.NewResolver(roleStore, permStore)

	got, err := resolver.EffectivePermissions(context.Background(), "dup")
	require.NoError(t, err)
	assert.Equal(t, []string{"dashboard:read", "dashboard:read"}, got)
}

func TestEffectivePermissionsAfterPermissionDelete(t *testing.T) {
	roleStore, permStore := fixtureStores([]roles.Role{
		{ID: "1", Name: "ops", PermissionIDs: []string{"1", "2"}},
	})
	resolver := access.NewResolver(roleStore, permStore)
	ctx := context.Background()

	require.NoError(t, permStore.Delete(ctx, "2"))

	// The role still references the deleted id; resolution omits it.
	role, err := roleStore.GetByName(ctx, "ops")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, role.PermissionIDs)

	got, err := resolver.EffectivePermissions(ctx, "ops")
	require.NoError(t, err)
	assert.Equal(t, []string{"dashboard:read"}, got)
}
