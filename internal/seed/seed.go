// Package seed provides the reference data set the dashboard ships with.
package seed

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/backoffice-hq/backoffice/internal/auth"
	"github.com/backoffice-hq/backoffice/internal/permissions"
	"github.com/backoffice-hq/backoffice/internal/roles"
)

var seededAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// DefaultPermissions returns the built-in permission records.
func DefaultPermissions() []permissions.Permission {
	return []permissions.Permission{
		{
			ID:          "1",
			Name:        "Dashboard Access",
			Identifier:  "dashboard:read",
			Type:        permissions.TypePage,
			Description: "Access to view the dashboard page",
			CreatedAt:   seededAt,
			UpdatedAt:   seededAt,
		},
		{
			ID:          "2",
			Name:        "User Management",
			Identifier:  "users:read",
			Type:        permissions.TypePage,
			Description: "Access to view users page",
			CreatedAt:   seededAt,
			UpdatedAt:   seededAt,
		},
		{
			ID:          "3",
			Name:        "Create User",
			Identifier:  "users:create",
			Type:        permissions.TypeAction,
			Description: "Permission to create new users",
			CreatedAt:   seededAt,
			UpdatedAt:   seededAt,
		},
		{
			ID:          "4",
			Name:        "Edit User",
			Identifier:  "users:update",
			Type:        permissions.TypeAction,
			Description: "Permission to edit existing users",
			CreatedAt:   seededAt,
			UpdatedAt:   seededAt,
		},
		{
			ID:          "5",
			Name:        "Delete User",
			Identifier:  "users:delete",
			Type:        permissions.TypeAction,
			Description: "Permission to delete users",
			CreatedAt:   seededAt,
			UpdatedAt:   seededAt,
		},
	}
}

// DefaultRoles returns the built-in role records.
func DefaultRoles() []roles.Role {
	return []roles.Role{
		{
			ID:            "1",
			Name:          "user",
			Description:   "Regular user with basic permissions",
			PermissionIDs: []string{"1"},
			CreatedAt:     seededAt,
			UpdatedAt:     seededAt,
		},
		{
			ID:            "2",
			Name:          "admin",
			Description:   "Administrator with full permissions",
			PermissionIDs: []string{"1", "2", "3", "4", "5"},
			CreatedAt:     seededAt,
			UpdatedAt:     seededAt,
		},
	}
}

// DefaultUsers returns the built-in accounts.
func DefaultUsers() []auth.User {
	return []auth.User{
		{
			ID:           "1",
			Email:        "admin@example.com",
			Name:         "Admin User",
			Role:         "admin",
			PasswordHash: mustHash("admin123"),
		},
		{
			ID:           "2",
			Email:        "user@example.com",
			Name:         "Regular User",
			Role:         "user",
			PasswordHash: mustHash("user123"),
		},
	}
}

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}
