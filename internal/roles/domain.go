package roles

import "time"

// Role is a named bundle of permissions assigned to users at login. It holds
// weak references to permission ids; a referenced permission may have been
// deleted since.
type Role struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	PermissionIDs []string  `json:"permissionIds"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CreateInput carries the fields accepted when creating a role.
type CreateInput struct {
	Name          string
	Description   string
	PermissionIDs []string
}

// UpdateInput carries optional fields for a partial update. Nil fields are
// left unchanged.
type UpdateInput struct {
	Name          *string
	Description   *string
	PermissionIDs *[]string
}
