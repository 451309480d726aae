package permissions

import "time"

// Type classifies what a permission gates.
type Type string

const (
	// TypePage gates visibility of a dashboard section.
	TypePage Type = "page"
	// TypeAction gates an operation.
	TypeAction Type = "action"
)

// Valid reports whether t is a known permission type.
func (t Type) Valid() bool {
	return t == TypePage || t == TypeAction
}

// Permission is an atomic capability keyed by a stable machine identifier.
// The identifier (e.g. "users:create") is distinct from the store-assigned ID.
type Permission struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Identifier  string    `json:"identifier"`
	Type        Type      `json:"type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateInput carries the fields accepted when creating a permission.
type CreateInput struct {
	Name        string
	Identifier  string
	Type        Type
	Description string
}

// UpdateInput carries optional fields for a partial update. Nil fields are
// left unchanged.
type UpdateInput struct {
	Name        *string
	Identifier  *string
	Type        *Type
	Description *string
}
