package roles

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence. The roles table carries
// a unique index on lower(name); violations surface as conflicts.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const roleColumns = `id, name, description, permission_ids, created_at, updated_at`

// List returns all roles in creation order.
func (r *Repository) List(ctx context.Context) ([]Role, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+roleColumns+` FROM roles ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var roles []Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return roles, nil
}

// Get returns the role with the given id.
func (r *Repository) Get(ctx context.Context, id string) (Role, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+roleColumns+` FROM roles WHERE id = $1`, id)
	role, err := scanRole(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Role{}, errNotFound()
		}
		return Role{}, err
	}
	return role, nil
}

// GetByName returns the role whose name matches case-insensitively.
func (r *Repository) GetByName(ctx context.Context, name string) (Role, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+roleColumns+` FROM roles WHERE lower(name) = lower($1)`, name)
	role, err := scanRole(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Role{}, errNotFound()
		}
		return Role{}, err
	}
	return role, nil
}

// Create inserts a new role.
func (r *Repository) Create(ctx context.Context, in CreateInput) (Role, error) {
	if in.Name == "" {
		return Role{}, errNameRequired()
	}
	permissionIDs := in.PermissionIDs
	if permissionIDs == nil {
		permissionIDs = []string{}
	}
	row := r.pool.QueryRow(ctx,
		`INSERT INTO roles (id, name, description, permission_ids, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, now(), now())
		 RETURNING `+roleColumns,
		uuid.NewString(), in.Name, in.Description, permissionIDs)
	role, err := scanRole(row)
	if err != nil {
		if isUniqueViolation(err) {
			return Role{}, errDuplicateName()
		}
		return Role{}, err
	}
	return role, nil
}

// Update merges the supplied fields over the stored record. NULL arguments
// keep the existing column value via COALESCE.
func (r *Repository) Update(ctx context.Context, id string, in UpdateInput) (Role, error) {
	if in.Name != nil && *in.Name == "" {
		return Role{}, errNameRequired()
	}
	var permissionIDs []string
	if in.PermissionIDs != nil {
		permissionIDs = *in.PermissionIDs
		if permissionIDs == nil {
			permissionIDs = []string{}
		}
	}
	row := r.pool.QueryRow(ctx,
		`UPDATE roles SET
			name = COALESCE($2, name),
			description = COALESCE($3, description),
			permission_ids = COALESCE($4, permission_ids),
			updated_at = now()
		 WHERE id = $1
		 RETURNING `+roleColumns,
		id, in.Name, in.Description, permissionIDs)
	role, err := scanRole(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Role{}, errNotFound()
		}
		if isUniqueViolation(err) {
			return Role{}, errDuplicateName()
		}
		return Role{}, err
	}
	return role, nil
}

func scanRole(row pgx.Row) (Role, error) {
	var role Role
	if err := row.Scan(&role.ID, &role.Name, &role.Description, &role.PermissionIDs, &role.CreatedAt, &role.UpdatedAt); err != nil {
		return Role{}, err
	}
	if role.PermissionIDs == nil {
		role.PermissionIDs = []string{}
	}
	return role, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
