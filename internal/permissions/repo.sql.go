package permissions

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence. The permissions table
// carries a unique index on identifier; violations surface as conflicts.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const permissionColumns = `id, name, identifier, type, description, created_at, updated_at`

// List returns all permissions in creation order.
func (r *Repository) List(ctx context.Context) ([]Permission, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+permissionColumns+` FROM permissions ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var perms []Permission
	for rows.Next() {
		p, err := scanPermission(rows)
		if err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return perms, nil
}

// Get returns the permission with the given id.
func (r *Repository) Get(ctx context.Context, id string) (Permission, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+permissionColumns+` FROM permissions WHERE id = $1`, id)
	p, err := scanPermission(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Permission{}, errNotFound()
		}
		return Permission{}, err
	}
	return p, nil
}

// Create inserts a new permission.
func (r *Repository) Create(ctx context.Context, in CreateInput) (Permission, error) {
	if in.Name == "" || in.Identifier == "" || !in.Type.Valid() {
		return Permission{}, errMissingFields()
	}
	row := r.pool.QueryRow(ctx,
		`INSERT INTO permissions (id, name, identifier, type, description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, now(), now())
		 RETURNING `+permissionColumns,
		uuid.NewString(), in.Name, in.Identifier, string(in.Type), in.Description)
	p, err := scanPermission(row)
	if err != nil {
		if isUniqueViolation(err) {
			return Permission{}, errDuplicateIdentifier()
		}
		return Permission{}, err
	}
	return p, nil
}

// Update merges the supplied fields over the stored record. NULL arguments
// keep the existing column value via COALESCE.
func (r *Repository) Update(ctx context.Context, id string, in UpdateInput) (Permission, error) {
	if (in.Name != nil && *in.Name == "") ||
		(in.Identifier != nil && *in.Identifier == "") ||
		(in.Type != nil && !in.Type.Valid()) {
		return Permission{}, errMissingFields()
	}
	var typ *string
	if in.Type != nil {
		t := string(*in.Type)
		typ = &t
	}
	row := r.pool.QueryRow(ctx,
		`UPDATE permissions SET
			name = COALESCE($2, name),
			identifier = COALESCE($3, identifier),
			type = COALESCE($4, type),
			description = COALESCE($5, description),
			updated_at = now()
		 WHERE id = $1
		 RETURNING `+permissionColumns,
		id, in.Name, in.Identifier, typ, in.Description)
	p, err := scanPermission(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Permission{}, errNotFound()
		}
		if isUniqueViolation(err) {
			return Permission{}, errDuplicateIdentifier()
		}
		return Permission{}, err
	}
	return p, nil
}

// Delete removes the permission with the given id. Role references are not
// cleaned up; access resolution tolerates stale ids.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM permissions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errNotFound()
	}
	return nil
}

func scanPermission(row pgx.Row) (Permission, error) {
	var p Permission
	var typ string
	if err := row.Scan(&p.ID, &p.Name, &p.Identifier, &typ, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return Permission{}, err
	}
	p.Type = Type(typ)
	return p, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
