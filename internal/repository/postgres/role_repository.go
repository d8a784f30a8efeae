package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"app-setup/internal/domain"
	"app-setup/internal/repository"
)

const createRolesTable = `
CREATE TABLE IF NOT EXISTS roles (
	role_id BIGSERIAL PRIMARY KEY,
	role_name TEXT NOT NULL UNIQUE
);
`

type RoleRepository struct {
	db *sql.DB
}

func NewRoleRepository(db *sql.DB) repository.RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createRolesTable); err != nil {
		return fmt.Errorf("create roles table: %w", err)
	}
	return nil
}

func (r *RoleRepository) Create(ctx context.Context, role *domain.Role) (int64, error) {
	err := r.db.QueryRowContext(ctx, `
INSERT INTO roles (role_name)
VALUES ($1)
RETURNING role_id`,
		role.Name,
	).Scan(&role.ID)
	if err != nil {
		if isDuplicate(err) {
			return 0, fmt.Errorf("role %q: %w", role.Name, repository.ErrDuplicate)
		}
		return 0, fmt.Errorf("insert role: %w", err)
	}
	return role.ID, nil
}

func (r *RoleRepository) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	var role domain.Role
	err := r.db.QueryRowContext(ctx, `
SELECT role_id, role_name
FROM roles
WHERE role_name = $1`,
		name,
	).Scan(&role.ID, &role.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("role %q: %w", name, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("select role: %w", err)
	}
	return &role, nil
}
