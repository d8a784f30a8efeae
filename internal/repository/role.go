package repository

import (
	"context"

	"app-setup/internal/domain"
)

// RoleRepository defines persistence operations for Role entities.
type RoleRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, role *domain.Role) (int64, error)
	GetByName(ctx context.Context, name string) (*domain.Role, error)
}
