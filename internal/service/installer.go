package service

import (
	"context"
	"errors"
	"fmt"

	"app-setup/internal/domain"
	"app-setup/internal/repository"
)

// DatabaseEnsurer creates the target database if it does not exist yet.
type DatabaseEnsurer interface {
	EnsureDatabase(ctx context.Context) error
}

// Installer performs the one-time bootstrap: database, tables, seed data.
// Safe to invoke repeatedly; every step is create-if-absent.
type Installer interface {
	Install(ctx context.Context) error
}

type installer struct {
	database DatabaseEnsurer
	roles    repository.RoleRepository
	users    repository.UserRepository
}

func NewInstaller(database DatabaseEnsurer, roles repository.RoleRepository, users repository.UserRepository) Installer {
	return &installer{
		database: database,
		roles:    roles,
		users:    users,
	}
}

func (s *installer) Install(ctx context.Context) error {
	if err := s.database.EnsureDatabase(ctx); err != nil {
		return fmt.Errorf("ensure database: %w", err)
	}

	// roles first, users carries a foreign key to it
	if err := s.roles.Init(ctx); err != nil {
		return fmt.Errorf("init role repository: %w", err)
	}
	if err := s.users.Init(ctx); err != nil {
		return fmt.Errorf("init user repository: %w", err)
	}

	return s.ensureAdminRole(ctx)
}

func (s *installer) ensureAdminRole(ctx context.Context) error {
	_, err := s.roles.GetByName(ctx, domain.AdminRoleName)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("look up admin role: %w", err)
	}

	if _, err := s.roles.Create(ctx, &domain.Role{Name: domain.AdminRoleName}); err != nil {
		// a concurrent install won the insert, the seed exists either way
		if errors.Is(err, repository.ErrDuplicate) {
			return nil
		}
		return fmt.Errorf("seed admin role: %w", err)
	}
	return nil
}
