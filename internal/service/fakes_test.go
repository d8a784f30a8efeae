package service

import (
	"context"
	"errors"
	"fmt"

	"app-setup/internal/domain"
	"app-setup/internal/repository"
)

// fakeRoleRepo enforces the role_name uniqueness constraint the way the
// store would, so installer tests exercise the same conflict signals.
type fakeRoleRepo struct {
	roles     map[string]*domain.Role
	nextID    int64
	initCalls int
	getErr    error
	createErr error
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: map[string]*domain.Role{}, nextID: 1}
}

func (f *fakeRoleRepo) Init(ctx context.Context) error {
	f.initCalls++
	return nil
}

func (f *fakeRoleRepo) Create(ctx context.Context, role *domain.Role) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	if _, ok := f.roles[role.Name]; ok {
		return 0, fmt.Errorf("role %q: %w", role.Name, repository.ErrDuplicate)
	}
	role.ID = f.nextID
	f.nextID++
	f.roles[role.Name] = &domain.Role{ID: role.ID, Name: role.Name}
	return role.ID, nil
}

func (f *fakeRoleRepo) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	role, ok := f.roles[name]
	if !ok {
		return nil, fmt.Errorf("role %q: %w", name, repository.ErrNotFound)
	}
	return &domain.Role{ID: role.ID, Name: role.Name}, nil
}

type fakeUserRepo struct {
	users     []*domain.User
	nextID    int64
	initCalls int
	countErr  error
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1}
}

func (f *fakeUserRepo) Init(ctx context.Context) error {
	f.initCalls++
	return nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	for _, existing := range f.users {
		if existing.Username == user.Username {
			return 0, fmt.Errorf("user %q: %w", user.Username, repository.ErrDuplicate)
		}
	}
	user.ID = f.nextID
	f.nextID++
	stored := *user
	f.users = append(f.users, &stored)
	return user.ID, nil
}

func (f *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("user %d: %w", id, repository.ErrNotFound)
}

type fakeEnsurer struct {
	calls int
	err   error
}

func (f *fakeEnsurer) EnsureDatabase(ctx context.Context) error {
	f.calls++
	return f.err
}

type failingHasher struct{}

func (failingHasher) Hash(password string) (string, error) {
	return "", errors.New("entropy source unavailable")
}

func (failingHasher) Compare(hash, password string) error {
	return errors.New("entropy source unavailable")
}
