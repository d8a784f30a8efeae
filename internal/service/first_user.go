package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"app-setup/internal/domain"
	"app-setup/internal/repository"
	"app-setup/internal/security"
)

var (
	// ErrUserAlreadyExists is returned when any user row exists, the
	// bootstrap path provisions at most one account.
	ErrUserAlreadyExists = errors.New("a user already exists in the system")
	// ErrAdminRoleMissing is returned when the admin role seed is absent,
	// meaning installation has not run yet.
	ErrAdminRoleMissing = errors.New("admin role does not exist, please run the installation first")
)

// FirstUserService provisions the initial administrator account.
type FirstUserService interface {
	CreateFirstUser(ctx context.Context, username, password string) (*domain.User, error)
}

type firstUserService struct {
	roles  repository.RoleRepository
	users  repository.UserRepository
	hasher security.Hasher
}

func NewFirstUserService(roles repository.RoleRepository, users repository.UserRepository, hasher security.Hasher) FirstUserService {
	return &firstUserService{
		roles:  roles,
		users:  users,
		hasher: hasher,
	}
}

// CreateFirstUser creates the one bootstrap user and binds it to the admin
// role. It refuses to run while any user row exists; afterwards account
// management is expected to happen through the application proper.
func (s *firstUserService) CreateFirstUser(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)

	if username == "" {
		return nil, errors.New("user name is required")
	}
	if password == "" {
		return nil, errors.New("password is required")
	}

	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("check existing users: %w", err)
	}
	if count > 0 {
		return nil, ErrUserAlreadyExists
	}

	adminRole, err := s.roles.GetByName(ctx, domain.AdminRoleName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAdminRoleMissing
		}
		return nil, fmt.Errorf("look up admin role: %w", err)
	}

	// hashing failure aborts before any write
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		RoleID:       adminRole.ID,
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return sanitizeUser(user), nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Username:  user.Username,
		RoleID:    user.RoleID,
		CreatedAt: user.CreatedAt,
	}
}
