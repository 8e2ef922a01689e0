package users

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/osa-portal/osa-portal/internal/auth"
	"github.com/osa-portal/osa-portal/internal/platform/cache"
	"github.com/osa-portal/osa-portal/internal/shared"
)

// Service handles administrative account management rules.
type Service struct {
	repo   Repository
	stats  *cache.Versioned
	logger *slog.Logger
}

// NewService builds a Service instance. The cache may be nil in tests.
func NewService(repo Repository, stats *cache.Versioned, logger *slog.Logger) *Service {
	return &Service{repo: repo, stats: stats, logger: logger}
}

// ListUsers returns all accounts.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.ListUsers(ctx)
}

// CreateUser provisions an account with any role. Department is stored only
// for department-role accounts and forced null otherwise.
func (s *Service) CreateUser(ctx context.Context, input CreateInput) (*User, error) {
	if !shared.ValidRole(input.Role) {
		return nil, fmt.Errorf("%w: invalid role", shared.ErrValidation)
	}
	if strings.TrimSpace(input.FullName) == "" {
		return nil, fmt.Errorf("%w: full name is required", shared.ErrValidation)
	}
	department, err := departmentFor(input.Role, input.Department)
	if err != nil {
		return nil, err
	}
	if err := auth.CheckPasswordPolicy(input.Password); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := User{
		ID:         uuid.New(),
		Email:      strings.TrimSpace(strings.ToLower(input.Email)),
		Role:       shared.Role(input.Role),
		FullName:   input.FullName,
		Department: department,
		IsActive:   true,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.CreateUser(ctx, user, string(hash)); err != nil {
		return nil, err
	}
	s.bumpStats(ctx)
	return &user, nil
}

// UpdateUser mutates the authorization attributes of an account.
func (s *Service) UpdateUser(ctx context.Context, id uuid.UUID, input UpdateInput) (*User, error) {
	if !shared.ValidRole(input.Role) {
		return nil, fmt.Errorf("%w: invalid role", shared.ErrValidation)
	}
	department, err := departmentFor(input.Role, input.Department)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Email = strings.TrimSpace(strings.ToLower(input.Email))
	existing.Role = shared.Role(input.Role)
	existing.FullName = input.FullName
	existing.Department = department
	existing.IsActive = input.IsActive

	if err := s.repo.UpdateUser(ctx, *existing); err != nil {
		return nil, err
	}
	s.bumpStats(ctx)
	return existing, nil
}

// DeleteUser removes an account. Admin accounts are never deletable, and no
// requester may delete themselves; the two rejections are distinct.
func (s *Service) DeleteUser(ctx context.Context, requesterID, id uuid.UUID) error {
	if requesterID == id {
		return shared.ErrSelfDelete
	}
	target, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if target.Role == shared.RoleAdmin {
		return shared.ErrDeleteAdmin
	}
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.bumpStats(ctx)
	return nil
}

// ResetPassword sets a new password without checking the current one. This is
// the admin override path.
func (s *Service) ResetPassword(ctx context.Context, id uuid.UUID, password string) error {
	if err := auth.CheckPasswordPolicy(password); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.SetPassword(ctx, id, string(hash))
}

// CountByRole exposes the per-role aggregates for the dashboard.
func (s *Service) CountByRole(ctx context.Context) (map[shared.Role]int, int, error) {
	return s.repo.CountByRole(ctx)
}

// bumpStats invalidates the cached dashboard aggregates; role and active
// counts feed into them, so every account mutation orphans the cache.
func (s *Service) bumpStats(ctx context.Context) {
	if err := s.stats.Bump(ctx); err != nil && s.logger != nil {
		s.logger.Warn("bump statistics cache", slog.Any("error", err))
	}
}

func departmentFor(role, department string) (*string, error) {
	if shared.Role(role) != shared.RoleDepartment {
		return nil, nil
	}
	if !shared.ValidDepartment(department) {
		return nil, fmt.Errorf("%w: valid department is required for department role", shared.ErrValidation)
	}
	return &department, nil
}
