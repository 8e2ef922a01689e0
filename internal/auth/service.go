package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/osa-portal/osa-portal/internal/shared"
)

// Service wraps authentication business rules.
type Service struct {
	repo   Repository
	signer *TokenSigner
}

// NewService constructs a new Service.
func NewService(repo Repository, signer *TokenSigner) *Service {
	return &Service{repo: repo, signer: signer}
}

// Session is the result of a successful registration or login.
type Session struct {
	User  Summary `json:"user"`
	Token string  `json:"token"`
}

// Register creates a self-service account. Self-registered accounts are
// always viewers; elevated roles are granted through the admin endpoints.
func (s *Service) Register(ctx context.Context, email, password, fullName string) (*Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if err := CheckPasswordPolicy(password); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}
	user := &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         shared.RoleViewer,
		FullName:     fullName,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return s.session(user)
}

// Login validates email/password credentials against active accounts. Every
// failure mode returns the same error so account existence never leaks.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.repo.FindByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return s.session(user)
}

// Profile returns the requester's own record.
func (s *Service) Profile(ctx context.Context, userID uuid.UUID) (Summary, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(user), nil
}

// ChangePassword verifies the current password and stores a new hash.
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return shared.ErrUnauthorized
	}
	if err := CheckPasswordPolicy(next); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcryptCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, userID, string(hash))
}

// ResolveToken verifies a bearer token and loads the active account behind it.
func (s *Service) ResolveToken(ctx context.Context, token string) (*User, error) {
	userID, err := s.signer.Verify(token)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, shared.ErrUnauthorized
	}
	return user, nil
}

func (s *Service) session(user *User) (*Session, error) {
	token, err := s.signer.Sign(user.ID)
	if err != nil {
		return nil, err
	}
	return &Session{User: Summarize(user), Token: token}, nil
}
