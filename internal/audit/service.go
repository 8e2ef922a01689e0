package audit

import (
	"context"
)

const defaultRecentLimit = 100

// Repository loads persisted entries for administrative review.
type Repository interface {
	Recent(ctx context.Context, limit int) ([]Row, error)
}

// Service reads the audit trail for administrative review.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Recent returns the newest entries joined with actor name and email.
// A non-positive limit falls back to the default window.
func (s *Service) Recent(ctx context.Context, limit int) ([]Row, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return s.repo.Recent(ctx, limit)
}
