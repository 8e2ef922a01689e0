// Package admin serves the administrative review surface: dashboard
// aggregates and the audit trail.
package admin

import (
	"context"
	"time"

	"github.com/osa-portal/osa-portal/internal/partnerships"
	"github.com/osa-portal/osa-portal/internal/platform/cache"
	"github.com/osa-portal/osa-portal/internal/shared"
)

const expiringSoonWindow = 30 * 24 * time.Hour

// PartnershipCounts aggregates partnership records for the dashboard.
type PartnershipCounts struct {
	Total        int `json:"total"`
	Active       int `json:"active"`
	ForRenewal   int `json:"for_renewal"`
	Terminated   int `json:"terminated"`
	ExpiringSoon int `json:"expiring_soon"`
}

// UserCounts aggregates accounts for the dashboard.
type UserCounts struct {
	Total      int `json:"total"`
	Active     int `json:"active"`
	Admin      int `json:"admin"`
	Department int `json:"department"`
	Viewer     int `json:"viewer"`
}

// DashboardStats is the admin dashboard payload.
type DashboardStats struct {
	Partnerships PartnershipCounts `json:"partnerships"`
	Users        UserCounts        `json:"users"`
	ByDepartment map[string]int    `json:"by_department"`
}

// PartnershipSource provides the dashboard projection of partnerships.
type PartnershipSource interface {
	DashboardRows(ctx context.Context) ([]partnerships.DashboardRow, error)
}

// UserSource provides account aggregates.
type UserSource interface {
	CountByRole(ctx context.Context) (map[shared.Role]int, int, error)
}

// Service computes the dashboard aggregates.
type Service struct {
	partnershipRows PartnershipSource
	userCounts      UserSource
	cache           *cache.Versioned
	now             func() time.Time
}

// NewService constructs a Service. The cache may be nil in tests.
func NewService(partnershipRows PartnershipSource, userCounts UserSource, c *cache.Versioned) *Service {
	return &Service{partnershipRows: partnershipRows, userCounts: userCounts, cache: c, now: time.Now}
}

// DashboardStats aggregates partnership and account counts. Only counts are
// exposed, so no field redaction applies here.
func (s *Service) DashboardStats(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats
	err := s.cache.FetchJSON(ctx, "dashboard", &stats, func(ctx context.Context) (any, error) {
		return s.compute(ctx)
	})
	return stats, err
}

func (s *Service) compute(ctx context.Context) (DashboardStats, error) {
	rows, err := s.partnershipRows.DashboardRows(ctx)
	if err != nil {
		return DashboardStats{}, err
	}
	roleCounts, activeUsers, err := s.userCounts.CountByRole(ctx)
	if err != nil {
		return DashboardStats{}, err
	}

	stats := DashboardStats{ByDepartment: make(map[string]int, len(shared.Departments))}
	for _, dept := range shared.Departments {
		stats.ByDepartment[dept] = 0
	}

	now := s.now().UTC()
	for _, row := range rows {
		stats.Partnerships.Total++
		switch row.Status {
		case partnerships.StatusActive:
			stats.Partnerships.Active++
		case partnerships.StatusForRenewal:
			stats.Partnerships.ForRenewal++
		case partnerships.StatusTerminated:
			stats.Partnerships.Terminated++
		}
		until := row.ExpirationDate.Sub(now)
		if until >= 0 && until <= expiringSoonWindow {
			stats.Partnerships.ExpiringSoon++
		}
		if _, ok := stats.ByDepartment[row.Department]; ok {
			stats.ByDepartment[row.Department]++
		}
	}

	stats.Users = UserCounts{
		Total:      roleCounts[shared.RoleAdmin] + roleCounts[shared.RoleDepartment] + roleCounts[shared.RoleViewer],
		Active:     activeUsers,
		Admin:      roleCounts[shared.RoleAdmin],
		Department: roleCounts[shared.RoleDepartment],
		Viewer:     roleCounts[shared.RoleViewer],
	}
	return stats, nil
}
