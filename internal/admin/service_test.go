package admin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/osa-portal/osa-portal/internal/partnerships"
	"github.com/osa-portal/osa-portal/internal/shared"
)

type stubPartnershipSource struct {
	rows []partnerships.DashboardRow
}

func (s *stubPartnershipSource) DashboardRows(ctx context.Context) ([]partnerships.DashboardRow, error) {
	return s.rows, nil
}

type stubUserSource struct {
	counts map[shared.Role]int
	active int
}

func (s *stubUserSource) CountByRole(ctx context.Context) (map[shared.Role]int, int, error) {
	return s.counts, s.active, nil
}

func TestDashboardStats(t *testing.T) {
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	rows := []partnerships.DashboardRow{
		{Status: partnerships.StatusActive, Department: "CET", ExpirationDate: now.Add(10 * day)},
		{Status: partnerships.StatusActive, Department: "CET", ExpirationDate: now.Add(45 * day)},
		{Status: partnerships.StatusForRenewal, Department: "STE", ExpirationDate: now.Add(-5 * day)},
		{Status: partnerships.StatusTerminated, Department: "BSMT", ExpirationDate: now.Add(30 * day)},
		{Status: partnerships.StatusNonRenewal, Department: "CET", ExpirationDate: now.Add(400 * day)},
	}
	users := &stubUserSource{
		counts: map[shared.Role]int{shared.RoleAdmin: 1, shared.RoleDepartment: 3, shared.RoleViewer: 6},
		active: 8,
	}

	svc := NewService(&stubPartnershipSource{rows: rows}, users, nil)
	svc.now = func() time.Time { return now }

	stats, err := svc.DashboardStats(context.Background())
	require.NoError(t, err)

	require.Equal(t, 5, stats.Partnerships.Total)
	require.Equal(t, 2, stats.Partnerships.Active)
	require.Equal(t, 1, stats.Partnerships.ForRenewal)
	require.Equal(t, 1, stats.Partnerships.Terminated)
	// Expiring soon counts only dates inside the next 30 days, boundary included.
	require.Equal(t, 2, stats.Partnerships.ExpiringSoon)

	require.Equal(t, 3, stats.ByDepartment["CET"])
	require.Equal(t, 1, stats.ByDepartment["STE"])
	require.Equal(t, 0, stats.ByDepartment["CCJE"])
	require.Len(t, stats.ByDepartment, len(shared.Departments))

	require.Equal(t, 10, stats.Users.Total)
	require.Equal(t, 8, stats.Users.Active)
	require.Equal(t, 1, stats.Users.Admin)
	require.Equal(t, 3, stats.Users.Department)
	require.Equal(t, 6, stats.Users.Viewer)
}

func TestDashboardStatsEmpty(t *testing.T) {
	svc := NewService(&stubPartnershipSource{}, &stubUserSource{counts: map[shared.Role]int{}}, nil)

	stats, err := svc.DashboardStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, stats.Partnerships.Total)
	require.Equal(t, 0, stats.Users.Total)
	require.Len(t, stats.ByDepartment, len(shared.Departments))
}
