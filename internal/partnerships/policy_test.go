package partnerships

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/osa-portal/osa-portal/internal/shared"
)

func TestProjectionFor(t *testing.T) {
	record := &Partnership{Department: "CET"}

	require.Equal(t, ProjectionFull, ProjectionFor(shared.RoleAdmin, "", record))
	require.Equal(t, ProjectionFull, ProjectionFor(shared.RoleDepartment, "CET", record))
	require.Equal(t, ProjectionLimited, ProjectionFor(shared.RoleDepartment, "STE", record))
	require.Equal(t, ProjectionLimited, ProjectionFor(shared.RoleViewer, "", record))
	require.Equal(t, ProjectionLimited, ProjectionFor(shared.Role("unknown"), "CET", record))
}

func TestCanWrite(t *testing.T) {
	record := &Partnership{Department: "CET"}

	require.True(t, CanWrite(shared.RoleAdmin, "", record))
	require.True(t, CanWrite(shared.RoleDepartment, "CET", record))
	require.False(t, CanWrite(shared.RoleDepartment, "STE", record))
	require.False(t, CanWrite(shared.RoleViewer, "", record))
}

func TestCanCreate(t *testing.T) {
	require.True(t, CanCreate(shared.RoleAdmin))
	require.True(t, CanCreate(shared.RoleDepartment))
	require.False(t, CanCreate(shared.RoleViewer))
}

// The redacted shape is an allow-list; this pins the exact key set so a new
// field on the record never leaks into it silently.
func TestLimitedViewKeys(t *testing.T) {
	supervisor := "Second Manager"
	remarks := "internal note"
	record := samplePartnership("CET")
	record.ManagerSupervisor2 = &supervisor
	record.Remarks = &remarks

	raw, err := json.Marshal(limitedView(record))
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))

	allowed := []string{
		"id", "business_name", "department", "date_established",
		"expiration_date", "school_year", "status", "image_url",
	}
	require.Len(t, payload, len(allowed))
	for _, key := range allowed {
		require.Contains(t, payload, key)
	}
	for _, key := range []string{"address", "contact_person", "manager_supervisor_1", "manager_supervisor_2", "email", "contact_number", "remarks", "created_by"} {
		require.NotContains(t, payload, key)
	}
}

func TestViewProjectsPerIdentity(t *testing.T) {
	record := samplePartnership("CET")

	admin := &shared.Identity{Role: shared.RoleAdmin}
	_, ok := View(admin, record).(FullView)
	require.True(t, ok)

	owner := &shared.Identity{Role: shared.RoleDepartment, Department: "CET"}
	_, ok = View(owner, record).(FullView)
	require.True(t, ok)

	other := &shared.Identity{Role: shared.RoleDepartment, Department: "STE"}
	_, ok = View(other, record).(LimitedView)
	require.True(t, ok)

	viewer := &shared.Identity{Role: shared.RoleViewer}
	_, ok = View(viewer, record).(LimitedView)
	require.True(t, ok)
}
