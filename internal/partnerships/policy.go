package partnerships

import (
	"github.com/osa-portal/osa-portal/internal/shared"
)

// Projection is the access tier computed per (requester, record) pair.
type Projection int

const (
	// ProjectionLimited exposes only the allow-listed public fields.
	ProjectionLimited Projection = iota
	// ProjectionFull exposes every field.
	ProjectionFull
)

// ProjectionFor decides the access tier for a read. Admins see everything,
// department users see their own department in full and everyone else
// redacted, viewers always get the redacted tier.
func ProjectionFor(role shared.Role, department string, record *Partnership) Projection {
	switch role {
	case shared.RoleAdmin:
		return ProjectionFull
	case shared.RoleDepartment:
		if record.Department == department {
			return ProjectionFull
		}
	}
	return ProjectionLimited
}

// CanWrite decides whether a requester may update or delete a record.
// Viewers never write; department users only touch records their department
// owns.
func CanWrite(role shared.Role, department string, record *Partnership) bool {
	switch role {
	case shared.RoleAdmin:
		return true
	case shared.RoleDepartment:
		return record.Department == department
	}
	return false
}

// CanCreate decides whether a requester may create records at all.
func CanCreate(role shared.Role) bool {
	return role == shared.RoleAdmin || role == shared.RoleDepartment
}
