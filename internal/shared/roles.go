package shared

// Role is the authorization role attached to a user account.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleDepartment Role = "department"
	RoleViewer     Role = "viewer"
)

// ValidRole reports whether the value is one of the known roles.
func ValidRole(r string) bool {
	switch Role(r) {
	case RoleAdmin, RoleDepartment, RoleViewer:
		return true
	}
	return false
}

// Departments lists the seven organizational codes. The literals are part of
// the external contract; existing records depend on them.
var Departments = []string{"STE", "CET", "CCJE", "HuSoCom", "BSMT", "SBME", "CHATME"}

// ValidDepartment reports whether the code is one of the known departments.
func ValidDepartment(code string) bool {
	for _, d := range Departments {
		if d == code {
			return true
		}
	}
	return false
}
