package partnerships

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status enumerates the partnership lifecycle states. The literals are part
// of the external contract.
type Status string

const (
	StatusActive     Status = "active"
	StatusTerminated Status = "terminated"
	StatusForRenewal Status = "for_renewal"
	StatusNonRenewal Status = "non_renewal"
)

// ValidStatus reports whether the value is one of the known statuses.
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusActive, StatusTerminated, StatusForRenewal, StatusNonRenewal:
		return true
	}
	return false
}

// Partnership is a business/institution relationship owned by exactly one
// department.
type Partnership struct {
	ID                 uuid.UUID
	BusinessName       string
	Department         string
	Address            string
	ContactPerson      string
	ManagerSupervisor1 string
	ManagerSupervisor2 *string
	Email              string
	ContactNumber      string
	DateEstablished    time.Time
	ExpirationDate     time.Time
	SchoolYear         string
	Status             Status
	Remarks            *string
	ImageURL           *string
	CreatedBy          uuid.UUID
	CreatedAt          time.Time
}

// SchoolYear derives the academic-year label for a date. Academic years run
// August through July: August onward belongs to (Y, Y+1), earlier months to
// (Y-1, Y).
func SchoolYear(date time.Time) string {
	year := date.Year()
	if date.Month() >= time.August {
		return fmt.Sprintf("%d-%d", year, year+1)
	}
	return fmt.Sprintf("%d-%d", year-1, year)
}

// Filters narrows partnership listings. Zero values mean "no filter".
// Search matches business name and contact person, case-insensitive.
type Filters struct {
	Department string
	Status     string
	SchoolYear string
	Search     string
}
