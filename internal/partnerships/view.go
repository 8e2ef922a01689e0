package partnerships

import (
	"time"

	"github.com/google/uuid"

	"github.com/osa-portal/osa-portal/internal/shared"
)

// FullView is the complete JSON shape of a record.
type FullView struct {
	ID                 uuid.UUID `json:"id"`
	BusinessName       string    `json:"business_name"`
	Department         string    `json:"department"`
	Address            string    `json:"address"`
	ContactPerson      string    `json:"contact_person"`
	ManagerSupervisor1 string    `json:"manager_supervisor_1"`
	ManagerSupervisor2 *string   `json:"manager_supervisor_2"`
	Email              string    `json:"email"`
	ContactNumber      string    `json:"contact_number"`
	DateEstablished    string    `json:"date_established"`
	ExpirationDate     string    `json:"expiration_date"`
	SchoolYear         string    `json:"school_year"`
	Status             Status    `json:"status"`
	Remarks            *string   `json:"remarks"`
	ImageURL           *string   `json:"image_url"`
	CreatedBy          uuid.UUID `json:"created_by"`
	CreatedAt          time.Time `json:"created_at"`
}

// LimitedView is the redacted JSON shape. It is a fixed allow-list rather
// than a stripped FullView so new sensitive fields stay hidden unless someone
// adds them here deliberately.
type LimitedView struct {
	ID              uuid.UUID `json:"id"`
	BusinessName    string    `json:"business_name"`
	Department      string    `json:"department"`
	DateEstablished string    `json:"date_established"`
	ExpirationDate  string    `json:"expiration_date"`
	SchoolYear      string    `json:"school_year"`
	Status          Status    `json:"status"`
	ImageURL        *string   `json:"image_url"`
}

const dateLayout = "2006-01-02"

func fullView(p *Partnership) FullView {
	return FullView{
		ID:                 p.ID,
		BusinessName:       p.BusinessName,
		Department:         p.Department,
		Address:            p.Address,
		ContactPerson:      p.ContactPerson,
		ManagerSupervisor1: p.ManagerSupervisor1,
		ManagerSupervisor2: p.ManagerSupervisor2,
		Email:              p.Email,
		ContactNumber:      p.ContactNumber,
		DateEstablished:    p.DateEstablished.Format(dateLayout),
		ExpirationDate:     p.ExpirationDate.Format(dateLayout),
		SchoolYear:         p.SchoolYear,
		Status:             p.Status,
		Remarks:            p.Remarks,
		ImageURL:           p.ImageURL,
		CreatedBy:          p.CreatedBy,
		CreatedAt:          p.CreatedAt,
	}
}

func limitedView(p *Partnership) LimitedView {
	return LimitedView{
		ID:              p.ID,
		BusinessName:    p.BusinessName,
		Department:      p.Department,
		DateEstablished: p.DateEstablished.Format(dateLayout),
		ExpirationDate:  p.ExpirationDate.Format(dateLayout),
		SchoolYear:      p.SchoolYear,
		Status:          p.Status,
		ImageURL:        p.ImageURL,
	}
}

// View projects a record for a requester according to ProjectionFor.
func View(identity *shared.Identity, p *Partnership) any {
	if ProjectionFor(identity.Role, identity.Department, p) == ProjectionFull {
		return fullView(p)
	}
	return limitedView(p)
}
