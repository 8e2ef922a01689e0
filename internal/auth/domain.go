package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/osa-portal/osa-portal/internal/shared"
)

// User represents a portal account.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         shared.Role
	FullName     string
	Department   *string
	IsActive     bool
	CreatedAt    time.Time
}

// Identity converts the user into the request identity the middleware
// attaches to context.
func (u *User) Identity() *shared.Identity {
	id := &shared.Identity{UserID: u.ID, Email: u.Email, Role: u.Role}
	if u.Role == shared.RoleDepartment && u.Department != nil {
		id.Department = *u.Department
	}
	return id
}

// Summary is the public view of a user returned by auth endpoints.
type Summary struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	FullName   string    `json:"full_name"`
	Department *string   `json:"department"`
}

// Summarize strips credentials from a user record.
func Summarize(u *User) Summary {
	return Summary{
		ID:         u.ID,
		Email:      u.Email,
		Role:       string(u.Role),
		FullName:   u.FullName,
		Department: u.Department,
	}
}
