// Package users implements administrative account management.
package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/osa-portal/osa-portal/internal/shared"
)

// User is the management view of an account. Password hashes never leave the
// repository layer through this type.
type User struct {
	ID         uuid.UUID   `json:"id"`
	Email      string      `json:"email"`
	Role       shared.Role `json:"role"`
	FullName   string      `json:"full_name"`
	Department *string     `json:"department"`
	IsActive   bool        `json:"is_active"`
	CreatedAt  time.Time   `json:"created_at"`
}

// CreateInput is the admin-supplied payload for a new account.
type CreateInput struct {
	Email      string
	Password   string
	Role       string
	FullName   string
	Department string
}

// UpdateInput is the admin-supplied payload for mutating an account.
type UpdateInput struct {
	Email      string
	Role       string
	FullName   string
	Department string
	IsActive   bool
}
