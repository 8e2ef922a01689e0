package shared

import (
	"context"

	"github.com/google/uuid"
)

// Identity describes the authenticated requester attached to a request by the
// auth middleware. Department is set only when Role is RoleDepartment.
type Identity struct {
	UserID     uuid.UUID
	Email      string
	Role       Role
	Department string
}

type identityContextKey struct{}

// ContextWithIdentity stores the requester identity in context.
func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext extracts the requester identity from context.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityContextKey{}).(*Identity)
	return id
}
