package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates malformed or missing input.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized indicates a missing, invalid or expired credential.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden indicates an authenticated but unentitled request.
	ErrForbidden = errors.New("forbidden")
	// ErrDuplicateEmail indicates a registration conflict on email.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrSelfDelete rejects deleting one's own account.
	ErrSelfDelete = errors.New("cannot delete your own account")
	// ErrDeleteAdmin rejects deleting admin accounts.
	ErrDeleteAdmin = errors.New("cannot delete admin users")
)

// UserSafeMessage returns a message suitable for API consumers. Known domain
// errors carry their own text; anything else collapses to a generic message so
// internals never leak.
func UserSafeMessage(err error) string {
	for _, known := range []error{
		ErrNotFound,
		ErrValidation,
		ErrUnauthorized,
		ErrForbidden,
		ErrDuplicateEmail,
		ErrInvalidCredentials,
		ErrSelfDelete,
		ErrDeleteAdmin,
	} {
		if errors.Is(err, known) {
			return err.Error()
		}
	}
	return "internal server error"
}
