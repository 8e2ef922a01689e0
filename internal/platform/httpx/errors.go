package httpx

import (
	"errors"
	"net/http"

	"github.com/osa-portal/osa-portal/internal/shared"
)

// RespondError maps domain errors onto the response envelope. Unknown errors
// become a 500 with the message suppressed.
func RespondError(w http.ResponseWriter, err error) {
	Fail(w, statusFor(err), shared.UserSafeMessage(err))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrValidation), errors.Is(err, shared.ErrSelfDelete):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrUnauthorized), errors.Is(err, shared.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, shared.ErrForbidden), errors.Is(err, shared.ErrDeleteAdmin):
		return http.StatusForbidden
	case errors.Is(err, shared.ErrDuplicateEmail):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
