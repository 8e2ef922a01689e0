package auth

import (
	"fmt"
	"unicode"

	"github.com/osa-portal/osa-portal/internal/shared"
)

const bcryptCost = 10

// CheckPasswordPolicy enforces the account password rules: at least 8
// characters with an uppercase letter, a lowercase letter and a digit.
func CheckPasswordPolicy(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", shared.ErrValidation)
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return fmt.Errorf("%w: password must contain uppercase, lowercase, and number", shared.ErrValidation)
	}
	return nil
}
