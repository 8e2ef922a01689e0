package partnerships

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/osa-portal/osa-portal/internal/shared"
)

func validateInput(in Input) error {
	if strings.TrimSpace(in.BusinessName) == "" {
		return fmt.Errorf("%w: business name is required", shared.ErrValidation)
	}
	if !shared.ValidDepartment(in.Department) {
		return fmt.Errorf("%w: valid department is required", shared.ErrValidation)
	}
	if strings.TrimSpace(in.Address) == "" {
		return fmt.Errorf("%w: address is required", shared.ErrValidation)
	}
	if strings.TrimSpace(in.ContactPerson) == "" {
		return fmt.Errorf("%w: contact person is required", shared.ErrValidation)
	}
	if strings.TrimSpace(in.ManagerSupervisor1) == "" {
		return fmt.Errorf("%w: at least one manager/supervisor is required", shared.ErrValidation)
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return fmt.Errorf("%w: valid email is required", shared.ErrValidation)
	}
	if strings.TrimSpace(in.ContactNumber) == "" {
		return fmt.Errorf("%w: contact number is required", shared.ErrValidation)
	}
	if in.DateEstablished.IsZero() {
		return fmt.Errorf("%w: valid establishment date is required", shared.ErrValidation)
	}
	if in.ExpirationDate.IsZero() {
		return fmt.Errorf("%w: valid expiration date is required", shared.ErrValidation)
	}
	if !in.ExpirationDate.After(in.DateEstablished) {
		return fmt.Errorf("%w: expiration date must be after establishment date", shared.ErrValidation)
	}
	if !ValidStatus(string(in.Status)) {
		return fmt.Errorf("%w: invalid status", shared.ErrValidation)
	}
	return nil
}
