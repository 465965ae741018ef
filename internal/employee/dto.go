package employee

import (
	"strings"

	"github.com/andikarahman/hr-management/internal"
)

// EmployeeDTO is the transport shape for create and update. TeamIDs is a
// pointer so an absent list and an explicit empty list stay distinct: nil
// leaves memberships untouched, an empty list clears them (set-replace).
type EmployeeDTO struct {
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	TeamIDs   *[]int64 `json:"teamIds"`
}

func (d EmployeeDTO) Validate() error {
	if strings.TrimSpace(d.FirstName) == "" {
		return internal.NewValidationError("first_name is required")
	}
	if strings.TrimSpace(d.LastName) == "" {
		return internal.NewValidationError("last_name is required")
	}
	if d.Email != "" && !strings.Contains(d.Email, "@") {
		return internal.NewValidationError("email is invalid")
	}
	return nil
}
