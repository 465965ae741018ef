package team

import (
	"strings"

	"github.com/andikarahman/hr-management/internal"
)

// TeamDTO is the transport shape for create and update. EmployeeIDs is a
// pointer so an absent list and an explicit empty list stay distinct: nil
// leaves memberships untouched, an empty list clears them (set-replace).
type TeamDTO struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	EmployeeIDs *[]int64 `json:"employeeIds"`
}

func (d TeamDTO) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return internal.NewValidationError("name is required")
	}
	return nil
}

type AssignmentDTO struct {
	TeamID     int64 `json:"teamId"`
	EmployeeID int64 `json:"employeeId"`
}

func (d AssignmentDTO) Validate() error {
	if d.TeamID <= 0 {
		return internal.NewValidationError("teamId is required")
	}
	if d.EmployeeID <= 0 {
		return internal.NewValidationError("employeeId is required")
	}
	return nil
}
