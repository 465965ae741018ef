package auth

import (
	"strings"

	"github.com/andikarahman/hr-management/internal"
)

// RegisterDTO creates an organisation together with its first (admin) user.
type RegisterDTO struct {
	OrgName   string `json:"orgName"`
	AdminName string `json:"adminName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (d RegisterDTO) Validate() error {
	if strings.TrimSpace(d.OrgName) == "" {
		return internal.NewValidationError("orgName is required")
	}
	if strings.TrimSpace(d.AdminName) == "" {
		return internal.NewValidationError("adminName is required")
	}
	if d.Email == "" {
		return internal.NewValidationError("email is required")
	}
	if !strings.Contains(d.Email, "@") {
		return internal.NewValidationError("email is invalid")
	}
	if d.Password == "" {
		return internal.NewValidationError("password is required")
	}
	return nil
}

func (d LoginDTO) Validate() error {
	if d.Email == "" {
		return internal.NewValidationError("email is required")
	}
	if d.Password == "" {
		return internal.NewValidationError("password is required")
	}
	return nil
}
