package employee

import (
	"github.com/andikarahman/hr-management/internal"
	employeeDatamodel "github.com/andikarahman/hr-management/internal/core/datamodel/employee"
)

type ServiceAPI interface {
	ListEmployees(sess internal.Session) ([]*employeeDatamodel.Employee, error)
	GetEmployee(sess internal.Session, id int64) (*employeeDatamodel.Employee, error)
	CreateEmployee(sess internal.Session, dto EmployeeDTO) (*employeeDatamodel.Employee, error)
	UpdateEmployee(sess internal.Session, id int64, dto EmployeeDTO) (*employeeDatamodel.Employee, error)
	DeleteEmployee(sess internal.Session, id int64) error
}

// RepositoryAPI is tenant-scoped: every read takes the organisation id and
// a row from another organisation is indistinguishable from an absent one.
type RepositoryAPI interface {
	ListByOrganisation(organisationID int64) ([]*employeeDatamodel.Employee, error)
	GetByID(organisationID, id int64) (*employeeDatamodel.Employee, error)
	Create(emp *employeeDatamodel.Employee) error
	Update(emp *employeeDatamodel.Employee) error
	Delete(organisationID, id int64) error
	ReplaceTeams(organisationID, employeeID int64, teamIDs []int64) error
	ExistsInOrganisation(organisationID, id int64) (bool, error)
}
