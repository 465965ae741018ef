package team

import (
	"github.com/andikarahman/hr-management/internal"
	teamDatamodel "github.com/andikarahman/hr-management/internal/core/datamodel/team"
)

type ServiceAPI interface {
	ListTeams(sess internal.Session) ([]*teamDatamodel.Team, error)
	GetTeam(sess internal.Session, id int64) (*teamDatamodel.Team, error)
	CreateTeam(sess internal.Session, dto TeamDTO) (*teamDatamodel.Team, error)
	UpdateTeam(sess internal.Session, id int64, dto TeamDTO) (*teamDatamodel.Team, error)
	DeleteTeam(sess internal.Session, id int64) error
	AssignEmployee(sess internal.Session, dto AssignmentDTO) error
	RemoveEmployee(sess internal.Session, dto AssignmentDTO) error
}

// RepositoryAPI is tenant-scoped like the employee repository. Assignment
// rows have no organisation column of their own; both sides are validated
// against the tenant before any row is touched.
type RepositoryAPI interface {
	ListByOrganisation(organisationID int64) ([]*teamDatamodel.Team, error)
	GetByID(organisationID, id int64) (*teamDatamodel.Team, error)
	Create(t *teamDatamodel.Team) error
	Update(t *teamDatamodel.Team) error
	Delete(organisationID, id int64) error
	ReplaceEmployees(organisationID, teamID int64, employeeIDs []int64) error
	CreateAssignment(employeeID, teamID int64) error
	AssignmentExists(employeeID, teamID int64) (bool, error)
	DeleteAssignment(employeeID, teamID int64) error
}

// EmployeeDirectory is the narrow view of the employee store the team
// service needs for assignment checks.
type EmployeeDirectory interface {
	ExistsInOrganisation(organisationID, id int64) (bool, error)
}
