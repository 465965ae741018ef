package employee

import (
	"log/slog"

	"github.com/andikarahman/hr-management/internal"
	"github.com/andikarahman/hr-management/internal/audit"
	employeeDatamodel "github.com/andikarahman/hr-management/internal/core/datamodel/employee"
)

// Service handles tenant-scoped employee logic. Every mutation appends one
// audit entry before the operation is considered complete.
type Service struct {
	repo    RepositoryAPI
	auditor audit.Recorder
	logger  *slog.Logger
}

func NewService(repo RepositoryAPI, auditor audit.Recorder, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		auditor: auditor,
		logger:  logger,
	}
}

func (s *Service) ListEmployees(sess internal.Session) ([]*employeeDatamodel.Employee, error) {
	employees, err := s.repo.ListByOrganisation(sess.OrganisationID)
	if err != nil {
		s.logger.Error("failed to list employees", "error", err, "organisation_id", sess.OrganisationID)
		return nil, internal.NewInternalError("Server error", err)
	}

	return employees, nil
}

func (s *Service) GetEmployee(sess internal.Session, id int64) (*employeeDatamodel.Employee, error) {
	emp, err := s.repo.GetByID(sess.OrganisationID, id)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("failed to get employee", "error", err, "employee_id", id)
		return nil, internal.NewInternalError("Server error", err)
	}

	return emp, nil
}

func (s *Service) CreateEmployee(sess internal.Session, dto EmployeeDTO) (*employeeDatamodel.Employee, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("employee validation failed", "error", err, "organisation_id", sess.OrganisationID)
		return nil, err
	}

	emp := &employeeDatamodel.Employee{
		OrganisationID: sess.OrganisationID,
		FirstName:      dto.FirstName,
		LastName:       dto.LastName,
		Email:          dto.Email,
		Phone:          dto.Phone,
	}

	if err := s.repo.Create(emp); err != nil {
		s.logger.Error("failed to create employee", "error", err, "organisation_id", sess.OrganisationID)
		return nil, internal.NewInternalError("Server error", err)
	}

	// Ids belonging to other organisations are filtered by the repository,
	// not rejected.
	if dto.TeamIDs != nil && len(*dto.TeamIDs) > 0 {
		if err := s.repo.ReplaceTeams(sess.OrganisationID, emp.ID, *dto.TeamIDs); err != nil {
			s.logger.Error("failed to assign teams", "error", err, "employee_id", emp.ID)
			return nil, internal.NewInternalError("Server error", err)
		}
	}

	if err := s.auditor.Record(sess.OrganisationID, sess.UserID, audit.ActionEmployeeCreated, audit.Meta{
		"employeeId": emp.ID,
		"first_name": emp.FirstName,
		"last_name":  emp.LastName,
	}); err != nil {
		return nil, err
	}

	s.logger.Info("employee created",
		"employee_id", emp.ID,
		"organisation_id", sess.OrganisationID,
		"user_id", sess.UserID)

	return s.GetEmployee(sess, emp.ID)
}

func (s *Service) UpdateEmployee(sess internal.Session, id int64, dto EmployeeDTO) (*employeeDatamodel.Employee, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("employee validation failed", "error", err, "employee_id", id)
		return nil, err
	}

	emp, err := s.repo.GetByID(sess.OrganisationID, id)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("failed to load employee for update", "error", err, "employee_id", id)
		return nil, internal.NewInternalError("Server error", err)
	}

	emp.FirstName = dto.FirstName
	emp.LastName = dto.LastName
	emp.Email = dto.Email
	emp.Phone = dto.Phone

	if err := s.repo.Update(emp); err != nil {
		s.logger.Error("failed to update employee", "error", err, "employee_id", id)
		return nil, internal.NewInternalError("Server error", err)
	}

	// A provided list, even empty, replaces the whole membership set.
	if dto.TeamIDs != nil {
		if err := s.repo.ReplaceTeams(sess.OrganisationID, emp.ID, *dto.TeamIDs); err != nil {
			s.logger.Error("failed to replace team memberships", "error", err, "employee_id", id)
			return nil, internal.NewInternalError("Server error", err)
		}
	}

	if err := s.auditor.Record(sess.OrganisationID, sess.UserID, audit.ActionEmployeeUpdated, audit.Meta{
		"employeeId": emp.ID,
		"first_name": emp.FirstName,
		"last_name":  emp.LastName,
	}); err != nil {
		return nil, err
	}

	s.logger.Info("employee updated",
		"employee_id", emp.ID,
		"organisation_id", sess.OrganisationID,
		"user_id", sess.UserID)

	return s.GetEmployee(sess, emp.ID)
}

func (s *Service) DeleteEmployee(sess internal.Session, id int64) error {
	if _, err := s.repo.GetByID(sess.OrganisationID, id); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return appErr
		}
		s.logger.Error("failed to load employee for delete", "error", err, "employee_id", id)
		return internal.NewInternalError("Server error", err)
	}

	if err := s.repo.Delete(sess.OrganisationID, id); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return appErr
		}
		s.logger.Error("failed to delete employee", "error", err, "employee_id", id)
		return internal.NewInternalError("Server error", err)
	}

	if err := s.auditor.Record(sess.OrganisationID, sess.UserID, audit.ActionEmployeeDeleted, audit.Meta{
		"employeeId": id,
	}); err != nil {
		return err
	}

	s.logger.Info("employee deleted",
		"employee_id", id,
		"organisation_id", sess.OrganisationID,
		"user_id", sess.UserID)

	return nil
}
