package team

import (
	"log/slog"

	"github.com/andikarahman/hr-management/internal"
	"github.com/andikarahman/hr-management/internal/audit"
	teamDatamodel "github.com/andikarahman/hr-management/internal/core/datamodel/team"
)

// Service handles tenant-scoped team logic and employee/team assignments.
type Service struct {
	repo      RepositoryAPI
	employees EmployeeDirectory
	auditor   audit.Recorder
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, employees EmployeeDirectory, auditor audit.Recorder, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		employees: employees,
		auditor:   auditor,
		logger:    logger,
	}
}

func (s *Service) ListTeams(sess internal.Session) ([]*teamDatamodel.Team, error) {
	teams, err := s.repo.ListByOrganisation(sess.OrganisationID)
	if err != nil {
		s.logger.Error("failed to list teams", "error", err, "organisation_id", sess.OrganisationID)
		return nil, internal.NewInternalError("Server error", err)
	}

	return teams, nil
}

func (s *Service) GetTeam(sess internal.Session, id int64) (*teamDatamodel.Team, error) {
	t, err := s.repo.GetByID(sess.OrganisationID, id)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("failed to get team", "error", err, "team_id", id)
		return nil, internal.NewInternalError("Server error", err)
	}

	return t, nil
}

func (s *Service) CreateTeam(sess internal.Session, dto TeamDTO) (*teamDatamodel.Team, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("team validation failed", "error", err, "organisation_id", sess.OrganisationID)
		return nil, err
	}

	t := &teamDatamodel.Team{
		OrganisationID: sess.OrganisationID,
		Name:           dto.Name,
		Description:    dto.Description,
	}

	if err := s.repo.Create(t); err != nil {
		s.logger.Error("failed to create team", "error", err, "organisation_id", sess.OrganisationID)
		return nil, internal.NewInternalError("Server error", err)
	}

	// Ids belonging to other organisations are filtered by the repository,
	// not rejected.
	if dto.EmployeeIDs != nil && len(*dto.EmployeeIDs) > 0 {
		if err := s.repo.ReplaceEmployees(sess.OrganisationID, t.ID, *dto.EmployeeIDs); err != nil {
			s.logger.Error("failed to assign employees", "error", err, "team_id", t.ID)
			return nil, internal.NewInternalError("Server error", err)
		}
	}

	if err := s.auditor.Record(sess.OrganisationID, sess.UserID, audit.ActionTeamCreated, audit.Meta{
		"teamId": t.ID,
		"name":   t.Name,
	}); err != nil {
		return nil, err
	}

	s.logger.Info("team created",
		"team_id", t.ID,
		"organisation_id", sess.OrganisationID,
		"user_id", sess.UserID)

	return s.GetTeam(sess, t.ID)
}

func (s *Service) UpdateTeam(sess internal.Session, id int64, dto TeamDTO) (*teamDatamodel.Team, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("team validation failed", "error", err, "team_id", id)
		return nil, err
	}

	t, err := s.repo.GetByID(sess.OrganisationID, id)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("failed to load team for update", "error", err, "team_id", id)
		return nil, internal.NewInternalError("Server error", err)
	}

	t.Name = dto.Name
	t.Description = dto.Description

	if err := s.repo.Update(t); err != nil {
		s.logger.Error("failed to update team", "error", err, "team_id", id)
		return nil, internal.NewInternalError("Server error", err)
	}

	// A provided list, even empty, replaces the whole membership set.
	if dto.EmployeeIDs != nil {
		if err := s.repo.ReplaceEmployees(sess.OrganisationID, t.ID, *dto.EmployeeIDs); err != nil {
			s.logger.Error("failed to replace employee memberships", "error", err, "team_id", id)
			return nil, internal.NewInternalError("Server error", err)
		}
	}

	if err := s.auditor.Record(sess.OrganisationID, sess.UserID, audit.ActionTeamUpdated, audit.Meta{
		"teamId": t.ID,
		"name":   t.Name,
	}); err != nil {
		return nil, err
	}

	s.logger.Info("team updated",
		"team_id", t.ID,
		"organisation_id", sess.OrganisationID,
		"user_id", sess.UserID)

	return s.GetTeam(sess, t.ID)
}

func (s *Service) DeleteTeam(sess internal.Session, id int64) error {
	if _, err := s.repo.GetByID(sess.OrganisationID, id); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return appErr
		}
		s.logger.Error("failed to load team for delete", "error", err, "team_id", id)
		return internal.NewInternalError("Server error", err)
	}

	if err := s.repo.Delete(sess.OrganisationID, id); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return appErr
		}
		s.logger.Error("failed to delete team", "error", err, "team_id", id)
		return internal.NewInternalError("Server error", err)
	}

	if err := s.auditor.Record(sess.OrganisationID, sess.UserID, audit.ActionTeamDeleted, audit.Meta{
		"teamId": id,
	}); err != nil {
		return err
	}

	s.logger.Info("team deleted",
		"team_id", id,
		"organisation_id", sess.OrganisationID,
		"user_id", sess.UserID)

	return nil
}

// AssignEmployee links an employee to a team. Both must belong to the
// caller's organisation. The unique index on (employee_id, team_id) is the
// conflict signal; there is no check-then-insert window.
func (s *Service) AssignEmployee(sess internal.Session, dto AssignmentDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	if _, err := s.repo.GetByID(sess.OrganisationID, dto.TeamID); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return appErr
		}
		s.logger.Error("failed to load team for assignment", "error", err, "team_id", dto.TeamID)
		return internal.NewInternalError("Server error", err)
	}

	exists, err := s.employees.ExistsInOrganisation(sess.OrganisationID, dto.EmployeeID)
	if err != nil {
		s.logger.Error("failed to check employee for assignment", "error", err, "employee_id", dto.EmployeeID)
		return internal.NewInternalError("Server error", err)
	}
	if !exists {
		return internal.ErrEmployeeNotFound
	}

	if err := s.repo.CreateAssignment(dto.EmployeeID, dto.TeamID); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return appErr
		}
		s.logger.Error("failed to create assignment", "error", err,
			"employee_id", dto.EmployeeID, "team_id", dto.TeamID)
		return internal.NewInternalError("Server error", err)
	}

	if err := s.auditor.Record(sess.OrganisationID, sess.UserID, audit.ActionEmployeeAssignedToTeam, audit.Meta{
		"employeeId": dto.EmployeeID,
		"teamId":     dto.TeamID,
	}); err != nil {
		return err
	}

	s.logger.Info("employee assigned to team",
		"employee_id", dto.EmployeeID,
		"team_id", dto.TeamID,
		"organisation_id", sess.OrganisationID,
		"user_id", sess.UserID)

	return nil
}

// RemoveEmployee deletes one membership row. The association must exist
// and the team must belong to the caller's organisation.
func (s *Service) RemoveEmployee(sess internal.Session, dto AssignmentDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	exists, err := s.repo.AssignmentExists(dto.EmployeeID, dto.TeamID)
	if err != nil {
		s.logger.Error("failed to check assignment", "error", err,
			"employee_id", dto.EmployeeID, "team_id", dto.TeamID)
		return internal.NewInternalError("Server error", err)
	}
	if !exists {
		return internal.ErrAssignmentNotFound
	}

	if _, err := s.repo.GetByID(sess.OrganisationID, dto.TeamID); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return appErr
		}
		s.logger.Error("failed to load team for removal", "error", err, "team_id", dto.TeamID)
		return internal.NewInternalError("Server error", err)
	}

	if err := s.repo.DeleteAssignment(dto.EmployeeID, dto.TeamID); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return appErr
		}
		s.logger.Error("failed to delete assignment", "error", err,
			"employee_id", dto.EmployeeID, "team_id", dto.TeamID)
		return internal.NewInternalError("Server error", err)
	}

	if err := s.auditor.Record(sess.OrganisationID, sess.UserID, audit.ActionEmployeeRemovedFromTeam, audit.Meta{
		"employeeId": dto.EmployeeID,
		"teamId":     dto.TeamID,
	}); err != nil {
		return err
	}

	s.logger.Info("employee removed from team",
		"employee_id", dto.EmployeeID,
		"team_id", dto.TeamID,
		"organisation_id", sess.OrganisationID,
		"user_id", sess.UserID)

	return nil
}
