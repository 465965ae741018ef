package postgres

import (
	"errors"
	"time"

	"github.com/andikarahman/hr-management/internal"
	assignmentDatamodel "github.com/andikarahman/hr-management/internal/core/datamodel/assignment"
	teamDatamodel "github.com/andikarahman/hr-management/internal/core/datamodel/team"
	"github.com/andikarahman/hr-management/internal/team"
	"gorm.io/gorm"
)

// TeamRepository implements team.RepositoryAPI using GORM. Membership rows
// live in employee_teams and are queried explicitly.
type TeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) team.RepositoryAPI {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListByOrganisation(organisationID int64) ([]*teamDatamodel.Team, error) {
	var teams []*teamDatamodel.Team
	err := r.db.Where("organisation_id = ?", organisationID).
		Order("id ASC").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}

	if err := r.attachEmployees(teams); err != nil {
		return nil, err
	}

	return teams, nil
}

func (r *TeamRepository) GetByID(organisationID, id int64) (*teamDatamodel.Team, error) {
	var t teamDatamodel.Team
	err := r.db.Where("id = ? AND organisation_id = ?", id, organisationID).
		First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrTeamNotFound
		}
		return nil, err
	}

	if err := r.attachEmployees([]*teamDatamodel.Team{&t}); err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *TeamRepository) Create(t *teamDatamodel.Team) error {
	return r.db.Create(t).Error
}

func (r *TeamRepository) Update(t *teamDatamodel.Team) error {
	t.UpdatedAt = time.Now()
	return r.db.Model(&teamDatamodel.Team{}).
		Where("id = ? AND organisation_id = ?", t.ID, t.OrganisationID).
		Updates(map[string]interface{}{
			"name":        t.Name,
			"description": t.Description,
			"updated_at":  t.UpdatedAt,
		}).Error
}

// Delete removes the team row and cascades its membership rows in the same
// transaction.
func (r *TeamRepository) Delete(organisationID, id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", id).
			Delete(&assignmentDatamodel.EmployeeTeam{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ? AND organisation_id = ?", id, organisationID).
			Delete(&teamDatamodel.Team{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return internal.ErrTeamNotFound
		}

		return nil
	})
}

// ReplaceEmployees swaps the team's entire membership set. Employee ids from
// other organisations are dropped, not errored.
func (r *TeamRepository) ReplaceEmployees(organisationID, teamID int64, employeeIDs []int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var validIDs []int64
		if len(employeeIDs) > 0 {
			err := tx.Table("employees").
				Where("id IN ? AND organisation_id = ?", employeeIDs, organisationID).
				Pluck("id", &validIDs).Error
			if err != nil {
				return err
			}
		}

		if err := tx.Where("team_id = ?", teamID).
			Delete(&assignmentDatamodel.EmployeeTeam{}).Error; err != nil {
			return err
		}

		if len(validIDs) == 0 {
			return nil
		}

		now := time.Now()
		rows := make([]assignmentDatamodel.EmployeeTeam, 0, len(validIDs))
		for _, employeeID := range validIDs {
			rows = append(rows, assignmentDatamodel.EmployeeTeam{
				EmployeeID: employeeID,
				TeamID:     teamID,
				AssignedAt: now,
			})
		}

		return tx.Create(&rows).Error
	})
}

// CreateAssignment inserts a single membership row. The unique index on
// (employee_id, team_id) reports duplicates; there is no prior existence
// check.
func (r *TeamRepository) CreateAssignment(employeeID, teamID int64) error {
	row := assignmentDatamodel.EmployeeTeam{
		EmployeeID: employeeID,
		TeamID:     teamID,
		AssignedAt: time.Now(),
	}
	err := r.db.Create(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return internal.ErrAlreadyAssigned
		}
		return err
	}
	return nil
}

func (r *TeamRepository) AssignmentExists(employeeID, teamID int64) (bool, error) {
	var count int64
	err := r.db.Model(&assignmentDatamodel.EmployeeTeam{}).
		Where("employee_id = ? AND team_id = ?", employeeID, teamID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *TeamRepository) DeleteAssignment(employeeID, teamID int64) error {
	result := r.db.Where("employee_id = ? AND team_id = ?", employeeID, teamID).
		Delete(&assignmentDatamodel.EmployeeTeam{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrAssignmentNotFound
	}
	return nil
}

// attachEmployees loads member refs for a batch of teams with one join
// query.
func (r *TeamRepository) attachEmployees(teams []*teamDatamodel.Team) error {
	for _, t := range teams {
		t.Employees = []teamDatamodel.EmployeeRef{}
	}
	if len(teams) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(teams))
	byID := make(map[int64]*teamDatamodel.Team, len(teams))
	for _, t := range teams {
		ids = append(ids, t.ID)
		byID[t.ID] = t
	}

	query := `SELECT et.team_id, e.id, e.first_name, e.last_name, e.email
	          FROM employee_teams et
	          JOIN employees e ON e.id = et.employee_id
	          WHERE et.team_id IN ?
	          ORDER BY e.id ASC`

	rows, err := r.db.Raw(query, ids).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var teamID int64
		var ref teamDatamodel.EmployeeRef
		if err := rows.Scan(&teamID, &ref.ID, &ref.FirstName, &ref.LastName, &ref.Email); err != nil {
			return err
		}
		if t, ok := byID[teamID]; ok {
			t.Employees = append(t.Employees, ref)
		}
	}

	return rows.Err()
}
