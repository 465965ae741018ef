package postgres

import (
	"errors"
	"time"

	"github.com/andikarahman/hr-management/internal"
	assignmentDatamodel "github.com/andikarahman/hr-management/internal/core/datamodel/assignment"
	employeeDatamodel "github.com/andikarahman/hr-management/internal/core/datamodel/employee"
	"github.com/andikarahman/hr-management/internal/employee"
	"gorm.io/gorm"
)

// EmployeeRepository implements employee.RepositoryAPI using GORM.
// Associations are explicit join queries; there is no model-level
// relationship registry.
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.RepositoryAPI {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) ListByOrganisation(organisationID int64) ([]*employeeDatamodel.Employee, error) {
	var employees []*employeeDatamodel.Employee
	err := r.db.Where("organisation_id = ?", organisationID).
		Order("id ASC").
		Find(&employees).Error
	if err != nil {
		return nil, err
	}

	if err := r.attachTeams(employees); err != nil {
		return nil, err
	}

	return employees, nil
}

func (r *EmployeeRepository) GetByID(organisationID, id int64) (*employeeDatamodel.Employee, error) {
	var emp employeeDatamodel.Employee
	err := r.db.Where("id = ? AND organisation_id = ?", id, organisationID).
		First(&emp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrEmployeeNotFound
		}
		return nil, err
	}

	if err := r.attachTeams([]*employeeDatamodel.Employee{&emp}); err != nil {
		return nil, err
	}

	return &emp, nil
}

func (r *EmployeeRepository) Create(emp *employeeDatamodel.Employee) error {
	return r.db.Create(emp).Error
}

func (r *EmployeeRepository) Update(emp *employeeDatamodel.Employee) error {
	emp.UpdatedAt = time.Now()
	return r.db.Model(&employeeDatamodel.Employee{}).
		Where("id = ? AND organisation_id = ?", emp.ID, emp.OrganisationID).
		Updates(map[string]interface{}{
			"first_name": emp.FirstName,
			"last_name":  emp.LastName,
			"email":      emp.Email,
			"phone":      emp.Phone,
			"updated_at": emp.UpdatedAt,
		}).Error
}

// Delete removes the employee row and cascades its membership rows in the
// same transaction.
func (r *EmployeeRepository) Delete(organisationID, id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", id).
			Delete(&assignmentDatamodel.EmployeeTeam{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ? AND organisation_id = ?", id, organisationID).
			Delete(&employeeDatamodel.Employee{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return internal.ErrEmployeeNotFound
		}

		return nil
	})
}

// ReplaceTeams swaps the employee's entire membership set. Team ids from
// other organisations are dropped, not errored.
func (r *EmployeeRepository) ReplaceTeams(organisationID, employeeID int64, teamIDs []int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var validIDs []int64
		if len(teamIDs) > 0 {
			err := tx.Table("teams").
				Where("id IN ? AND organisation_id = ?", teamIDs, organisationID).
				Pluck("id", &validIDs).Error
			if err != nil {
				return err
			}
		}

		if err := tx.Where("employee_id = ?", employeeID).
			Delete(&assignmentDatamodel.EmployeeTeam{}).Error; err != nil {
			return err
		}

		if len(validIDs) == 0 {
			return nil
		}

		now := time.Now()
		rows := make([]assignmentDatamodel.EmployeeTeam, 0, len(validIDs))
		for _, teamID := range validIDs {
			rows = append(rows, assignmentDatamodel.EmployeeTeam{
				EmployeeID: employeeID,
				TeamID:     teamID,
				AssignedAt: now,
			})
		}

		return tx.Create(&rows).Error
	})
}

func (r *EmployeeRepository) ExistsInOrganisation(organisationID, id int64) (bool, error) {
	var count int64
	err := r.db.Model(&employeeDatamodel.Employee{}).
		Where("id = ? AND organisation_id = ?", id, organisationID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// attachTeams loads the team refs for a batch of employees with one join
// query.
func (r *EmployeeRepository) attachTeams(employees []*employeeDatamodel.Employee) error {
	for _, emp := range employees {
		emp.Teams = []employeeDatamodel.TeamRef{}
	}
	if len(employees) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(employees))
	byID := make(map[int64]*employeeDatamodel.Employee, len(employees))
	for _, emp := range employees {
		ids = append(ids, emp.ID)
		byID[emp.ID] = emp
	}

	query := `SELECT et.employee_id, t.id, t.name, t.description
	          FROM employee_teams et
	          JOIN teams t ON t.id = et.team_id
	          WHERE et.employee_id IN ?
	          ORDER BY t.id ASC`

	rows, err := r.db.Raw(query, ids).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var employeeID int64
		var ref employeeDatamodel.TeamRef
		if err := rows.Scan(&employeeID, &ref.ID, &ref.Name, &ref.Description); err != nil {
			return err
		}
		if emp, ok := byID[employeeID]; ok {
			emp.Teams = append(emp.Teams, ref)
		}
	}

	return rows.Err()
}
