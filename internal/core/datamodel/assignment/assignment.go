package assignment

import "time"

// EmployeeTeam is one employee/team membership. The pair is unique at the
// storage level; a duplicate-key error on insert is the conflict signal,
// there is no check-then-insert window.
type EmployeeTeam struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	EmployeeID int64     `gorm:"column:employee_id;not null;uniqueIndex:idx_employee_teams_pair" json:"employee_id"`
	TeamID     int64     `gorm:"column:team_id;not null;uniqueIndex:idx_employee_teams_pair" json:"team_id"`
	AssignedAt time.Time `gorm:"column:assigned_at" json:"assigned_at"`
}

func (EmployeeTeam) TableName() string {
	return "employee_teams"
}
