package team

import "time"

type Team struct {
	ID             int64     `gorm:"primaryKey" json:"id"`
	OrganisationID int64     `gorm:"column:organisation_id;index;not null" json:"organisation_id"`
	Name           string    `gorm:"not null" json:"name"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at" json:"updated_at"`

	// Populated by an explicit join query, never by the ORM association
	// machinery.
	Employees []EmployeeRef `gorm:"-" json:"employees"`
}

func (Team) TableName() string {
	return "teams"
}

// EmployeeRef is the employee summary attached to a team row.
type EmployeeRef struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}
