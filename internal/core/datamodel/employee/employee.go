package employee

import "time"

type Employee struct {
	ID             int64     `gorm:"primaryKey" json:"id"`
	OrganisationID int64     `gorm:"column:organisation_id;index;not null" json:"organisation_id"`
	FirstName      string    `gorm:"column:first_name;not null" json:"first_name"`
	LastName       string    `gorm:"column:last_name;not null" json:"last_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at" json:"updated_at"`

	// Populated by an explicit join query, never by the ORM association
	// machinery.
	Teams []TeamRef `gorm:"-" json:"teams"`
}

func (Employee) TableName() string {
	return "employees"
}

// TeamRef is the team summary attached to an employee row.
type TeamRef struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
