package user

import "time"

// User belongs to exactly one organisation. Email is unique system-wide,
// not per tenant.
type User struct {
	ID             int64     `gorm:"primaryKey" json:"id"`
	OrganisationID int64     `gorm:"column:organisation_id;index;not null" json:"organisation_id"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash   string    `gorm:"column:password_hash;not null" json:"-"`
	Name           string    `gorm:"not null" json:"name"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
