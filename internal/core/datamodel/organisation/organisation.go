package organisation

import "time"

// Organisation is the root of tenancy. Every other row references it
// directly or transitively.
type Organisation struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Organisation) TableName() string {
	return "organisations"
}
