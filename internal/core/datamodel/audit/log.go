package audit

import (
	"encoding/json"
	"time"
)

// Log is one immutable audit entry. Rows are only ever inserted.
type Log struct {
	ID             int64           `gorm:"primaryKey" json:"id"`
	OrganisationID int64           `gorm:"column:organisation_id;index;not null" json:"organisation_id"`
	UserID         int64           `gorm:"column:user_id;not null" json:"user_id"`
	Action         string          `gorm:"not null" json:"action"`
	Meta           json.RawMessage `gorm:"type:jsonb" json:"meta"`
	Timestamp      time.Time       `gorm:"column:timestamp" json:"timestamp"`
}

func (Log) TableName() string {
	return "logs"
}
