package audit

import (
	"encoding/json"
	"time"

	auditDatamodel "github.com/andikarahman/hr-management/internal/core/datamodel/audit"
)

// Action tags recorded to the audit trail. Values are part of the stored
// data; do not rename.
const (
	ActionUserRegistered = "user_registered"
	ActionUserLoggedIn   = "user_logged_in"
	ActionUserLoggedOut  = "user_logged_out"

	ActionEmployeeCreated = "employee_created"
	ActionEmployeeUpdated = "employee_updated"
	ActionEmployeeDeleted = "employee_deleted"

	ActionTeamCreated = "team_created"
	ActionTeamUpdated = "team_updated"
	ActionTeamDeleted = "team_deleted"

	ActionEmployeeAssignedToTeam  = "employee_assigned_to_team"
	ActionEmployeeRemovedFromTeam = "employee_removed_from_team"
)

// Meta is the free-form payload attached to an entry.
type Meta map[string]any

// Recorder is the narrow interface mutating services depend on. Recording
// is synchronous: a failed append fails the request that triggered it.
type Recorder interface {
	Record(organisationID, userID int64, action string, meta Meta) error
}

type ServiceAPI interface {
	Recorder
	ListForOrganisation(organisationID int64) ([]*Entry, error)
}

type RepositoryAPI interface {
	Append(entry *auditDatamodel.Log) error
	ListByOrganisation(organisationID int64) ([]*Entry, error)
}

// ActorRef identifies the user who performed the action.
type ActorRef struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Entry is the read-side view of one log row, joined with its actor.
type Entry struct {
	ID             int64           `json:"id"`
	OrganisationID int64           `json:"organisation_id"`
	Action         string          `json:"action"`
	Meta           json.RawMessage `json:"meta"`
	Timestamp      time.Time       `json:"timestamp"`
	User           ActorRef        `json:"user"`
}
