package postgres

import (
	"github.com/andikarahman/hr-management/internal/audit"
	auditDatamodel "github.com/andikarahman/hr-management/internal/core/datamodel/audit"
	"gorm.io/gorm"
)

// AuditRepository implements audit.RepositoryAPI using GORM.
type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) audit.RepositoryAPI {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Append(entry *auditDatamodel.Log) error {
	return r.db.Create(entry).Error
}

func (r *AuditRepository) ListByOrganisation(organisationID int64) ([]*audit.Entry, error) {
	query := `SELECT l.id, l.organisation_id, l.action, l.meta, l.timestamp,
	                 u.id, u.name, u.email
	          FROM logs l
	          JOIN users u ON u.id = l.user_id
	          WHERE l.organisation_id = ?
	          ORDER BY l.timestamp DESC, l.id DESC`

	rows, err := r.db.Raw(query, organisationID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*audit.Entry
	for rows.Next() {
		var entry audit.Entry
		var meta []byte
		if err := rows.Scan(
			&entry.ID,
			&entry.OrganisationID,
			&entry.Action,
			&meta,
			&entry.Timestamp,
			&entry.User.ID,
			&entry.User.Name,
			&entry.User.Email,
		); err != nil {
			return nil, err
		}
		entry.Meta = meta
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
