package audit

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/andikarahman/hr-management/internal"
	auditDatamodel "github.com/andikarahman/hr-management/internal/core/datamodel/audit"
)

// Service appends and reads audit entries. Entries are never updated or
// deleted.
type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) Record(organisationID, userID int64, action string, meta Meta) error {
	payload, err := json.Marshal(meta)
	if err != nil {
		s.logger.Error("failed to marshal audit meta", "error", err, "action", action)
		return internal.NewInternalError("Server error", err)
	}

	entry := &auditDatamodel.Log{
		OrganisationID: organisationID,
		UserID:         userID,
		Action:         action,
		Meta:           payload,
		Timestamp:      time.Now(),
	}

	if err := s.repo.Append(entry); err != nil {
		s.logger.Error("failed to append audit entry",
			"error", err,
			"organisation_id", organisationID,
			"user_id", userID,
			"action", action)
		return internal.NewInternalError("Server error", err)
	}

	s.logger.Info("audit entry recorded",
		"log_id", entry.ID,
		"organisation_id", organisationID,
		"user_id", userID,
		"action", action)

	return nil
}

func (s *Service) ListForOrganisation(organisationID int64) ([]*Entry, error) {
	entries, err := s.repo.ListByOrganisation(organisationID)
	if err != nil {
		s.logger.Error("failed to list audit entries", "error", err, "organisation_id", organisationID)
		return nil, internal.NewInternalError("Server error", err)
	}

	return entries, nil
}
